package converter

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/sfdc-pps-doc/internal/config"
	"github.com/ginjaninja78/sfdc-pps-doc/internal/export"
	"github.com/ginjaninja78/sfdc-pps-doc/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const adminProfile = `<?xml version="1.0" encoding="UTF-8"?>
<Profile>
    <description>System administrators</description>
    <fieldPermissions>
        <editable>true</editable>
        <field>Account.Phone</field>
        <readable>true</readable>
    </fieldPermissions>
    <objectPermissions>
        <allowCreate>true</allowCreate>
        <allowDelete>false</allowDelete>
        <allowEdit>true</allowEdit>
        <allowRead>true</allowRead>
        <modifyAllRecords>false</modifyAllRecords>
        <object>Account</object>
        <viewAllRecords>false</viewAllRecords>
    </objectPermissions>
</Profile>
`

const billingPermissionSet = `<?xml version="1.0" encoding="UTF-8"?>
<PermissionSet>
    <label>Billing</label>
    <userPermissions>
        <enabled>true</enabled>
        <name>ApiEnabled</name>
    </userPermissions>
</PermissionSet>
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"profiles", "permissionsets"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRun(t *testing.T) {
	root := writeSource(t, map[string]string{
		"profiles/Admin.profile-meta.xml":               adminProfile,
		"permissionsets/Billing.permissionset-meta.xml": billingPermissionSet,
		"permissionsets/readme.txt":                     "not metadata",
	})
	outDir := t.TempDir()

	result, err := New(root, config.Default(), discardLogger()).Run(outDir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.OutputFile != filepath.Join(outDir, export.OutputFileName) {
		t.Errorf("OutputFile = %s", result.OutputFile)
	}
	if len(result.Sheets) != 2 || result.Sheets[0] != "Admin" || result.Sheets[1] != "Billing" {
		t.Errorf("Sheets = %v", result.Sheets)
	}
	if result.WorkbookID == "" {
		t.Errorf("WorkbookID is empty")
	}

	f, err := excelize.OpenFile(result.OutputFile)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 {
		t.Errorf("workbook sheets = %v", got)
	}
	checks := []struct {
		sheet, cell, want string
	}{
		{"Admin", "A1", "Admin - System administrators"},
		{"Admin", "A5", "Account"},
		{"Admin", "I5", "Account"},
		{"Admin", "J5", "Phone"},
		{"Billing", "A29", "ApiEnabled"},
	}
	for _, c := range checks {
		if got, _ := f.GetCellValue(c.sheet, c.cell); got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestRunInvalidDocumentAbortsBatch(t *testing.T) {
	root := writeSource(t, map[string]string{
		"profiles/Admin.profile-meta.xml":            adminProfile,
		"profiles/Broken.profile-meta.xml":           "<CustomObject><label>x</label></CustomObject>",
		"permissionsets/Late.permissionset-meta.xml": billingPermissionSet,
	})
	outDir := t.TempDir()

	_, err := New(root, config.Default(), discardLogger()).Run(outDir)
	if !errors.Is(err, export.ErrInvalidDocument) {
		t.Fatalf("Run error = %v, want ErrInvalidDocument", err)
	}
	if utils.FileExists(filepath.Join(outDir, export.OutputFileName)) {
		t.Errorf("workbook written despite failure")
	}
}

func TestRunMissingSubdir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "profiles"), 0755); err != nil {
		t.Fatal(err)
	}
	_, err := New(root, config.Default(), discardLogger()).Run(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run error = %v, want os.ErrNotExist", err)
	}
}

func TestRunParseErrorPropagates(t *testing.T) {
	root := writeSource(t, map[string]string{
		"profiles/A.profile": adminProfile,
		"profiles/B.profile": adminProfile,
	})
	parseErr := errors.New("malformed markup")

	cfg := config.Default()
	cfg.MaxConcurrency = 1
	c := New(root, cfg, discardLogger())
	c.parse = func(path string) (map[string]any, error) {
		if filepath.Base(path) == "B.profile" {
			return nil, parseErr
		}
		return map[string]any{"Profile": map[string]any{}}, nil
	}

	if _, err := c.Run(t.TempDir()); !errors.Is(err, parseErr) {
		t.Errorf("Run error = %v, want %v", err, parseErr)
	}
}

func TestRunIsQuietAtInfo(t *testing.T) {
	root := writeSource(t, map[string]string{
		"profiles/Admin.profile-meta.xml":               adminProfile,
		"permissionsets/Billing.permissionset-meta.xml": billingPermissionSet,
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if _, err := New(root, config.Default(), logger).Run(t.TempDir()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out := strings.TrimSpace(buf.String()); out != "" {
		t.Errorf("successful run logged at info:\n%s", out)
	}
}
