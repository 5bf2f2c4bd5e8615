package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestPpsDocCommand(t *testing.T) {
	src := t.TempDir()
	for _, dir := range []string{"profiles", "permissionsets"} {
		if err := os.MkdirAll(filepath.Join(src, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	profile := `<Profile><description>Read only</description>` +
		`<userPermissions><enabled>true</enabled><name>ViewSetup</name></userPermissions></Profile>`
	if err := os.WriteFile(filepath.Join(src, "profiles", "ReadOnly.profile-meta.xml"), []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "reports")

	rootCmd.SetArgs([]string{"pps-doc", src, "--output", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pps-doc failed: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(out, "ppsExport.xlsx"))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "ReadOnly" {
		t.Errorf("sheets = %v", sheets)
	}
}

func TestPpsDocCommandRequiresSource(t *testing.T) {
	rootCmd.SetArgs([]string{"pps-doc"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error without a source argument")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Version:    "+Version) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPpsDocCommandLogsOnlyStartLine(t *testing.T) {
	src := t.TempDir()
	for _, dir := range []string{"profiles", "permissionsets"} {
		if err := os.MkdirAll(filepath.Join(src, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	profile := `<Profile><description>Admins</description></Profile>`
	if err := os.WriteFile(filepath.Join(src, "profiles", "Admin.profile-meta.xml"), []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}
	permSet := `<PermissionSet><label>Billing</label></PermissionSet>`
	if err := os.WriteFile(filepath.Join(src, "permissionsets", "Billing.permissionset-meta.xml"), []byte(permSet), 0644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{"pps-doc", src, "--output", t.TempDir()})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pps-doc failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "Generating profile and permissionset document") {
		t.Errorf("stderr = %q, want only the start line", stderr.String())
	}
}
