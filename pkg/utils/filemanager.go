// =============================================================================
// Salesforce Permission Doc - File Manager Utility
// =============================================================================
//
// This module provides the file system helpers used around the export:
//   - Discovery of profile and permission set metadata files
//   - Output directory management
//
// SOURCE LAYOUT:
//   <source>/
//   ├── profiles/         Admin.profile-meta.xml, ...
//   └── permissionsets/   Billing.permissionset-meta.xml, ...
//
// Files are selected by a substring marker in their name, so both the
// "Admin.profile" (metadata API) and "Admin.profile-meta.xml" (source
// format) conventions match.
//
// =============================================================================

package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager locates metadata files below a source directory.
type FileManager struct {
	// SourceDir is the root of the retrieved metadata.
	SourceDir string

	// Subdirs are scanned in order, non-recursively.
	Subdirs []string

	// Markers select files: a file is kept when its name contains any marker.
	Markers []string
}

// NewFileManager creates a FileManager for the given source directory.
func NewFileManager(sourceDir string, subdirs, markers []string) *FileManager {
	return &FileManager{
		SourceDir: sourceDir,
		Subdirs:   subdirs,
		Markers:   markers,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverDocuments lists the metadata files to export.
//
// RETURNS:
//   - File paths grouped by subdirectory (in Subdirs order) and sorted by
//     name within each subdirectory.
//   - The file system error unchanged if a subdirectory cannot be read.
//     A missing subdirectory is an error.
func (fm *FileManager) DiscoverDocuments() ([]string, error) {
	var files []string

	for _, subdir := range fm.Subdirs {
		dir := filepath.Join(fm.SourceDir, subdir)

		// os.ReadDir returns entries sorted by file name.
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if fm.matches(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	return files, nil
}

func (fm *FileManager) matches(name string) bool {
	for _, marker := range fm.Markers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates dir and its parents if they do not exist.
func EnsureDirectory(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
