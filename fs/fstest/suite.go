// Package fstest provides a conformance test suite for validating filesystem
// provider implementations against the core.FS interface contracts.
//
// This package contains test functions that can be imported and executed by
// filesystem provider packages to verify they correctly implement core.FS
// and the optional SymlinkFS and Truncater capabilities.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
//	        return myprovider.New(), t.TempDir()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// NewFS returns a fresh filesystem and an existing, empty directory on it
// under which a test may create files.
type NewFS func(t *testing.T) (core.FS, string)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup/SubTest" (e.g., "FileHandle/LockShared").
	SkipTests []string
}

func (c FSTestConfig) skip(t *testing.T, name string) bool {
	t.Helper()
	for _, s := range c.SkipTests {
		if s == name {
			t.Skip("Skipped by provider configuration")
			return true
		}
	}
	return false
}

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh root for each test group.
func TestSuite(t *testing.T, newFS NewFS) {
	TestSuiteWithConfig(t, newFS, FSTestConfig{})
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS NewFS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(t *testing.T, filesystem core.FS, root string, config FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"MetadataFS", TestMetadataFSWithConfig},
		{"SymlinkFS", TestSymlinkFSWithConfig},
		{"DirStream", TestDirStreamWithConfig},
		{"FileHandle", TestFileHandleWithConfig},
		{"OpenFileFlags", TestOpenFileFlagsWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(t, g.name) {
				return
			}
			filesystem, root := newFS(t)
			g.run(t, filesystem, root, config)
		})
	}
}
