// Package testdata holds the acceptance cases of the rewrite: one directory
// per case under acceptancetests, named NNN_description, with an input.sql
// and an expected.yaml. Directories ending in _err expect a fatal error.
package testdata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

//go:embed acceptancetests/*/input.sql acceptancetests/*/expected.yaml
var AcceptanceTests embed.FS

var caseName = regexp.MustCompile(`^[0-9]{3}.*$`)

// GetFS returns the embedded filesystem
func GetFS() embed.FS {
	return AcceptanceTests
}

// GetAcceptanceTestDirs returns the case directories in name order.
func GetAcceptanceTestDirs() ([]string, error) {
	entries, err := fs.ReadDir(AcceptanceTests, "acceptancetests")
	if err != nil {
		return nil, fmt.Errorf("failed to read acceptancetests directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && caseName.MatchString(entry.Name()) {
			dirs = append(dirs, path.Join("acceptancetests", entry.Name()))
		}
	}
	return dirs, nil
}

// ReadTestFile reads a file of a case directory.
func ReadTestFile(dir, name string) ([]byte, error) {
	return fs.ReadFile(AcceptanceTests, path.Join(dir, name))
}

// IsErrorTest checks if a test is an error test
func IsErrorTest(dir string) bool {
	return strings.HasSuffix(path.Base(dir), "_err")
}
