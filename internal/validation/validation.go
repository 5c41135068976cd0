// Package validation checks user-supplied paths and secret-bearing files.
package validation

import (
	"fmt"
	"os"
)

// IsValidPath checks that path exists and is a regular file or a directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// IsValidFilePermissions rejects modes that grant any access to others. Files
// holding API keys, such as .env, should be 0600 or 0640.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.Perm().String())
	}
	return nil
}

// CheckSecretFile stats path and applies IsValidFilePermissions.
func CheckSecretFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", path, err)
	}
	if err := IsValidFilePermissions(info.Mode()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
