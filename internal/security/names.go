// Package security validates user-supplied names before they become paths
// on disk.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxNameLength caps project and component names.
const MaxNameLength = 128

// ValidateName checks that a project or component name can be used as a
// single path element. kind is used in the error message ("project",
// "component").
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%s name %q must not start or end with whitespace", kind, name)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s name is too long: %d characters (max %d)", kind, len(name), MaxNameLength)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("%s name %q must not contain '..'", kind, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s name %q must not contain path separators", kind, name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(`:*?"<>|`, r) {
			return fmt.Errorf("%s name %q contains disallowed character %q", kind, name, r)
		}
	}
	return nil
}

// ValidatePathWithinDirectory checks lexically that filePath stays inside
// dir once both are cleaned and made absolute.
func ValidatePathWithinDirectory(filePath, dir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("failed to resolve directory path: %w", err)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return fmt.Errorf("path is outside %s: %w", dir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, dir)
	}
	return nil
}

// SanitizeFilename makes a safe filename from an arbitrary string. Characters
// other than ASCII letters, digits, dot, underscore and dash become a single
// underscore.
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= MaxNameLength {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unnamed"
	}
	return out
}
