package security

import (
	"path/filepath"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "kitchen-drawer", false},
		{"with spaces inside", "tool chest", false},
		{"dimensions", "drawer-fit-530x247mm", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"leading space", " kitchen", true},
		{"dot dot", "..", true},
		{"embedded dot dot", "a..b", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"colon", "c:drive", true},
		{"control char", "bad\nname", true},
		{"too long", string(make([]byte, MaxNameLength+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("project", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePathWithinDirectory(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"direct child", filepath.Join(root, "kitchen"), false},
		{"nested", filepath.Join(root, "kitchen", "config.json"), false},
		{"root itself", root, false},
		{"parent escape", filepath.Join(root, "..", "etc"), true},
		{"sneaky escape", filepath.Join(root, "kitchen", "..", "..", "x"), true},
		{"absolute elsewhere", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.path, root)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinDirectory(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bin-2x2x3", "bin-2x2x3"},
		{"my bin (blue)", "my_bin_blue"},
		{"../../etc", "etc"},
		{"", "unnamed"},
		{"___", "unnamed"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
