package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile fixture: %v", err)
	}
	return path
}

func TestDefaultProfile_Valid(t *testing.T) {
	if err := DefaultProfile().Validate(); err != nil {
		t.Errorf("DefaultProfile().Validate() = %v, want nil", err)
	}
}

func TestProfileFromFile_PartialOverride(t *testing.T) {
	path := writeProfile(t, `
media_host: cdn.example.net
min_image_size: 50
`)

	p, err := ProfileFromFile(path)
	if err != nil {
		t.Fatalf("ProfileFromFile() error = %v", err)
	}

	if p.MediaHost != "cdn.example.net" {
		t.Errorf("MediaHost = %q, want override", p.MediaHost)
	}
	if p.MinImageSize != 50 {
		t.Errorf("MinImageSize = %d, want 50", p.MinImageSize)
	}
	// Untouched fields keep defaults.
	if p.SparseThreshold != 400 {
		t.Errorf("SparseThreshold = %d, want default 400", p.SparseThreshold)
	}
	if p.PostTextSelector != `[data-testid="tweetText"]` {
		t.Errorf("PostTextSelector = %q, want default", p.PostTextSelector)
	}
}

func TestProfileFromFile_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero min image size", "min_image_size: 0"},
		{"negative sparse threshold", "sparse_threshold: -1"},
		{"empty media host", `media_host: ""`},
		{"empty container list", "container_selectors: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProfile(t, tt.content)
			if _, err := ProfileFromFile(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestProfileFromFile_MissingFile(t *testing.T) {
	if _, err := ProfileFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestProfileFromFile_Malformed(t *testing.T) {
	path := writeProfile(t, "media_host: [unterminated")
	if _, err := ProfileFromFile(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}
