package detect

import "testing"

func TestImageTagVersion(t *testing.T) {
	tests := []struct {
		image  string
		names  []string
		want   string
		wantOK bool
	}{
		{"postgres:15.3", []string{"postgres", "postgresql"}, "15.3", true},
		{"postgres:16-alpine", []string{"postgres"}, "16", true},
		{"redis:7.2.4-rc1", []string{"redis"}, "7.2.4", true},
		{"library/mysql:8.0.33", []string{"mysql"}, "8.0.33", true},
		{"mysql:latest", []string{"mysql"}, "", false},
		{"postgres", []string{"postgres"}, "", false},
		{"nginx:1.25", []string{"postgres"}, "", false},
		{"", []string{"postgres"}, "", false},
	}
	for _, tt := range tests {
		got, ok := imageTagVersion(tt.image, tt.names)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("imageTagVersion(%q) = %q, %v, want %q, %v", tt.image, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestComposeHasImageWithoutTag(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/docker-compose.yml": "services:\n  db:\n    image: postgres\n",
	}}
	if !composeHasImage(fs, "proj", "postgres") {
		t.Error("untagged image still counts as declared")
	}
	if _, ok := composeImageVersion(fs, "proj", "postgres"); ok {
		t.Error("untagged image has no version")
	}
}

func TestComposeFileNamesTriedInOrder(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/compose.yaml": "services:\n  app:\n    image: node:18.16.0\n",
	}}
	v, ok := composeImageVersion(fs, "proj", "node")
	if !ok || v != "18.16.0" {
		t.Errorf("composeImageVersion = %q, %v", v, ok)
	}
}

func TestComposeMalformedYAMLIsAbsence(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/docker-compose.yml": "services: [::bad",
	}}
	if composeHasImage(fs, "proj", "postgres") {
		t.Error("malformed compose file should read as absence")
	}
}
