package detect

import "testing"

func TestPrimaryEcosystemPriority(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]string
		want       Tech
		wantOK     bool
	}{
		{
			name:       "ruby wins over everything",
			components: map[string]string{"ruby": "3.3.0", "python": "3.11", "nodejs": "18"},
			want:       Ruby,
			wantOK:     true,
		},
		{
			name:       "python beats rust and go",
			components: map[string]string{"python": "3.11", "rust": "1.75.0", "go": "1.21"},
			want:       Python,
			wantOK:     true,
		},
		{
			name:       "rust beats go",
			components: map[string]string{"rust": "1.75.0", "go": "1.21"},
			want:       Rust,
			wantOK:     true,
		},
		{
			name:       "go beats nodejs",
			components: map[string]string{"go": "1.21", "nodejs": "18"},
			want:       Go,
			wantOK:     true,
		},
		{
			name:       "nodejs alone",
			components: map[string]string{"nodejs": "18.16.0"},
			want:       NodeJS,
			wantOK:     true,
		},
		{
			name:       "databases do not make an ecosystem",
			components: map[string]string{"postgres": "15.3", "redis": "7.2"},
			wantOK:     false,
		},
		{
			name:       "empty versions do not count",
			components: map[string]string{"ruby": "", "go": "1.21"},
			want:       Go,
			wantOK:     true,
		},
		{
			name:       "empty map",
			components: map[string]string{},
			wantOK:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PrimaryEcosystem(tt.components)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("PrimaryEcosystem = %v, want %v", got, tt.want)
			}
		})
	}
}
