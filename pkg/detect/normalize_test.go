package detect

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.3.0", "3.3.0"},
		{"  3.3.0\n", "3.3.0"},
		{"ruby-3.3.0", "3.3.0"},
		{"rust-1.75.0", "1.75.0"},
		{"python-3.11", "3.11"},
		{"v18.16.0", "18.16.0"},
		{">=3.11", "3.11"},
		{"<=2.7", "2.7"},
		{"~> 7.1", "7.1"},
		{"^16.0.0", "16.0.0"},
		{"~1.2", "1.2"},
		{"= 3.2.2", "3.2.2"},
		{">=3.9,<4.0", "3.9"},
		{">=14.0.0 <20.0.0", "14.0.0"},
		{"3.1.4p223", "3.1.4"},
		{"18.x", "18"},
		{"1.75.0-2023-12-21", "1.75.0"},
		{"10.11.2-MariaDB", "10.11.2"},
		{"stable", "stable"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"ruby-3.3.0", "v18.16.0", ">=3.9,<4.0", "3.1.4p223", "18.x",
		"1.75.0-2023-12-21", "7.1.0", "16",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNodeAlias(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"hydrogen", "18", true},
		{"gallium", "16", true},
		{"fermium", "14", true},
		{"lts/hydrogen", "18", true},
		{"LTS/Gallium", "16", true},
		{"argon", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := nodeAlias(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("nodeAlias(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
