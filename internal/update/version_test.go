package update

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "simple version", input: "1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "v prefix", input: "v1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "prerelease", input: "v1.2.3-beta.1", want: Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "beta.1"}},
		{name: "surrounding space", input: " 0.4.0\n", want: Version{Minor: 4}},
		{name: "empty", input: "", wantErr: true},
		{name: "missing patch", input: "1.2", wantErr: true},
		{name: "dev build", input: "dev", wantErr: true},
		{name: "extra part", input: "1.2.3.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.0.1", "1.0.2", -1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, _ := ParseVersion(tt.a)
			b, _ := ParseVersion(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Fatalf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	v := Version{Major: 2, Minor: 1, Patch: 0, Prerelease: "rc.2"}
	if got := v.String(); got != "v2.1.0-rc.2" {
		t.Fatalf("String() = %q", got)
	}
}
