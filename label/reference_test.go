package label

import (
	"encoding/json"
	"testing"
)

func TestNewPackageName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"hypertrie", false},
		{"dice-hash", false},
		{"robin-hood-hashing", false},
		{"tsl_hopscotch_map", false},
		{"lib2.0", false},
		{"", true},
		{"a", true}, // too short
		{"Boost", true},
		{"-leading", true},
		{"has space", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewPackageName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPackageName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && n.String() != tt.name {
				t.Errorf("String() = %q, want %q", n.String(), tt.name)
			}
		})
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		input       string
		wantErr     bool
		wantName    string
		wantVersion string
		wantUser    string
		wantChannel string
	}{
		{"boost/1.81.0", false, "boost", "1.81.0", "", ""},
		{"cppitertools/2.1", false, "cppitertools", "2.1", "", ""},
		{"boost/1.71.0@conan/stable", false, "boost", "1.71.0", "conan", "stable"},
		{"tsl-hopscotch-map/2.2.1@tessil/stable", false, "tsl-hopscotch-map", "2.2.1", "tessil", "stable"},
		{"boost", true, "", "", "", ""},
		{"boost/", true, "", "", "", ""},
		{"Boost/1.0", true, "", "", "", ""},
		{"boost/1.0@conan", true, "", "", "", ""},
		{"boost/1.0@/stable", true, "", "", "", ""},
		{"boost/1 0", true, "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseReference(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseReference(%q) expected error, got %v", tt.input, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReference(%q) unexpected error: %v", tt.input, err)
			}
			if ref.Name().String() != tt.wantName {
				t.Errorf("Name() = %q, want %q", ref.Name(), tt.wantName)
			}
			if ref.Version().String() != tt.wantVersion {
				t.Errorf("Version() = %q, want %q", ref.Version(), tt.wantVersion)
			}
			if ref.User() != tt.wantUser || ref.Channel() != tt.wantChannel {
				t.Errorf("qualifier = %q/%q, want %q/%q", ref.User(), ref.Channel(), tt.wantUser, tt.wantChannel)
			}
			if ref.String() != tt.input {
				t.Errorf("String() = %q, want %q", ref.String(), tt.input)
			}
		})
	}
}

func TestReference_JSON(t *testing.T) {
	in := struct {
		Ref Reference `json:"ref"`
	}{Ref: MustReference("dice-hash/0.4.0")}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"ref":"dice-hash/0.4.0"}` {
		t.Errorf("Marshal = %s", data)
	}

	var out struct {
		Ref Reference `json:"ref"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Ref.String() != in.Ref.String() {
		t.Errorf("round trip = %v, want %v", out.Ref, in.Ref)
	}
}
