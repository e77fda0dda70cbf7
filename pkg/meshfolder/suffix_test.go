package meshfolder

import "testing"

func TestFirstSuffix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.obj", ".obj"},
		{"a.obj.bak", ".obj"},
		{"scan.lod0.ply", ".lod0"},
		{"a..obj", "."},
		{".hidden", ""},
		{".hidden.obj", ".obj"},
		{"noext", ""},
		{"trailing.", ""},
		{"", ""},
		{"UPPER.OBJ", ".OBJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstSuffix(tt.name); got != tt.want {
				t.Errorf("firstSuffix(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestOriginKindText(t *testing.T) {
	for _, k := range []OriginKind{KindFile, KindDirectory} {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var back OriginKind
		if err := back.UnmarshalText(b); err != nil || back != k {
			t.Errorf("round trip of %v gave %v, %v", k, back, err)
		}
	}

	if _, err := OriginKind(7).MarshalText(); err == nil {
		t.Error("expected error for invalid kind")
	}
	var k OriginKind
	if err := k.UnmarshalText([]byte("symlink")); err == nil {
		t.Error("expected error for unknown kind text")
	}
}
