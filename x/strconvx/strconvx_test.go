package strconvx

import "testing"

func TestFormatUint(t *testing.T) {
	cases := []struct {
		u    uint64
		base int
		want string
	}{
		{0, 10, "0"},
		{80_000_000, 10, "80000000"},
		{255, 16, "ff"},
		{6, 2, "110"},
	}
	for _, tc := range cases {
		if got := FormatUint(tc.u, tc.base); got != tc.want {
			t.Errorf("FormatUint(%d, %d) = %q, want %q", tc.u, tc.base, got, tc.want)
		}
	}
}

func TestParseUint(t *testing.T) {
	if v, err := ParseUint("80000000", 10, 32); err != nil || v != 80_000_000 {
		t.Fatalf("ParseUint = %d, %v", v, err)
	}
	if v, err := ParseUint("ff", 16, 32); err != nil || v != 255 {
		t.Fatalf("ParseUint = %d, %v", v, err)
	}
	for _, bad := range []string{"", "12a", "-3", "1 2"} {
		if _, err := ParseUint(bad, 10, 32); err == nil {
			t.Errorf("ParseUint(%q) accepted", bad)
		}
	}
}
