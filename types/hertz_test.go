package types

import "testing"

func TestHertzConstructors(t *testing.T) {
	if KHz(32) != 32_000 {
		t.Fatalf("KHz(32) = %d", KHz(32))
	}
	if MHz(80) != 80_000_000 {
		t.Fatalf("MHz(80) = %d", MHz(80))
	}
	if MHz(80).Hz() != 80_000_000 {
		t.Fatalf("Hz() = %d", MHz(80).Hz())
	}
}

func TestHertzString(t *testing.T) {
	cases := []struct {
		h    Hertz
		want string
	}{
		{MHz(80), "80 MHz"},
		{KHz(32), "32 kHz"},
		{32_768, "32768 Hz"},
		{16_000_001, "16000001 Hz"},
		{0, "0 Hz"},
	}
	for _, tc := range cases {
		if got := tc.h.String(); got != tc.want {
			t.Errorf("Hertz(%d).String() = %q, want %q", tc.h, got, tc.want)
		}
	}
}
