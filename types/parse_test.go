package types

import "testing"

func TestParseHertz(t *testing.T) {
	cases := []struct {
		in   string
		want Hertz
	}{
		{"80MHz", MHz(80)},
		{"80 MHz", MHz(80)}, // String round-trip form
		{"8MHz", MHz(8)},
		{"32.768kHz", 32_768},
		{"32 kHz", KHz(32)},
		{"8000000", 8_000_000},
		{"48Hz", 48},
		{"0.1MHz", KHz(100)},
	}
	for _, tc := range cases {
		got, err := ParseHertz(tc.in)
		if err != nil {
			t.Errorf("ParseHertz(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHertz(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseHertzRejects(t *testing.T) {
	cases := []string{
		"",
		"fast",
		"80mz",
		"0",
		"0Hz",
		"32.768Hz", // fraction of a hertz
		".5MHz",
		"1.2.3MHz",
	}
	for _, in := range cases {
		if got, err := ParseHertz(in); err == nil {
			t.Errorf("ParseHertz(%q) = %v, want error", in, got)
		}
	}
}
