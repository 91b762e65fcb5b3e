package rcc

import (
	"testing"

	"clockcode-go/errcode"
	"clockcode-go/types"
)

func TestHCLKDividerFromRatio(t *testing.T) {
	cases := []struct {
		source, target types.Hertz
		want           HCLKDivider
		bits           uint8
		factor         uint32
	}{
		{types.MHz(80), types.MHz(80), HCLKDiv1, 0b0000, 1},
		{types.MHz(80), types.MHz(40), HCLKDiv2, 0b1000, 2},
		{types.MHz(80), types.MHz(20), HCLKDiv4, 0b1001, 4},
		{types.MHz(80), types.MHz(10), HCLKDiv8, 0b1010, 8},
		{types.MHz(80), types.MHz(5), HCLKDiv16, 0b1011, 16},
		{types.MHz(64), types.MHz(1), HCLKDiv64, 0b1100, 64},
		{types.MHz(128), types.MHz(1), HCLKDiv128, 0b1101, 128},
		{types.MHz(256), types.MHz(1), HCLKDiv256, 0b1110, 256},
		{types.KHz(512), types.KHz(1), HCLKDiv512, 0b1111, 512},
	}
	for _, tc := range cases {
		d, err := HCLKDividerFromRatio(tc.source, tc.target)
		if err != nil {
			t.Fatalf("%v/%v: %v", tc.source, tc.target, err)
		}
		if d != tc.want || d.Bits() != tc.bits || d.DivFactor() != tc.factor {
			t.Errorf("%v/%v: div=%d bits=%#b factor=%d", tc.source, tc.target, d, d.Bits(), d.DivFactor())
		}
	}
}

func TestHCLKDividerFromRatioRejects(t *testing.T) {
	cases := []struct {
		name           string
		source, target types.Hertz
	}{
		{"ratio 32 unsupported on this part", types.MHz(32), types.MHz(1)},
		{"ratio above 512", types.MHz(80), types.KHz(50)},
		{"non-integral ratio", types.MHz(10), types.MHz(3)},
		{"ratio 3 not a power of two", types.MHz(48), types.MHz(16)},
		{"zero target", types.MHz(10), 0},
		{"target faster than source", types.MHz(1), types.MHz(2)},
	}
	for _, tc := range cases {
		if _, err := HCLKDividerFromRatio(tc.source, tc.target); errcode.Of(err) != errcode.InvalidDivider {
			t.Errorf("%s: err = %v, want invalid_divider", tc.name, err)
		}
	}
}
