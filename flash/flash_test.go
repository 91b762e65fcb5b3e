package flash

import (
	"testing"

	"clockcode-go/rcc/regs/regsim"
	"clockcode-go/types"
)

func TestLatencyFor(t *testing.T) {
	cases := []struct {
		hclk types.Hertz
		want uint8
	}{
		{types.MHz(4), 0},
		{16_000_000, 0},
		{16_000_001, 1},
		{32_000_000, 1},
		{48_000_000, 2},
		{64_000_000, 3},
		{64_000_001, 4},
		{types.MHz(80), 4},
	}
	for _, tc := range cases {
		if got := LatencyFor(tc.hclk); got != tc.want {
			t.Errorf("LatencyFor(%v) = %d, want %d", tc.hclk, got, tc.want)
		}
	}
}

func TestSetLatency(t *testing.T) {
	b := regsim.New()
	acr := Constrain(b.Flash)

	acr.SetLatency(4)
	if got := acr.Latency(); got != 4 {
		t.Fatalf("Latency = %d, want 4", got)
	}
	acr.SetLatency(0)
	if got := acr.Latency(); got != 0 {
		t.Fatalf("Latency = %d, want 0", got)
	}
}
