// Package flash exposes the one flash-controller concern the clock tree has:
// the wait-state latency must match the core-bus frequency before the bus is
// sped up, or the core fetches faster than the flash can answer.
package flash

import (
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
)

// ACR is the constrained flash access-control register.
type ACR struct {
	block *regs.FlashBlock
}

// Constrain wraps the flash register block.
func Constrain(b *regs.FlashBlock) *ACR {
	return &ACR{block: b}
}

// LatencyFor returns the wait-state count required for an AHB frequency.
func LatencyFor(hclk types.Hertz) uint8 {
	switch {
	case hclk <= 16_000_000:
		return 0
	case hclk <= 32_000_000:
		return 1
	case hclk <= 48_000_000:
		return 2
	case hclk <= 64_000_000:
		return 3
	default:
		return 4
	}
}

// SetLatency writes the wait-state count.
func (a *ACR) SetLatency(wait uint8) {
	a.block.ACR.ReplaceBits(uint32(wait), regs.ACR_LATENCY_Msk, regs.ACR_LATENCY_Pos)
}

// Latency reads back the configured wait-state count.
func (a *ACR) Latency() uint8 {
	return uint8(a.block.ACR.Get() >> regs.ACR_LATENCY_Pos & regs.ACR_LATENCY_Msk)
}
