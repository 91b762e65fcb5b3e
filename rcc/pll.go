package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
	"clockcode-go/x/mathx"
)

// PLL electrical limits: the divided input feeds the VCO, whose output is
// divided again onto the system clock.
const (
	pllVCOInMin  = types.Hertz(4_000_000)
	pllVCOInMax  = types.Hertz(16_000_000)
	pllVCOOutMin = types.Hertz(64_000_000)
	pllVCOOutMax = types.Hertz(344_000_000)
)

// PLLSource selects the PLL input oscillator.
type PLLSource uint8

const (
	PLLSourceMSI PLLSource = iota
	PLLSourceHSI16
	PLLSourceHSE
)

func (s PLLSource) sourceBits() uint32 {
	switch s {
	case PLLSourceMSI:
		return 0b01
	case PLLSourceHSI16:
		return 0b10
	default:
		return 0b11
	}
}

func (s PLLSource) String() string {
	switch s {
	case PLLSourceMSI:
		return "msi"
	case PLLSourceHSI16:
		return "hsi16"
	default:
		return "hse"
	}
}

// PLLOutputDivider divides the VCO output onto the PLL's R output.
type PLLOutputDivider uint8

const (
	PLLDiv2 PLLOutputDivider = iota
	PLLDiv4
	PLLDiv6
	PLLDiv8
)

// Bits returns the PLLR field encoding.
func (d PLLOutputDivider) Bits() uint8 { return uint8(d) }

// DivFactor returns the integer division factor.
func (d PLLOutputDivider) DivFactor() uint32 { return uint32(d)*2 + 2 }

// PLLConfig holds the caller-supplied divider/multiplier/divider triple.
// There is no automatic parameter search.
type PLLConfig struct {
	source PLLSource
	target types.Hertz
	inDiv  uint8
	outMul uint8
	outDiv PLLOutputDivider
}

// NewPLLConfig validates the static parameter bounds, independent of every
// other clock node: inDiv 1–8, outMul 8–86, target at most the rated maximum.
// The frequency-range invariants need the realized input frequency and are
// checked at freeze.
func NewPLLConfig(source PLLSource, target types.Hertz, inDiv, outMul uint8, outDiv PLLOutputDivider) (PLLConfig, error) {
	if !mathx.Between(inDiv, 1, 8) {
		return PLLConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "rcc.pll", Msg: "input divider must be 1..8"}
	}
	if !mathx.Between(outMul, 8, 86) {
		return PLLConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "rcc.pll", Msg: "multiplication factor must be 8..86"}
	}
	if target > MaxClockSpeed {
		return PLLConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "rcc.pll", Msg: "target exceeds the rated maximum clock speed"}
	}
	return PLLConfig{source: source, target: target, inDiv: inDiv, outMul: outMul, outDiv: outDiv}, nil
}

// Source returns the configured input selection.
func (p PLLConfig) Source() PLLSource { return p.source }

// Speed returns the declared output frequency.
func (p PLLConfig) Speed() types.Hertz { return p.target }

// commit validates the frequency-range invariants against the realized input
// frequency (resolved by the freeze sequencer, since the PLL cannot run until
// its input runs), programs the dividers, locks the PLL and only then enables
// its output, so downstream never sees an unstable clock.
func (p PLLConfig) commit(r *RCC, input types.Hertz) (types.Hertz, error) {
	vcoIn := input / types.Hertz(p.inDiv)
	if !mathx.Between(vcoIn, pllVCOInMin, pllVCOInMax) {
		return 0, &errcode.E{C: errcode.PLLOutOfRange, Op: "rcc.pll",
			Msg: "VCO input " + vcoIn.String() + " outside 4..16 MHz"}
	}
	vcoOut := vcoIn * types.Hertz(p.outMul)
	if !mathx.Between(vcoOut, pllVCOOutMin, pllVCOOutMax) {
		return 0, &errcode.E{C: errcode.PLLOutOfRange, Op: "rcc.pll",
			Msg: "VCO output " + vcoOut.String() + " outside 64..344 MHz"}
	}
	out := vcoOut / types.Hertz(p.outDiv.DivFactor())
	if out > MaxClockSpeed {
		return 0, &errcode.E{C: errcode.PLLOutOfRange, Op: "rcc.pll",
			Msg: "output " + out.String() + " exceeds the rated maximum clock speed"}
	}
	if out != p.target {
		return 0, &errcode.E{C: errcode.FreqMismatch, Op: "rcc.pll",
			Msg: "parameters yield " + out.String() + ", not the declared " + p.target.String()}
	}

	cfgr := r.regs.PLLCFGR
	cfgr.ReplaceBits(p.source.sourceBits(), regs.PLLCFGR_PLLSRC_Msk, regs.PLLCFGR_PLLSRC_Pos)
	cfgr.ReplaceBits(uint32(p.inDiv-1), regs.PLLCFGR_PLLM_Msk, regs.PLLCFGR_PLLM_Pos)
	cfgr.ReplaceBits(uint32(p.outMul), regs.PLLCFGR_PLLN_Msk, regs.PLLCFGR_PLLN_Pos)
	cfgr.ReplaceBits(uint32(p.outDiv.Bits()), regs.PLLCFGR_PLLR_Msk, regs.PLLCFGR_PLLR_Pos)

	r.regs.CR.SetBits(regs.CR_PLLON)
	if err := r.waitSet(r.regs.CR, regs.CR_PLLRDY, "rcc.pll"); err != nil {
		return 0, err
	}
	cfgr.SetBits(regs.PLLCFGR_PLLREN)
	return out, nil
}
