package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
	"clockcode-go/x/mathx"
)

// APBPrescaler divides HCLK onto a peripheral bus: power-of-two steps to 16.
type APBPrescaler uint8

const (
	APBDiv1 APBPrescaler = iota
	APBDiv2
	APBDiv4
	APBDiv8
	APBDiv16
)

// APBPrescalerFromRatio resolves the prescaler whose factor equals
// source/target exactly. Pure: no hardware access.
func APBPrescalerFromRatio(source, target types.Hertz) (APBPrescaler, error) {
	ratio, ok := mathx.ExactDiv(uint32(source), uint32(target))
	if !ok {
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.pclk",
			Msg: "PCLK must divide HCLK evenly"}
	}
	switch ratio {
	case 0:
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.pclk",
			Msg: "HCLK must not be slower than PCLK"}
	case 1:
		return APBDiv1, nil
	case 2:
		return APBDiv2, nil
	case 4:
		return APBDiv4, nil
	case 8:
		return APBDiv8, nil
	case 16:
		return APBDiv16, nil
	default:
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.pclk",
			Msg: "ratio must be a power of two up to 16"}
	}
}

// Bits returns the PPRE field encoding.
func (p APBPrescaler) Bits() uint8 {
	if p == APBDiv1 {
		return 0b000
	}
	return 0b100 + uint8(p) - 1
}

// DivFactor returns the integer division factor.
func (p APBPrescaler) DivFactor() uint32 { return 1 << p }

// commitPCLK resolves and writes one peripheral-bus prescaler field and
// returns the bus and timer frequencies. Timers run at the bus frequency,
// doubled whenever the bus itself is divided down from HCLK.
func commitPCLK(r *RCC, hclk, target types.Hertz, pos uint8) (pclk, timclk types.Hertz, presc APBPrescaler, err error) {
	presc, err = APBPrescalerFromRatio(hclk, target)
	if err != nil {
		return 0, 0, 0, err
	}
	r.regs.CFGR.ReplaceBits(uint32(presc.Bits()), regs.CFGR_PPRE1_Msk, pos)

	timclk = target
	if presc != APBDiv1 {
		timclk = 2 * target
	}
	return target, timclk, presc, nil
}
