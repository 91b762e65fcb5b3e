package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
	"clockcode-go/x/mathx"
)

// HCLKDivider is the AHB prescaler: power-of-two steps up to 512. 32 is not
// a step this part supports.
type HCLKDivider uint8

const (
	HCLKDiv1 HCLKDivider = iota
	HCLKDiv2
	HCLKDiv4
	HCLKDiv8
	HCLKDiv16
	HCLKDiv64
	HCLKDiv128
	HCLKDiv256
	HCLKDiv512
)

// HCLKDividerFromRatio resolves the divider whose factor equals source/target
// exactly. Pure: no hardware access.
func HCLKDividerFromRatio(source, target types.Hertz) (HCLKDivider, error) {
	ratio, ok := mathx.ExactDiv(uint32(source), uint32(target))
	if !ok {
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.hclk",
			Msg: "HCLK must divide SYSCLK evenly"}
	}
	switch ratio {
	case 0:
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.hclk",
			Msg: "SYSCLK must not be slower than HCLK"}
	case 1:
		return HCLKDiv1, nil
	case 2:
		return HCLKDiv2, nil
	case 4:
		return HCLKDiv4, nil
	case 8:
		return HCLKDiv8, nil
	case 16:
		return HCLKDiv16, nil
	case 64:
		return HCLKDiv64, nil
	case 128:
		return HCLKDiv128, nil
	case 256:
		return HCLKDiv256, nil
	case 512:
		return HCLKDiv512, nil
	default:
		return 0, &errcode.E{C: errcode.InvalidDivider, Op: "rcc.hclk",
			Msg: "ratio must be a power of two up to 512, excluding 32"}
	}
}

// Bits returns the HPRE field encoding.
func (d HCLKDivider) Bits() uint8 {
	if d == HCLKDiv1 {
		return 0b0000
	}
	return 0b1000 + uint8(d) - 1
}

// DivFactor returns the integer division factor.
func (d HCLKDivider) DivFactor() uint32 {
	f := uint32(1) << d
	if d >= HCLKDiv64 {
		f <<= 1 // the 32 step is skipped
	}
	return f
}

// commitHCLK resolves and writes the core-bus divider. Runs after the flash
// wait states have already been raised for the target frequency.
func commitHCLK(r *RCC, sysclk, target types.Hertz) error {
	div, err := HCLKDividerFromRatio(sysclk, target)
	if err != nil {
		return err
	}
	r.regs.CFGR.ReplaceBits(uint32(div.Bits()), regs.CFGR_HPRE_Msk, regs.CFGR_HPRE_Pos)
	return nil
}
