package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
)

// lseDriveHigh is the crystal drive strength used when not bypassing.
const lseDriveHigh = 0b11

// LSEConfig describes the 32.768 kHz low-speed external oscillator. Its
// registers live in the backup domain, which must be unlocked before commit.
type LSEConfig struct {
	bypass CrystalBypass
	css    ClockSecuritySystem
}

// NewLSEConfig builds an LSE node configuration.
func NewLSEConfig(bypass CrystalBypass, css ClockSecuritySystem) LSEConfig {
	return LSEConfig{bypass: bypass, css: css}
}

// commit starts the oscillator and arms clock security if requested. The LSE
// clock-security system falls back to the LSI on failure, so requesting it
// without the LSI configured fails before any register write for this node.
func (l LSEConfig) commit(r *RCC, lsiConfigured bool) error {
	if l.css == CSSEnable && !lsiConfigured {
		return &errcode.E{
			C:   errcode.Prerequisite,
			Op:  "rcc.lse",
			Msg: "clock security on the LSE falls back to the LSI; enable the LSI too",
		}
	}

	bdcr := r.regs.BDCR
	if l.bypass == BypassEnable {
		bdcr.SetBits(regs.BDCR_LSEON | regs.BDCR_LSEBYP)
	} else {
		bdcr.ReplaceBits(lseDriveHigh, regs.BDCR_LSEDRV_Msk, regs.BDCR_LSEDRV_Pos)
		bdcr.SetBits(regs.BDCR_LSEON)
	}
	if err := r.waitSet(bdcr, regs.BDCR_LSERDY, "rcc.lse"); err != nil {
		return err
	}

	if l.css == CSSEnable {
		bdcr.SetBits(regs.BDCR_LSECSSON)
		r.regs.CIER.SetBits(regs.CIER_LSECSSIE)
	}
	return nil
}
