package rcc

import (
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
)

// MSIRange selects the multi-speed internal oscillator frequency. Values are
// the MSIRANGE field encodings.
type MSIRange uint8

const (
	MSIRange100K MSIRange = 0
	MSIRange200K MSIRange = 1
	MSIRange400K MSIRange = 2
	MSIRange800K MSIRange = 3
	MSIRange1M   MSIRange = 4
	MSIRange2M   MSIRange = 5
	MSIRange4M   MSIRange = 6
	MSIRange8M   MSIRange = 7
	MSIRange16M  MSIRange = 8
	MSIRange24M  MSIRange = 9
	MSIRange32M  MSIRange = 10
	MSIRange48M  MSIRange = 11
)

// Hertz returns the frequency the range produces.
func (m MSIRange) Hertz() types.Hertz {
	switch m {
	case MSIRange100K:
		return 100_000
	case MSIRange200K:
		return 200_000
	case MSIRange400K:
		return 400_000
	case MSIRange800K:
		return 800_000
	case MSIRange1M:
		return 1_000_000
	case MSIRange2M:
		return 2_000_000
	case MSIRange4M:
		return 4_000_000
	case MSIRange8M:
		return 8_000_000
	case MSIRange16M:
		return 16_000_000
	case MSIRange24M:
		return 24_000_000
	case MSIRange32M:
		return 32_000_000
	default:
		return 48_000_000
	}
}

// commit programs the range and starts the oscillator. When an LSE is
// configured the MSI is additionally hardware-calibrated against it.
func (m MSIRange) commit(r *RCC, calibrateWithLSE bool) error {
	cr := r.regs.CR
	cr.ReplaceBits(uint32(m), regs.CR_MSIRANGE_Msk, regs.CR_MSIRANGE_Pos)
	bits := uint32(regs.CR_MSIRGSEL | regs.CR_MSION)
	if calibrateWithLSE {
		bits |= regs.CR_MSIPLLEN
	}
	cr.SetBits(bits)
	return r.waitSet(cr, regs.CR_MSIRDY, "rcc.msi")
}
