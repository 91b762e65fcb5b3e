// Package rcc configures the reset-and-clock-control peripheral: oscillator
// start-up, PLL synthesis, bus dividers, flash wait states and the one-shot
// freeze that commits an accumulated configuration in glitch-safe order and
// yields the immutable Clocks record.
package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
)

const (
	// MaxClockSpeed is the highest rated SYSCLK/HCLK for this part.
	MaxClockSpeed = types.Hertz(80_000_000)
	// HSI16Freq is the fixed frequency of the high-speed internal oscillator.
	HSI16Freq = types.Hertz(16_000_000)
	// HSI48Freq is the fixed frequency of the 48 MHz internal oscillator.
	HSI48Freq = types.Hertz(48_000_000)
	// LSIFreq is the nominal low-speed internal oscillator frequency.
	LSIFreq = types.Hertz(32_000)
)

// CrystalBypass selects whether the oscillator driving circuitry is bypassed,
// i.e. a complete external oscillator is wired in instead of a crystal.
type CrystalBypass uint8

const (
	BypassDisable CrystalBypass = iota
	BypassEnable
)

// ClockSecuritySystem enables hardware clock-failure detection on an external
// oscillator. On the HSE a failure raises the NMI; on the LSE the MCU falls
// back to the LSI, which must therefore be enabled too.
type ClockSecuritySystem uint8

const (
	CSSDisable ClockSecuritySystem = iota
	CSSEnable
)

// SysclkSource selects the system-clock input. Values are the SW/SWS field
// encodings.
type SysclkSource uint8

const (
	SysclkMSI   SysclkSource = 0b00
	SysclkHSI16 SysclkSource = 0b01
	SysclkHSE   SysclkSource = 0b10
	SysclkPLL   SysclkSource = 0b11
)

func (s SysclkSource) String() string {
	switch s {
	case SysclkMSI:
		return "msi"
	case SysclkHSI16:
		return "hsi16"
	case SysclkHSE:
		return "hse"
	default:
		return "pll"
	}
}

// SysclkConfig pairs a system-clock source with the frequency it is expected
// to deliver. The pairing is checked against the realized frequency at
// freeze, not assumed.
type SysclkConfig struct {
	Speed  types.Hertz
	Source SysclkSource
}

// RCC is the constrained clock-control peripheral. Constructing one requires
// the register block handed out by periph.Take, so there is exactly one
// writer to the clock registers per boot.
type RCC struct {
	regs       *regs.Block
	pollBudget int

	// Bus register proxies for peripheral enable/reset, in the order the
	// buses hang off the clock tree.
	AHB1   BusProxy
	AHB2   BusProxy
	AHB3   BusProxy
	APB1R1 BusProxy
	APB1R2 BusProxy
	APB2   BusProxy

	CRRCR CRRCR
	CCIPR CCIPR
	CSR   CSR
	BDCR  BDCR
}

// Constrain wraps the RCC register block. The poll budget starts unbounded
// (faithful to bare-metal spins); see SetPollBudget.
func Constrain(b *regs.Block) *RCC {
	return &RCC{
		regs:   b,
		AHB1:   BusProxy{enr: b.AHB1ENR, rstr: b.AHB1RSTR},
		AHB2:   BusProxy{enr: b.AHB2ENR, rstr: b.AHB2RSTR},
		AHB3:   BusProxy{enr: b.AHB3ENR, rstr: b.AHB3RSTR},
		APB1R1: BusProxy{enr: b.APB1ENR1, rstr: b.APB1RSTR1},
		APB1R2: BusProxy{enr: b.APB1ENR2, rstr: b.APB1RSTR2},
		APB2:   BusProxy{enr: b.APB2ENR, rstr: b.APB2RSTR},
		CRRCR:  CRRCR{r: b.CRRCR},
		CCIPR:  CCIPR{r: b.CCIPR},
		CSR:    CSR{r: b.CSR},
		BDCR:   BDCR{r: b.BDCR},
	}
}

// SetPollBudget bounds every busy-wait on a hardware status flag to n polls.
// 0 restores the unbounded spin. A misbehaving oscillator then hangs the
// caller indefinitely, which is acceptable for bring-up code; tests set a
// budget and assert errcode.Timeout instead.
func (r *RCC) SetPollBudget(n int) { r.pollBudget = n }

// waitSet spins until every bit in mask reads set.
func (r *RCC) waitSet(reg regs.Register, mask uint32, op string) error {
	for i := 0; r.pollBudget == 0 || i < r.pollBudget; i++ {
		if reg.Get()&mask == mask {
			return nil
		}
	}
	return &errcode.E{C: errcode.Timeout, Op: op, Msg: "status flag never set"}
}

// waitFieldEq spins until the field (unshifted mask at pos) reads want.
func (r *RCC) waitFieldEq(reg regs.Register, mask uint32, pos uint8, want uint32, op string) error {
	for i := 0; r.pollBudget == 0 || i < r.pollBudget; i++ {
		if reg.Get()>>pos&mask == want {
			return nil
		}
	}
	return &errcode.E{C: errcode.Timeout, Op: op, Msg: "status field never matched"}
}

// BusProxy grants access to one bus's peripheral enable and reset registers.
// Per-peripheral bit toggles belong to the peripheral drivers; the proxy only
// makes the exclusive-ownership chain visible in the type signatures.
type BusProxy struct {
	enr  regs.Register
	rstr regs.Register
}

// EnableRegister returns the bus's peripheral clock-enable register.
func (b BusProxy) EnableRegister() regs.Register { return b.enr }

// ResetRegister returns the bus's peripheral reset register.
func (b BusProxy) ResetRegister() regs.Register { return b.rstr }

// CRRCR is the clock-recovery RC register proxy.
type CRRCR struct{ r regs.Register }

// IsHSI48On reports whether the 48 MHz oscillator is enabled.
func (c CRRCR) IsHSI48On() bool { return c.r.HasBits(regs.CRRCR_HSI48ON) }

// IsHSI48Ready reports whether the 48 MHz oscillator has stabilised.
func (c CRRCR) IsHSI48Ready() bool { return c.r.HasBits(regs.CRRCR_HSI48RDY) }

// CCIPR is the peripherals-independent clock configuration register proxy.
type CCIPR struct{ r regs.Register }

func (c CCIPR) Register() regs.Register { return c.r }

// CSR is the control/status register proxy.
type CSR struct{ r regs.Register }

func (c CSR) Register() regs.Register { return c.r }

// BDCR is the backup-domain control register proxy. Writes require the
// backup domain to be unlocked first (pwr.UnlockBackupDomain).
type BDCR struct{ r regs.Register }

func (b BDCR) Register() regs.Register { return b.r }
