package rcc

import "clockcode-go/types"

// Clocks is the frozen clock record: an immutable snapshot of every realized
// frequency and oscillator flag. It is created exactly once, by Freeze, and
// its existence is the proof that a consistent clock tree is running;
// components needing a known clock speed take it as a precondition.
type Clocks struct {
	sysclk types.Hertz
	hclk   types.Hertz

	pclk1   types.Hertz
	pclk2   types.Hertz
	timclk1 types.Hertz
	timclk2 types.Hertz
	ppre1   uint8
	ppre2   uint8

	hsi48 bool
	lsi   bool
	lse   bool

	msi   MSIRange
	msiOn bool
	hse   types.Hertz
	hseOn bool
	pll   types.Hertz
	pllOn bool
}

// defaultClocks is the post-baseline-reset state: MSI at 4 MHz everywhere.
func defaultClocks() Clocks {
	const boot = types.Hertz(4_000_000)
	return Clocks{
		sysclk:  boot,
		hclk:    boot,
		pclk1:   boot,
		pclk2:   boot,
		timclk1: boot,
		timclk2: boot,
		ppre1:   1,
		ppre2:   1,
		msi:     MSIRange4M,
		msiOn:   true,
	}
}

// Sysclk returns the system (core) clock frequency.
func (c Clocks) Sysclk() types.Hertz { return c.sysclk }

// HCLK returns the AHB (core bus) frequency.
func (c Clocks) HCLK() types.Hertz { return c.hclk }

// PCLK1 returns the APB1 bus frequency.
func (c Clocks) PCLK1() types.Hertz { return c.pclk1 }

// PCLK2 returns the APB2 bus frequency.
func (c Clocks) PCLK2() types.Hertz { return c.pclk2 }

// TimClk1 returns the frequency for timers on APB1.
func (c Clocks) TimClk1() types.Hertz { return c.timclk1 }

// TimClk2 returns the frequency for timers on APB2.
func (c Clocks) TimClk2() types.Hertz { return c.timclk2 }

// PPRE1 returns the APB1 prescaler division factor.
func (c Clocks) PPRE1() uint8 { return c.ppre1 }

// PPRE2 returns the APB2 prescaler division factor.
func (c Clocks) PPRE2() uint8 { return c.ppre2 }

// HSI48 reports whether the 48 MHz internal oscillator is running.
func (c Clocks) HSI48() bool { return c.hsi48 }

// LSI reports whether the low-speed internal oscillator is running.
func (c Clocks) LSI() bool { return c.lsi }

// LSE reports whether the low-speed external oscillator is running.
func (c Clocks) LSE() bool { return c.lse }

// MSI returns the running MSI range, if the MSI is part of the final tree.
func (c Clocks) MSI() (MSIRange, bool) { return c.msi, c.msiOn }

// HSE returns the HSE frequency, if the HSE is running.
func (c Clocks) HSE() (types.Hertz, bool) { return c.hse, c.hseOn }

// PLL returns the PLL output frequency, if the PLL is running.
func (c Clocks) PLL() (types.Hertz, bool) { return c.pll, c.pllOn }
