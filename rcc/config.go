package rcc

import (
	"clockcode-go/errcode"
	"clockcode-go/flash"
	"clockcode-go/pwr"
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
)

// Config accumulates a desired clock tree: at most one configuration per
// node. Setters are value methods returning the updated configuration, so a
// Config can be built up in a chain; the same setter twice overwrites (last
// write wins). Nothing is validated at accumulation time; only at Freeze
// are all dependent values known.
type Config struct {
	hse    *HSEConfig
	lse    *LSEConfig
	msi    *MSIRange
	hsi48  bool
	hsi16  bool
	lsi    bool
	hclk   *types.Hertz
	pclk1  *types.Hertz
	pclk2  *types.Hertz
	sysclk *SysclkConfig
	pll    *PLLConfig

	consumed bool
}

// NewConfig returns the empty configuration: every node on its hardware
// default.
func NewConfig() Config { return Config{} }

// EnableHSE adds the external high-speed oscillator.
func (c Config) EnableHSE(freq types.Hertz, bypass CrystalBypass, css ClockSecuritySystem) Config {
	hse := NewHSEConfig(freq, bypass, css)
	c.hse = &hse
	return c
}

// EnableLSE adds the 32.768 kHz low-speed external oscillator.
func (c Config) EnableLSE(bypass CrystalBypass, css ClockSecuritySystem) Config {
	lse := NewLSEConfig(bypass, css)
	c.lse = &lse
	return c
}

// EnableMSI keeps the multi-speed internal oscillator in the final tree at
// the given range. Without this the MSI is only used as the bootstrap clock
// and disabled at the end of Freeze.
func (c Config) EnableMSI(r MSIRange) Config {
	c.msi = &r
	return c
}

// EnableHSI48 turns the 48 MHz internal oscillator on or off.
func (c Config) EnableHSI48(on bool) Config {
	c.hsi48 = on
	return c
}

// EnableHSI16 turns the 16 MHz internal oscillator on or off.
func (c Config) EnableHSI16(on bool) Config {
	c.hsi16 = on
	return c
}

// SetLSI turns the low-speed internal oscillator on or off.
func (c Config) SetLSI(on bool) Config {
	c.lsi = on
	return c
}

// SetHCLKFreq sets the core-bus target frequency. Default: same as SYSCLK.
func (c Config) SetHCLKFreq(freq types.Hertz) Config {
	c.hclk = &freq
	return c
}

// SetPCLK1Freq sets the APB1 target frequency. Default: same as HCLK.
func (c Config) SetPCLK1Freq(freq types.Hertz) Config {
	c.pclk1 = &freq
	return c
}

// SetPCLK2Freq sets the APB2 target frequency. Default: same as HCLK.
func (c Config) SetPCLK2Freq(freq types.Hertz) Config {
	c.pclk2 = &freq
	return c
}

// SetSysclk selects the system-clock source and the frequency it must
// deliver. Default: the configured MSI.
func (c Config) SetSysclk(source SysclkSource, freq types.Hertz) Config {
	c.sysclk = &SysclkConfig{Speed: freq, Source: source}
	return c
}

// EnablePLL adds the PLL, built beforehand with NewPLLConfig.
func (c Config) EnablePLL(cfg PLLConfig) Config {
	c.pll = &cfg
	return c
}

// Freeze commits the configuration in glitch-safe order and returns the
// frozen clock record. It is the single terminal operation: the Config is
// consumed, and a second Freeze fails with errcode.Consumed. Any failure
// aborts immediately; register writes made up to that point are not rolled
// back (they are idempotent or benign), and the boot should be treated as
// failed.
func (c *Config) Freeze(r *RCC, acr *flash.ACR, p *pwr.Pwr) (Clocks, error) {
	if c.consumed {
		return Clocks{}, &errcode.E{C: errcode.Consumed, Op: "rcc.freeze",
			Msg: "configuration already frozen"}
	}
	c.consumed = true

	// Phase 1: a running, known-speed clock before anything else is touched.
	if err := resetClocks(r); err != nil {
		return Clocks{}, err
	}
	clocks := defaultClocks()

	// Phase 2: independent oscillators, each blocking until ready.
	if err := c.setupLSI(r, &clocks); err != nil {
		return Clocks{}, err
	}
	if err := c.setupLSE(r, p, &clocks); err != nil {
		return Clocks{}, err
	}
	if err := c.setupHSE(r, &clocks); err != nil {
		return Clocks{}, err
	}
	if err := c.setupHSI48(r, &clocks); err != nil {
		return Clocks{}, err
	}
	if err := c.setupHSI16(r); err != nil {
		return Clocks{}, err
	}

	// Phase 5: PLL, after every oscillator it could reference is running.
	if err := c.setupPLL(r, &clocks); err != nil {
		return Clocks{}, err
	}

	// Phases 3–4: resolve what SYSCLK and HCLK should be.
	sysclk, err := c.resolveSysclk()
	if err != nil {
		return Clocks{}, err
	}
	hclk := c.resolveHCLK(sysclk)

	// Phase 6: peripheral buses, then flash wait states, raised before the
	// core bus speeds up, never after.
	if err := c.setupPeriphClocks(r, hclk, &clocks); err != nil {
		return Clocks{}, err
	}
	acr.SetLatency(flash.LatencyFor(hclk))

	// Phase 7: finalize the MSI if it is part of the requested tree.
	if err := c.configureMSI(r, &clocks); err != nil {
		return Clocks{}, err
	}

	// Phases 8–9: switch the system clock, then the core-bus divider.
	if err := c.setupSysclk(r, sysclk, &clocks); err != nil {
		return Clocks{}, err
	}
	if err := commitHCLK(r, sysclk.Speed, hclk); err != nil {
		return Clocks{}, err
	}
	clocks.hclk = hclk

	// Phase 10: drop the bootstrap MSI when nobody asked to keep it.
	c.cleanMSI(r, &clocks)

	return clocks, nil
}

// resetClocks forces the always-available MSI to its 4 MHz default and
// selects it as system clock. On an already-correct device both steps are
// no-ops: an enabled MSI is not re-enabled, a correct selector not rewritten.
func resetClocks(r *RCC) error {
	cr := r.regs.CR
	if !cr.HasBits(regs.CR_MSION) {
		cr.ReplaceBits(uint32(MSIRange4M), regs.CR_MSIRANGE_Msk, regs.CR_MSIRANGE_Pos)
		cr.ClearBits(regs.CR_MSIPLLEN)
		cr.SetBits(regs.CR_MSIRGSEL | regs.CR_MSION)
		if err := r.waitSet(cr, regs.CR_MSIRDY, "rcc.reset"); err != nil {
			return err
		}
	}
	cfgr := r.regs.CFGR
	if cfgr.Get()>>regs.CFGR_SWS_Pos&regs.CFGR_SWS_Msk != uint32(SysclkMSI) {
		cfgr.Set(0)
		if err := r.waitFieldEq(cfgr, regs.CFGR_SWS_Msk, regs.CFGR_SWS_Pos,
			uint32(SysclkMSI), "rcc.reset"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) setupLSI(r *RCC, clocks *Clocks) error {
	if !c.lsi {
		return nil
	}
	csr := r.regs.CSR
	csr.SetBits(regs.CSR_LSION)
	if err := r.waitSet(csr, regs.CSR_LSIRDY, "rcc.lsi"); err != nil {
		return err
	}
	clocks.lsi = true
	return nil
}

func (c *Config) setupLSE(r *RCC, p *pwr.Pwr, clocks *Clocks) error {
	if c.lse == nil {
		return nil
	}
	// BDCR lives in the write-protected backup domain.
	p.UnlockBackupDomain()
	if err := c.lse.commit(r, c.lsi); err != nil {
		return err
	}
	clocks.lse = true
	return nil
}

func (c *Config) setupHSE(r *RCC, clocks *Clocks) error {
	if c.hse == nil {
		return nil
	}
	speed, err := c.hse.commit(r)
	if err != nil {
		return err
	}
	clocks.hse = speed
	clocks.hseOn = true
	return nil
}

func (c *Config) setupHSI48(r *RCC, clocks *Clocks) error {
	if !c.hsi48 {
		return nil
	}
	crrcr := r.regs.CRRCR
	crrcr.SetBits(regs.CRRCR_HSI48ON)
	if err := r.waitSet(crrcr, regs.CRRCR_HSI48RDY, "rcc.hsi48"); err != nil {
		return err
	}
	clocks.hsi48 = true
	return nil
}

func (c *Config) setupHSI16(r *RCC) error {
	if !c.hsi16 {
		return nil
	}
	cr := r.regs.CR
	cr.SetBits(regs.CR_HSION)
	return r.waitSet(cr, regs.CR_HSIRDY, "rcc.hsi16")
}

func (c *Config) setupPLL(r *RCC, clocks *Clocks) error {
	if c.pll == nil {
		return nil
	}
	input, err := c.pllInput()
	if err != nil {
		return err
	}
	out, err := c.pll.commit(r, input)
	if err != nil {
		return err
	}
	clocks.pll = out
	clocks.pllOn = true
	return nil
}

// pllInput resolves the realized frequency of the PLL's input source. The
// source must be part of this configuration: the PLL cannot run until its
// input runs.
func (c *Config) pllInput() (types.Hertz, error) {
	switch c.pll.source {
	case PLLSourceHSE:
		if c.hse == nil {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.pll",
				Msg: "PLL sourced from the HSE, but the HSE is not enabled"}
		}
		return c.hse.speed, nil
	case PLLSourceHSI16:
		if !c.hsi16 {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.pll",
				Msg: "PLL sourced from the HSI16, but the HSI16 is not enabled"}
		}
		return HSI16Freq, nil
	default:
		if c.msi == nil {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.pll",
				Msg: "PLL sourced from the MSI, but the MSI is not enabled"}
		}
		return c.msi.Hertz(), nil
	}
}

// resolveSysclk returns the explicit selection, or defaults to the
// configured MSI. With neither there is nothing to run the core from.
func (c *Config) resolveSysclk() (SysclkConfig, error) {
	if c.sysclk != nil {
		return *c.sysclk, nil
	}
	if c.msi != nil {
		return SysclkConfig{Speed: c.msi.Hertz(), Source: SysclkMSI}, nil
	}
	return SysclkConfig{}, &errcode.E{C: errcode.MissingDependency, Op: "rcc.sysclk",
		Msg: "no SYSCLK selection and no MSI configured as the fallback"}
}

// resolveHCLK returns the explicit core-bus target, defaulting to SYSCLK.
func (c *Config) resolveHCLK(sysclk SysclkConfig) types.Hertz {
	if c.hclk != nil {
		return *c.hclk
	}
	return sysclk.Speed
}

func (c *Config) setupPeriphClocks(r *RCC, hclk types.Hertz, clocks *Clocks) error {
	target1 := hclk
	if c.pclk1 != nil {
		target1 = *c.pclk1
	}
	target2 := hclk
	if c.pclk2 != nil {
		target2 = *c.pclk2
	}

	pclk1, timclk1, presc1, err := commitPCLK(r, hclk, target1, regs.CFGR_PPRE1_Pos)
	if err != nil {
		return err
	}
	pclk2, timclk2, presc2, err := commitPCLK(r, hclk, target2, regs.CFGR_PPRE2_Pos)
	if err != nil {
		return err
	}

	clocks.pclk1, clocks.timclk1, clocks.ppre1 = pclk1, timclk1, uint8(presc1.DivFactor())
	clocks.pclk2, clocks.timclk2, clocks.ppre2 = pclk2, timclk2, uint8(presc2.DivFactor())
	return nil
}

func (c *Config) configureMSI(r *RCC, clocks *Clocks) error {
	if c.msi == nil {
		return nil
	}
	if err := c.msi.commit(r, c.lse != nil); err != nil {
		return err
	}
	clocks.msi = *c.msi
	clocks.msiOn = true
	return nil
}

// setupSysclk re-derives the chosen source's actual frequency, requires it
// to equal the declared target exactly, then switches the selector and waits
// for hardware to report the switch.
func (c *Config) setupSysclk(r *RCC, cfg SysclkConfig, clocks *Clocks) error {
	actual, err := c.sysclkSourceSpeed(cfg.Source)
	if err != nil {
		return err
	}
	if actual != cfg.Speed {
		return &errcode.E{C: errcode.FreqMismatch, Op: "rcc.sysclk",
			Msg: "the " + cfg.Source.String() + " delivers " + actual.String() +
				", not the declared " + cfg.Speed.String()}
	}

	cfgr := r.regs.CFGR
	cfgr.ReplaceBits(uint32(cfg.Source), regs.CFGR_SW_Msk, regs.CFGR_SW_Pos)
	if err := r.waitFieldEq(cfgr, regs.CFGR_SWS_Msk, regs.CFGR_SWS_Pos,
		uint32(cfg.Source), "rcc.sysclk"); err != nil {
		return err
	}
	clocks.sysclk = cfg.Speed
	return nil
}

func (c *Config) sysclkSourceSpeed(source SysclkSource) (types.Hertz, error) {
	switch source {
	case SysclkHSE:
		if c.hse == nil {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.sysclk",
				Msg: "SYSCLK set up on the HSE, but the HSE is not enabled"}
		}
		return c.hse.speed, nil
	case SysclkHSI16:
		if !c.hsi16 {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.sysclk",
				Msg: "SYSCLK set up on the HSI16, but the HSI16 is not enabled"}
		}
		return HSI16Freq, nil
	case SysclkMSI:
		if c.msi == nil {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.sysclk",
				Msg: "SYSCLK set up on the MSI, but the MSI is not enabled"}
		}
		return c.msi.Hertz(), nil
	default:
		if c.pll == nil {
			return 0, &errcode.E{C: errcode.MissingDependency, Op: "rcc.sysclk",
				Msg: "SYSCLK set up on the PLL, but the PLL is not enabled"}
		}
		return c.pll.target, nil
	}
}

// cleanMSI disables the MSI once it is no longer needed: it only served as
// the bootstrap clock during reset.
func (c *Config) cleanMSI(r *RCC, clocks *Clocks) {
	if c.msi != nil {
		return
	}
	r.regs.CR.ClearBits(regs.CR_MSION | regs.CR_MSIPLLEN)
	clocks.msiOn = false
}
