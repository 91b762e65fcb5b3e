package rcc

import (
	"clockcode-go/rcc/regs"
	"clockcode-go/types"
)

// HSEConfig describes the external high-speed oscillator: its frequency,
// whether the driving circuitry is bypassed (a complete oscillator feeds the
// pin instead of a crystal), and whether clock-failure detection is wanted.
type HSEConfig struct {
	speed  types.Hertz
	bypass CrystalBypass
	css    ClockSecuritySystem
}

// NewHSEConfig builds an HSE node configuration. There are no static bounds
// to check; cross-node consistency is validated at freeze.
func NewHSEConfig(speed types.Hertz, bypass CrystalBypass, css ClockSecuritySystem) HSEConfig {
	return HSEConfig{speed: speed, bypass: bypass, css: css}
}

// Speed returns the frequency the oscillator delivers once started.
func (h HSEConfig) Speed() types.Hertz { return h.speed }

// commit starts the oscillator, blocks until it is ready and then arms clock
// security if requested. Failure detection must only be armed on a confirmed
// running clock.
func (h HSEConfig) commit(r *RCC) (types.Hertz, error) {
	cr := r.regs.CR
	bits := uint32(regs.CR_HSEON)
	if h.bypass == BypassEnable {
		bits |= regs.CR_HSEBYP
	}
	cr.SetBits(bits)
	if err := r.waitSet(cr, regs.CR_HSERDY, "rcc.hse"); err != nil {
		return 0, err
	}
	if h.css == CSSEnable {
		cr.SetBits(regs.CR_CSSON)
	}
	return h.speed, nil
}
