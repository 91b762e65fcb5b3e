package main

import (
	"clockcode-go/flash"
	"clockcode-go/periph"
	"clockcode-go/pwr"
	"clockcode-go/rcc"
	"clockcode-go/types"
)

// Bring the clock tree to 80 MHz off the PLL fed by the HSI16, then report.
// On host builds this runs against the register model.
func main() {
	set, err := periph.Take()
	if err != nil {
		println("periph:", err.Error())
		return
	}
	r := rcc.Constrain(set.RCC)

	pll, err := rcc.NewPLLConfig(rcc.PLLSourceHSI16, types.MHz(80), 1, 10, rcc.PLLDiv2)
	if err != nil {
		println("pll:", err.Error())
		return
	}
	cfg := rcc.NewConfig().
		EnableHSI16(true).
		EnablePLL(pll).
		SetSysclk(rcc.SysclkPLL, types.MHz(80)).
		SetPCLK1Freq(types.MHz(40))

	clocks, err := cfg.Freeze(r, flash.Constrain(set.Flash), pwr.Constrain(set.Pwr))
	if err != nil {
		println("freeze:", err.Error())
		return
	}

	println("sysclk:", clocks.Sysclk().String())
	println("hclk:  ", clocks.HCLK().String())
	println("pclk1: ", clocks.PCLK1().String(), "tim:", clocks.TimClk1().String())
	println("pclk2: ", clocks.PCLK2().String(), "tim:", clocks.TimClk2().String())
}
