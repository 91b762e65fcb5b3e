package main

import (
	"testing"

	"clockcode-go/flash"
	"clockcode-go/pwr"
	"clockcode-go/rcc"
	"clockcode-go/rcc/regs/regsim"
	"clockcode-go/types"
)

func resetOpts() {
	opts.sysclkSrc, opts.sysclk = "", ""
	opts.hclk, opts.pclk1, opts.pclk2 = "", "", ""
	opts.hse, opts.hseBypass, opts.hseCSS = "", false, false
	opts.lse, opts.lseBypass, opts.lseCSS = false, false, false
	opts.hsi16, opts.hsi48, opts.lsi = false, false, false
	opts.msiRange = -1
	opts.pllSrc, opts.pllTarget = "", ""
	opts.pllM, opts.pllN, opts.pllR = 1, 8, 2
	opts.budget = 64
}

func TestBuildConfigPLLPlan(t *testing.T) {
	resetOpts()
	opts.hsi16 = true
	opts.pllSrc = "hsi16"
	opts.pllTarget = "80MHz"
	opts.pllM, opts.pllN, opts.pllR = 1, 10, 2
	opts.sysclkSrc = "pll"
	opts.sysclk = "80MHz"
	opts.pclk1 = "40MHz"

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	board := regsim.New()
	r := rcc.Constrain(board.RCC)
	r.SetPollBudget(opts.budget)
	clocks, err := cfg.Freeze(r, flash.Constrain(board.Flash), pwr.Constrain(board.Pwr))
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if clocks.Sysclk() != types.MHz(80) || clocks.PCLK1() != types.MHz(40) {
		t.Fatalf("sysclk=%v pclk1=%v", clocks.Sysclk(), clocks.PCLK1())
	}
}

func TestBuildConfigRejects(t *testing.T) {
	resetOpts()
	opts.sysclkSrc = "warp"
	if _, err := buildConfig(); err == nil {
		t.Fatal("unknown sysclk source accepted")
	}

	resetOpts()
	opts.hse = "eight megahertz"
	if _, err := buildConfig(); err == nil {
		t.Fatal("malformed frequency accepted")
	}

	resetOpts()
	opts.pllSrc = "hsi16"
	opts.pllTarget = "80MHz"
	opts.pllR = 3
	if _, err := buildConfig(); err == nil {
		t.Fatal("unsupported PLL output divider accepted")
	}
}
