// cmd/clkplan/main.go
//
// clkplan dry-runs a clock-tree plan against the register model and prints
// the frozen record, so a configuration can be checked on the workstation
// before it is burned into firmware.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clockcode-go/flash"
	"clockcode-go/pwr"
	"clockcode-go/rcc"
	"clockcode-go/rcc/regs/regsim"
	"clockcode-go/types"
)

var opts = struct {
	sysclkSrc string
	sysclk    string
	hclk      string
	pclk1     string
	pclk2     string

	hse       string
	hseBypass bool
	hseCSS    bool
	lse       bool
	lseBypass bool
	lseCSS    bool
	hsi16     bool
	hsi48     bool
	lsi       bool
	msiRange  int

	pllSrc    string
	pllTarget string
	pllM      uint8
	pllN      uint8
	pllR      uint32

	budget int
}{}

var rootCmd = &cobra.Command{
	Use:   "clkplan",
	Short: "Validate a clock-tree plan against the register model",
	Long: "clkplan builds the requested clock configuration, freezes it against the\n" +
		"in-memory register model and prints every resolved frequency, or the\n" +
		"error the real freeze would abort with.",
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.sysclkSrc, "sysclk-src", "", "system clock source: msi|hsi16|hse|pll")
	f.StringVar(&opts.sysclk, "sysclk", "", "system clock target, e.g. 80MHz")
	f.StringVar(&opts.hclk, "hclk", "", "core bus target, default sysclk")
	f.StringVar(&opts.pclk1, "pclk1", "", "APB1 target, default hclk")
	f.StringVar(&opts.pclk2, "pclk2", "", "APB2 target, default hclk")

	f.StringVar(&opts.hse, "hse", "", "enable the HSE at this frequency, e.g. 8MHz")
	f.BoolVar(&opts.hseBypass, "hse-bypass", false, "HSE is a complete oscillator, not a crystal")
	f.BoolVar(&opts.hseCSS, "hse-css", false, "arm clock security on the HSE")
	f.BoolVar(&opts.lse, "lse", false, "enable the 32.768 kHz LSE")
	f.BoolVar(&opts.lseBypass, "lse-bypass", false, "LSE is a complete oscillator, not a crystal")
	f.BoolVar(&opts.lseCSS, "lse-css", false, "arm clock security on the LSE (needs --lsi)")
	f.BoolVar(&opts.hsi16, "hsi16", false, "enable the 16 MHz internal oscillator")
	f.BoolVar(&opts.hsi48, "hsi48", false, "enable the 48 MHz internal oscillator")
	f.BoolVar(&opts.lsi, "lsi", false, "enable the low-speed internal oscillator")
	f.IntVar(&opts.msiRange, "msi-range", -1, "keep the MSI at this range (0..11)")

	f.StringVar(&opts.pllSrc, "pll-src", "", "PLL source: msi|hsi16|hse")
	f.StringVar(&opts.pllTarget, "pll-target", "", "PLL output target, e.g. 80MHz")
	f.Uint8Var(&opts.pllM, "pll-m", 1, "PLL input divider (1..8)")
	f.Uint8Var(&opts.pllN, "pll-n", 8, "PLL multiplication factor (8..86)")
	f.Uint32Var(&opts.pllR, "pll-r", 2, "PLL output divider (2,4,6,8)")

	f.IntVar(&opts.budget, "poll-budget", 1024, "polls allowed per hardware wait")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	board := regsim.New()
	r := rcc.Constrain(board.RCC)
	r.SetPollBudget(opts.budget)
	acr := flash.Constrain(board.Flash)

	clocks, err := cfg.Freeze(r, acr, pwr.Constrain(board.Pwr))
	if err != nil {
		return err
	}

	fmt.Printf("SYSCLK     %v\n", clocks.Sysclk())
	fmt.Printf("HCLK       %v  (flash latency %d)\n", clocks.HCLK(), acr.Latency())
	fmt.Printf("PCLK1      %v  (timers %v)\n", clocks.PCLK1(), clocks.TimClk1())
	fmt.Printf("PCLK2      %v  (timers %v)\n", clocks.PCLK2(), clocks.TimClk2())
	if hse, on := clocks.HSE(); on {
		fmt.Printf("HSE        %v\n", hse)
	}
	if pll, on := clocks.PLL(); on {
		fmt.Printf("PLL        %v\n", pll)
	}
	if msi, on := clocks.MSI(); on {
		fmt.Printf("MSI        %v\n", msi.Hertz())
	}
	fmt.Printf("HSI48 %v  LSI %v  LSE %v\n", clocks.HSI48(), clocks.LSI(), clocks.LSE())
	return nil
}

func buildConfig() (rcc.Config, error) {
	cfg := rcc.NewConfig().
		EnableHSI16(opts.hsi16).
		EnableHSI48(opts.hsi48).
		SetLSI(opts.lsi)

	if opts.hse != "" {
		hse, err := freq("--hse", opts.hse)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.EnableHSE(hse, bypass(opts.hseBypass), css(opts.hseCSS))
	}
	if opts.lse {
		cfg = cfg.EnableLSE(bypass(opts.lseBypass), css(opts.lseCSS))
	}
	if opts.msiRange >= 0 {
		cfg = cfg.EnableMSI(rcc.MSIRange(opts.msiRange))
	}
	if opts.hclk != "" {
		hclk, err := freq("--hclk", opts.hclk)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.SetHCLKFreq(hclk)
	}
	if opts.pclk1 != "" {
		pclk1, err := freq("--pclk1", opts.pclk1)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.SetPCLK1Freq(pclk1)
	}
	if opts.pclk2 != "" {
		pclk2, err := freq("--pclk2", opts.pclk2)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.SetPCLK2Freq(pclk2)
	}

	if opts.pllSrc != "" {
		src, err := pllSource(opts.pllSrc)
		if err != nil {
			return rcc.Config{}, err
		}
		outDiv, err := pllOutputDivider(opts.pllR)
		if err != nil {
			return rcc.Config{}, err
		}
		target, err := freq("--pll-target", opts.pllTarget)
		if err != nil {
			return rcc.Config{}, err
		}
		pll, err := rcc.NewPLLConfig(src, target, opts.pllM, opts.pllN, outDiv)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.EnablePLL(pll)
	}

	if opts.sysclkSrc != "" {
		src, err := sysclkSource(opts.sysclkSrc)
		if err != nil {
			return rcc.Config{}, err
		}
		speed, err := freq("--sysclk", opts.sysclk)
		if err != nil {
			return rcc.Config{}, err
		}
		cfg = cfg.SetSysclk(src, speed)
	}
	return cfg, nil
}

func freq(flag, s string) (types.Hertz, error) {
	h, err := types.ParseHertz(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a frequency", flag, s)
	}
	return h, nil
}

func bypass(b bool) rcc.CrystalBypass {
	if b {
		return rcc.BypassEnable
	}
	return rcc.BypassDisable
}

func css(b bool) rcc.ClockSecuritySystem {
	if b {
		return rcc.CSSEnable
	}
	return rcc.CSSDisable
}

func sysclkSource(s string) (rcc.SysclkSource, error) {
	switch s {
	case "msi":
		return rcc.SysclkMSI, nil
	case "hsi16":
		return rcc.SysclkHSI16, nil
	case "hse":
		return rcc.SysclkHSE, nil
	case "pll":
		return rcc.SysclkPLL, nil
	default:
		return 0, fmt.Errorf("unknown sysclk source %q", s)
	}
}

func pllSource(s string) (rcc.PLLSource, error) {
	switch s {
	case "msi":
		return rcc.PLLSourceMSI, nil
	case "hsi16":
		return rcc.PLLSourceHSI16, nil
	case "hse":
		return rcc.PLLSourceHSE, nil
	default:
		return 0, fmt.Errorf("unknown PLL source %q", s)
	}
}

func pllOutputDivider(r uint32) (rcc.PLLOutputDivider, error) {
	switch r {
	case 2:
		return rcc.PLLDiv2, nil
	case 4:
		return rcc.PLLDiv4, nil
	case 6:
		return rcc.PLLDiv6, nil
	case 8:
		return rcc.PLLDiv8, nil
	default:
		return 0, fmt.Errorf("PLL output divider must be 2, 4, 6 or 8")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clkplan:", err)
		os.Exit(1)
	}
}
