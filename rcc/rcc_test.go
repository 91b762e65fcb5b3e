package rcc

import (
	"testing"

	"clockcode-go/rcc/regs"
)

func TestBusProxies(t *testing.T) {
	b, r, _, _ := newRig()

	const pwren = 1 << 28
	r.APB1R1.EnableRegister().SetBits(pwren)
	if got := b.RCC.APB1ENR1.Get(); got&pwren == 0 {
		t.Fatalf("APB1ENR1 = %#x", got)
	}

	const gpioarst = 1 << 0
	r.AHB2.ResetRegister().SetBits(gpioarst)
	r.AHB2.ResetRegister().ClearBits(gpioarst)
	if got := b.RCC.AHB2RSTR.Get(); got != 0 {
		t.Fatalf("AHB2RSTR = %#x after reset pulse", got)
	}
}

func TestCRRCRProxy(t *testing.T) {
	_, r, acr, p := newRig()

	if r.CRRCR.IsHSI48On() {
		t.Fatal("HSI48 reported on at reset")
	}
	cfg := NewConfig().EnableMSI(MSIRange4M).EnableHSI48(true)
	clocks, err := cfg.Freeze(r, acr, p)
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if !clocks.HSI48() {
		t.Fatal("record does not show the HSI48")
	}
	if !r.CRRCR.IsHSI48On() || !r.CRRCR.IsHSI48Ready() {
		t.Fatal("CRRCR proxy does not show the HSI48 running")
	}
}

func TestUnboundedPollBudgetStillReturns(t *testing.T) {
	b := newBoardRCC(t)
	// Ready flags settle synchronously in the model, so even the unbounded
	// spin returns on the first poll.
	b.regs.CR.SetBits(regs.CR_HSION)
	if err := b.waitSet(b.regs.CR, regs.CR_HSIRDY, "rcc.test"); err != nil {
		t.Fatalf("waitSet: %v", err)
	}
}

func newBoardRCC(t *testing.T) *RCC {
	t.Helper()
	_, r, _, _ := newRig()
	r.SetPollBudget(0)
	return r
}
