package regsim

import (
	"testing"

	"clockcode-go/rcc/regs"
)

func TestPowerOnState(t *testing.T) {
	b := New()
	cr := b.CRReg().Get()
	if cr&regs.CR_MSION == 0 || cr&regs.CR_MSIRDY == 0 {
		t.Fatalf("CR = %#x, MSI not running at reset", cr)
	}
	if rng := cr >> regs.CR_MSIRANGE_Pos & regs.CR_MSIRANGE_Msk; rng != 6 {
		t.Fatalf("MSIRANGE = %d, want 6", rng)
	}
}

func TestReadyFollowsEnable(t *testing.T) {
	b := New()

	b.RCC.CR.SetBits(regs.CR_HSEON)
	if !b.RCC.CR.HasBits(regs.CR_HSERDY) {
		t.Fatal("HSERDY did not follow HSEON")
	}
	b.RCC.CR.ClearBits(regs.CR_HSEON)
	if b.RCC.CR.HasBits(regs.CR_HSERDY) {
		t.Fatal("HSERDY did not clear with HSEON")
	}
}

func TestStickKeepsReadyClear(t *testing.T) {
	b := New()
	b.StickHSE = true

	b.RCC.CR.SetBits(regs.CR_HSEON)
	if b.RCC.CR.HasBits(regs.CR_HSERDY) {
		t.Fatal("HSERDY set despite the stuck oscillator")
	}
}

func TestSWSFollowsSW(t *testing.T) {
	b := New()

	b.RCC.CFGR.ReplaceBits(0b11, regs.CFGR_SW_Msk, regs.CFGR_SW_Pos)
	if sws := b.CFGRReg().Get() >> regs.CFGR_SWS_Pos & regs.CFGR_SWS_Msk; sws != 0b11 {
		t.Fatalf("SWS = %#b", sws)
	}
}

func TestBDCRWriteProtected(t *testing.T) {
	b := New()

	b.RCC.BDCR.SetBits(regs.BDCR_LSEON)
	if b.BDCRReg().Get() != 0 {
		t.Fatal("BDCR accepted a write with the backup domain locked")
	}
	if b.BDCRReg().Writes != 0 {
		t.Fatal("rejected write counted")
	}

	b.Pwr.CR1.SetBits(regs.PWR_CR1_DBP)
	b.RCC.BDCR.SetBits(regs.BDCR_LSEON)
	const want = regs.BDCR_LSEON | regs.BDCR_LSERDY
	if got := b.BDCRReg().Get(); got&want != want {
		t.Fatalf("BDCR = %#x after unlock", got)
	}
}

func TestForceDoesNotCountOrSettle(t *testing.T) {
	b := New()

	b.CRReg().Force(regs.CR_HSEON)
	if b.CRReg().Writes != 0 {
		t.Fatal("Force counted as a write")
	}
	if b.RCC.CR.HasBits(regs.CR_HSERDY) {
		t.Fatal("Force triggered settling")
	}
}
