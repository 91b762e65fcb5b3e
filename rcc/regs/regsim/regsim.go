// Package regsim is an in-memory model of the clock-control register files.
// It reproduces the behaviour the freeze sequencer depends on: ready flags
// that follow enable bits, a system-clock status field that follows the
// selector, and backup-domain write protection on BDCR. Fault flags keep a
// ready bit clear so tests can exercise poll-budget exhaustion.
package regsim

import "clockcode-go/rcc/regs"

// Reg is one simulated 32-bit register.
type Reg struct {
	v     uint32
	board *Board
	// guard, when set, decides whether a write takes effect at all.
	guard func() bool

	// Writes counts mutations performed through the Register interface.
	Writes int
}

var _ regs.Register = (*Reg)(nil)

func (r *Reg) Get() uint32         { return r.v }
func (r *Reg) Set(v uint32)        { r.write(v) }
func (r *Reg) SetBits(mask uint32) { r.write(r.v | mask) }
func (r *Reg) ClearBits(mask uint32) {
	r.write(r.v &^ mask)
}
func (r *Reg) HasBits(mask uint32) bool { return r.v&mask != 0 }
func (r *Reg) ReplaceBits(v uint32, mask uint32, pos uint8) {
	r.write(r.v&^(mask<<pos) | v<<pos)
}

func (r *Reg) write(v uint32) {
	if r.guard != nil && !r.guard() {
		return
	}
	r.v = v
	r.Writes++
	if r.board != nil {
		r.board.settle()
	}
}

// Force overwrites the register without counting a write or settling.
// Tests use it to stage prior hardware state.
func (r *Reg) Force(v uint32) { r.v = v }

// Board bundles the simulated register files plus fault injection.
type Board struct {
	RCC   *regs.Block
	Flash *regs.FlashBlock
	Pwr   *regs.PwrBlock

	// Stick* keeps the matching ready/status flag clear even while the
	// oscillator is enabled, imitating hardware that never stabilises.
	StickMSI    bool
	StickHSI16  bool
	StickHSE    bool
	StickLSI    bool
	StickLSE    bool
	StickHSI48  bool
	StickPLL    bool
	StickSwitch bool // SWS never follows SW

	cr, cfgr, bdcr, csr, crrcr *Reg
}

// CRReg and friends expose the simulated registers with their write counters.
func (b *Board) CRReg() *Reg    { return b.cr }
func (b *Board) CFGRReg() *Reg  { return b.cfgr }
func (b *Board) BDCRReg() *Reg  { return b.bdcr }
func (b *Board) CSRReg() *Reg   { return b.csr }
func (b *Board) CRRCRReg() *Reg { return b.crrcr }

// New returns a board in its power-on state: MSI running at range 6 (4 MHz)
// and selected as system clock, everything else off.
func New() *Board {
	b := &Board{}
	reg := func() *Reg { return &Reg{board: b} }

	b.cr = reg()
	b.cfgr = reg()
	b.bdcr = reg()
	b.csr = reg()
	b.crrcr = reg()
	pwrCR1 := reg()

	// BDCR is write-protected until the backup domain is unlocked.
	b.bdcr.guard = func() bool { return pwrCR1.v&regs.PWR_CR1_DBP != 0 }

	b.RCC = &regs.Block{
		CR:      b.cr,
		CFGR:    b.cfgr,
		PLLCFGR: reg(),
		CIER:    reg(),

		AHB1RSTR:  reg(),
		AHB2RSTR:  reg(),
		AHB3RSTR:  reg(),
		APB1RSTR1: reg(),
		APB1RSTR2: reg(),
		APB2RSTR:  reg(),

		AHB1ENR:  reg(),
		AHB2ENR:  reg(),
		AHB3ENR:  reg(),
		APB1ENR1: reg(),
		APB1ENR2: reg(),
		APB2ENR:  reg(),

		CCIPR: reg(),
		BDCR:  b.bdcr,
		CSR:   b.csr,
		CRRCR: b.crrcr,
	}
	b.Flash = &regs.FlashBlock{ACR: reg()}
	b.Pwr = &regs.PwrBlock{CR1: pwrCR1}

	// Power-on reset: MSION | MSIRDY, MSIRANGE = 6.
	b.cr.v = regs.CR_MSION | regs.CR_MSIRDY | 6<<regs.CR_MSIRANGE_Pos
	return b
}

// settle recomputes the status bits from the current enables. It mutates
// values directly so status updates do not count as writes.
func (b *Board) settle() {
	follow := func(r *Reg, enable, ready uint32, stuck bool) {
		if r.v&enable != 0 && !stuck {
			r.v |= ready
		} else {
			r.v &^= ready
		}
	}
	follow(b.cr, regs.CR_MSION, regs.CR_MSIRDY, b.StickMSI)
	follow(b.cr, regs.CR_HSION, regs.CR_HSIRDY, b.StickHSI16)
	follow(b.cr, regs.CR_HSEON, regs.CR_HSERDY, b.StickHSE)
	follow(b.cr, regs.CR_PLLON, regs.CR_PLLRDY, b.StickPLL)
	follow(b.csr, regs.CSR_LSION, regs.CSR_LSIRDY, b.StickLSI)
	follow(b.bdcr, regs.BDCR_LSEON, regs.BDCR_LSERDY, b.StickLSE)
	follow(b.crrcr, regs.CRRCR_HSI48ON, regs.CRRCR_HSI48RDY, b.StickHSI48)

	if !b.StickSwitch {
		sw := b.cfgr.v >> regs.CFGR_SW_Pos & regs.CFGR_SW_Msk
		b.cfgr.v = b.cfgr.v&^(uint32(regs.CFGR_SWS_Msk)<<regs.CFGR_SWS_Pos) |
			sw<<regs.CFGR_SWS_Pos
	}
}
