// Package pwr exposes the power-control unlock the clock tree needs: BDCR
// writes (LSE control) are ignored by hardware until the backup domain is
// unlocked through PWR_CR1.DBP.
package pwr

import "clockcode-go/rcc/regs"

// Pwr is the constrained power-control register.
type Pwr struct {
	block *regs.PwrBlock
}

// Constrain wraps the power-control register block.
func Constrain(b *regs.PwrBlock) *Pwr {
	return &Pwr{block: b}
}

// UnlockBackupDomain enables writes to the backup-domain registers.
func (p *Pwr) UnlockBackupDomain() {
	p.block.CR1.SetBits(regs.PWR_CR1_DBP)
}

// BackupDomainUnlocked reports whether BDCR writes will take effect.
func (p *Pwr) BackupDomainUnlocked() bool {
	return p.block.CR1.HasBits(regs.PWR_CR1_DBP)
}
