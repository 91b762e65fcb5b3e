// Package periph hands out the clock-control register blocks as a one-shot
// capability. Holding a Set is the proof of exclusive access that every
// clock sub-component requires; there is exactly one per boot.
package periph

import (
	"sync/atomic"

	"clockcode-go/errcode"
	"clockcode-go/rcc/regs"
)

// Set bundles the register blocks needed to bring up the clock tree.
type Set struct {
	RCC   *regs.Block
	Flash *regs.FlashBlock
	Pwr   *regs.PwrBlock
}

var taken atomic.Bool

// Take claims the register blocks. The second and later calls fail with
// errcode.Claimed; there is no release.
func Take() (Set, error) {
	if !taken.CompareAndSwap(false, true) {
		return Set{}, errcode.Claimed
	}
	return newSet(), nil
}
