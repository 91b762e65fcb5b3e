//go:build !stm32l4

package periph

import "clockcode-go/rcc/regs/regsim"

// Host builds run against the register model so the full freeze sequence is
// exercisable without hardware.
func newSet() Set {
	b := regsim.New()
	return Set{RCC: b.RCC, Flash: b.Flash, Pwr: b.Pwr}
}
