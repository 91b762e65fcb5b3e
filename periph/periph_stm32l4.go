//go:build stm32l4

package periph

import "clockcode-go/rcc/regs"

func newSet() Set {
	rcc, flash, pwr := regs.STM32L4()
	return Set{RCC: rcc, Flash: flash, Pwr: pwr}
}
