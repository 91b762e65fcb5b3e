//go:build stm32l4

package regs

import (
	"runtime/volatile"
	"unsafe"
)

const (
	rccBase   uintptr = 0x4002_1000
	flashBase uintptr = 0x4002_2000
	pwrBase   uintptr = 0x4000_7000
)

func mmio(addr uintptr) Register {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// STM32L4 returns the memory-mapped register files. Callers must not hold
// more than one copy; go through periph.Take.
func STM32L4() (*Block, *FlashBlock, *PwrBlock) {
	rcc := &Block{
		CR:      mmio(rccBase + 0x00),
		CFGR:    mmio(rccBase + 0x08),
		PLLCFGR: mmio(rccBase + 0x0C),
		CIER:    mmio(rccBase + 0x18),

		AHB1RSTR:  mmio(rccBase + 0x28),
		AHB2RSTR:  mmio(rccBase + 0x2C),
		AHB3RSTR:  mmio(rccBase + 0x30),
		APB1RSTR1: mmio(rccBase + 0x38),
		APB1RSTR2: mmio(rccBase + 0x3C),
		APB2RSTR:  mmio(rccBase + 0x40),

		AHB1ENR:  mmio(rccBase + 0x48),
		AHB2ENR:  mmio(rccBase + 0x4C),
		AHB3ENR:  mmio(rccBase + 0x50),
		APB1ENR1: mmio(rccBase + 0x58),
		APB1ENR2: mmio(rccBase + 0x5C),
		APB2ENR:  mmio(rccBase + 0x60),

		CCIPR: mmio(rccBase + 0x88),
		BDCR:  mmio(rccBase + 0x90),
		CSR:   mmio(rccBase + 0x94),
		CRRCR: mmio(rccBase + 0x98),
	}
	return rcc, &FlashBlock{ACR: mmio(flashBase + 0x00)}, &PwrBlock{CR1: mmio(pwrBase + 0x00)}
}
