// Package regs names the clock-control register files and their bit fields.
//
// Register mirrors the operation set of runtime/volatile.Register32, so on
// MCU builds each register is the memory-mapped word itself, and on host
// builds the same code runs against an in-memory model (see regsim).
package regs

// Register is one 32-bit hardware register.
type Register interface {
	Get() uint32
	Set(v uint32)
	SetBits(mask uint32)
	ClearBits(mask uint32)
	// HasBits reports whether any bit in mask reads set.
	HasBits(mask uint32) bool
	// ReplaceBits writes v into the field described by an unshifted mask at pos.
	ReplaceBits(v uint32, mask uint32, pos uint8)
}

// Block is the RCC register file.
type Block struct {
	CR      Register
	CFGR    Register
	PLLCFGR Register
	CIER    Register

	AHB1RSTR  Register
	AHB2RSTR  Register
	AHB3RSTR  Register
	APB1RSTR1 Register
	APB1RSTR2 Register
	APB2RSTR  Register

	AHB1ENR  Register
	AHB2ENR  Register
	AHB3ENR  Register
	APB1ENR1 Register
	APB1ENR2 Register
	APB2ENR  Register

	CCIPR Register
	BDCR  Register
	CSR   Register
	CRRCR Register
}

// FlashBlock holds the single flash register the clock tree touches.
type FlashBlock struct {
	ACR Register
}

// PwrBlock holds the single power-control register the clock tree touches.
type PwrBlock struct {
	CR1 Register
}

// RCC_CR: clock control.
const (
	CR_MSION        = 1 << 0
	CR_MSIRDY       = 1 << 1
	CR_MSIPLLEN     = 1 << 2
	CR_MSIRGSEL     = 1 << 3
	CR_MSIRANGE_Pos = 4
	CR_MSIRANGE_Msk = 0xF
	CR_HSION        = 1 << 8
	CR_HSIRDY       = 1 << 10
	CR_HSEON        = 1 << 16
	CR_HSERDY       = 1 << 17
	CR_HSEBYP       = 1 << 18
	CR_CSSON        = 1 << 19
	CR_PLLON        = 1 << 24
	CR_PLLRDY       = 1 << 25
)

// RCC_CFGR: clock configuration.
const (
	CFGR_SW_Pos    = 0
	CFGR_SW_Msk    = 0x3
	CFGR_SWS_Pos   = 2
	CFGR_SWS_Msk   = 0x3
	CFGR_HPRE_Pos  = 4
	CFGR_HPRE_Msk  = 0xF
	CFGR_PPRE1_Pos = 8
	CFGR_PPRE1_Msk = 0x7
	CFGR_PPRE2_Pos = 11
	CFGR_PPRE2_Msk = 0x7
)

// RCC_PLLCFGR: PLL configuration.
const (
	PLLCFGR_PLLSRC_Pos = 0
	PLLCFGR_PLLSRC_Msk = 0x3
	PLLCFGR_PLLM_Pos   = 4
	PLLCFGR_PLLM_Msk   = 0x7
	PLLCFGR_PLLN_Pos   = 8
	PLLCFGR_PLLN_Msk   = 0x7F
	PLLCFGR_PLLREN     = 1 << 24
	PLLCFGR_PLLR_Pos   = 25
	PLLCFGR_PLLR_Msk   = 0x3
)

// RCC_BDCR: backup domain control. Writes are protected until PWR_CR1.DBP set.
const (
	BDCR_LSEON      = 1 << 0
	BDCR_LSERDY     = 1 << 1
	BDCR_LSEBYP     = 1 << 2
	BDCR_LSEDRV_Pos = 3
	BDCR_LSEDRV_Msk = 0x3
	BDCR_LSECSSON   = 1 << 5
)

// RCC_CIER: clock interrupt enable.
const (
	CIER_LSECSSIE = 1 << 9
)

// RCC_CSR: control/status.
const (
	CSR_LSION  = 1 << 0
	CSR_LSIRDY = 1 << 1
)

// RCC_CRRCR: clock recovery RC.
const (
	CRRCR_HSI48ON  = 1 << 0
	CRRCR_HSI48RDY = 1 << 1
)

// FLASH_ACR.
const (
	ACR_LATENCY_Pos = 0
	ACR_LATENCY_Msk = 0x7
)

// PWR_CR1.
const (
	PWR_CR1_DBP = 1 << 8
)
