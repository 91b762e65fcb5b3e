// Package extosc drives an Si5351-class I2C clock generator, used to source
// the HSE bypass input with a programmable reference.
//
//	d := extosc.New(bus, types.MHz(25))
//	got, err := d.SetFrequency(types.MHz(16))   // program CLK0
//
// The achieved frequency is returned so the caller can declare it verbatim
// on the HSE node: the clock tree insists on exact frequencies.
//
// NOTE: I2C.Tx MUST perform a plain register write when r is empty.
//
// The synthesis chain is crystal -> PLL A (fractional multiplier a+b/c with a
// 20-bit denominator) -> even integer MultiSynth divider -> CLK0. Integer
// math only; no floating point on the MCU path.
package extosc

import (
	"errors"

	"tinygo.org/x/drivers"

	"clockcode-go/types"
	"clockcode-go/x/mathx"
)

// Address is the fixed 7-bit bus address of the generator.
const Address = 0x60

// Register map (datasheet numbering).
const (
	regOutputEnable = 3
	regPLLInput     = 15
	regClk0Ctrl     = 16
	regMSNA         = 26 // PLL A feedback parameters
	regMS0          = 42 // MultiSynth 0 parameters
	regPLLReset     = 177
)

const (
	vcoMin = 600_000_000
	vcoMax = 900_000_000

	pllMulMin = 15
	pllMulMax = 90

	fracDenom = 0xFFFFF // 20-bit fractional denominator

	msDivMin = 6
	msDivMax = 900

	clk0PLLASrcMS = 0x4F // powered, MS0 source, PLL A, 8 mA drive
	pllAReset     = 0x20
	clk0OutputOn  = 0xFE // enable bits are active-low, CLK0 only
)

// Errors returned by the driver.
var (
	ErrRange = errors.New("extosc: target frequency out of range")
	ErrXtal  = errors.New("extosc: unsupported crystal frequency")
)

// Device wraps an I2C connection to one generator.
type Device struct {
	bus     drivers.I2C
	Address uint16

	xtal types.Hertz
	buf  [9]byte
}

// New creates the connection. The I2C bus must already be configured; the
// device is not touched until SetFrequency.
func New(bus drivers.I2C, xtal types.Hertz) Device {
	return Device{bus: bus, Address: Address, xtal: xtal}
}

// SetFrequency programs CLK0 to target and returns the frequency actually
// achieved. The fractional PLL gets within a fraction of a hertz of any
// target in range; the return value is what the synthesis chain truly
// produces and is what belongs on the HSE node.
func (d *Device) SetFrequency(target types.Hertz) (types.Hertz, error) {
	if d.xtal < 10_000_000 || d.xtal > 27_000_000 {
		return 0, ErrXtal
	}
	if target < 1_000_000 || target > 150_000_000 {
		return 0, ErrRange
	}

	// Largest even MultiSynth divider that keeps the VCO in range gives the
	// finest PLL resolution.
	msdiv := uint64(vcoMax) / uint64(target)
	msdiv &^= 1
	msdiv = mathx.Clamp(msdiv, msDivMin, msDivMax)
	vco := uint64(target) * msdiv
	if vco < vcoMin || vco > vcoMax {
		return 0, ErrRange
	}

	xtal := uint64(d.xtal)
	a := vco / xtal
	b := mathx.RoundDiv((vco%xtal)*fracDenom, xtal)
	if a < pllMulMin || a > pllMulMax || (a == pllMulMax && b != 0) {
		return 0, ErrRange
	}

	// Both PLLs on the crystal input.
	if err := d.write8(regPLLInput, 0x00); err != nil {
		return 0, err
	}
	if err := d.writeParams(regMSNA, a, b, fracDenom); err != nil {
		return 0, err
	}
	if err := d.writeParams(regMS0, msdiv, 0, 1); err != nil {
		return 0, err
	}
	if err := d.write8(regClk0Ctrl, clk0PLLASrcMS); err != nil {
		return 0, err
	}
	if err := d.write8(regPLLReset, pllAReset); err != nil {
		return 0, err
	}
	if err := d.write8(regOutputEnable, clk0OutputOn); err != nil {
		return 0, err
	}

	achieved := xtal * (a*fracDenom + b) / (fracDenom * msdiv)
	return types.Hertz(achieved), nil
}

// writeParams packs one a+b/c divider into the 8-byte P1/P2/P3 layout.
func (d *Device) writeParams(reg uint8, a, b, c uint64) error {
	p1 := 128*a + 128*b/c - 512
	p2 := 128*b - c*(128*b/c)
	p3 := c

	d.buf[0] = reg
	d.buf[1] = byte(p3 >> 8)
	d.buf[2] = byte(p3)
	d.buf[3] = byte(p1 >> 16 & 0x3)
	d.buf[4] = byte(p1 >> 8)
	d.buf[5] = byte(p1)
	d.buf[6] = byte(p3>>12&0xF0 | p2>>16&0xF)
	d.buf[7] = byte(p2 >> 8)
	d.buf[8] = byte(p2)
	return d.bus.Tx(d.Address, d.buf[:], nil)
}

func (d *Device) write8(reg, val uint8) error {
	return d.bus.Tx(d.Address, []byte{reg, val}, nil)
}
