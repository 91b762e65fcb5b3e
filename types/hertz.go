// types/hertz.go
package types

import "clockcode-go/x/strconvx"

// Hertz is an exact frequency in hertz. It is an opaque integral value:
// arithmetic and comparison work directly, and exactness matters: the clock
// tree only deals in frequencies that divide evenly.
type Hertz uint32

// KHz builds a Hertz from a kilohertz count.
func KHz(v uint32) Hertz { return Hertz(v * 1_000) }

// MHz builds a Hertz from a megahertz count.
func MHz(v uint32) Hertz { return Hertz(v * 1_000_000) }

// Hz returns the raw hertz count.
func (h Hertz) Hz() uint32 { return uint32(h) }

func (h Hertz) String() string {
	switch {
	case h != 0 && h%1_000_000 == 0:
		return strconvx.FormatUint(uint64(h/1_000_000), 10) + " MHz"
	case h != 0 && h%1_000 == 0:
		return strconvx.FormatUint(uint64(h/1_000), 10) + " kHz"
	default:
		return strconvx.FormatUint(uint64(h), 10) + " Hz"
	}
}
