package types

import (
	"errors"
	"strings"

	"clockcode-go/x/strconvx"
)

// ErrParse is returned by ParseHertz for anything it cannot read as an exact
// non-zero frequency.
var ErrParse = errors.New("types: malformed frequency")

// ParseHertz reads a frequency like "80MHz", "32.768kHz", "8 MHz" or a bare
// hertz count like "8000000". A decimal fraction is accepted only when the
// unit scales it back to a whole number of hertz: frequencies here are exact.
func ParseHertz(s string) (Hertz, error) {
	scale := uint64(1)
	switch {
	case strings.HasSuffix(s, "MHz"):
		scale = 1_000_000
		s = strings.TrimSuffix(s, "MHz")
	case strings.HasSuffix(s, "kHz"):
		scale = 1_000
		s = strings.TrimSuffix(s, "kHz")
	case strings.HasSuffix(s, "Hz"):
		s = strings.TrimSuffix(s, "Hz")
	}
	s = strings.TrimSpace(s)

	intPart, fracPart, _ := strings.Cut(s, ".")
	v, err := strconvx.ParseUint(intPart, 10, 32)
	if err != nil {
		return 0, ErrParse
	}
	total := v * scale

	if fracPart != "" {
		f, err := strconvx.ParseUint(fracPart, 10, 32)
		if err != nil {
			return 0, ErrParse
		}
		div := uint64(1)
		for range fracPart {
			div *= 10
		}
		if f*scale%div != 0 {
			return 0, ErrParse
		}
		total += f * scale / div
	}

	if total == 0 || total > 1<<32-1 {
		return 0, ErrParse
	}
	return Hertz(total), nil
}
