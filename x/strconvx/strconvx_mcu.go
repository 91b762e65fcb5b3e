//go:build stm32l4

package strconvx

// Minimal, allocation-aware unsigned conversions with strconv signatures.
// Supported bases: 2..36. This is the whole surface firmware builds need;
// pulling in strconv proper costs flash for tables nothing here uses.

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

// ParseUint accepts bitSize 0, 8, 16, 32 or 64 like strconv, except that
// out-of-range values are truncated instead of rejected.
func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base < 2 || base > 36 || len(s) == 0 {
		return 0, parseError{}
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'z':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'Z':
			d = c - 'A' + 10
		default:
			return 0, parseError{}
		}
		if int(d) >= base {
			return 0, parseError{}
		}
		v = v*uint64(base) + uint64(d)
	}
	switch bitSize {
	case 8:
		return v & (1<<8 - 1), nil
	case 16:
		return v & (1<<16 - 1), nil
	case 32:
		return v & (1<<32 - 1), nil
	default:
		return v, nil
	}
}
