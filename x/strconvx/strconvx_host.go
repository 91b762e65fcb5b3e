//go:build !stm32l4

package strconvx

import "strconv"

// Signature parity with strconv. Host builds delegate straight through.

func FormatUint(u uint64, base int) string { return strconv.FormatUint(u, base) }

func ParseUint(s string, base, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, base, bitSize)
}
