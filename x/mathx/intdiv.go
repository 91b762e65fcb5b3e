package mathx

// ExactDiv returns a/b when b is non-zero and divides a with no remainder.
// ok is false otherwise. Divider resolution depends on exactness: a clock
// that is "almost" the requested frequency is a misconfiguration.
func ExactDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) (q T, ok bool) {
	if b == 0 || a%b != 0 {
		return 0, false
	}
	return a / b, true
}

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
func RoundDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
