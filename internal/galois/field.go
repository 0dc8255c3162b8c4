package galois

import "github.com/pkg/errors"

// ErrDivisionByZero is returned by Div when dividing by zero. This is a
// programming error: it should never occur on the Reed-Solomon hot path,
// since divisors there always come from a successful matrix inversion.
var ErrDivisionByZero = errors.New("galois: division by zero")

// Add returns a XOR b, the field addition. Subtraction is identical.
func Add(a, b uint8) uint8 {
	return a ^ b
}

// Sub returns a XOR b, the field subtraction.
func Sub(a, b uint8) uint8 {
	return a ^ b
}

// Mul returns a*b in GF(2^8).
func Mul(a, b uint8) uint8 {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Div returns a/b in GF(2^8). Div returns ErrDivisionByZero if b is zero;
// callers on the hot path never pass a zero divisor.
func Div(a, b uint8) (uint8, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	logResult := int(logTable[a]) - int(logTable[b])
	if logResult < 0 {
		logResult += 255
	}
	return expTable[logResult], nil
}

// Exp returns a^n in GF(2^8). n may be any non-negative integer; the
// discrete-log exponent is folded modulo 255 rather than reduced by
// repeated subtraction.
func Exp(a uint8, n int) uint8 {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	logResult := (int(logTable[a]) * n) % 255
	return expTable[logResult]
}
