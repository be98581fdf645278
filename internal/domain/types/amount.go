package types

import (
	"errors"
	"fmt"
	"strings"
)

// Lamports is an amount of native SOL in its smallest unit.
// Amounts are kept in integer minor units end to end; the demo never
// represents money as a float.
type Lamports uint64

// LamportsPerSOL is the number of lamports in one SOL (9 decimal places).
const LamportsPerSOL Lamports = 1_000_000_000

const solDecimals = 9

var (
	// ErrInvalidAmount is returned when an amount string is not a plain
	// non-negative decimal number.
	ErrInvalidAmount = errors.New("invalid SOL amount")

	// ErrAmountPrecision is returned when an amount carries more than nine
	// decimal places, which cannot be represented in lamports.
	ErrAmountPrecision = errors.New("SOL amounts carry at most 9 decimal places")

	// ErrAmountRange is returned when an amount overflows the lamport range.
	ErrAmountRange = errors.New("SOL amount out of range")
)

// ParseSOL converts a decimal SOL string ("0.25", "1", ".5") to lamports
// exactly. Signs, exponents, separators and more than nine decimal places are
// rejected.
func ParseSOL(s string) (Lamports, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return 0, ErrInvalidAmount
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, ErrInvalidAmount
	}
	if len(frac) > solDecimals {
		return 0, ErrAmountPrecision
	}

	var out Lamports
	for _, c := range whole {
		d := Lamports(c - '0')
		if out > (^Lamports(0)-d)/10 {
			return 0, ErrAmountRange
		}
		out = out*10 + d
	}
	if out > ^Lamports(0)/LamportsPerSOL {
		return 0, ErrAmountRange
	}
	out *= LamportsPerSOL

	// Right-pad the fractional part to nine digits: ".5" is 500000000.
	fracPart := Lamports(0)
	for i := 0; i < solDecimals; i++ {
		fracPart *= 10
		if i < len(frac) {
			fracPart += Lamports(frac[i] - '0')
		}
	}
	if out > ^Lamports(0)-fracPart {
		return 0, ErrAmountRange
	}
	return out + fracPart, nil
}

// SOL renders the amount as a decimal SOL string with trailing zeros removed.
func (l Lamports) SOL() string {
	whole := uint64(l / LamportsPerSOL)
	frac := uint64(l % LamportsPerSOL)
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	fs := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fs)
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
