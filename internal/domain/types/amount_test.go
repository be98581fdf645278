package types_test

import (
	"errors"
	"testing"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/types"
)

func TestParseSOL(t *testing.T) {
	cases := []struct {
		in   string
		want types.Lamports
	}{
		{"1", 1_000_000_000},
		{"0", 0},
		{"0.25", 250_000_000},
		{".5", 500_000_000},
		{"2.", 2_000_000_000},
		{"0.000000001", 1},
		{"1.000000001", 1_000_000_001},
		{" 0.1 ", 100_000_000},
		{"007", 7_000_000_000},
		{"18446744073.709551615", 18_446_744_073_709_551_615},
	}

	for _, tc := range cases {
		got, err := types.ParseSOL(tc.in)
		if err != nil {
			t.Errorf("ParseSOL(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSOL(%q): got %d lamports, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseSOLRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", types.ErrInvalidAmount},
		{"bare dot", ".", types.ErrInvalidAmount},
		{"negative", "-1", types.ErrInvalidAmount},
		{"explicit plus", "+1", types.ErrInvalidAmount},
		{"exponent", "1e9", types.ErrInvalidAmount},
		{"thousands separator", "1,500", types.ErrInvalidAmount},
		{"two dots", "1.2.3", types.ErrInvalidAmount},
		{"words", "ten", types.ErrInvalidAmount},
		{"ten decimal places", "0.0000000001", types.ErrAmountPrecision},
		{"one lamport past the range", "18446744073.709551616", types.ErrAmountRange},
		{"huge whole part", "99999999999999999999", types.ErrAmountRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := types.ParseSOL(tc.in); !errors.Is(err, tc.want) {
				t.Errorf("ParseSOL(%q): got %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}

func TestLamportsSOL(t *testing.T) {
	cases := []struct {
		in   types.Lamports
		want string
	}{
		{0, "0"},
		{1, "0.000000001"},
		{250_000_000, "0.25"},
		{1_000_000_000, "1"},
		{1_500_000_000, "1.5"},
		{1_000_000_001, "1.000000001"},
	}

	for _, tc := range cases {
		if got := tc.in.SOL(); got != tc.want {
			t.Errorf("%d lamports: got %q, want %q", uint64(tc.in), got, tc.want)
		}
	}
}
