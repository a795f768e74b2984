package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		cents int64
		err   bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"no fraction", "7", 700, false},
		{"single fraction digit", "7.5", 750, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.345", 1235, false},
		{"leading whitespace", "  3.10", 310, false},
		{"empty", "", 0, true},
		{"negative", "-1.00", 0, true},
		{"explicit plus", "+1.00", 0, true},
		{"zero", "0.00", 0, true},
		{"letters", "12a.00", 0, true},
		{"two dots", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseDecimal(tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.cents, m.Cents)
		})
	}
}

func TestSum(t *testing.T) {
	t.Parallel()

	t.Run("empty sequence is zero", func(t *testing.T) {
		require.Equal(t, int64(0), Sum().Cents)
	})

	t.Run("exact fractional sum", func(t *testing.T) {
		total := Sum(FromCents(1250), FromCents(725))
		require.Equal(t, int64(1975), total.Cents)
		require.Equal(t, "19.75", total.String())
	})

	t.Run("many fractional cents stay exact", func(t *testing.T) {
		// 10_000 * 0.01 drifts under binary floating point; cents never do.
		amounts := make([]Money, 10_000)
		for i := range amounts {
			amounts[i] = FromCents(1)
		}
		require.Equal(t, int64(10_000), Sum(amounts...).Cents)
	})
}

func TestString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.00", Money{}.String())
	require.Equal(t, "0.05", FromCents(5).String())
	require.Equal(t, "1234.00", FromCents(123400).String())
	require.Equal(t, "-3.21", FromCents(-321).String())
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := FromCents(1975).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"19.75"`, string(b))
}
