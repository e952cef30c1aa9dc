package qso

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDays(t *testing.T) {
	days := Days()
	require.Len(t, days, 31)
	require.Equal(t, "01", days[0])
	require.Equal(t, "31", days[30])
}

func TestClosestOption(t *testing.T) {
	cases := []struct {
		opts  []string
		input string
		want  string
		ok    bool
	}{
		{Modes, "ssb", "SSB", true},
		{Modes, "digital", "DIGITAL VOICE", true},
		{Modes, "DSTR", "DSTAR", true},
		{Modes, "d", "", false},
		{Modes, "", "", false},
		{Months, "june", "Jun", true},
		{Months, "sept", "Sep", true},
		{Months, "ja", "Jan", true},
		{Months, "xyzzy", "", false},
	}
	for _, tc := range cases {
		got, ok := ClosestOption(tc.opts, tc.input)
		require.Equal(t, tc.ok, ok, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeOption(t *testing.T) {
	got, ok := NormalizeOption(FieldDay, "5")
	require.True(t, ok)
	require.Equal(t, "05", got)

	_, ok = NormalizeOption(FieldDay, "32")
	require.False(t, ok)

	got, ok = NormalizeOption(FieldMode, "cw")
	require.True(t, ok)
	require.Equal(t, "CW", got)

	got, ok = NormalizeOption(FieldRST, "  59 ")
	require.True(t, ok)
	require.Equal(t, "  59 ", got)
}

func TestNormalizeUTC(t *testing.T) {
	require.Equal(t, "9:30 (Z)", NormalizeUTC("9:30"))
	require.Equal(t, "9:30 (Z)", NormalizeUTC(NormalizeUTC("9:30")))
	require.Equal(t, "123:30", NormalizeUTC("123:30"))
	require.Equal(t, "9:3", NormalizeUTC("9:3"))
}
