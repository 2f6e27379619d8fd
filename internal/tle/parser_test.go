package tle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(tleText(issBlock, starlinkBlock)), testLogger)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 25544, entries[0].NORADID)
	assert.Equal(t, issName, entries[0].Name)
	assert.Equal(t, issLine1, entries[0].Line1)
	assert.Equal(t, 44713, entries[1].NORADID)
}

func TestParseSkipsMalformed(t *testing.T) {
	input := "garbage header\n" +
		tleText(issBlock) +
		"BROKEN\n1 ABCDEU 98067A   25045.18032407  .00016717  00000+0  30099-3 0  9993\n" + issLine2 + "\n" +
		tleText(starlinkBlock)

	entries, err := Parse(strings.NewReader(input), testLogger)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 25544, entries[0].NORADID)
	assert.Equal(t, 44713, entries[1].NORADID)
}

func TestParseCRLF(t *testing.T) {
	input := strings.ReplaceAll(tleText(issBlock), "\n", "\r\n")
	entries, err := Parse(strings.NewReader(input), testLogger)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, issLine2, entries[0].Line2)
}

func TestParseEpoch(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"25001.00000000", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"25001.50000000", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"98032.25000000", time.Date(1998, 2, 1, 6, 0, 0, 0, time.UTC)},
		{"56366.00000000", time.Date(2056, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEpoch(tt.in)
			require.NoError(t, err)
			assert.WithinDuration(t, tt.want, got, time.Millisecond)
		})
	}

	_, err := parseEpoch("2x")
	assert.Error(t, err)
	_, err = parseEpoch("ab001.0")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tle.txt")
	require.NoError(t, os.WriteFile(path, []byte(tleText(issBlock, starlinkBlock)), 0o644))

	ds, err := LoadFile(path, testLogger)
	require.NoError(t, err)
	assert.Len(t, ds.Satellites, 2)
	assert.Equal(t, "file:"+path, ds.Source)
	assert.True(t, ds.EpochRange.Min.Before(ds.EpochRange.Max))
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.txt"), testLogger)
	assert.ErrorIs(t, err, ErrTLELoading)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("nothing useful\n"), 0o644))
	_, err = LoadFile(empty, testLogger)
	assert.ErrorIs(t, err, ErrTLELoading)
}

func TestParseElements(t *testing.T) {
	iss := TLEEntry{NORADID: 25544, Line2: issLine2}
	el, err := iss.ParseElements()
	require.NoError(t, err)

	assert.InDelta(t, 51.6412, el.InclinationDeg, 1e-9)
	assert.InDelta(t, 193.5765, el.RAANDeg, 1e-9)
	assert.InDelta(t, 0.0003457, el.Eccentricity, 1e-12)
	assert.InDelta(t, 126.2851, el.ArgPerigeeDeg, 1e-9)
	assert.InDelta(t, 233.8519, el.MeanAnomalyDeg, 1e-9)
	assert.InDelta(t, 15.49874301, el.MeanMotionRevDay, 1e-9)
	assert.InDelta(t, 92.91, el.PeriodMinutes, 0.01)
	assert.False(t, el.IsGeostationary)

	geo := TLEEntry{NORADID: 99999, Line2: geoLine2}
	el, err = geo.ParseElements()
	require.NoError(t, err)
	assert.InDelta(t, 1436.1, el.PeriodMinutes, 0.1)
	assert.True(t, el.IsGeostationary)

	_, err = TLEEntry{Line2: "2 short"}.ParseElements()
	assert.Error(t, err)
}
