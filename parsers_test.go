package main

import (
	"testing"
	"time"

	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseETA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		now   time.Time
		want  time.Time
	}{
		{
			name:  "RFC3339",
			value: "2026-03-01T13:00:00Z",
			now:   time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC),
			want:  time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset",
			value: "2026-03-01T08:00:00-05:00",
			now:   time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC),
			want:  time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "same month",
			value: "011300Z",
			now:   time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC),
			want:  time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "lower case",
			value: "011300z",
			now:   time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC),
			want:  time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "next month",
			value: "010300Z",
			now:   time.Date(2026, time.January, 31, 20, 0, 0, 0, time.UTC),
			want:  time.Date(2026, time.February, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "previous year",
			value: "312200Z",
			now:   time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC),
			want:  time.Date(2025, time.December, 31, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseETA(tt.value, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseETA_invalid(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)

	for _, value := range []string{"", "soon", "0113Z", "321200Z", "012400Z", "011360Z", "001200Z"} {
		_, err := parseETA(value, now)
		assert.Error(t, err, value)
	}
}

func TestIssueTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	got, ok := issueTime(rawTAF, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC), got)

	_, ok = issueTime("KXXX 0106/0212 BKN020", now)
	assert.False(t, ok)
}

func TestStationFromReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{rawTAF, "KXXX"},
		{"TAF AMD KJFK 011130Z 0112/0218 BKN020", "KJFK"},
		{"TAF\nKSEA 011130Z 0112/0218 BKN020", "KSEA"},
		{rawMETAR, "KJFK"},
		{"METAR COR kbos 151154Z 6SM BR", "KBOS"},
		{"151154Z 6SM BR", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stationFromReport(tt.raw), tt.raw)
	}
}

func TestReportKind(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, fetch.TAF, reportKind(rawTAF, now))
	assert.Equal(t, fetch.TAF, reportKind("KJFK 011130Z 0112/0218 BKN020", now))
	assert.Equal(t, fetch.METAR, reportKind(rawMETAR, now))
	assert.Equal(t, fetch.METAR, reportKind("", now))
}
