package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1250000, "1,250,000"},
		{100000000, "100,000,000"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupDigits(tt.n))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
		{50 * time.Hour, "2d 2h 0m"},
		{-time.Minute, "0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestParseUserMention(t *testing.T) {
	tests := []struct {
		arg    string
		wantID string
		ok     bool
	}{
		{"<@123456789>", "123456789", true},
		{"<@!123456789>", "123456789", true},
		{"123456789", "123456789", true},
		{"<@>", "", false},
		{"@someone", "", false},
		{"<@12ab34>", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := ParseUserMention(tt.arg)
		assert.Equal(t, tt.ok, ok, tt.arg)
		assert.Equal(t, tt.wantID, id, tt.arg)
	}
}

func TestMillisRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, ts, MillisToTime(ts.UnixMilli()).UTC())
}
