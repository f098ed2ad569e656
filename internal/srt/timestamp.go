package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxTimestampMillis is the largest millisecond count a float64 holds
// exactly; longer offsets are clamped to it.
const maxTimestampMillis = 1 << 53

// FormatTimestamp renders seconds as HH:MM:SS,mmm, truncating to whole
// milliseconds. Negative and non-finite values render as zero.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	// The nanosecond epsilon absorbs binary representation error: 3661.999
	// (stored as 3661.99899...) keeps its 999ms and 0.9999996 truncates to 999ms.
	millis := math.Floor(seconds*1000 + 1e-6)
	if millis > maxTimestampMillis {
		millis = maxTimestampMillis
	}
	totalMillis := int64(millis)

	hours := totalMillis / 3_600_000
	minutes := (totalMillis / 60_000) % 60
	secs := (totalMillis / 1000) % 60
	ms := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// ParseTimestamp parses HH:MM:SS,mmm (a "." separator is also accepted)
// into seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	clock, fraction, ok := strings.Cut(value, ",")
	if !ok || fraction == "" || len(fraction) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	secs, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(fraction)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	for i := len(fraction); i < 3; i++ {
		millis *= 10
	}
	total := int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(secs)*1000 + int64(millis)
	return float64(total) / 1000, nil
}
