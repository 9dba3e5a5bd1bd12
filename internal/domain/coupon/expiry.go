package coupon

import (
	"regexp"
	"time"
)

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried for timestamped expiry values, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// IsExpired decides whether an expiry string has lapsed at the given instant.
//
// A date-only value (YYYY-MM-DD) protects the holder through the entire listed
// day: the comparison instant is 23:59:59.999 local time of that day. A
// timestamped value is compared directly. The boundary is inclusive — a coupon
// expiring at the exact millisecond of now is still usable.
//
// Absent or unparseable values never expire; bad data degrades, it does not
// lock a coupon out.
func IsExpired(expiryDate string, now time.Time) bool {
	if expiryDate == "" {
		return false
	}

	end, ok := expiryInstant(expiryDate)
	if !ok {
		return false
	}

	return end.Before(now)
}

func expiryInstant(expiryDate string) (time.Time, bool) {
	if dateOnlyPattern.MatchString(expiryDate) {
		day, err := time.ParseInLocation("2006-01-02", expiryDate, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return day.Add(24*time.Hour - time.Millisecond), true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, expiryDate, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
