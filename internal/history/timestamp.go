package history

import (
	"encoding/json"
	"time"
)

// The transaction service serializes timestamps three ways depending on which
// backend produced the record: a [year,month,day,hour,minute,second,nano]
// tuple, an ISO-like string, or epoch milliseconds. Strings without a zone
// suffix are bank-local wall-clock time and must not be shifted to UTC.
func parseTimestamp(raw json.RawMessage, fallback time.Time) time.Time {
	if len(raw) == 0 {
		return fallback
	}

	var tuple []int
	if err := json.Unmarshal(raw, &tuple); err == nil && len(tuple) >= 3 {
		get := func(i int) int {
			if i < len(tuple) {
				return tuple[i]
			}
			return 0
		}
		return time.Date(tuple[0], time.Month(tuple[1]), tuple[2],
			get(3), get(4), get(5), get(6), time.Local)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, ok := parseTimeString(s); ok {
			return t
		}
		return fallback
	}

	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis)
	}

	return fallback
}

func parseTimeString(s string) (time.Time, bool) {
	// Zone-suffixed strings satisfy RFC 3339; zoneless ones fall through to
	// the local-time layouts below.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
