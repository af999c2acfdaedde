package utils

import (
	"fmt"
	"time"
)

var wib = time.FixedZone("WIB", 7*60*60)

// DateStamp renders a unix timestamp as the YYYYMMDD stamp used in
// invoice numbers and transaction codes, in the shop's time zone.
func DateStamp(timestamp int64) string {
	return time.Unix(timestamp, 0).In(wib).Format("20060102")
}

// ParseDateStartOfDay parses a YYYY-MM-DD date into the unix timestamp
// of its first second in WIB.
func ParseDateStartOfDay(date string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02", date, wib)
	if err != nil {
		return 0, fmt.Errorf("error parsing date: %v", err)
	}
	return t.Unix(), nil
}

// ParseDateEndOfDay parses a YYYY-MM-DD date into the unix timestamp of
// its last second in WIB, so that range filters stay inclusive.
func ParseDateEndOfDay(date string) (int64, error) {
	start, err := ParseDateStartOfDay(date)
	if err != nil {
		return 0, err
	}
	return start + 24*60*60 - 1, nil
}

func ConvertDateTimeToHumanReadableFormat(datetime int64) string {
	t := time.Unix(datetime, 0).In(wib)
	return t.Format("02 January 2006, 15:04 WIB")
}
