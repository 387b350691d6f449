// Package timefmt converts between human time strings and milliseconds.
// Accepted inputs are "M:SS", "M:SS.mmm", "SS" and "SS.mmm"; a comma is
// accepted as the decimal separator. Millisecond values render back as
// "M:SS.mmm".
package timefmt

import (
	"strconv"
	"strings"

	"github.com/wutheringcup/echodraft/internal/errors"
)

// ParseMs parses a time string into integer milliseconds.
func ParseMs(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, errors.Validation("empty time string")
	}
	s = strings.ReplaceAll(s, ",", ".")

	var minutesPart, secondsPart string
	hasMinutes := false
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hasMinutes = true
		minutesPart = s[:i]
		secondsPart = s[i+1:]
		if strings.Contains(secondsPart, ":") {
			return 0, errors.Validationf("invalid time %q", input)
		}
	} else {
		secondsPart = s
	}

	secondsStr := secondsPart
	fractionStr := ""
	if i := strings.IndexByte(secondsPart, '.'); i >= 0 {
		secondsStr = secondsPart[:i]
		fractionStr = secondsPart[i+1:]
	}

	var minutes int64
	if hasMinutes {
		v, err := parseDigits(minutesPart)
		if err != nil {
			return 0, errors.Validationf("invalid minutes in %q", input)
		}
		minutes = v
	}

	seconds, err := parseDigits(secondsStr)
	if err != nil {
		return 0, errors.Validationf("invalid seconds in %q", input)
	}
	if hasMinutes && seconds >= 60 {
		return 0, errors.Validationf("seconds must be below 60 in %q", input)
	}

	var ms int64
	if fractionStr != "" {
		if len(fractionStr) > 3 {
			return 0, errors.Validationf("too many fraction digits in %q", input)
		}
		v, err := parseDigits(fractionStr)
		if err != nil {
			return 0, errors.Validationf("invalid fraction in %q", input)
		}
		// ".12" means 120ms: right-pad the fraction to three digits.
		for i := len(fractionStr); i < 3; i++ {
			v *= 10
		}
		ms = v
	}

	return minutes*60000 + seconds*1000 + ms, nil
}

// FormatMs renders milliseconds as "M:SS.mmm". A nil value renders as the
// placeholder dash.
func FormatMs(value *int64) string {
	if value == nil {
		return "-"
	}
	total := *value
	minutes := total / 60000
	rem := total % 60000
	seconds := rem / 1000
	ms := rem % 1000
	return strconv.FormatInt(minutes, 10) + ":" + pad2(seconds) + "." + pad3(ms)
}

func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

func pad2(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad3(v int64) string {
	s := strconv.FormatInt(v, 10)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
