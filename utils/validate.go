package utils

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

var (
	emailRe          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordLetterRe = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitRe  = regexp.MustCompile(`\d`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPassword enforces the backend's password policy: 8 to 72
// characters with at least one letter and one digit.
func ValidPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 8 || n > 72 {
		return false
	}
	return passwordLetterRe.MatchString(s) && passwordDigitRe.MatchString(s)
}

// startDateLayout is the format users type event start times in.
const startDateLayout = "2-1-2006 15:04"

// ParseFutureDate parses a "DD-MM-YYYY HH:MM" timestamp and rejects
// anything not strictly in the future.
func ParseFutureDate(s string) (time.Time, error) {
	t, err := time.Parse(startDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("la fecha debe tener el formato DD-MM-AAAA HH:MM")
	}
	if !t.After(time.Now()) {
		return time.Time{}, fmt.Errorf("la fecha debe estar en el futuro")
	}
	return t, nil
}
