// Package validate holds the pure input checks for the intake form.
// They know nothing about Telegram or sessions and can be reused by
// any transport.
package validate

import (
	"regexp"
	"strconv"
	"time"
)

const dobLayout = "02/01/2006"

// One non-whitespace, non-@ segment before the @, at least one dot in
// the domain part. No DNS or mailbox verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Age reports whether text parses as a whole number between 1 and 119.
func Age(text string) bool {
	n, err := strconv.Atoi(text)
	return err == nil && n > 0 && n < 120
}

// DateOfBirth reports whether text is a real calendar date in
// DD/MM/YYYY form that is not in the future. time.Parse rejects
// impossible dates like 31/02/2000 outright.
func DateOfBirth(text string) bool {
	d, err := time.Parse(dobLayout, text)
	if err != nil {
		return false
	}
	return !d.After(time.Now())
}

// Email reports whether text looks like an email address.
func Email(text string) bool {
	return emailPattern.MatchString(text)
}
