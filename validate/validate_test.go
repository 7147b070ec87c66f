package validate

import (
	"strconv"
	"testing"
	"time"
)

func TestAgeAcceptsFullRange(t *testing.T) {
	for n := 1; n < 120; n++ {
		if !Age(strconv.Itoa(n)) {
			t.Errorf("Age(%d) = false, want true", n)
		}
	}
}

func TestAgeRejects(t *testing.T) {
	cases := []string{"0", "-1", "120", "500", "abc", "", "25.5", "25abc", " 25"}
	for _, c := range cases {
		if Age(c) {
			t.Errorf("Age(%q) = true, want false", c)
		}
	}
}

func TestDateOfBirth(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("02/01/2006")
	today := time.Now().Format("02/01/2006")

	cases := []struct {
		in   string
		want bool
	}{
		{"15/03/1995", true},
		{"29/02/2000", true},  // leap day
		{"29/02/1900", false}, // 1900 was not a leap year
		{"31/02/2000", false},
		{"00/01/2000", false},
		{"32/01/2000", false},
		{"15/13/1995", false},
		{"1/1/2000", false}, // must be zero-padded
		{"15-03-1995", false},
		{"15/03/95", false},
		{"", false},
		{today, true},
		{tomorrow, false},
	}
	for _, c := range cases {
		if got := DateOfBirth(c.in); got != c.want {
			t.Errorf("DateOfBirth(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"john@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@sub.example.org", true},
		{"john.example.com", false},
		{"@example.com", false},
		{"john@", false},
		{"john@example", false},
		{"jo hn@example.com", false},
		{"john@exa mple.com", false},
		{"john@@example.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
