// ABOUTME: Display helpers: file sizes, relative times, truncation
// ABOUTME: Plus the password strength scorer guarding the user admin commands

package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

// FileSize renders a byte count with binary units and up to decimals
// fractional digits. Trailing zeros are dropped.
func FileSize(bytes int64, decimals int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}

	value := float64(bytes)
	exp := 0
	for value >= 1024 && exp < len(sizeUnits)-1 {
		value /= 1024
		exp++
	}

	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + " " + sizeUnits[exp]
}

// RelativeTime renders how long ago t was, in the coarsest sensible unit.
// Future timestamps render as "just now".
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 28*24*time.Hour:
		return plural(int(d.Hours()/(24*7)), "week")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Truncate shortens s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// PasswordStrength grades a candidate password.
type PasswordStrength struct {
	Level       string // "weak", "medium" or "strong"
	Score       int    // 0-100
	Suggestions []string
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// ValidatePassword scores a password: 25 points each for length >= 8,
// lowercase, uppercase and digits, a bonus for special characters and
// length >= 12, capped at 100. Suggestions name the missing criteria.
func ValidatePassword(password string) PasswordStrength {
	score := 0
	var suggestions []string

	if len(password) >= 8 {
		score += 25
	} else {
		suggestions = append(suggestions, "use at least 8 characters")
	}
	if lowerRe.MatchString(password) {
		score += 25
	} else {
		suggestions = append(suggestions, "add a lowercase letter")
	}
	if upperRe.MatchString(password) {
		score += 25
	} else {
		suggestions = append(suggestions, "add an uppercase letter")
	}
	if digitRe.MatchString(password) {
		score += 25
	} else {
		suggestions = append(suggestions, "add a digit")
	}
	if specialRe.MatchString(password) {
		score += 25
	}
	if len(password) >= 12 {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	level := "strong"
	switch {
	case score < 50:
		level = "weak"
	case score < 75:
		level = "medium"
	}

	return PasswordStrength{Level: level, Score: score, Suggestions: suggestions}
}
