// Package format holds small presentation helpers shared by the console
// screens: human-readable file sizes and relative times, rune-safe
// truncation and the password strength scorer.
package format
