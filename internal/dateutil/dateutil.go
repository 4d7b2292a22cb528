// Package dateutil parses order dates and formats them in Indonesian.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for date operations.
var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidLayout = errors.New("invalid date layout")
)

// MaxLayoutLength limits layout string length.
const MaxLayoutLength = 50

// DefaultLayout renders "5 Maret 2024".
const DefaultLayout = "D MMMM YYYY"

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// inputLayouts are tried in order by ParseDate.
var inputLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// ParseDate parses the date formats produced by the order data source:
// plain ISO dates and timestamps with or without offset.
// The calendar date is kept as written; no time zone conversion happens.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// ValidateLayout checks a layout string without formatting anything.
func ValidateLayout(layout string) error {
	_, err := Format(time.Time{}, layout)
	return err
}

// Format renders t with a token layout.
// Tokens: YYYY, YY, MMMM (Indonesian month), MMM (short month), MM, M, DD, D.
// Use brackets to escape literal text: [Tanggal] preserves "Tanggal".
// Any non-token characters outside brackets are preserved as literals.
func Format(t time.Time, layout string) (string, error) {
	if layout == "" {
		return "", fmt.Errorf("%w: layout cannot be empty", ErrInvalidLayout)
	}
	if len(layout) > MaxLayoutLength {
		return "", fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidLayout, MaxLayoutLength)
	}

	var b strings.Builder
	b.Grow(len(layout) + 10)

	i := 0
	for i < len(layout) {
		if layout[i] == '[' {
			end := strings.Index(layout[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidLayout, i)
			}
			b.WriteString(layout[i+1 : i+1+end])
			i += end + 2
			continue
		}

		rest := layout[i:]
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			b.WriteString(strconv.Itoa(t.Year()))
			i += 4
		case strings.HasPrefix(rest, "MMMM"):
			b.WriteString(monthNames[t.Month()-1])
			i += 4
		case strings.HasPrefix(rest, "MMM"):
			b.WriteString(shortMonthNames[t.Month()-1])
			i += 3
		case strings.HasPrefix(rest, "YY"):
			fmt.Fprintf(&b, "%02d", t.Year()%100)
			i += 2
		case strings.HasPrefix(rest, "MM"):
			fmt.Fprintf(&b, "%02d", int(t.Month()))
			i += 2
		case strings.HasPrefix(rest, "DD"):
			fmt.Fprintf(&b, "%02d", t.Day())
			i += 2
		case rest[0] == 'M':
			b.WriteString(strconv.Itoa(int(t.Month())))
			i++
		case rest[0] == 'D':
			b.WriteString(strconv.Itoa(t.Day()))
			i++
		default:
			b.WriteByte(layout[i])
			i++
		}
	}

	return b.String(), nil
}
