package source

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
)

var (
	errEmpty           = stderrors.New("empty value")
	errDecimalComma    = stderrors.New("comma is not a decimal separator")
	errMixedSeparators = stderrors.New("inconsistent digit separators")
)

// extraDateLayouts covers export formats that cast does not know about.
var extraDateLayouts = []string{
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04",
}

// parseAmount parses a monetary value such as "$1,234.50", "$-5", "5 EUR"
// or "12.3". One currency symbol or ISO code may lead or trail the number and
// the sign may sit on either side of a leading one. Commas are only accepted
// as thousands separators; "5,00" is rejected rather than read as 500.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmpty
	}
	raw := s

	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}
	s = trimCurrency(s, true)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		if neg {
			return 0, fmt.Errorf("malformed amount %q", raw)
		}
		neg, s = true, rest
	}
	s = trimCurrency(s, false)

	num, err := plainNumber(s)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", raw, err)
	}
	v, err := cast.ToFloat64E(num)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", raw, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// trimCurrency removes one currency symbol or three-letter code, plus the
// space next to it, from the start or the end of s.
func trimCurrency(s string, leading bool) string {
	if leading {
		if r, n := utf8.DecodeRuneInString(s); unicode.Is(unicode.Sc, r) {
			return strings.TrimLeftFunc(s[n:], unicode.IsSpace)
		}
		if len(s) >= 3 && isCurrencyCode(s[:3]) {
			return strings.TrimLeftFunc(s[3:], unicode.IsSpace)
		}
		return s
	}
	if r, n := utf8.DecodeLastRuneInString(s); unicode.Is(unicode.Sc, r) {
		return strings.TrimRightFunc(s[:len(s)-n], unicode.IsSpace)
	}
	if len(s) >= 3 && isCurrencyCode(s[len(s)-3:]) {
		return strings.TrimRightFunc(s[:len(s)-3], unicode.IsSpace)
	}
	return s
}

func isCurrencyCode(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// plainNumber strips thousands separators. They must be commas in groups of
// three in front of the decimal point.
func plainNumber(s string) (string, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if strings.ContainsAny(frac, ".,") {
		return "", errMixedSeparators
	}
	if !strings.Contains(whole, ",") {
		return s, nil
	}
	groups := strings.Split(whole, ",")
	if n := len(groups[0]); n == 0 || n > 3 {
		return "", errMixedSeparators
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", errDecimalComma
		}
	}
	return strings.ReplaceAll(s, ",", ""), nil
}

// parseBool accepts the spellings found in platform exports. Empty is false.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, nil
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return cast.ToBoolE(strings.TrimSpace(s))
}

// parseDate parses a transaction timestamp and returns it in UTC.
// Values without zone information are taken as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmpty
	}
	if t, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range extraDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
