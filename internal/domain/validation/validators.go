// Package validation holds the pure scalar validators used by the drafting
// flow. Every validator returns a normalized value and a user-facing error
// message; none of them panic, and callers can always show the message
// verbatim and re-prompt.
package validation

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultPriceCeiling = 10_000_000

var (
	truckPattern = regexp.MustCompile(`^[A-Z0-9\s\-]+$`)
	phonePattern = regexp.MustCompile(`^(01|\+?601)[0-9]{8,9}$`)
	phoneSeps    = regexp.MustCompile(`[\s\-()]`)
)

// Result carries a validator outcome. Err is a plain message for the user,
// empty when OK.
type Result struct {
	OK  bool
	Err string
}

func ok() Result            { return Result{OK: true} }
func bad(msg string) Result { return Result{Err: msg} }

// TruckNumber normalizes and validates a truck identifier: trimmed,
// upper-cased, 3-15 characters, letters/digits/spaces/dashes only.
func TruckNumber(raw string) (string, Result) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return "", bad("Truck number cannot be empty.")
	}
	if len(v) < 3 || len(v) > 15 {
		return "", bad("Truck number must be between 3 and 15 characters.")
	}
	if !truckPattern.MatchString(v) {
		return "", bad("Truck number can only contain letters, numbers, spaces, and dashes.")
	}
	return v, ok()
}

// PhoneNumber validates a Malaysian mobile number. The skip sentinels
// ("N/A", "NA", "0") are accepted as deliberate blanks and returned as-is.
func PhoneNumber(raw string) (string, Result) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", bad("Phone number cannot be empty.")
	}
	switch strings.ToUpper(v) {
	case "N/A", "NA", "0":
		return v, ok()
	}
	stripped := phoneSeps.ReplaceAllString(v, "")
	if !phonePattern.MatchString(stripped) {
		return "", bad("Please enter a valid Malaysian phone number (e.g., 012-3456789 or +6012-3456789).")
	}
	return v, ok()
}

// Price parses a non-negative monetary amount. Values above the sanity
// ceiling are rejected as likely input errors. Commas are tolerated.
func Price(raw string) (float64, Result) {
	v := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, bad("Please enter a valid number for the price.")
	}
	if price < 0 {
		return 0, bad("Price cannot be negative.")
	}
	if price > priceCeiling() {
		return 0, bad("Price seems unreasonably high. Please check.")
	}
	return price, ok()
}

var dateFormats = []string{"2006-01-02", "02/01/2006", "02-01-2006", "02.01.2006"}

// Date parses a calendar date in any of the supported token orders; the
// first matching format wins. The value is normalized to YYYY-MM-DD.
func Date(raw string) (time.Time, Result) {
	v := strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, ok()
		}
	}
	return time.Time{}, bad("Invalid date format. Please use YYYY-MM-DD, DD/MM/YYYY, DD-MM-YYYY, or DD.MM.YYYY.")
}

func priceCeiling() float64 {
	if v := os.Getenv("PRICE_CEILING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultPriceCeiling
}
