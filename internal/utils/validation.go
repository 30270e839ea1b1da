package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"pulseinsights.org/pulsedb"
)

const (
	MinYear       = 2000
	MaxYear       = 2100
	maxNameLength = 100
	MaxSamples    = 10000
)

// AllValues is the selector value that leaves a dimension unfiltered.
const AllValues = "All"

var (
	// State, district and brand names: letters, digits, spaces and a few separators.
	validNamePattern = regexp.MustCompile(`^[\p{L}\p{N} &.,'()-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	quarterPattern = regexp.MustCompile(`^[Qq][1-4]$`)
)

// ValidateName validates a state, district or brand name.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name too long (max %d characters)", maxNameLength)
	}
	if dangerousPattern.MatchString(name) || !validNamePattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}
	return nil
}

// ValidateYear parses a four digit year within [MinYear, MaxYear].
func ValidateYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("year must be an integer")
	}
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return year, nil
}

// ValidateQuarter accepts Q1 to Q4 in either case and returns the canonical form.
func ValidateQuarter(s string) (string, error) {
	if !quarterPattern.MatchString(s) {
		return "", errors.New("quarter must be one of Q1, Q2, Q3, Q4")
	}
	return strings.ToUpper(s), nil
}

// ValidateLimit parses an optional positive row limit, falling back to def.
func ValidateLimit(s string, def, max int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > max {
		return 0, fmt.Errorf("limit too large (max %d)", max)
	}
	return n, nil
}

// ParseSamples parses a comma separated list of numbers.
func ParseSamples(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("values cannot be empty")
	}
	parts := strings.Split(s, ",")
	if len(parts) > MaxSamples {
		return nil, fmt.Errorf("too many values (max %d)", MaxSamples)
	}
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

func selected(v string) bool {
	return v != "" && !strings.EqualFold(v, AllValues)
}

// ParseFilter reads the state, district, year and quarter query parameters.
// An empty value or "All" leaves the dimension unbound. Invalid values are
// reported per field.
func ParseFilter(q url.Values) (pulsedb.Filter, map[string][]string) {
	var f pulsedb.Filter
	fieldErrors := make(map[string][]string)

	name := func(field string, dst *pulsedb.Optional[string]) {
		v := SanitizeInput(q.Get(field))
		if !selected(v) {
			return
		}
		if err := ValidateName(v); err != nil {
			fieldErrors[field] = append(fieldErrors[field], err.Error())
			return
		}
		*dst = pulsedb.Bind(v)
	}
	name("state", &f.State)
	name("district", &f.District)

	if v := strings.TrimSpace(q.Get("year")); selected(v) {
		if year, err := ValidateYear(v); err != nil {
			fieldErrors["year"] = append(fieldErrors["year"], err.Error())
		} else {
			f.Year = pulsedb.Bind(year)
		}
	}

	if v := strings.TrimSpace(q.Get("quarter")); selected(v) {
		if quarter, err := ValidateQuarter(v); err != nil {
			fieldErrors["quarter"] = append(fieldErrors["quarter"], err.Error())
		} else {
			f.Quarter = pulsedb.Bind(quarter)
		}
	}

	return f, fieldErrors
}
