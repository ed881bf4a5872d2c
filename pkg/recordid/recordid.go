// Package recordid generates the human-readable record identifiers used as
// primary keys: a type prefix, the time of day reversed (seconds, minutes,
// hours) and the date reversed with a two-digit year.
//
// Identifiers are a pure function of the timestamp. Two records of the same
// type created within the same second get the same identifier; the store's
// primary key constraint turns that into a conflict instead of an overwrite.
package recordid

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Prefix identifies the entity type an identifier belongs to.
type Prefix string

const (
	Department   Prefix = "D"
	Doctor       Prefix = "DR"
	Patient      Prefix = "P"
	Prescription Prefix = "M"
	MedicalTest  Prefix = "T"
)

const (
	// DateLayout is the stored day format (DD-MM-YYYY).
	DateLayout = "02-01-2006"
	// TimeLayout is the stored time of day format (hh:mm:ss).
	TimeLayout = "15:04:05"
)

var patterns = map[Prefix]*regexp.Regexp{}

func init() {
	for _, p := range []Prefix{Department, Doctor, Patient, Prescription, MedicalTest} {
		patterns[p] = regexp.MustCompile(`^` + string(p) + `-\d{6}-\d{6}$`)
	}
}

// Generate returns the identifier for a record of the given type created at t.
func Generate(prefix Prefix, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format("050415"), t.Format("060102"))
}

// FromRegistration derives an identifier from an explicit registration date
// (DD-MM-YYYY) and time (hh:mm:ss), as recorded for patients.
func FromRegistration(prefix Prefix, regDate, regTime string) (string, error) {
	timeParts := strings.Split(regTime, ":")
	if len(timeParts) != 3 {
		return "", fmt.Errorf("invalid registration time %q", regTime)
	}
	dateParts := strings.Split(regDate, "-")
	if len(dateParts) != 3 || len(dateParts[2]) != 4 {
		return "", fmt.Errorf("invalid registration date %q", regDate)
	}
	if _, err := time.Parse(DateLayout+" "+TimeLayout, regDate+" "+regTime); err != nil {
		return "", fmt.Errorf("invalid registration timestamp: %w", err)
	}

	reverse(timeParts)
	reverse(dateParts)
	datePart := strings.Join(dateParts, "")[2:]

	return fmt.Sprintf("%s-%s-%s", prefix, strings.Join(timeParts, ""), datePart), nil
}

// Valid reports whether id is well-formed for the given prefix.
func Valid(prefix Prefix, id string) bool {
	re, ok := patterns[prefix]
	if !ok {
		return false
	}
	return re.MatchString(id)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
