package model

import (
	"strings"
	"time"

	"github.com/jwalitptl/hims-api/pkg/recordid"
)

// Layouts of the date strings stored with each record.
const (
	DateLayout     = recordid.DateLayout
	TimeLayout     = recordid.TimeLayout
	DateTimeLayout = "02-01-2006 (15:04)"

	// InputDateLayout and InputDateTimeLayout are what clients send.
	InputDateLayout     = "2006-01-02"
	InputDateTimeLayout = "2006-01-02T15:04"
)

// Entity names shared by audit rows, metrics labels and change events.
const (
	EntityDepartment   = "department"
	EntityDoctor       = "doctor"
	EntityPatient      = "patient"
	EntityPrescription = "prescription"
	EntityMedicalTest  = "medical_test"
)

// Optional normalizes a nullable input: nil and blank strings become nil.
func Optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Age returns whole years between birth and today.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if birth.Month() > today.Month() || (birth.Month() == today.Month() && birth.Day() > today.Day()) {
		age--
	}
	return age
}

// AgeFromStored parses a stored DD-MM-YYYY birth date and returns the age on today.
func AgeFromStored(dateOfBirth string, today time.Time) (int, error) {
	birth, err := time.Parse(DateLayout, dateOfBirth)
	if err != nil {
		return 0, err
	}
	return Age(birth, today), nil
}
