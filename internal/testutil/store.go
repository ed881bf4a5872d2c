// Package testutil builds throwaway stores and fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository/sqlstore"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

// NewStore returns a migrated in-memory SQLite store closed with the test.
func NewStore(t testing.TB) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := sqlstore.NewDB(ctx, sqlstore.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = sqlstore.MigrateUp(ctx, db)
	require.NoError(t, err)

	return sqlstore.NewStore(db, NewMetrics())
}

// NewMetrics registers metrics on a private registry.
func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry(), "hims_test")
}

// Clock is a settable time source.
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// FixedClock starts at 2024-03-01 10:23:45 UTC.
func FixedClock() *Clock {
	return &Clock{T: time.Date(2024, 3, 1, 10, 23, 45, 0, time.UTC)}
}

func ptr(s string) *string { return &s }

// Department returns a fully populated department row.
func Department(id, name string) *model.Department {
	return &model.Department{
		ID:             id,
		Name:           name,
		Description:    name + " department",
		ContactNumber1: "0201234567",
		Address:        "Block A",
		EmailID:        "dept@hims.test",
	}
}

// Doctor returns a fully populated doctor row in the given department.
func Doctor(id, name string, dept *model.Department) *model.Doctor {
	return &model.Doctor{
		ID:                id,
		Name:              name,
		Age:               45,
		Gender:            "Female",
		DateOfBirth:       "12-08-1978",
		BloodGroup:        "O+",
		DepartmentID:      dept.ID,
		DepartmentName:    dept.Name,
		ContactNumber1:    "9876543210",
		ContactNumber2:    ptr("9123456780"),
		AadharOrVoterID:   "1234-5678-9012",
		EmailID:           "doctor@hims.test",
		Qualification:     "MBBS, MD",
		Specialisation:    "Cardiology",
		YearsOfExperience: 18,
		Address:           "12 Park Street",
		City:              "Kolkata",
		State:             "West Bengal",
		PinCode:           "700016",
	}
}

// Patient returns a fully populated patient row.
func Patient(id, name string) *model.Patient {
	return &model.Patient{
		ID:                         id,
		Name:                       name,
		Age:                        23,
		Gender:                     "Male",
		DateOfBirth:                "15-06-2000",
		BloodGroup:                 "B+",
		ContactNumber1:             "9000000001",
		AadharOrVoterID:            "VOTER-42",
		Weight:                     70,
		Height:                     175,
		Address:                    "4 Lake Road",
		City:                       "Pune",
		State:                      "Maharashtra",
		PinCode:                    "411001",
		NextOfKinName:              "Asha",
		NextOfKinRelationToPatient: "Mother",
		NextOfKinContactNumber:     "9000000002",
		DateOfRegistration:         "01-03-2024",
		TimeOfRegistration:         "10:23:45",
	}
}

// Prescription returns a prescription row linking patient and doctor.
func Prescription(id string, p *model.Patient, d *model.Doctor) *model.Prescription {
	return &model.Prescription{
		ID:                         id,
		PatientID:                  p.ID,
		PatientName:                p.Name,
		DoctorID:                   d.ID,
		DoctorName:                 d.Name,
		Diagnosis:                  "Hypertension",
		Medicine1Name:              "Amlodipine",
		Medicine1DosageDescription: "5 mg once daily",
	}
}

// MedicalTest returns a medical test row linking patient and doctor.
func MedicalTest(id string, p *model.Patient, d *model.Doctor) *model.MedicalTest {
	return &model.MedicalTest{
		ID:                    id,
		TestName:              "Lipid profile",
		PatientID:             p.ID,
		PatientName:           p.Name,
		DoctorID:              d.ID,
		DoctorName:            d.Name,
		MedicalLabScientistID: "MLS-7",
		TestDateTime:          "01-03-2024 (09:30)",
		ResultDateTime:        "02-03-2024 (12:00)",
		ResultAndDiagnosis:    model.ResultAwaited,
		Cost:                  1200,
	}
}
