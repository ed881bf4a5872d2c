package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/hims-api/internal/model"
)

// Store-level failures, classified from driver errors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
	ErrUniqueViolation     = errors.New("unique constraint violated")
)

// All repository interfaces in one file. Get returns nil, nil when the
// record does not exist.
type (
	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, id string) (*model.Department, error)
		Update(ctx context.Context, department *model.Department) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Department, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Doctor, error)
		ListByDepartment(ctx context.Context, departmentID string) ([]*model.DoctorSummary, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id string) (*model.Prescription, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error)
	}

	MedicalTestRepository interface {
		Create(ctx context.Context, test *model.MedicalTest) error
		Get(ctx context.Context, id string) (*model.MedicalTest, error)
		Update(ctx context.Context, test *model.MedicalTest) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.MedicalTest, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.MedicalTest, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error)
		// DeleteBefore removes entries created before cutoff and returns how many.
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	// ReferenceValidator answers whether an identifier exists in the table of
	// the given entity. An unknown or empty id is a false result, not an error.
	ReferenceValidator interface {
		Verify(ctx context.Context, entity, id string) (bool, error)
		// DisplayName returns the name copied into referencing records.
		DisplayName(ctx context.Context, entity, id string) (string, error)
	}
)

// Repositories is one consistent set of repositories, bound either to the
// connection pool or to a single transaction.
type Repositories struct {
	Departments   DepartmentRepository
	Doctors       DoctorRepository
	Patients      PatientRepository
	Prescriptions PrescriptionRepository
	MedicalTests  MedicalTestRepository
	Audit         AuditRepository
	References    ReferenceValidator
}

// UnitOfWork runs fn with repositories bound to one transaction, committing
// when fn returns nil and rolling back otherwise.
type UnitOfWork interface {
	Repositories() Repositories
	WithTx(ctx context.Context, fn func(Repositories) error) error
}
