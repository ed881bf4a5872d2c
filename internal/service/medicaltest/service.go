package medicaltest

import (
	"context"
	"strings"
	"time"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/internal/service"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
	"github.com/jwalitptl/hims-api/pkg/recordid"
)

const label = "Medical Test"

type MedicalTestService interface {
	CreateMedicalTest(ctx context.Context, req *model.CreateMedicalTestRequest) (*model.MedicalTest, error)
	GetMedicalTest(ctx context.Context, id string) (*model.MedicalTest, error)
	UpdateMedicalTest(ctx context.Context, id string, req *model.UpdateMedicalTestRequest) (*model.MedicalTest, error)
	PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error)
	DeleteMedicalTest(ctx context.Context, id, token string) error
	ListMedicalTests(ctx context.Context) ([]*model.MedicalTest, error)
	ListPatientMedicalTests(ctx context.Context, patientID string) ([]*model.MedicalTest, error)
}

type Service struct {
	service.Deps
}

func NewService(deps service.Deps) *Service {
	return &Service{Deps: deps}
}

// resultOrAwaited stores the placeholder result when none is given.
func resultOrAwaited(v *string) string {
	if r := model.Optional(v); r != nil {
		return *r
	}
	return model.ResultAwaited
}

func formatDateTime(name, v string) (string, error) {
	t, err := time.Parse(model.InputDateTimeLayout, v)
	if err != nil {
		return "", apperrors.BadRequest(name+" must be YYYY-MM-DDThh:mm", err)
	}
	return t.Format(model.DateTimeLayout), nil
}

func (s *Service) CreateMedicalTest(ctx context.Context, req *model.CreateMedicalTestRequest) (*model.MedicalTest, error) {
	if err := service.Required(
		service.Field{Name: "Test name", Value: req.TestName},
		service.Field{Name: "Patient ID", Value: req.PatientID},
		service.Field{Name: "Doctor ID", Value: req.DoctorID},
		service.Field{Name: "Medical lab scientist ID", Value: req.MedicalLabScientistID},
		service.Field{Name: "Test date and time", Value: req.TestDateTime},
		service.Field{Name: "Result date and time", Value: req.ResultDateTime},
	); err != nil {
		return nil, err
	}

	testDateTime, err := formatDateTime("Test date and time", req.TestDateTime)
	if err != nil {
		return nil, err
	}
	resultDateTime, err := formatDateTime("Result date and time", req.ResultDateTime)
	if err != nil {
		return nil, err
	}

	test := &model.MedicalTest{
		ID:                    recordid.Generate(recordid.MedicalTest, s.Clock()),
		TestName:              strings.TrimSpace(req.TestName),
		PatientID:             strings.TrimSpace(req.PatientID),
		DoctorID:              strings.TrimSpace(req.DoctorID),
		MedicalLabScientistID: strings.TrimSpace(req.MedicalLabScientistID),
		TestDateTime:          testDateTime,
		ResultDateTime:        resultDateTime,
		ResultAndDiagnosis:    resultOrAwaited(req.ResultAndDiagnosis),
		Description:           model.Optional(req.Description),
		Comments:              model.Optional(req.Comments),
		Cost:                  req.Cost,
	}

	err = s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if test.PatientName, err = service.Reference(ctx, repos, model.EntityPatient, "Patient", test.PatientID); err != nil {
			return err
		}
		if test.DoctorName, err = service.Reference(ctx, repos, model.EntityDoctor, "Doctor", test.DoctorID); err != nil {
			return err
		}

		if err := repos.MedicalTests.Create(ctx, test); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionCreate, model.EntityMedicalTest, test.ID, test)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionCreate, model.EntityMedicalTest, test.ID)
	return test, nil
}

func (s *Service) GetMedicalTest(ctx context.Context, id string) (*model.MedicalTest, error) {
	return s.get(ctx, s.Store.Repositories(), id)
}

func (s *Service) get(ctx context.Context, repos repository.Repositories, id string) (*model.MedicalTest, error) {
	if !recordid.Valid(recordid.MedicalTest, id) {
		return nil, apperrors.InvalidID(label)
	}
	test, err := repos.MedicalTests.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if test == nil {
		return nil, apperrors.InvalidID(label)
	}
	return test, nil
}

func (s *Service) UpdateMedicalTest(ctx context.Context, id string, req *model.UpdateMedicalTestRequest) (*model.MedicalTest, error) {
	var test *model.MedicalTest
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if test, err = s.get(ctx, repos, id); err != nil {
			return err
		}

		if req.ResultAndDiagnosis != nil {
			test.ResultAndDiagnosis = resultOrAwaited(req.ResultAndDiagnosis)
		}
		service.SetOptional(&test.Description, req.Description)
		service.SetOptional(&test.Comments, req.Comments)

		if err := repos.MedicalTests.Update(ctx, test); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionUpdate, model.EntityMedicalTest, id, req)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionUpdate, model.EntityMedicalTest, id)
	return test, nil
}

func (s *Service) PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error) {
	test, err := s.GetMedicalTest(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Ticket(model.EntityMedicalTest, id, test), nil
}

func (s *Service) DeleteMedicalTest(ctx context.Context, id, token string) error {
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if _, err := s.get(ctx, repos, id); err != nil {
			return err
		}
		if err := s.Confirm.Check(model.EntityMedicalTest, id, token); err != nil {
			return err
		}
		if err := repos.MedicalTests.Delete(ctx, id); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionDelete, model.EntityMedicalTest, id, nil)
	})
	if err != nil {
		return service.StoreError(err, label)
	}

	s.Confirm.Revoke(token)
	s.Audit.Notify(ctx, model.AuditActionDelete, model.EntityMedicalTest, id)
	return nil
}

func (s *Service) ListMedicalTests(ctx context.Context) ([]*model.MedicalTest, error) {
	tests, err := s.Store.Repositories().MedicalTests.List(ctx)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return tests, nil
}

func (s *Service) ListPatientMedicalTests(ctx context.Context, patientID string) ([]*model.MedicalTest, error) {
	repos := s.Store.Repositories()
	if !recordid.Valid(recordid.Patient, patientID) {
		return nil, apperrors.InvalidID("Patient")
	}
	ok, err := repos.References.Verify(ctx, model.EntityPatient, patientID)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if !ok {
		return nil, apperrors.InvalidID("Patient")
	}

	tests, err := repos.MedicalTests.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return tests, nil
}
