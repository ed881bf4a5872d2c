package prescription

import (
	"context"
	"strings"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/internal/service"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
	"github.com/jwalitptl/hims-api/pkg/recordid"
)

const label = "Prescription"

type PrescriptionService interface {
	CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	GetPrescription(ctx context.Context, id string) (*model.Prescription, error)
	UpdatePrescription(ctx context.Context, id string, req *model.UpdatePrescriptionRequest) (*model.Prescription, error)
	PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error)
	DeletePrescription(ctx context.Context, id, token string) error
	ListPrescriptions(ctx context.Context) ([]*model.Prescription, error)
	ListPatientPrescriptions(ctx context.Context, patientID string) ([]*model.Prescription, error)
}

type Service struct {
	service.Deps
}

func NewService(deps service.Deps) *Service {
	return &Service{Deps: deps}
}

func (s *Service) CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := service.Required(
		service.Field{Name: "Patient ID", Value: req.PatientID},
		service.Field{Name: "Doctor ID", Value: req.DoctorID},
		service.Field{Name: "Diagnosis", Value: req.Diagnosis},
		service.Field{Name: "Medicine 1 name", Value: req.Medicine1Name},
		service.Field{Name: "Medicine 1 dosage and description", Value: req.Medicine1DosageDescription},
	); err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		ID:                         recordid.Generate(recordid.Prescription, s.Clock()),
		PatientID:                  strings.TrimSpace(req.PatientID),
		DoctorID:                   strings.TrimSpace(req.DoctorID),
		Diagnosis:                  strings.TrimSpace(req.Diagnosis),
		Comments:                   model.Optional(req.Comments),
		Medicine1Name:              strings.TrimSpace(req.Medicine1Name),
		Medicine1DosageDescription: strings.TrimSpace(req.Medicine1DosageDescription),
		Medicine2Name:              model.Optional(req.Medicine2Name),
		Medicine2DosageDescription: model.Optional(req.Medicine2DosageDescription),
		Medicine3Name:              model.Optional(req.Medicine3Name),
		Medicine3DosageDescription: model.Optional(req.Medicine3DosageDescription),
	}

	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if prescription.PatientName, err = service.Reference(ctx, repos, model.EntityPatient, "Patient", prescription.PatientID); err != nil {
			return err
		}
		if prescription.DoctorName, err = service.Reference(ctx, repos, model.EntityDoctor, "Doctor", prescription.DoctorID); err != nil {
			return err
		}

		if err := repos.Prescriptions.Create(ctx, prescription); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionCreate, model.EntityPrescription, prescription.ID, prescription)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionCreate, model.EntityPrescription, prescription.ID)
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id string) (*model.Prescription, error) {
	return s.get(ctx, s.Store.Repositories(), id)
}

func (s *Service) get(ctx context.Context, repos repository.Repositories, id string) (*model.Prescription, error) {
	if !recordid.Valid(recordid.Prescription, id) {
		return nil, apperrors.InvalidID(label)
	}
	prescription, err := repos.Prescriptions.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if prescription == nil {
		return nil, apperrors.InvalidID(label)
	}
	return prescription, nil
}

func (s *Service) UpdatePrescription(ctx context.Context, id string, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	var prescription *model.Prescription
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if prescription, err = s.get(ctx, repos, id); err != nil {
			return err
		}

		if err := service.SetRequired(&prescription.Diagnosis, "Diagnosis", req.Diagnosis); err != nil {
			return err
		}
		if err := service.SetRequired(&prescription.Medicine1Name, "Medicine 1 name", req.Medicine1Name); err != nil {
			return err
		}
		if err := service.SetRequired(&prescription.Medicine1DosageDescription, "Medicine 1 dosage and description", req.Medicine1DosageDescription); err != nil {
			return err
		}
		service.SetOptional(&prescription.Comments, req.Comments)
		service.SetOptional(&prescription.Medicine2Name, req.Medicine2Name)
		service.SetOptional(&prescription.Medicine2DosageDescription, req.Medicine2DosageDescription)
		service.SetOptional(&prescription.Medicine3Name, req.Medicine3Name)
		service.SetOptional(&prescription.Medicine3DosageDescription, req.Medicine3DosageDescription)

		if err := repos.Prescriptions.Update(ctx, prescription); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionUpdate, model.EntityPrescription, id, req)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionUpdate, model.EntityPrescription, id)
	return prescription, nil
}

func (s *Service) PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error) {
	prescription, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Ticket(model.EntityPrescription, id, prescription), nil
}

func (s *Service) DeletePrescription(ctx context.Context, id, token string) error {
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if _, err := s.get(ctx, repos, id); err != nil {
			return err
		}
		if err := s.Confirm.Check(model.EntityPrescription, id, token); err != nil {
			return err
		}
		if err := repos.Prescriptions.Delete(ctx, id); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionDelete, model.EntityPrescription, id, nil)
	})
	if err != nil {
		return service.StoreError(err, label)
	}

	s.Confirm.Revoke(token)
	s.Audit.Notify(ctx, model.AuditActionDelete, model.EntityPrescription, id)
	return nil
}

func (s *Service) ListPrescriptions(ctx context.Context) ([]*model.Prescription, error) {
	prescriptions, err := s.Store.Repositories().Prescriptions.List(ctx)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return prescriptions, nil
}

func (s *Service) ListPatientPrescriptions(ctx context.Context, patientID string) ([]*model.Prescription, error) {
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

	prescriptions, err := repos.Prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return prescriptions, nil
}
