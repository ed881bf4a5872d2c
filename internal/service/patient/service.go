package patient

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

const label = "Patient"

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error)
	PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error)
	DeletePatient(ctx context.Context, id, token string) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	service.Deps
}

func NewService(deps service.Deps) *Service {
	return &Service{Deps: deps}
}

// CreatePatient registers a patient. The identifier is derived from the
// registration date and time recorded with the row.
func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := service.Required(
		service.Field{Name: "Name", Value: req.Name},
		service.Field{Name: "Gender", Value: req.Gender},
		service.Field{Name: "Date of birth", Value: req.DateOfBirth},
		service.Field{Name: "Blood group", Value: req.BloodGroup},
		service.Field{Name: "Contact number", Value: req.ContactNumber1},
		service.Field{Name: "Aadhar ID / Voter ID", Value: req.AadharOrVoterID},
		service.Field{Name: "Address", Value: req.Address},
		service.Field{Name: "City", Value: req.City},
		service.Field{Name: "State", Value: req.State},
		service.Field{Name: "PIN code", Value: req.PinCode},
		service.Field{Name: "Next of kin's name", Value: req.NextOfKinName},
		service.Field{Name: "Next of kin's relation to patient", Value: req.NextOfKinRelationToPatient},
		service.Field{Name: "Next of kin's contact number", Value: req.NextOfKinContactNumber},
	); err != nil {
		return nil, err
	}

	now := s.Clock()
	birth, err := time.Parse(model.InputDateLayout, req.DateOfBirth)
	if err != nil {
		return nil, apperrors.BadRequest("Date of birth must be YYYY-MM-DD", err)
	}
	if birth.After(now) {
		return nil, apperrors.BadRequest("Date of birth cannot be in the future", nil)
	}

	regDate := now.Format(model.DateLayout)
	regTime := now.Format(model.TimeLayout)
	id, err := recordid.FromRegistration(recordid.Patient, regDate, regTime)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	patient := &model.Patient{
		ID:                         id,
		Name:                       strings.TrimSpace(req.Name),
		Age:                        model.Age(birth, now),
		Gender:                     strings.TrimSpace(req.Gender),
		DateOfBirth:                birth.Format(model.DateLayout),
		BloodGroup:                 strings.TrimSpace(req.BloodGroup),
		ContactNumber1:             strings.TrimSpace(req.ContactNumber1),
		ContactNumber2:             model.Optional(req.ContactNumber2),
		AadharOrVoterID:            strings.TrimSpace(req.AadharOrVoterID),
		Weight:                     req.Weight,
		Height:                     req.Height,
		Address:                    strings.TrimSpace(req.Address),
		City:                       strings.TrimSpace(req.City),
		State:                      strings.TrimSpace(req.State),
		PinCode:                    strings.TrimSpace(req.PinCode),
		NextOfKinName:              strings.TrimSpace(req.NextOfKinName),
		NextOfKinRelationToPatient: strings.TrimSpace(req.NextOfKinRelationToPatient),
		NextOfKinContactNumber:     strings.TrimSpace(req.NextOfKinContactNumber),
		EmailID:                    model.Optional(req.EmailID),
		DateOfRegistration:         regDate,
		TimeOfRegistration:         regTime,
	}

	if err := service.Email("Email ID", patient.EmailID); err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Patients.Create(ctx, patient); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionCreate, model.EntityPatient, patient.ID, patient)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionCreate, model.EntityPatient, patient.ID)
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return s.get(ctx, s.Store.Repositories(), id)
}

func (s *Service) get(ctx context.Context, repos repository.Repositories, id string) (*model.Patient, error) {
	if !recordid.Valid(recordid.Patient, id) {
		return nil, apperrors.InvalidID(label)
	}
	patient, err := repos.Patients.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if patient == nil {
		return nil, apperrors.InvalidID(label)
	}
	return patient, nil
}

// UpdatePatient applies the mutable subset and recomputes age from the
// stored birth date.
func (s *Service) UpdatePatient(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	var patient *model.Patient
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if patient, err = s.get(ctx, repos, id); err != nil {
			return err
		}

		for _, patch := range []struct {
			dst  *string
			name string
			v    *string
		}{
			{&patient.ContactNumber1, "Contact number", req.ContactNumber1},
			{&patient.Address, "Address", req.Address},
			{&patient.City, "City", req.City},
			{&patient.State, "State", req.State},
			{&patient.PinCode, "PIN code", req.PinCode},
			{&patient.NextOfKinName, "Next of kin's name", req.NextOfKinName},
			{&patient.NextOfKinRelationToPatient, "Next of kin's relation to patient", req.NextOfKinRelationToPatient},
			{&patient.NextOfKinContactNumber, "Next of kin's contact number", req.NextOfKinContactNumber},
		} {
			if err := service.SetRequired(patch.dst, patch.name, patch.v); err != nil {
				return err
			}
		}
		service.SetOptional(&patient.ContactNumber2, req.ContactNumber2)
		service.SetOptional(&patient.EmailID, req.EmailID)
		if err := service.Email("Email ID", patient.EmailID); err != nil {
			return err
		}
		service.SetInt(&patient.Weight, req.Weight)
		service.SetInt(&patient.Height, req.Height)

		age, err := model.AgeFromStored(patient.DateOfBirth, s.Clock())
		if err != nil {
			return apperrors.Internal(err)
		}
		patient.Age = age

		if err := repos.Patients.Update(ctx, patient); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionUpdate, model.EntityPatient, id, req)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionUpdate, model.EntityPatient, id)
	return patient, nil
}

func (s *Service) PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Ticket(model.EntityPatient, id, patient), nil
}

// DeletePatient fails with 409 while prescriptions or medical tests reference the patient.
func (s *Service) DeletePatient(ctx context.Context, id, token string) error {
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if _, err := s.get(ctx, repos, id); err != nil {
			return err
		}
		if err := s.Confirm.Check(model.EntityPatient, id, token); err != nil {
			return err
		}
		if err := repos.Patients.Delete(ctx, id); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionDelete, model.EntityPatient, id, nil)
	})
	if err != nil {
		return service.StoreError(err, label)
	}

	s.Confirm.Revoke(token)
	s.Audit.Notify(ctx, model.AuditActionDelete, model.EntityPatient, id)
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.Store.Repositories().Patients.List(ctx)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return patients, nil
}
