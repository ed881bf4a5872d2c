package doctor

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

const label = "Doctor"

type DoctorService interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error)
	DeleteDoctor(ctx context.Context, id, token string) error
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
}

type Service struct {
	service.Deps
}

func NewService(deps service.Deps) *Service {
	return &Service{Deps: deps}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := service.Required(
		service.Field{Name: "Name", Value: req.Name},
		service.Field{Name: "Gender", Value: req.Gender},
		service.Field{Name: "Date of birth", Value: req.DateOfBirth},
		service.Field{Name: "Blood group", Value: req.BloodGroup},
		service.Field{Name: "Department ID", Value: req.DepartmentID},
		service.Field{Name: "Contact number", Value: req.ContactNumber1},
		service.Field{Name: "Aadhar ID / Voter ID", Value: req.AadharOrVoterID},
		service.Field{Name: "Email ID", Value: req.EmailID},
		service.Field{Name: "Qualification", Value: req.Qualification},
		service.Field{Name: "Specialisation", Value: req.Specialisation},
		service.Field{Name: "Address", Value: req.Address},
		service.Field{Name: "City", Value: req.City},
		service.Field{Name: "State", Value: req.State},
		service.Field{Name: "PIN code", Value: req.PinCode},
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

	doctor := &model.Doctor{
		ID:                recordid.Generate(recordid.Doctor, now),
		Name:              strings.TrimSpace(req.Name),
		Age:               model.Age(birth, now),
		Gender:            strings.TrimSpace(req.Gender),
		DateOfBirth:       birth.Format(model.DateLayout),
		BloodGroup:        strings.TrimSpace(req.BloodGroup),
		DepartmentID:      strings.TrimSpace(req.DepartmentID),
		ContactNumber1:    strings.TrimSpace(req.ContactNumber1),
		ContactNumber2:    model.Optional(req.ContactNumber2),
		AadharOrVoterID:   strings.TrimSpace(req.AadharOrVoterID),
		EmailID:           strings.TrimSpace(req.EmailID),
		Qualification:     strings.TrimSpace(req.Qualification),
		Specialisation:    strings.TrimSpace(req.Specialisation),
		YearsOfExperience: req.YearsOfExperience,
		Address:           strings.TrimSpace(req.Address),
		City:              strings.TrimSpace(req.City),
		State:             strings.TrimSpace(req.State),
		PinCode:           strings.TrimSpace(req.PinCode),
	}
	if err := service.Email("Email ID", &doctor.EmailID); err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		name, err := service.Reference(ctx, repos, model.EntityDepartment, "Department", doctor.DepartmentID)
		if err != nil {
			return err
		}
		doctor.DepartmentName = name

		if err := repos.Doctors.Create(ctx, doctor); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionCreate, model.EntityDoctor, doctor.ID, doctor)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionCreate, model.EntityDoctor, doctor.ID)
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	return s.get(ctx, s.Store.Repositories(), id)
}

func (s *Service) get(ctx context.Context, repos repository.Repositories, id string) (*model.Doctor, error) {
	if !recordid.Valid(recordid.Doctor, id) {
		return nil, apperrors.InvalidID(label)
	}
	doctor, err := repos.Doctors.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if doctor == nil {
		return nil, apperrors.InvalidID(label)
	}
	return doctor, nil
}

// UpdateDoctor applies the mutable subset. A new department id is verified
// and its name copied again; age is recomputed from the stored birth date.
func (s *Service) UpdateDoctor(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	var doctor *model.Doctor
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if doctor, err = s.get(ctx, repos, id); err != nil {
			return err
		}

		if req.DepartmentID != nil {
			departmentID := strings.TrimSpace(*req.DepartmentID)
			name, err := service.Reference(ctx, repos, model.EntityDepartment, "Department", departmentID)
			if err != nil {
				return err
			}
			doctor.DepartmentID = departmentID
			doctor.DepartmentName = name
		}

		for _, patch := range []struct {
			dst  *string
			name string
			v    *string
		}{
			{&doctor.ContactNumber1, "Contact number", req.ContactNumber1},
			{&doctor.EmailID, "Email ID", req.EmailID},
			{&doctor.Qualification, "Qualification", req.Qualification},
			{&doctor.Specialisation, "Specialisation", req.Specialisation},
			{&doctor.Address, "Address", req.Address},
			{&doctor.City, "City", req.City},
			{&doctor.State, "State", req.State},
			{&doctor.PinCode, "PIN code", req.PinCode},
		} {
			if err := service.SetRequired(patch.dst, patch.name, patch.v); err != nil {
				return err
			}
		}
		service.SetOptional(&doctor.ContactNumber2, req.ContactNumber2)
		if err := service.Email("Email ID", &doctor.EmailID); err != nil {
			return err
		}
		service.SetInt(&doctor.YearsOfExperience, req.YearsOfExperience)

		age, err := model.AgeFromStored(doctor.DateOfBirth, s.Clock())
		if err != nil {
			return apperrors.Internal(err)
		}
		doctor.Age = age

		if err := repos.Doctors.Update(ctx, doctor); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionUpdate, model.EntityDoctor, id, req)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionUpdate, model.EntityDoctor, id)
	return doctor, nil
}

func (s *Service) PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error) {
	doctor, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Ticket(model.EntityDoctor, id, doctor), nil
}

// DeleteDoctor fails with 409 while prescriptions or medical tests reference the doctor.
func (s *Service) DeleteDoctor(ctx context.Context, id, token string) error {
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if _, err := s.get(ctx, repos, id); err != nil {
			return err
		}
		if err := s.Confirm.Check(model.EntityDoctor, id, token); err != nil {
			return err
		}
		if err := repos.Doctors.Delete(ctx, id); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionDelete, model.EntityDoctor, id, nil)
	})
	if err != nil {
		return service.StoreError(err, label)
	}

	s.Confirm.Revoke(token)
	s.Audit.Notify(ctx, model.AuditActionDelete, model.EntityDoctor, id)
	return nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.Store.Repositories().Doctors.List(ctx)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return doctors, nil
}
