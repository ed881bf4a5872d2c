package department

import (
	"context"
	"strings"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/internal/service"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
	"github.com/jwalitptl/hims-api/pkg/recordid"
)

const label = "Department"

type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error)
	GetDepartment(ctx context.Context, id string) (*model.Department, error)
	UpdateDepartment(ctx context.Context, id string, req *model.UpdateDepartmentRequest) (*model.Department, error)
	PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error)
	DeleteDepartment(ctx context.Context, id, token string) error
	ListDepartments(ctx context.Context) ([]*model.Department, error)
	ListDepartmentDoctors(ctx context.Context, id string) ([]*model.DoctorSummary, error)
}

type Service struct {
	service.Deps
}

func NewService(deps service.Deps) *Service {
	return &Service{Deps: deps}
}

func (s *Service) CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if err := service.Required(
		service.Field{Name: "Department name", Value: req.Name},
		service.Field{Name: "Description", Value: req.Description},
		service.Field{Name: "Contact number", Value: req.ContactNumber1},
		service.Field{Name: "Address", Value: req.Address},
		service.Field{Name: "Email ID", Value: req.EmailID},
	); err != nil {
		return nil, err
	}

	department := &model.Department{
		ID:             recordid.Generate(recordid.Department, s.Clock()),
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		ContactNumber1: strings.TrimSpace(req.ContactNumber1),
		ContactNumber2: model.Optional(req.ContactNumber2),
		Address:        strings.TrimSpace(req.Address),
		EmailID:        strings.TrimSpace(req.EmailID),
	}
	if err := service.Email("Email ID", &department.EmailID); err != nil {
		return nil, err
	}

	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Departments.Create(ctx, department); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionCreate, model.EntityDepartment, department.ID, department)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionCreate, model.EntityDepartment, department.ID)
	return department, nil
}

func (s *Service) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	return s.get(ctx, s.Store.Repositories(), id)
}

func (s *Service) get(ctx context.Context, repos repository.Repositories, id string) (*model.Department, error) {
	if !recordid.Valid(recordid.Department, id) {
		return nil, apperrors.InvalidID(label)
	}
	department, err := repos.Departments.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if department == nil {
		return nil, apperrors.InvalidID(label)
	}
	return department, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	var department *model.Department
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if department, err = s.get(ctx, repos, id); err != nil {
			return err
		}

		if err := service.SetRequired(&department.Description, "Description", req.Description); err != nil {
			return err
		}
		if err := service.SetRequired(&department.ContactNumber1, "Contact number", req.ContactNumber1); err != nil {
			return err
		}
		service.SetOptional(&department.ContactNumber2, req.ContactNumber2)
		if err := service.SetRequired(&department.Address, "Address", req.Address); err != nil {
			return err
		}
		if err := service.SetRequired(&department.EmailID, "Email ID", req.EmailID); err != nil {
			return err
		}
		if err := service.Email("Email ID", &department.EmailID); err != nil {
			return err
		}

		if err := repos.Departments.Update(ctx, department); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionUpdate, model.EntityDepartment, id, req)
	})
	if err != nil {
		return nil, service.WriteError(err, label)
	}

	s.Audit.Notify(ctx, model.AuditActionUpdate, model.EntityDepartment, id)
	return department, nil
}

func (s *Service) PrepareDeletion(ctx context.Context, id string) (*model.DeletionTicket, error) {
	department, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Ticket(model.EntityDepartment, id, department), nil
}

// DeleteDepartment fails with 409 while doctors still reference the department.
func (s *Service) DeleteDepartment(ctx context.Context, id, token string) error {
	err := s.Store.WithTx(ctx, func(repos repository.Repositories) error {
		if _, err := s.get(ctx, repos, id); err != nil {
			return err
		}
		if err := s.Confirm.Check(model.EntityDepartment, id, token); err != nil {
			return err
		}
		if err := repos.Departments.Delete(ctx, id); err != nil {
			return err
		}
		return s.Audit.Log(ctx, repos.Audit, model.AuditActionDelete, model.EntityDepartment, id, nil)
	})
	if err != nil {
		return service.StoreError(err, label)
	}

	s.Confirm.Revoke(token)
	s.Audit.Notify(ctx, model.AuditActionDelete, model.EntityDepartment, id)
	return nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.Store.Repositories().Departments.List(ctx)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return departments, nil
}

func (s *Service) ListDepartmentDoctors(ctx context.Context, id string) ([]*model.DoctorSummary, error) {
	repos := s.Store.Repositories()
	if !recordid.Valid(recordid.Department, id) {
		return nil, apperrors.InvalidID(label)
	}
	ok, err := repos.References.Verify(ctx, model.EntityDepartment, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	if !ok {
		return nil, apperrors.InvalidID(label)
	}

	doctors, err := repos.Doctors.ListByDepartment(ctx, id)
	if err != nil {
		return nil, service.StoreError(err, label)
	}
	return doctors, nil
}
