package sqlstore

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hims-api/internal/model"
)

const departmentColumns = `id, name, description, contact_number_1, contact_number_2, address, email_id`

type departmentRepository struct {
	baseRepository
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	query := `
		INSERT INTO department_record (` + departmentColumns + `)
		VALUES (:id, :name, :description, :contact_number_1, :contact_number_2, :address, :email_id)
	`
	if err := r.namedExec(ctx, "department_create", query, department); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id string) (*model.Department, error) {
	var department model.Department
	found, err := r.get(ctx, "department_get", &department,
		`SELECT `+departmentColumns+` FROM department_record WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	query := `
		UPDATE department_record
		SET description = :description,
			contact_number_1 = :contact_number_1,
			contact_number_2 = :contact_number_2,
			address = :address,
			email_id = :email_id
		WHERE id = :id
	`
	if err := r.namedExec(ctx, "department_update", query, department); err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, "department_delete", "department_record", id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	var departments []*model.Department
	if err := r.selectAll(ctx, "department_list", &departments,
		`SELECT `+departmentColumns+` FROM department_record`); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
