package sqlstore

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hims-api/internal/model"
)

const doctorColumns = `id, name, age, gender, date_of_birth, blood_group, department_id,
	department_name, contact_number_1, contact_number_2, aadhar_or_voter_id, email_id,
	qualification, specialisation, years_of_experience, address, city, state, pin_code`

type doctorRepository struct {
	baseRepository
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctor_record (` + doctorColumns + `)
		VALUES (
			:id, :name, :age, :gender, :date_of_birth, :blood_group, :department_id,
			:department_name, :contact_number_1, :contact_number_2, :aadhar_or_voter_id, :email_id,
			:qualification, :specialisation, :years_of_experience, :address, :city, :state, :pin_code
		)
	`
	if err := r.namedExec(ctx, "doctor_create", query, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id string) (*model.Doctor, error) {
	var doctor model.Doctor
	found, err := r.get(ctx, "doctor_get", &doctor,
		`SELECT `+doctorColumns+` FROM doctor_record WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctor_record
		SET age = :age,
			department_id = :department_id,
			department_name = :department_name,
			contact_number_1 = :contact_number_1,
			contact_number_2 = :contact_number_2,
			email_id = :email_id,
			qualification = :qualification,
			specialisation = :specialisation,
			years_of_experience = :years_of_experience,
			address = :address,
			city = :city,
			state = :state,
			pin_code = :pin_code
		WHERE id = :id
	`
	if err := r.namedExec(ctx, "doctor_update", query, doctor); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, "doctor_delete", "doctor_record", id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if err := r.selectAll(ctx, "doctor_list", &doctors,
		`SELECT `+doctorColumns+` FROM doctor_record`); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListByDepartment(ctx context.Context, departmentID string) ([]*model.DoctorSummary, error) {
	var doctors []*model.DoctorSummary
	if err := r.selectAll(ctx, "doctor_list_by_department", &doctors,
		`SELECT id, name FROM doctor_record WHERE department_id = ?`, departmentID); err != nil {
		return nil, fmt.Errorf("failed to list department doctors: %w", err)
	}
	return doctors, nil
}
