package sqlstore

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hims-api/internal/model"
)

const patientColumns = `id, name, age, gender, date_of_birth, blood_group, contact_number_1,
	contact_number_2, aadhar_or_voter_id, weight, height, address, city, state, pin_code,
	next_of_kin_name, next_of_kin_relation_to_patient, next_of_kin_contact_number, email_id,
	date_of_registration, time_of_registration`

type patientRepository struct {
	baseRepository
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patient_record (` + patientColumns + `)
		VALUES (
			:id, :name, :age, :gender, :date_of_birth, :blood_group, :contact_number_1,
			:contact_number_2, :aadhar_or_voter_id, :weight, :height, :address, :city, :state, :pin_code,
			:next_of_kin_name, :next_of_kin_relation_to_patient, :next_of_kin_contact_number, :email_id,
			:date_of_registration, :time_of_registration
		)
	`
	if err := r.namedExec(ctx, "patient_create", query, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	var patient model.Patient
	found, err := r.get(ctx, "patient_get", &patient,
		`SELECT `+patientColumns+` FROM patient_record WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patient_record
		SET age = :age,
			contact_number_1 = :contact_number_1,
			contact_number_2 = :contact_number_2,
			weight = :weight,
			height = :height,
			address = :address,
			city = :city,
			state = :state,
			pin_code = :pin_code,
			next_of_kin_name = :next_of_kin_name,
			next_of_kin_relation_to_patient = :next_of_kin_relation_to_patient,
			next_of_kin_contact_number = :next_of_kin_contact_number,
			email_id = :email_id
		WHERE id = :id
	`
	if err := r.namedExec(ctx, "patient_update", query, patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, "patient_delete", "patient_record", id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := r.selectAll(ctx, "patient_list", &patients,
		`SELECT `+patientColumns+` FROM patient_record`); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
