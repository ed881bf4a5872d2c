package sqlstore

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hims-api/internal/model"
)

const medicalTestColumns = `id, test_name, patient_id, patient_name, doctor_id, doctor_name,
	medical_lab_scientist_id, test_date_time, result_date_time, result_and_diagnosis,
	description, comments, cost`

type medicalTestRepository struct {
	baseRepository
}

func (r *medicalTestRepository) Create(ctx context.Context, test *model.MedicalTest) error {
	query := `
		INSERT INTO medical_test_record (` + medicalTestColumns + `)
		VALUES (
			:id, :test_name, :patient_id, :patient_name, :doctor_id, :doctor_name,
			:medical_lab_scientist_id, :test_date_time, :result_date_time, :result_and_diagnosis,
			:description, :comments, :cost
		)
	`
	if err := r.namedExec(ctx, "medical_test_create", query, test); err != nil {
		return fmt.Errorf("failed to create medical test: %w", err)
	}
	return nil
}

func (r *medicalTestRepository) Get(ctx context.Context, id string) (*model.MedicalTest, error) {
	var test model.MedicalTest
	found, err := r.get(ctx, "medical_test_get", &test,
		`SELECT `+medicalTestColumns+` FROM medical_test_record WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get medical test: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &test, nil
}

func (r *medicalTestRepository) Update(ctx context.Context, test *model.MedicalTest) error {
	query := `
		UPDATE medical_test_record
		SET result_and_diagnosis = :result_and_diagnosis,
			description = :description,
			comments = :comments
		WHERE id = :id
	`
	if err := r.namedExec(ctx, "medical_test_update", query, test); err != nil {
		return fmt.Errorf("failed to update medical test: %w", err)
	}
	return nil
}

func (r *medicalTestRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, "medical_test_delete", "medical_test_record", id); err != nil {
		return fmt.Errorf("failed to delete medical test: %w", err)
	}
	return nil
}

func (r *medicalTestRepository) List(ctx context.Context) ([]*model.MedicalTest, error) {
	var tests []*model.MedicalTest
	if err := r.selectAll(ctx, "medical_test_list", &tests,
		`SELECT `+medicalTestColumns+` FROM medical_test_record`); err != nil {
		return nil, fmt.Errorf("failed to list medical tests: %w", err)
	}
	return tests, nil
}

func (r *medicalTestRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.MedicalTest, error) {
	var tests []*model.MedicalTest
	if err := r.selectAll(ctx, "medical_test_list_by_patient", &tests,
		`SELECT `+medicalTestColumns+` FROM medical_test_record WHERE patient_id = ?`, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient medical tests: %w", err)
	}
	return tests, nil
}
