package sqlstore

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hims-api/internal/model"
)

const prescriptionColumns = `id, patient_id, patient_name, doctor_id, doctor_name, diagnosis,
	comments, medicine_1_name, medicine_1_dosage_description, medicine_2_name,
	medicine_2_dosage_description, medicine_3_name, medicine_3_dosage_description`

type prescriptionRepository struct {
	baseRepository
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescription_record (` + prescriptionColumns + `)
		VALUES (
			:id, :patient_id, :patient_name, :doctor_id, :doctor_name, :diagnosis,
			:comments, :medicine_1_name, :medicine_1_dosage_description, :medicine_2_name,
			:medicine_2_dosage_description, :medicine_3_name, :medicine_3_dosage_description
		)
	`
	if err := r.namedExec(ctx, "prescription_create", query, prescription); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id string) (*model.Prescription, error) {
	var prescription model.Prescription
	found, err := r.get(ctx, "prescription_get", &prescription,
		`SELECT `+prescriptionColumns+` FROM prescription_record WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescription_record
		SET diagnosis = :diagnosis,
			comments = :comments,
			medicine_1_name = :medicine_1_name,
			medicine_1_dosage_description = :medicine_1_dosage_description,
			medicine_2_name = :medicine_2_name,
			medicine_2_dosage_description = :medicine_2_dosage_description,
			medicine_3_name = :medicine_3_name,
			medicine_3_dosage_description = :medicine_3_dosage_description
		WHERE id = :id
	`
	if err := r.namedExec(ctx, "prescription_update", query, prescription); err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, "prescription_delete", "prescription_record", id); err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.selectAll(ctx, "prescription_list", &prescriptions,
		`SELECT `+prescriptionColumns+` FROM prescription_record`); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.selectAll(ctx, "prescription_list_by_patient", &prescriptions,
		`SELECT `+prescriptionColumns+` FROM prescription_record WHERE patient_id = ?`, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}
