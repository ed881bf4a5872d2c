package model

import "github.com/jwalitptl/hims-api/internal/listing"

type Prescription struct {
	ID                         string  `db:"id" json:"id"`
	PatientID                  string  `db:"patient_id" json:"patient_id"`
	PatientName                string  `db:"patient_name" json:"patient_name"`
	DoctorID                   string  `db:"doctor_id" json:"doctor_id"`
	DoctorName                 string  `db:"doctor_name" json:"doctor_name"`
	Diagnosis                  string  `db:"diagnosis" json:"diagnosis"`
	Comments                   *string `db:"comments" json:"comments"`
	Medicine1Name              string  `db:"medicine_1_name" json:"medicine_1_name"`
	Medicine1DosageDescription string  `db:"medicine_1_dosage_description" json:"medicine_1_dosage_description"`
	Medicine2Name              *string `db:"medicine_2_name" json:"medicine_2_name"`
	Medicine2DosageDescription *string `db:"medicine_2_dosage_description" json:"medicine_2_dosage_description"`
	Medicine3Name              *string `db:"medicine_3_name" json:"medicine_3_name"`
	Medicine3DosageDescription *string `db:"medicine_3_dosage_description" json:"medicine_3_dosage_description"`
}

func (p Prescription) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Prescription ID", p.ID),
		listing.Text("Patient ID", p.PatientID),
		listing.Text("Patient name", p.PatientName),
		listing.Text("Doctor ID", p.DoctorID),
		listing.Text("Doctor name", p.DoctorName),
		listing.Text("Diagnosis", p.Diagnosis),
		listing.Optional("Comments", p.Comments),
		listing.Text("Medicine 1 name", p.Medicine1Name),
		listing.Text("Medicine 1 dosage and description", p.Medicine1DosageDescription),
		listing.Optional("Medicine 2 name", p.Medicine2Name),
		listing.Optional("Medicine 2 dosage and description", p.Medicine2DosageDescription),
		listing.Optional("Medicine 3 name", p.Medicine3Name),
		listing.Optional("Medicine 3 dosage and description", p.Medicine3DosageDescription),
	}
}

type CreatePrescriptionRequest struct {
	PatientID                  string  `json:"patient_id" binding:"required,recordid=P"`
	DoctorID                   string  `json:"doctor_id" binding:"required,recordid=DR"`
	Diagnosis                  string  `json:"diagnosis" binding:"required"`
	Comments                   *string `json:"comments"`
	Medicine1Name              string  `json:"medicine_1_name" binding:"required"`
	Medicine1DosageDescription string  `json:"medicine_1_dosage_description" binding:"required"`
	Medicine2Name              *string `json:"medicine_2_name"`
	Medicine2DosageDescription *string `json:"medicine_2_dosage_description"`
	Medicine3Name              *string `json:"medicine_3_name"`
	Medicine3DosageDescription *string `json:"medicine_3_dosage_description"`
}

// UpdatePrescriptionRequest holds the mutable subset; the patient and doctor
// references are fixed.
type UpdatePrescriptionRequest struct {
	Diagnosis                  *string `json:"diagnosis" binding:"omitempty,min=1"`
	Comments                   *string `json:"comments"`
	Medicine1Name              *string `json:"medicine_1_name" binding:"omitempty,min=1"`
	Medicine1DosageDescription *string `json:"medicine_1_dosage_description" binding:"omitempty,min=1"`
	Medicine2Name              *string `json:"medicine_2_name"`
	Medicine2DosageDescription *string `json:"medicine_2_dosage_description"`
	Medicine3Name              *string `json:"medicine_3_name"`
	Medicine3DosageDescription *string `json:"medicine_3_dosage_description"`
}
