package model

import "github.com/jwalitptl/hims-api/internal/listing"

// ResultAwaited is stored when a medical test has no result yet.
const ResultAwaited = "Test result awaited"

type MedicalTest struct {
	ID                    string  `db:"id" json:"id"`
	TestName              string  `db:"test_name" json:"test_name"`
	PatientID             string  `db:"patient_id" json:"patient_id"`
	PatientName           string  `db:"patient_name" json:"patient_name"`
	DoctorID              string  `db:"doctor_id" json:"doctor_id"`
	DoctorName            string  `db:"doctor_name" json:"doctor_name"`
	MedicalLabScientistID string  `db:"medical_lab_scientist_id" json:"medical_lab_scientist_id"`
	TestDateTime          string  `db:"test_date_time" json:"test_date_time"`
	ResultDateTime        string  `db:"result_date_time" json:"result_date_time"`
	ResultAndDiagnosis    string  `db:"result_and_diagnosis" json:"result_and_diagnosis"`
	Description           *string `db:"description" json:"description"`
	Comments              *string `db:"comments" json:"comments"`
	Cost                  int     `db:"cost" json:"cost"`
}

func (m MedicalTest) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Medical Test ID", m.ID),
		listing.Text("Test name", m.TestName),
		listing.Text("Patient ID", m.PatientID),
		listing.Text("Patient name", m.PatientName),
		listing.Text("Doctor ID", m.DoctorID),
		listing.Text("Doctor name", m.DoctorName),
		listing.Text("Medical Lab Scientist ID", m.MedicalLabScientistID),
		listing.Text("Test date and time [DD-MM-YYYY (hh:mm)]", m.TestDateTime),
		listing.Text("Result date and time [DD-MM-YYYY (hh:mm)]", m.ResultDateTime),
		listing.Text("Result and diagnosis", m.ResultAndDiagnosis),
		listing.Optional("Description", m.Description),
		listing.Optional("Comments", m.Comments),
		listing.Number("Cost (INR)", m.Cost),
	}
}

type CreateMedicalTestRequest struct {
	TestName              string  `json:"test_name" binding:"required"`
	PatientID             string  `json:"patient_id" binding:"required,recordid=P"`
	DoctorID              string  `json:"doctor_id" binding:"required,recordid=DR"`
	MedicalLabScientistID string  `json:"medical_lab_scientist_id" binding:"required"`
	TestDateTime          string  `json:"test_date_time" binding:"required,datetime=2006-01-02T15:04"`
	ResultDateTime        string  `json:"result_date_time" binding:"required,datetime=2006-01-02T15:04"`
	ResultAndDiagnosis    *string `json:"result_and_diagnosis"`
	Description           *string `json:"description"`
	Comments              *string `json:"comments"`
	Cost                  int     `json:"cost" binding:"min=0,max=10000"`
}

// UpdateMedicalTestRequest holds the mutable subset. A blank result resets it
// to ResultAwaited.
type UpdateMedicalTestRequest struct {
	ResultAndDiagnosis *string `json:"result_and_diagnosis"`
	Description        *string `json:"description"`
	Comments           *string `json:"comments"`
}
