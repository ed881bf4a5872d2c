package model

import "github.com/jwalitptl/hims-api/internal/listing"

type Patient struct {
	ID                         string  `db:"id" json:"id"`
	Name                       string  `db:"name" json:"name"`
	Age                        int     `db:"age" json:"age"`
	Gender                     string  `db:"gender" json:"gender"`
	DateOfBirth                string  `db:"date_of_birth" json:"date_of_birth"`
	BloodGroup                 string  `db:"blood_group" json:"blood_group"`
	ContactNumber1             string  `db:"contact_number_1" json:"contact_number_1"`
	ContactNumber2             *string `db:"contact_number_2" json:"contact_number_2"`
	AadharOrVoterID            string  `db:"aadhar_or_voter_id" json:"aadhar_or_voter_id"`
	Weight                     int     `db:"weight" json:"weight"`
	Height                     int     `db:"height" json:"height"`
	Address                    string  `db:"address" json:"address"`
	City                       string  `db:"city" json:"city"`
	State                      string  `db:"state" json:"state"`
	PinCode                    string  `db:"pin_code" json:"pin_code"`
	NextOfKinName              string  `db:"next_of_kin_name" json:"next_of_kin_name"`
	NextOfKinRelationToPatient string  `db:"next_of_kin_relation_to_patient" json:"next_of_kin_relation_to_patient"`
	NextOfKinContactNumber     string  `db:"next_of_kin_contact_number" json:"next_of_kin_contact_number"`
	EmailID                    *string `db:"email_id" json:"email_id"`
	DateOfRegistration         string  `db:"date_of_registration" json:"date_of_registration"`
	TimeOfRegistration         string  `db:"time_of_registration" json:"time_of_registration"`
}

func (p Patient) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Patient ID", p.ID),
		listing.Text("Name", p.Name),
		listing.Number("Age", p.Age),
		listing.Text("Gender", p.Gender),
		listing.Text("Date of birth (DD-MM-YYYY)", p.DateOfBirth),
		listing.Text("Blood group", p.BloodGroup),
		listing.Text("Contact number", p.ContactNumber1),
		listing.Optional("Alternate contact number", p.ContactNumber2),
		listing.Text("Aadhar ID / Voter ID", p.AadharOrVoterID),
		listing.Number("Weight (kg)", p.Weight),
		listing.Number("Height (cm)", p.Height),
		listing.Text("Address", p.Address),
		listing.Text("City", p.City),
		listing.Text("State", p.State),
		listing.Text("PIN code", p.PinCode),
		listing.Text("Next of kin's name", p.NextOfKinName),
		listing.Text("Next of kin's relation to patient", p.NextOfKinRelationToPatient),
		listing.Text("Next of kin's contact number", p.NextOfKinContactNumber),
		listing.Optional("Email ID", p.EmailID),
		listing.Text("Date of registration (DD-MM-YYYY)", p.DateOfRegistration),
		listing.Text("Time of registration (hh:mm:ss)", p.TimeOfRegistration),
	}
}

type CreatePatientRequest struct {
	Name                       string  `json:"name" binding:"required"`
	Gender                     string  `json:"gender" binding:"required"`
	DateOfBirth                string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	BloodGroup                 string  `json:"blood_group" binding:"required"`
	ContactNumber1             string  `json:"contact_number_1" binding:"required"`
	ContactNumber2             *string `json:"contact_number_2"`
	AadharOrVoterID            string  `json:"aadhar_or_voter_id" binding:"required"`
	Weight                     int     `json:"weight" binding:"min=0,max=400"`
	Height                     int     `json:"height" binding:"min=0,max=275"`
	Address                    string  `json:"address" binding:"required"`
	City                       string  `json:"city" binding:"required"`
	State                      string  `json:"state" binding:"required"`
	PinCode                    string  `json:"pin_code" binding:"required"`
	NextOfKinName              string  `json:"next_of_kin_name" binding:"required"`
	NextOfKinRelationToPatient string  `json:"next_of_kin_relation_to_patient" binding:"required"`
	NextOfKinContactNumber     string  `json:"next_of_kin_contact_number" binding:"required"`
	EmailID                    *string `json:"email_id"`
}

// UpdatePatientRequest holds the mutable subset. Identity, birth date, blood
// group and registration time are fixed; age is recomputed.
type UpdatePatientRequest struct {
	ContactNumber1             *string `json:"contact_number_1" binding:"omitempty,min=1"`
	ContactNumber2             *string `json:"contact_number_2"`
	Weight                     *int    `json:"weight" binding:"omitempty,min=0,max=400"`
	Height                     *int    `json:"height" binding:"omitempty,min=0,max=275"`
	Address                    *string `json:"address" binding:"omitempty,min=1"`
	City                       *string `json:"city" binding:"omitempty,min=1"`
	State                      *string `json:"state" binding:"omitempty,min=1"`
	PinCode                    *string `json:"pin_code" binding:"omitempty,min=1"`
	NextOfKinName              *string `json:"next_of_kin_name" binding:"omitempty,min=1"`
	NextOfKinRelationToPatient *string `json:"next_of_kin_relation_to_patient" binding:"omitempty,min=1"`
	NextOfKinContactNumber     *string `json:"next_of_kin_contact_number" binding:"omitempty,min=1"`
	EmailID                    *string `json:"email_id"`
}
