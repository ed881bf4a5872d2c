package model

import "github.com/jwalitptl/hims-api/internal/listing"

type Doctor struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	Age               int     `db:"age" json:"age"`
	Gender            string  `db:"gender" json:"gender"`
	DateOfBirth       string  `db:"date_of_birth" json:"date_of_birth"`
	BloodGroup        string  `db:"blood_group" json:"blood_group"`
	DepartmentID      string  `db:"department_id" json:"department_id"`
	DepartmentName    string  `db:"department_name" json:"department_name"`
	ContactNumber1    string  `db:"contact_number_1" json:"contact_number_1"`
	ContactNumber2    *string `db:"contact_number_2" json:"contact_number_2"`
	AadharOrVoterID   string  `db:"aadhar_or_voter_id" json:"aadhar_or_voter_id"`
	EmailID           string  `db:"email_id" json:"email_id"`
	Qualification     string  `db:"qualification" json:"qualification"`
	Specialisation    string  `db:"specialisation" json:"specialisation"`
	YearsOfExperience int     `db:"years_of_experience" json:"years_of_experience"`
	Address           string  `db:"address" json:"address"`
	City              string  `db:"city" json:"city"`
	State             string  `db:"state" json:"state"`
	PinCode           string  `db:"pin_code" json:"pin_code"`
}

func (d Doctor) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Doctor ID", d.ID),
		listing.Text("Name", d.Name),
		listing.Number("Age", d.Age),
		listing.Text("Gender", d.Gender),
		listing.Text("Date of birth (DD-MM-YYYY)", d.DateOfBirth),
		listing.Text("Blood group", d.BloodGroup),
		listing.Text("Department ID", d.DepartmentID),
		listing.Text("Department name", d.DepartmentName),
		listing.Text("Contact number", d.ContactNumber1),
		listing.Optional("Alternate contact number", d.ContactNumber2),
		listing.Text("Aadhar ID / Voter ID", d.AadharOrVoterID),
		listing.Text("Email ID", d.EmailID),
		listing.Text("Qualification", d.Qualification),
		listing.Text("Specialisation", d.Specialisation),
		listing.Number("Years of experience", d.YearsOfExperience),
		listing.Text("Address", d.Address),
		listing.Text("City", d.City),
		listing.Text("State", d.State),
		listing.Text("PIN code", d.PinCode),
	}
}

// DoctorSummary is the row shown when listing the doctors of a department.
type DoctorSummary struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

func (d DoctorSummary) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Doctor ID", d.ID),
		listing.Text("Name", d.Name),
	}
}

type CreateDoctorRequest struct {
	Name              string  `json:"name" binding:"required"`
	Gender            string  `json:"gender" binding:"required"`
	DateOfBirth       string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	BloodGroup        string  `json:"blood_group" binding:"required"`
	DepartmentID      string  `json:"department_id" binding:"required,recordid=D"`
	ContactNumber1    string  `json:"contact_number_1" binding:"required"`
	ContactNumber2    *string `json:"contact_number_2"`
	AadharOrVoterID   string  `json:"aadhar_or_voter_id" binding:"required"`
	EmailID           string  `json:"email_id" binding:"required,email"`
	Qualification     string  `json:"qualification" binding:"required"`
	Specialisation    string  `json:"specialisation" binding:"required"`
	YearsOfExperience int     `json:"years_of_experience" binding:"min=0,max=100"`
	Address           string  `json:"address" binding:"required"`
	City              string  `json:"city" binding:"required"`
	State             string  `json:"state" binding:"required"`
	PinCode           string  `json:"pin_code" binding:"required"`
}

// UpdateDoctorRequest holds the mutable subset. Identity, birth date and blood
// group are fixed at creation; age is recomputed.
type UpdateDoctorRequest struct {
	DepartmentID      *string `json:"department_id" binding:"omitempty,recordid=D"`
	ContactNumber1    *string `json:"contact_number_1" binding:"omitempty,min=1"`
	ContactNumber2    *string `json:"contact_number_2"`
	EmailID           *string `json:"email_id"`
	Qualification     *string `json:"qualification" binding:"omitempty,min=1"`
	Specialisation    *string `json:"specialisation" binding:"omitempty,min=1"`
	YearsOfExperience *int    `json:"years_of_experience" binding:"omitempty,min=0,max=100"`
	Address           *string `json:"address" binding:"omitempty,min=1"`
	City              *string `json:"city" binding:"omitempty,min=1"`
	State             *string `json:"state" binding:"omitempty,min=1"`
	PinCode           *string `json:"pin_code" binding:"omitempty,min=1"`
}
