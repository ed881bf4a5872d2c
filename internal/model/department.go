package model

import "github.com/jwalitptl/hims-api/internal/listing"

type Department struct {
	ID             string  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Description    string  `db:"description" json:"description"`
	ContactNumber1 string  `db:"contact_number_1" json:"contact_number_1"`
	ContactNumber2 *string `db:"contact_number_2" json:"contact_number_2"`
	Address        string  `db:"address" json:"address"`
	EmailID        string  `db:"email_id" json:"email_id"`
}

func (d Department) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Department ID", d.ID),
		listing.Text("Department name", d.Name),
		listing.Text("Description", d.Description),
		listing.Text("Contact number", d.ContactNumber1),
		listing.Optional("Alternate contact number", d.ContactNumber2),
		listing.Text("Address", d.Address),
		listing.Text("Email ID", d.EmailID),
	}
}

type CreateDepartmentRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	ContactNumber1 string  `json:"contact_number_1" binding:"required"`
	ContactNumber2 *string `json:"contact_number_2"`
	Address        string  `json:"address" binding:"required"`
	EmailID        string  `json:"email_id" binding:"required,email"`
}

// UpdateDepartmentRequest holds the mutable subset. The name is fixed at creation.
type UpdateDepartmentRequest struct {
	Description    *string `json:"description" binding:"omitempty,min=1"`
	ContactNumber1 *string `json:"contact_number_1" binding:"omitempty,min=1"`
	ContactNumber2 *string `json:"contact_number_2"`
	Address        *string `json:"address" binding:"omitempty,min=1"`
	EmailID        *string `json:"email_id"`
}
