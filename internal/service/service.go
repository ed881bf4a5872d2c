// Package service holds what the record services share: their
// dependencies, field checks and the mapping of store failures onto
// application errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hims-api/internal/listing"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/internal/service/audit"
	"github.com/jwalitptl/hims-api/internal/service/confirm"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
	"github.com/jwalitptl/hims-api/pkg/logger"
)

// DuplicateIDMessage is returned when a generated identifier is already taken.
const DuplicateIDMessage = "A record with the same generated ID already exists; please retry"

// Deps are the collaborators every record service needs.
type Deps struct {
	Store   repository.UnitOfWork
	Audit   *audit.Service
	Confirm *confirm.Service
	Logger  *logger.Logger
	Now     func() time.Time
}

// Clock returns the configured time source or time.Now.
func (d Deps) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Ticket is the first step of a deletion.
func (d Deps) Ticket(entity, id string, record listing.Fielder) *model.DeletionTicket {
	token, expiresAt := d.Confirm.Issue(entity, id)
	return &model.DeletionTicket{
		Token:     token,
		ExpiresAt: expiresAt,
		Record:    listing.Render([][]listing.Field{record.Fields()}),
	}
}

// Field is a named value checked by Required.
type Field struct {
	Name  string
	Value string
}

// Required fails on the first blank field.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return apperrors.BadRequest(fmt.Sprintf("%s is required", f.Name), nil)
		}
	}
	return nil
}

// SetRequired applies a patch to a mandatory column: nil keeps the value,
// blank is rejected.
func SetRequired(dst *string, name string, v *string) error {
	if v == nil {
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return apperrors.BadRequest(fmt.Sprintf("%s cannot be empty", name), nil)
	}
	*dst = strings.TrimSpace(*v)
	return nil
}

// SetOptional applies a patch to a nullable column: nil keeps the value,
// blank clears it to NULL.
func SetOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	*dst = model.Optional(v)
}

var formats = validator.New()

// Email checks the format of an address that has already been normalized; nil
// means no address and passes.
func Email(name string, v *string) error {
	if v == nil {
		return nil
	}
	if err := formats.Var(*v, "email"); err != nil {
		return apperrors.BadRequest(fmt.Sprintf("%s must be a valid email address", name), err)
	}
	return nil
}

// SetInt applies a numeric patch.
func SetInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// StoreError maps repository failures for label ("Department", ...) onto
// application errors.
func StoreError(err error, label string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrUniqueViolation):
		return apperrors.Conflict(DuplicateIDMessage, fmt.Errorf("%w: %v", apperrors.ErrDuplicateID, err))
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return apperrors.InUse(err)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.InvalidID(label)
	default:
		return apperrors.Internal(err)
	}
}

// WriteError is StoreError for inserts and updates, where a foreign key
// failure means a referenced row vanished rather than that this row is in use.
func WriteError(err error, label string) error {
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		return apperrors.BadRequest("Referenced record no longer exists", apperrors.ErrInvalidRef)
	}
	return StoreError(err, label)
}

// Reference resolves a referenced id and its display name inside repos,
// failing with "Invalid <label> ID" when it does not exist.
func Reference(ctx context.Context, repos repository.Repositories, entity, label, id string) (string, error) {
	ok, err := repos.References.Verify(ctx, entity, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.InvalidReference(label)
	}
	return repos.References.DisplayName(ctx, entity, id)
}
