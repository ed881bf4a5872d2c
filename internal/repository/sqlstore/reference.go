package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

// referenceTables whitelists the tables an entity name may resolve to.
var referenceTables = map[string]string{
	model.EntityDepartment:   "department_record",
	model.EntityDoctor:       "doctor_record",
	model.EntityPatient:      "patient_record",
	model.EntityPrescription: "prescription_record",
	model.EntityMedicalTest:  "medical_test_record",
}

// referenceValidator runs in the caller's transaction when bound to one and
// opens a short transaction of its own otherwise.
type referenceValidator struct {
	db      *sqlx.DB
	tx      *sqlx.Tx
	metrics *metrics.Metrics
}

func (v *referenceValidator) Verify(ctx context.Context, entity, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	table, ok := referenceTables[entity]
	if !ok {
		return false, fmt.Errorf("unknown entity %q", entity)
	}

	var exists bool
	start := time.Now()
	err := v.run(ctx, func(ext sqlx.ExtContext) error {
		query := ext.Rebind(`SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = ?)`)
		return sqlx.GetContext(ctx, ext, &exists, query, id)
	})
	v.metrics.ObserveDB("reference_verify", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to verify %s id: %w", entity, err)
	}
	return exists, nil
}

// DisplayName is defined for departments, doctors and patients, the entities
// whose names are copied into referencing rows.
func (v *referenceValidator) DisplayName(ctx context.Context, entity, id string) (string, error) {
	switch entity {
	case model.EntityDepartment, model.EntityDoctor, model.EntityPatient:
	default:
		return "", fmt.Errorf("entity %q has no display name", entity)
	}

	var name string
	start := time.Now()
	err := v.run(ctx, func(ext sqlx.ExtContext) error {
		query := ext.Rebind(`SELECT name FROM ` + referenceTables[entity] + ` WHERE id = ?`)
		return sqlx.GetContext(ctx, ext, &name, query, id)
	})
	v.metrics.ObserveDB("reference_display_name", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to get %s name: %w", entity, err)
	}
	return name, nil
}

func (v *referenceValidator) run(ctx context.Context, fn func(sqlx.ExtContext) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}

	tx, err := v.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
