package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service"
)

// Records are rows seeded directly through the store.
type Records struct {
	Department *model.Department
	Doctor     *model.Doctor
	Patient    *model.Patient
}

// Seed inserts one department, one doctor in it and one patient.
func Seed(t testing.TB, deps service.Deps) Records {
	t.Helper()
	ctx := context.Background()
	repos := deps.Store.Repositories()

	r := Records{Department: Department("D-000001-240301", "Cardiology")}
	r.Doctor = Doctor("DR-000001-240301", "Dr. Rao", r.Department)
	r.Patient = Patient("P-000001-240301", "Ravi Kumar")

	require.NoError(t, repos.Departments.Create(ctx, r.Department))
	require.NoError(t, repos.Doctors.Create(ctx, r.Doctor))
	require.NoError(t, repos.Patients.Create(ctx, r.Patient))
	return r
}
