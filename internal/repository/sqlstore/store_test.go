package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/internal/testutil"
)

// seed stores one department, doctor and patient plus a prescription and a
// medical test referencing them.
func seed(t *testing.T, repos repository.Repositories) (*model.Department, *model.Doctor, *model.Patient) {
	t.Helper()
	ctx := context.Background()

	dept := testutil.Department("D-452310-240301", "Cardiology")
	require.NoError(t, repos.Departments.Create(ctx, dept))

	doc := testutil.Doctor("DR-462310-240301", "Dr. Meera Rao", dept)
	require.NoError(t, repos.Doctors.Create(ctx, doc))

	pat := testutil.Patient("P-452310-240301", "Rahul Verma")
	require.NoError(t, repos.Patients.Create(ctx, pat))

	return dept, doc, pat
}

func TestRoundTrip(t *testing.T) {
	store := testutil.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	dept, doc, pat := seed(t, repos)

	gotDept, err := repos.Departments.Get(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, dept, gotDept)
	assert.Nil(t, gotDept.ContactNumber2)

	gotDoc, err := repos.Doctors.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, gotDoc)

	gotPat, err := repos.Patients.Get(ctx, pat.ID)
	require.NoError(t, err)
	assert.Equal(t, pat, gotPat)
	assert.Nil(t, gotPat.EmailID)

	rx := testutil.Prescription("M-472310-240301", pat, doc)
	require.NoError(t, repos.Prescriptions.Create(ctx, rx))
	gotRx, err := repos.Prescriptions.Get(ctx, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, rx, gotRx)

	mt := testutil.MedicalTest("T-482310-240301", pat, doc)
	require.NoError(t, repos.MedicalTests.Create(ctx, mt))
	gotMT, err := repos.MedicalTests.Get(ctx, mt.ID)
	require.NoError(t, err)
	assert.Equal(t, mt, gotMT)
}

func TestGetMissingReturnsNil(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()

	dept, err := repos.Departments.Get(context.Background(), "D-000000-000000")
	require.NoError(t, err)
	assert.Nil(t, dept)
}

func TestCreateDuplicateID(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Departments.Create(ctx, testutil.Department("D-452310-240301", "Cardiology")))
	err := repos.Departments.Create(ctx, testutil.Department("D-452310-240301", "Neurology"))
	assert.True(t, errors.Is(err, repository.ErrUniqueViolation), "got %v", err)

	got, err := repos.Departments.Get(ctx, "D-452310-240301")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Name)
}

func TestCreateWithUnknownReferenceFails(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ghost := testutil.Department("D-999999-999999", "Ghost")

	err := repos.Doctors.Create(context.Background(), testutil.Doctor("DR-462310-240301", "Dr. Nobody", ghost))
	assert.True(t, errors.Is(err, repository.ErrForeignKeyViolation), "got %v", err)
}

func TestDeleteWithDependentsFails(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ctx := context.Background()
	dept, doc, _ := seed(t, repos)

	err := repos.Departments.Delete(ctx, dept.ID)
	assert.True(t, errors.Is(err, repository.ErrForeignKeyViolation), "got %v", err)

	// Nothing changed.
	departments, err := repos.Departments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 1)
	doctors, err := repos.Doctors.ListByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doc.ID, doctors[0].ID)

	// A second attempt fails the same way.
	err = repos.Departments.Delete(ctx, dept.ID)
	assert.True(t, errors.Is(err, repository.ErrForeignKeyViolation))
}

func TestDeleteRemovesExactlyOneRow(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Patients.Create(ctx, testutil.Patient("P-452310-240301", "Rahul Verma")))
	require.NoError(t, repos.Patients.Create(ctx, testutil.Patient("P-462310-240301", "Priya Shah")))

	require.NoError(t, repos.Patients.Delete(ctx, "P-452310-240301"))

	gone, err := repos.Patients.Get(ctx, "P-452310-240301")
	require.NoError(t, err)
	assert.Nil(t, gone)

	remaining, err := repos.Patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "P-462310-240301", remaining[0].ID)

	err = repos.Patients.Delete(ctx, "P-452310-240301")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUpdateTouchesMutableSubsetOnly(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ctx := context.Background()
	dept, _, _ := seed(t, repos)

	changed := *dept
	changed.Name = "Renamed"
	changed.Description = "Heart care"
	alt := "0207654321"
	changed.ContactNumber2 = &alt
	require.NoError(t, repos.Departments.Update(ctx, &changed))

	got, err := repos.Departments.Get(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Name)
	assert.Equal(t, "Heart care", got.Description)
	require.NotNil(t, got.ContactNumber2)
	assert.Equal(t, alt, *got.ContactNumber2)
}

func TestListByPatient(t *testing.T) {
	repos := testutil.NewStore(t).Repositories()
	ctx := context.Background()
	_, doc, pat := seed(t, repos)

	other := testutil.Patient("P-552310-240301", "Someone Else")
	require.NoError(t, repos.Patients.Create(ctx, other))

	require.NoError(t, repos.Prescriptions.Create(ctx, testutil.Prescription("M-472310-240301", pat, doc)))
	require.NoError(t, repos.Prescriptions.Create(ctx, testutil.Prescription("M-482310-240301", pat, doc)))
	require.NoError(t, repos.Prescriptions.Create(ctx, testutil.Prescription("M-492310-240301", other, doc)))
	require.NoError(t, repos.MedicalTests.Create(ctx, testutil.MedicalTest("T-472310-240301", pat, doc)))

	prescriptions, err := repos.Prescriptions.ListByPatient(ctx, pat.ID)
	require.NoError(t, err)
	assert.Len(t, prescriptions, 2)

	tests, err := repos.MedicalTests.ListByPatient(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestReferenceValidator(t *testing.T) {
	store := testutil.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	dept, _, _ := seed(t, repos)

	tests := []struct {
		name   string
		entity string
		id     string
		want   bool
	}{
		{"existing department", model.EntityDepartment, dept.ID, true},
		{"unknown department", model.EntityDepartment, "D-000000-000000", false},
		{"empty id", model.EntityDoctor, "", false},
		{"id of another entity", model.EntityPatient, dept.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repos.References.Verify(ctx, tt.entity, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	_, err := repos.References.Verify(ctx, "ward", "W-1")
	assert.Error(t, err)

	name, err := repos.References.DisplayName(ctx, model.EntityDepartment, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", name)
}

func TestWithTxRollsBack(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Departments.Create(ctx, testutil.Department("D-452310-240301", "Cardiology")); err != nil {
			return err
		}
		ok, err := repos.References.Verify(ctx, model.EntityDepartment, "D-452310-240301")
		require.NoError(t, err)
		assert.True(t, ok, "validator sees the uncommitted row inside the transaction")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Repositories().Departments.Get(ctx, "D-452310-240301")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTxCommits(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Departments.Create(ctx, testutil.Department("D-452310-240301", "Cardiology")); err != nil {
			return err
		}
		return repos.Audit.Create(ctx, &model.AuditLog{
			ID:         "3b0c1b6e-5f7a-4c69-9d51-0c1c5b1f2a10",
			Action:     model.AuditActionCreate,
			EntityType: model.EntityDepartment,
			EntityID:   "D-452310-240301",
			Changes:    `{"name":"Cardiology"}`,
			RequestID:  "req-1",
			CreatedAt:  time.Date(2024, 3, 1, 10, 23, 45, 0, time.UTC),
		})
	})
	require.NoError(t, err)

	logs, err := store.Repositories().Audit.ListByEntity(ctx, model.EntityDepartment, "D-452310-240301")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionCreate, logs[0].Action)
	assert.True(t, logs[0].CreatedAt.Equal(time.Date(2024, 3, 1, 10, 23, 45, 0, time.UTC)))
}
