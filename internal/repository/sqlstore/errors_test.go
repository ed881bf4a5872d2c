package sqlstore

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hims-api/internal/repository"
)

func TestClassify(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"postgres fk", &pq.Error{Code: "23503"}, repository.ErrForeignKeyViolation},
		{"postgres unique", &pq.Error{Code: "23505"}, repository.ErrUniqueViolation},
		{"sqlite fk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, repository.ErrForeignKeyViolation},
		{"sqlite pk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, repository.ErrUniqueViolation},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, repository.ErrUniqueViolation},
		{"unrelated", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}

	assert.NoError(t, classify(nil))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:hims.db?_foreign_keys=on", sqliteDSN("file:hims.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "file:hims.db?_fk=1", sqliteDSN("file:hims.db?_fk=1"))
}
