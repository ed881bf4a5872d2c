package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
)

// RequireStatus asserts err is an AppError mapping to the HTTP status.
func RequireStatus(t testing.TB, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode(), appErr.Message)
	return appErr
}
