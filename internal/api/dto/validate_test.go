package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lrms/workforce-service/pkg/util"
)

func TestValidateAcceptsWellFormedPayload(t *testing.T) {
	err := Validate(&RegisterRequest{Email: "alice@x.com", Password: "pw123"})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(&RegisterRequest{Email: "not-an-email", Role: "intern"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "email", domainErr.Details["email"])
	assert.Equal(t, "required", domainErr.Details["password"])
	assert.Equal(t, "oneof", domainErr.Details["role"])
}

func TestValidateUpdateRoleRequest(t *testing.T) {
	err := Validate(&UpdateRoleRequest{UserID: 0, Role: "manager"})
	require.Error(t, err)
	assert.Equal(t, "required", apperrors.ToDomainError(err).Details["userId"])

	assert.NoError(t, Validate(&UpdateRoleRequest{UserID: 7, Role: "manager"}))
}
