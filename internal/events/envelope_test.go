package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnvelope() Envelope {
	return Envelope{
		Version:        Version,
		RequestID:      "r1",
		ActionType:     ActionGuideRequest,
		Actor:          Actor{UserID: "u1"},
		OrganizationID: "org-demo",
		Timestamp:      "2024-01-01T00:00:00Z",
		Payload:        map[string]any{},
	}
}

func TestValidate_OK(t *testing.T) {
	v := Validate(validEnvelope())
	assert.True(t, v.OK)
	assert.Empty(t, v.Errors)
}

func TestValidate_CollectsSingleFailure(t *testing.T) {
	e := validEnvelope()
	e.OrganizationID = ""
	v := Validate(e)
	assert.False(t, v.OK)
	assert.Equal(t, []string{"organizationId is required"}, v.Errors, "no other field gets flagged")
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	v := Validate(Envelope{Version: Version})
	assert.False(t, v.OK)
	assert.ElementsMatch(t, []string{
		"requestId is required",
		"actionType is required",
		"organizationId is required",
		"timestamp is required",
		"actor.userId is required",
		"payload must be an object",
	}, v.Errors)
}

func TestValidate_UnknownVersionFails(t *testing.T) {
	e := validEnvelope()
	e.Version = 2
	v := Validate(e)
	assert.False(t, v.OK)
	assert.Contains(t, v.Errors, "Unsupported version: 2")
}

func TestValidate_OpenActionTypeSet(t *testing.T) {
	e := validEnvelope()
	e.ActionType = "SCHEDULE.SWAP_REQUEST"
	assert.True(t, Validate(e).OK, "new action types pass without validator changes")
}

func TestNew_FillsDefaults(t *testing.T) {
	e := New(Envelope{
		ActionType:     ActionSOPCreate,
		Actor:          Actor{UserID: "u1"},
		OrganizationID: "org-demo",
	})
	assert.Equal(t, Version, e.Version)
	assert.NotEmpty(t, e.RequestID)
	assert.NotEmpty(t, e.Timestamp)
	require.NotNil(t, e.Payload)
	assert.True(t, Validate(e).OK)
}

func TestNew_KeepsSuppliedIdentity(t *testing.T) {
	e := New(Envelope{RequestID: "r1", Timestamp: "2024-01-01T00:00:00Z"})
	assert.Equal(t, "r1", e.RequestID)
	assert.Equal(t, "2024-01-01T00:00:00Z", e.Timestamp)
}
