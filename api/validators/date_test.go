package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

type windowRequest struct {
	Name    string `json:"name" validate:"required"`
	StartAt Date   `json:"start_at"`
	EndAt   Date   `json:"end_at"`
}

func (p windowRequest) CheckFields(fields pkgerrors.FieldErrors) {
	p.StartAt.Check(fields, "start_at")
	p.EndAt.Check(fields, "end_at")
}

func decodeWindow(t *testing.T, body string) (windowRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload windowRequest
	err := DecodeJSONBody(req, &payload)
	return payload, err
}

func TestDateAcceptsTimestampsAndPlainDates(t *testing.T) {
	payload, err := decodeWindow(t, `{"name":"spring","start_at":"2026-01-10","end_at":"2026-02-01T08:30:00+02:00"}`)
	require.NoError(t, err)

	require.NotNil(t, payload.StartAt.Value)
	assert.True(t, payload.StartAt.Value.Equal(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, payload.EndAt.Value)
	assert.True(t, payload.EndAt.Value.Equal(time.Date(2026, 2, 1, 6, 30, 0, 0, time.UTC)))
	assert.False(t, payload.StartAt.Cleared())
}

func TestDateNullAndEmptyClear(t *testing.T) {
	payload, err := decodeWindow(t, `{"name":"spring","start_at":null,"end_at":""}`)
	require.NoError(t, err)
	assert.True(t, payload.StartAt.Cleared())
	assert.True(t, payload.EndAt.Cleared())

	payload, err = decodeWindow(t, `{"name":"spring"}`)
	require.NoError(t, err)
	assert.False(t, payload.StartAt.Set)
	assert.False(t, payload.StartAt.Cleared())
}

func TestDateInvalidIsFieldViolation(t *testing.T) {
	_, err := decodeWindow(t, `{"start_at":"10/01/2026","end_at":42}`)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{"The start at field must be a valid date."}, details["start_at"])
	assert.Equal(t, []string{"The end at field must be a valid date."}, details["end_at"])
	assert.Equal(t, []string{"The name field is required."}, details["name"])
}
