package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	fields := map[string][]string{"email": {"Please add a valid email."}}
	d := New(http.StatusBadRequest, "Validation failed", "one or more fields are invalid", TypeValidation, fields)
	fields["email"][0] = "mutated"

	rec := httptest.NewRecorder()
	Write(rec, d)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, ContentType, rec.Header().Get("Content-Type"))

	var body Details
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, TypeValidation, body.Type)
	require.Equal(t, []string{"Please add a valid email."}, body.Errors["email"])
}

func TestNewOmitsEmptyErrors(t *testing.T) {
	t.Parallel()

	d := New(http.StatusNotFound, "Resource not found", "", TypeNotFound, nil)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "errors")
	require.NotContains(t, string(raw), "detail")
}
