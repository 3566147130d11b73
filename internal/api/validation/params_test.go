package validation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPathParam(request *http.Request, key, value string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, ctx))
}

func TestQueryNumber(t *testing.T) {
	request := httptest.NewRequest("GET", "/?limit=20&bad=x&neg=-1", nil)

	val, err := QueryNumber(request, "limit", true, 0, 100)
	require.Nil(t, err)
	assert.EqualValues(t, 20, val)

	val, err = QueryNumber(request, "offset", false, 7, 100)
	require.Nil(t, err)
	assert.EqualValues(t, 7, val)

	_, err = QueryNumber(request, "offset", true, 0, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.missing", err.Type)

	_, err = QueryNumber(request, "bad", true, 0, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidType", err.Type)

	_, err = QueryNumber(request, "neg", true, 0, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidType", err.Type)

	_, err = QueryNumber(request, "limit", true, 0, 10)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.number.outOfRange", err.Type)
}

func TestPathNumber(t *testing.T) {
	request := withPathParam(httptest.NewRequest("GET", "/", nil), "pos", "63")
	val, err := PathNumber(request, "pos", 1000)
	require.Nil(t, err)
	assert.EqualValues(t, 63, val)

	_, err = PathNumber(request, "pos", 10)
	require.NotNil(t, err)
	assert.Equal(t, "validation.path.parameter.number.outOfRange", err.Type)
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	request := withPathParam(httptest.NewRequest("GET", "/", nil), "id", id.String())
	parsed, err := PathUUID(request, "id")
	require.Nil(t, err)
	assert.Equal(t, id, parsed)

	request = withPathParam(httptest.NewRequest("GET", "/", nil), "id", "nope")
	_, err = PathUUID(request, "id")
	require.NotNil(t, err)
	assert.Equal(t, "validation.path.parameter.invalidType", err.Type)
}
