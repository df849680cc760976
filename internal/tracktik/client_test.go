package tracktik_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vjorihoxha/tiktak-vjori/internal/tracktik"
	tracktikerrors "github.com/vjorihoxha/tiktak-vjori/internal/tracktik/errors"

	"github.com/stretchr/testify/assert"
)

type apiCounts struct {
	refreshCalls  int
	employeeCalls int
}

// newAPIServer serves both the token endpoint and the employees endpoint so
// refresh-and-retry behavior can be observed end to end.
func newAPIServer(t *testing.T, counts *apiCounts, employeeHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/oauth2/access_token", func(w http.ResponseWriter, r *http.Request) {
		counts.refreshCalls++
		w.Write([]byte(`{"access_token":"refreshed-token","expires_in":3600}`))
	})
	mux.HandleFunc("/rest/v1/employees", func(w http.ResponseWriter, r *http.Request) {
		counts.employeeCalls++
		employeeHandler(w, r)
	})
	mux.HandleFunc("/rest/v1/employees/", func(w http.ResponseWriter, r *http.Request) {
		counts.employeeCalls++
		employeeHandler(w, r)
	})
	return httptest.NewServer(mux)
}

func TestClient_CreateEmployee(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer initial-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "John", body["firstName"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":555,"firstName":"John"}}`))
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{
		BaseURL:     srv.URL,
		AccessToken: "initial-token",
	})

	result, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.NoError(t, err)
	assert.Equal(t, 0, counts.refreshCalls)

	data := result["data"].(map[string]any)
	assert.Equal(t, float64(555), data["id"])
}

func TestClient_SingleRetryOnUnauthorized(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer refreshed-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":{"id":1}}`))
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{
		BaseURL:      srv.URL,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-1",
	})

	result, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.NoError(t, err)
	assert.Equal(t, 1, counts.refreshCalls, "exactly one refresh")
	assert.Equal(t, 2, counts.employeeCalls, "exactly one retried request")
	assert.NotNil(t, result)
}

func TestClient_SecondUnauthorizedPropagatesWithoutThirdAttempt(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{
		BaseURL:      srv.URL,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-1",
	})

	_, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.ErrorIs(t, err, tracktikerrors.ErrUnauthorized)
	assert.Equal(t, 1, counts.refreshCalls)
	assert.Equal(t, 2, counts.employeeCalls, "no third attempt after the retried 401")
}

func TestClient_UnauthorizedWithoutRefreshTokenFailsImmediately(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{
		BaseURL:     srv.URL,
		AccessToken: "stale-token",
	})

	_, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.ErrorIs(t, err, tracktikerrors.ErrUnauthorized)
	assert.Equal(t, 0, counts.refreshCalls)
	assert.Equal(t, 1, counts.employeeCalls)
}

func TestClient_ServerErrorSurfacesWithoutRetry(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{
		BaseURL:      srv.URL,
		AccessToken:  "token",
		RefreshToken: "refresh-1",
	})

	_, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.Error(t, err)
	assert.ErrorContains(t, err, "500")
	assert.Equal(t, 0, counts.refreshCalls)
	assert.Equal(t, 1, counts.employeeCalls)
}

func TestClient_UpdateEmployeeUsesPatchAtID(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/employees/777", r.URL.Path)
		w.Write([]byte(`{"data":{"id":777}}`))
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{BaseURL: srv.URL, AccessToken: "token"})

	_, err := c.UpdateEmployee(context.Background(), 777, map[string]any{"firstName": "John"})

	assert.NoError(t, err)
}

func TestClient_SearchEmployeesEncodesPagination(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))
		assert.Equal(t, "Security", r.URL.Query().Get("department"))
		w.Write([]byte(`{"data":[]}`))
	})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{BaseURL: srv.URL, AccessToken: "token"})

	_, err := c.SearchEmployees(context.Background(), map[string]string{"department": "Security"}, 25, 50)

	assert.NoError(t, err)
}

func TestClient_NoCredentialFailsBeforeRequest(t *testing.T) {
	counts := &apiCounts{}
	srv := newAPIServer(t, counts, func(w http.ResponseWriter, r *http.Request) {})
	defer srv.Close()

	c := tracktik.NewClient(tracktik.Config{BaseURL: srv.URL})

	_, err := c.CreateEmployee(context.Background(), map[string]any{"firstName": "John"})

	assert.ErrorIs(t, err, tracktikerrors.ErrNoCredential)
	assert.Equal(t, 0, counts.employeeCalls)
}
