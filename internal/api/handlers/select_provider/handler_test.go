package select_provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
)

// fakeService отклоняет выбор во время отправки записи
type fakeService struct {
	calls      int
	submitting bool
	err        error
}

func (f *fakeService) SelectProvider(_ context.Context, id, providerID string) (*sessions.ActionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.submitting {
		snap := selector.Snapshot{State: selector.StateSubmitting, ProviderID: "p1"}
		return &sessions.ActionResult{Accepted: false, Session: &sessions.Session{ID: id, Snapshot: snap}}, nil
	}
	snap := selector.Snapshot{State: selector.StateReady, ProviderID: providerID}
	return &sessions.ActionResult{Accepted: true, Session: &sessions.Session{ID: id, Snapshot: snap}}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/provider", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/sessions/s1/provider", strings.NewReader(body)))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.ActionResponse {
	t.Helper()
	var resp handlers.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Accepted(t *testing.T) {
	rec := serve(&fakeService{}, `{"providerId":"p2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "p2", resp.Session.ProviderID)
}

func TestHandle_RejectedWhileSubmitting(t *testing.T) {
	rec := serve(&fakeService{submitting: true}, `{"providerId":"p2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Accepted)
	assert.Equal(t, "p1", resp.Session.ProviderID)
	assert.Equal(t, "submitting", resp.Session.State)
}

func TestHandle_BadRequests(t *testing.T) {
	for _, body := range []string{`{"providerId":""}`, `{`, `{"provider":"p2"}`} {
		svc := &fakeService{}
		rec := serve(svc, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Zero(t, svc.calls)
	}
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeService{err: sessions.ErrSessionNotFound}, `{"providerId":"p2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeService{err: errors.New("boom")}, `{"providerId":"p2"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
