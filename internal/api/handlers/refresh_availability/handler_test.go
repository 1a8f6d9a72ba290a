package refresh_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
)

type fakeService struct {
	result *sessions.ActionResult
	err    error
}

func (f *fakeService) RefreshAvailability(_ context.Context, id string) (*sessions.ActionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.result.Session.ID = id
	return f.result, nil
}

func serve(svc *fakeService, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/availability/refresh", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/availability/refresh", nil))
	return rec
}

func result(accepted bool, snap selector.Snapshot) *sessions.ActionResult {
	return &sessions.ActionResult{Accepted: accepted, Session: &sessions.Session{Snapshot: snap}}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.ActionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: sessions.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign session", err: sessions.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "s1")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_RefreshKeepsLastError(t *testing.T) {
	snap := selector.Snapshot{
		State:      selector.StateReady,
		ProviderID: "p1",
		LastError:  selector.ErrAvailabilityFetchFailed,
	}
	svc := &fakeService{result: result(true, snap)}

	resp := decode(t, serve(svc, "s1"))
	assert.True(t, resp.Accepted)
	require.NotNil(t, resp.Session.LastError)
	assert.Equal(t, handlers.LastErrorAvailability, *resp.Session.LastError)
}

func TestHandle_NotAcceptedAfterSubmit(t *testing.T) {
	svc := &fakeService{result: result(false, selector.Snapshot{State: selector.StateSubmitted, ProviderID: "p1"})}

	resp := decode(t, serve(svc, "s1"))
	assert.False(t, resp.Accepted)
	assert.Equal(t, "submitted", resp.Session.State)
}
