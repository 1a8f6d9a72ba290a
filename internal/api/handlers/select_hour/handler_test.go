package select_hour

import (
	"context"
	"encoding/json"
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

// fakeService принимает только час 10
type fakeService struct {
	calls int
}

func (f *fakeService) SelectHour(_ context.Context, id string, hour int) (*sessions.ActionResult, error) {
	f.calls++
	if id != "s1" {
		return nil, sessions.ErrSessionNotFound
	}

	snap := selector.Snapshot{State: selector.StateLoaded, ProviderID: "p1"}
	accepted := hour == 10
	if accepted {
		snap.SelectedHour = hour
	}
	return &sessions.ActionResult{Accepted: accepted, Session: &sessions.Session{ID: id, Snapshot: snap}}, nil
}

func serve(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/hour", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/sessions/"+id+"/hour", strings.NewReader(body)))
	return rec
}

func TestHandle_Accepted(t *testing.T) {
	rec := serve(&fakeService{}, "s1", `{"hour":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	require.NotNil(t, resp.Session.SelectedHour)
	assert.Equal(t, 10, *resp.Session.SelectedHour)
	assert.True(t, resp.Session.CanSubmit)
}

func TestHandle_NotAcceptedIsStillOK(t *testing.T) {
	rec := serve(&fakeService{}, "s1", `{"hour":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Nil(t, resp.Session.SelectedHour)
}

func TestHandle_MissingHour(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "s1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestHandle_UnknownSession(t *testing.T) {
	rec := serve(&fakeService{}, "nope", `{"hour":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
