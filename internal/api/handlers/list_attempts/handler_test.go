package list_attempts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
)

type fakeSessions struct{ err error }

func (f *fakeSessions) Get(_ context.Context, id string) (*sessions.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sessions.Session{ID: id}, nil
}

type fakeAttempts struct {
	attempts []*domain.BookingAttempt
	err      error
}

func (f *fakeAttempts) ListAttempts(context.Context, string) ([]*domain.BookingAttempt, error) {
	return f.attempts, f.err
}

func serve(h *Handler) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/attempts", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/s1/attempts", nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	reason := domain.DefaultFailureReason
	at := time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC)
	attempts := &fakeAttempts{attempts: []*domain.BookingAttempt{
		{ID: 1, SessionID: "s1", ProviderID: "p1", DateTime: at, Status: domain.OutcomeFailed, Reason: &reason, CreatedAt: at},
		{ID: 2, SessionID: "s1", ProviderID: "p1", DateTime: at, Status: domain.OutcomeCreated, CreatedAt: at},
	}}

	rec := serve(NewHandler(&fakeSessions{}, attempts, logger.NewNop()))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []AttemptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "failed", resp[0].Status)
	assert.Equal(t, reason, *resp[0].Reason)
	assert.Equal(t, "created", resp[1].Status)
	assert.Nil(t, resp[1].Reason)
	assert.Equal(t, "2024-05-10T10:00:00Z", resp[1].DateTime)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(NewHandler(&fakeSessions{err: sessions.ErrAccessDenied}, &fakeAttempts{}, logger.NewNop()))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(NewHandler(&fakeSessions{err: sessions.ErrSessionNotFound}, &fakeAttempts{}, logger.NewNop()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(NewHandler(&fakeSessions{}, &fakeAttempts{err: bookings.ErrJournalDisabled}, logger.NewNop()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
