package create_session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
)

type fakeService struct {
	got *sessions.CreateRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *sessions.CreateRequest) (*sessions.Session, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	date := domain.CalendarDate{Year: 2024, Month: time.May, Day: 10}
	if req.Date != nil {
		date = *req.Date
	}
	return &sessions.Session{ID: "s1", Snapshot: selector.Snapshot{
		State:      selector.StateReady,
		ProviderID: req.ProviderID,
		Date:       date,
	}}, nil
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, `{"providerId":"p1","date":"2024-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.ID)
	assert.Equal(t, "ready", resp.State)
	assert.Equal(t, "2024-06-01", resp.Date)

	require.NotNil(t, svc.got.Date)
	assert.Equal(t, domain.CalendarDate{Year: 2024, Month: time.June, Day: 1}, *svc.got.Date)
}

func TestHandle_DefaultDate(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, `{"providerId":"p1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.got.Date)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "broken json", body: `{`},
		{name: "unknown field", body: `{"providerId":"p1","hour":9}`},
		{name: "invalid date", body: `{"providerId":"p1","date":"2024-02-30"}`},
		{name: "invalid input", body: `{"providerId":""}`, err: fmt.Errorf("%w: empty provider", sessions.ErrInvalidInput)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			rec := serve(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&fakeService{err: fmt.Errorf("boom")}, logger.NewNop())
	rec := serve(h, `{"providerId":"p1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
