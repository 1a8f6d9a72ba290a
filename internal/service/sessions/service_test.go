package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/reqctx"
)

type stubAvailability struct {
	mu    sync.Mutex
	slots map[string][]domain.AvailabilitySlot
	seen  []string
}

func (s *stubAvailability) FetchDayAvailability(ctx context.Context, providerID string, date domain.CalendarDate) ([]domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, reqctx.SessionID(ctx)+"|"+providerID+"|"+date.String())
	return s.slots[providerID], nil
}

type stubBooking struct {
	mu   sync.Mutex
	err  error
	reqs []domain.BookingRequest
}

func (s *stubBooking) CreateAppointment(_ context.Context, req domain.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	return s.err
}

type stubProviders struct {
	providers []domain.Provider
	err       error
}

func (s *stubProviders) ListProviders(context.Context) ([]domain.Provider, error) {
	return s.providers, s.err
}

type movableClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *movableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type countingObserver struct {
	mu     sync.Mutex
	opened int
	closed int
}

func (o *countingObserver) AvailabilityApplied()    {}
func (o *countingObserver) AvailabilityDiscarded()  {}
func (o *countingObserver) AvailabilityFailed()     {}
func (o *countingObserver) SubmissionFinished(bool) {}

func (o *countingObserver) SessionOpened() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
}

func (o *countingObserver) SessionClosed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed++
}

type fixture struct {
	svc          *Service
	availability *stubAvailability
	booking      *stubBooking
	clock        *movableClock
	observer     *countingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		availability: &stubAvailability{slots: map[string][]domain.AvailabilitySlot{
			"p1": {{Hour: 9, Available: true}, {Hour: 10, Available: true}, {Hour: 14, Available: false}},
			"p2": {{Hour: 15, Available: true}},
		}},
		booking:  &stubBooking{},
		clock:    &movableClock{t: time.Date(2024, time.May, 9, 22, 30, 0, 0, time.UTC)},
		observer: &countingObserver{},
	}

	loc := time.FixedZone("UTC+3", 3*60*60)
	f.svc = NewService(f.availability, f.booking, &stubProviders{providers: []domain.Provider{{ID: "p1", Name: "Ana"}}},
		f.observer, Config{Location: loc, IdleTTL: time.Minute}, logger.NewNop())
	f.svc.timeProvider = f.clock

	t.Cleanup(f.svc.Shutdown)
	return f
}

func userCtx(token string) context.Context {
	return reqctx.WithToken(context.Background(), token)
}

func waitState(t *testing.T, svc *Service, ctx context.Context, id string, state selector.State) *Session {
	t.Helper()
	var last *Session
	require.Eventually(t, func() bool {
		s, err := svc.Get(ctx, id)
		if err != nil {
			return false
		}
		last = s
		return s.Snapshot.State == state
	}, 2*time.Second, 5*time.Millisecond, "expected state %s", state)
	return last
}

func TestCreate_DefaultsToTodayInLocation(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	session, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	// 22:30 UTC это уже 10 мая в UTC+3
	assert.Equal(t, domain.CalendarDate{Year: 2024, Month: time.May, Day: 10}, session.Snapshot.Date)

	loaded := waitState(t, f.svc, ctx, session.ID, selector.StateLoaded)
	assert.Len(t, loaded.Snapshot.Morning, 2)
	assert.Len(t, loaded.Snapshot.Afternoon, 1)
	assert.Equal(t, 1, f.observer.opened)

	f.availability.mu.Lock()
	assert.Contains(t, f.availability.seen, session.ID+"|p1|2024-05-10")
	f.availability.mu.Unlock()
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(userCtx("u1"), &CreateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.svc.Count())
}

func TestFlow_SelectAndSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")
	date := domain.CalendarDate{Year: 2024, Month: time.May, Day: 12}

	session, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p2", Date: &date})
	require.NoError(t, err)

	res, err := f.svc.SelectProvider(ctx, session.ID, "p1")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	waitState(t, f.svc, ctx, session.ID, selector.StateLoaded)

	res, err = f.svc.SelectHour(ctx, session.ID, 14)
	require.NoError(t, err)
	assert.False(t, res.Accepted, "14h is not available")

	res, err = f.svc.SelectHour(ctx, session.ID, 10)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 10, res.Session.Snapshot.SelectedHour)

	res, err = f.svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	done := waitState(t, f.svc, ctx, session.ID, selector.StateSubmitted)
	require.NotNil(t, done.Snapshot.Outcome)
	assert.Equal(t, "2024-05-12T10:00:00+03:00", done.Snapshot.Outcome.DateTime.Format(time.RFC3339))

	f.booking.mu.Lock()
	require.Len(t, f.booking.reqs, 1)
	assert.Equal(t, "p1", f.booking.reqs[0].ProviderID)
	f.booking.mu.Unlock()
}

func TestToggleCalendarAndSelectDate(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	session, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p1"})
	require.NoError(t, err)

	res, err := f.svc.ToggleCalendar(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, res.Session.Snapshot.CalendarOpen)

	date := domain.CalendarDate{Year: 2024, Month: time.June, Day: 1}
	res, err = f.svc.SelectDate(ctx, session.ID, date)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, date, res.Session.Snapshot.Date)

	res, err = f.svc.RefreshAvailability(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestAccessControl(t *testing.T) {
	f := newFixture(t)

	session, err := f.svc.Create(userCtx("u1"), &CreateRequest{ProviderID: "p1"})
	require.NoError(t, err)

	_, err = f.svc.Get(userCtx("u2"), session.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Submit(userCtx("u2"), session.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Get(userCtx("u1"), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	session, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Close(ctx, session.ID))
	assert.Equal(t, 0, f.svc.Count())
	assert.Equal(t, 1, f.observer.closed)

	_, err = f.svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Close(ctx, session.ID), ErrSessionNotFound)
}

func TestSweep(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	idle, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p1"})
	require.NoError(t, err)

	f.clock.Advance(45 * time.Second)
	active, err := f.svc.Create(ctx, &CreateRequest{ProviderID: "p2"})
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	assert.Equal(t, 1, f.svc.Sweep())

	_, err = f.svc.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestListProviders(t *testing.T) {
	f := newFixture(t)

	providers, err := f.svc.ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Provider{{ID: "p1", Name: "Ana"}}, providers)

	f.svc.providers = &stubProviders{err: errors.New("timeout")}
	_, err = f.svc.ListProviders(context.Background())
	assert.ErrorIs(t, err, ErrProvidersUnavailable)
}

func TestRun_NonPositiveIntervalReturns(t *testing.T) {
	f := newFixture(t)

	done := make(chan struct{})
	go func() {
		f.svc.Run(context.Background(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run must return when the sweep interval is not positive")
	}
}
