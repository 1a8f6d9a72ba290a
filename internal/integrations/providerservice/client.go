package providerservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/reqctx"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом маркетплейса:
// список провайдеров, доступность на день, создание записи
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// limiter может быть nil, тогда запросы не ограничиваются.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		log:     log,
	}
}

// NewLimiter создает лимитер исходящих запросов, при perSecond <= 0 возвращает nil
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// ListProviders получает список провайдеров
func (c *Client) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	resp, err := c.do(ctx, http.MethodGet, "/providers", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var providers []Provider
	if err := json.NewDecoder(resp.Body).Decode(&providers); err != nil {
		return nil, fmt.Errorf("%w: failed to decode providers: %v", ErrInvalidResponse, err)
	}

	result := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		result = append(result, p.toDomain())
	}

	return result, nil
}

// FetchDayAvailability получает доступность провайдера по часам на указанный день
func (c *Client) FetchDayAvailability(ctx context.Context, providerID string, date domain.CalendarDate) ([]domain.AvailabilitySlot, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(date.Year))
	query.Set("month", strconv.Itoa(int(date.Month)))
	query.Set("day", strconv.Itoa(date.Day))

	path := fmt.Sprintf("/providers/%s/day-availability", url.PathEscape(providerID))

	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var availability []Availability
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		return nil, fmt.Errorf("%w: failed to decode availability: %v", ErrInvalidResponse, err)
	}

	result := make([]domain.AvailabilitySlot, 0, len(availability))
	for _, a := range availability {
		result = append(result, a.toDomain())
	}

	return result, nil
}

// CreateAppointment создает запись к провайдеру на указанные дату и время
func (c *Client) CreateAppointment(ctx context.Context, req domain.BookingRequest) error {
	body, err := json.Marshal(CreateAppointmentRequest{
		ProviderID: req.ProviderID,
		Date:       req.DateTime,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/appointments", nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrAppointmentRejected, readMessage(resp))
	default:
		return checkStatus(resp, http.StatusOK)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThrottled, err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := reqctx.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("ProviderService: %s %s failed: %v", method, path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	return resp, nil
}

// checkStatus обрабатывает статус-коды, общие для всех запросов
func checkStatus(resp *http.Response, expected int) error {
	switch resp.StatusCode {
	case expected:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrProviderNotFound
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readMessage(resp))
	}
}

// readMessage достает сообщение об ошибке из тела ответа
func readMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(body)
}
