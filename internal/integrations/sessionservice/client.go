package sessionservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// Client клиент для работы с SessionService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SessionService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListBusyIntervals получает занятые интервалы коуча за период
// Возвращает только сессии с перечисленными статусами
func (c *Client) ListBusyIntervals(ctx context.Context, coachID int64, from, to time.Time, statuses []domain.SessionStatus) ([]domain.BusyInterval, error) {
	query := url.Values{}
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))

	statusValues := make([]string, len(statuses))
	for i, status := range statuses {
		statusValues[i] = string(status)
	}
	query.Set("statuses", strings.Join(statusValues, ","))

	requestURL := fmt.Sprintf("%s/internal/coaches/%d/sessions?%s", c.baseURL, coachID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты - сервис недоступен
		c.log.Error("SessionService request failed for coach_id=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: coach_id=%d: %v", ErrServiceUnavailable, coachID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("SessionService returned status %d for coach_id=%d: %s", resp.StatusCode, coachID, string(body))
		return nil, fmt.Errorf("%w: coach_id=%d, status code %d", ErrServiceUnavailable, coachID, resp.StatusCode)
	}

	// Парсим ответ
	var payload sessionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]domain.BusyInterval, 0, len(payload.Sessions))
	for _, session := range payload.Sessions {
		intervals = append(intervals, domain.BusyInterval{
			Start:  session.StartTime,
			End:    session.EndTime,
			Status: domain.SessionStatus(session.Status),
		})
	}

	return intervals, nil
}
