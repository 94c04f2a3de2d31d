package get_available_slots

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

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error

	gotReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/coaches/{coachId}/available-slots", h.Handle).Methods(http.MethodGet)
	return router
}

func TestHandle_Success(t *testing.T) {
	start := time.Date(2025, 10, 21, 6, 0, 0, 0, time.UTC)
	useCase := &fakeUseCase{
		resp: &getAvailableSlots.Response{
			CoachID:         42,
			Timezone:        "Europe/Moscow",
			From:            time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
			To:              time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			Slots: []getAvailableSlots.Slot{
				{StartTime: start, EndTime: start.Add(time.Hour), IsAvailable: true},
				{StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), IsAvailable: false, ConflictReason: "booked"},
			},
		},
	}
	handler := NewHandler(useCase, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/coaches/42/available-slots?from=2025-10-21T00:00:00Z&to=2025-10-22T00:00:00Z&durationMinutes=60", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(42), resp.CoachID)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "2025-10-21T06:00:00Z", resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].IsAvailable)
	assert.Equal(t, "booked", resp.Slots[1].ConflictReason)

	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, int64(42), useCase.gotReq.CoachID)
	assert.Equal(t, 60, useCase.gotReq.DurationMinutes)
	assert.False(t, useCase.gotReq.IncludeBlocked)
}

func TestHandle_PreviewFlag(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailableSlots.Response{}}
	handler := NewHandler(useCase, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/coaches/42/available-slots?from=2025-10-21T00:00:00Z&to=2025-10-22T00:00:00Z&preview=true", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, useCase.gotReq)
	assert.True(t, useCase.gotReq.IncludeBlocked)
}

func TestHandle_InvalidCoachID(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/coaches/abc/available-slots?from=2025-10-21T00:00:00Z&to=2025-10-22T00:00:00Z", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingRange(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coaches/42/available-slots", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_DurationNotAllowed(t *testing.T) {
	handler := NewHandler(&fakeUseCase{err: getAvailableSlots.ErrDurationNotAllowed}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/coaches/42/available-slots?from=2025-10-21T00:00:00Z&to=2025-10-22T00:00:00Z&durationMinutes=45", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgDurationNotAllowed, errResp.Message)
}

func TestHandle_SessionsUnavailable(t *testing.T) {
	handler := NewHandler(&fakeUseCase{err: getAvailableSlots.ErrSessionsUnavailable}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/coaches/42/available-slots?from=2025-10-21T00:00:00Z&to=2025-10-22T00:00:00Z", nil)
	rec := httptest.NewRecorder()

	newRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
