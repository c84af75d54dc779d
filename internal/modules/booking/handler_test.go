package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookit/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupTestRouter(t *testing.T, store BookingStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := test.NewNullLogger()
	h := NewHandler(NewService(store, clockForTests(), log))
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var out envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func bookingBody(t *testing.T, slotID int64, people int, code string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"slot_id":          slotID,
		"user_name":        "Grace Hopper",
		"user_email":       "grace@example.com",
		"number_of_people": people,
		"promo_code":       code,
	})
	require.NoError(t, err)
	return string(b)
}

func seededRouter(t *testing.T, price string, spots int) (*gin.Engine, *gorm.DB, int64) {
	t.Helper()
	db := setupTestDB(t)
	slot := seedSlot(t, db, price, spots)
	return setupTestRouter(t, repository.NewBookingRepository(db)), db, slot.ID
}

func TestHandler_CreateBooking(t *testing.T) {
	r, db, slotID := seededRouter(t, "60", 5)

	rr := do(r, http.MethodPost, "/api/bookings", bookingBody(t, slotID, 2, ""))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Booking created successfully", env.Message)

	var data BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Regexp(t, referencePattern, data.BookingReference)
	assert.Equal(t, 120.0, data.TotalAmount)
	assert.Equal(t, 0.0, data.DiscountAmount)
	assert.Equal(t, 120.0, data.FinalAmount)
	assert.Equal(t, 3, availableSpots(t, db, slotID))

	rr = do(r, http.MethodGet, "/api/bookings/"+data.BookingReference, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var details BookingDetails
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &details))
	assert.Equal(t, data.BookingReference, details.BookingReference)
	assert.Equal(t, "Grace Hopper", details.UserName)
	assert.Equal(t, 2, details.NumberOfPeople)
	assert.Equal(t, 120.0, details.FinalAmount)
}

func TestHandler_CreateBooking_BadRequests(t *testing.T) {
	r, db, slotID := seededRouter(t, "60", 2)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"slot_id":`, "Invalid request body"},
		{"wrong type", `{"slot_id":"one"}`, "Invalid request body"},
		{"zero people", bookingBody(t, slotID, 0, ""), "number_of_people is required"},
		{"too many people", bookingBody(t, slotID, 3, ""), "Slot not available or insufficient spots"},
		{"unknown slot", bookingBody(t, 9999, 1, ""), "Slot not available or insufficient spots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.message)
		})
	}
	assert.Equal(t, 2, availableSpots(t, db, slotID))
}

func TestHandler_GetBooking_NotFound(t *testing.T) {
	r, _, _ := seededRouter(t, "60", 2)

	rr := do(r, http.MethodGet, "/api/bookings/BK00000000000000000000000000", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
	assert.Equal(t, "Booking not found", env.Message)
}

func TestHandler_InternalErrorIsGeneric(t *testing.T) {
	db := setupTestDB(t)
	slot := seedSlot(t, db, "60", 2)
	r := setupTestRouter(t, failingInsertStore{repository.NewBookingRepository(db)})

	rr := do(r, http.MethodPost, "/api/bookings", bookingBody(t, slot.ID, 1, ""))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, rr.Body.String(), "disk I/O")
	assert.Empty(t, rr.Header().Get("Retry-After"))
}

func TestHandler_RetryableErrorSetsRetryAfter(t *testing.T) {
	db := setupTestDB(t)
	slot := seedSlot(t, db, "60", 2)
	log, _ := test.NewNullLogger()
	svc := NewService(repository.NewBookingRepository(db), clockForTests(), log,
		WithReferenceGenerator(sequence("BKSAME")), WithMaxAttempts(1))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))

	rr := do(r, http.MethodPost, "/api/bookings", bookingBody(t, slot.ID, 1, ""))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(r, http.MethodPost, "/api/bookings", bookingBody(t, slot.ID, 1, ""))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, 1, availableSpots(t, db, slot.ID))
}

func TestHandler_CreateMiddlewareRunsFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	slot := seedSlot(t, db, "60", 2)
	log, _ := test.NewNullLogger()
	h := NewHandler(NewService(repository.NewBookingRepository(db), clockForTests(), log))

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"), func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	})

	rr := do(r, http.MethodPost, "/api/bookings", bookingBody(t, slot.ID, 1, ""))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 2, availableSpots(t, db, slot.ID))

	rr = do(r, http.MethodGet, "/api/bookings/BKMISSING", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
