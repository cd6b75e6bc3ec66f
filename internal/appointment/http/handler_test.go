package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/barber-booking-backend/internal/appointment"
	"github.com/nekogravitycat/barber-booking-backend/internal/auth"
	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
)

// stubService records what the handler passes through; methods not used here are left nil.
type stubService struct {
	appointment.Service

	slotsDate   time.Time
	booked      appointment.BookRequest
	upcomingFor string
	listFilter  *appointment.Filter
	cancelled   string
	cancelAdmin bool
}

func (s *stubService) Slots(ctx context.Context, barberID, serviceID string, date time.Time) ([]availability.TimeSlot, error) {
	s.slotsDate = date
	start := date.Add(9 * time.Hour)
	return []availability.TimeSlot{
		{Start: start, End: start.Add(30 * time.Minute)},
		{Start: start.Add(15 * time.Minute), End: start.Add(45 * time.Minute)},
	}, nil
}

func (s *stubService) Book(ctx context.Context, req appointment.BookRequest) (*appointment.Appointment, error) {
	s.booked = req
	if req.StartTime.Minute()%15 != 0 {
		return nil, appointment.ErrSlotUnavailable
	}
	return &appointment.Appointment{
		ID:             uuid.NewString(),
		BarberID:       req.BarberID,
		ServiceID:      req.ServiceID,
		CustomerNumber: req.CustomerNumber,
		CustomerName:   appointment.DefaultCustomerName,
		StartTime:      req.StartTime,
		EndTime:        req.StartTime.Add(30 * time.Minute),
	}, nil
}

func (s *stubService) ListUpcoming(ctx context.Context, customerNumber string, page, pageSize int) ([]*appointment.Appointment, int, error) {
	s.upcomingFor = customerNumber
	return []*appointment.Appointment{}, 0, nil
}

func (s *stubService) List(ctx context.Context, filter appointment.Filter) ([]*appointment.Appointment, int, error) {
	s.listFilter = &filter
	return []*appointment.Appointment{}, 0, nil
}

func (s *stubService) Cancel(ctx context.Context, id, customerNumber string, isAdmin bool) error {
	s.cancelled = id
	s.cancelAdmin = isAdmin
	return nil
}

var shopZone = time.FixedZone("UTC+2", 2*60*60)

type testEnv struct {
	router   *gin.Engine
	stub     *stubService
	customer string
	admin    string
}

func newEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	jwt := auth.NewJWTManager("secret", time.Hour)
	stub := &stubService{}

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(stub, shopZone), auth.AuthRequired(jwt))

	customer, _, err := jwt.GenerateAccessToken("5551234567", false)
	require.NoError(t, err)
	admin, _, err := jwt.GenerateAccessToken("5550000001", true)
	require.NoError(t, err)

	return &testEnv{router: r, stub: stub, customer: customer, admin: admin}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestSlotsEndpoint(t *testing.T) {
	env := newEnv(t)
	barberID, serviceID := uuid.NewString(), uuid.NewString()

	w := env.do(http.MethodGet, "/v1/barbers/"+barberID+"/slots?service_id="+serviceID+"&date=2026-10-19", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.True(t, env.stub.slotsDate.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, shopZone)))

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-19", resp.Date)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00 - 09:30", resp.Slots[0].Label)
	assert.Equal(t, "09:15 - 09:45", resp.Slots[1].Label)

	tests := []struct {
		name string
		path string
	}{
		{"bad date", "/v1/barbers/" + barberID + "/slots?service_id=" + serviceID + "&date=19-10-2026"},
		{"missing date", "/v1/barbers/" + barberID + "/slots?service_id=" + serviceID},
		{"missing service", "/v1/barbers/" + barberID + "/slots?date=2026-10-19"},
		{"bad barber", "/v1/barbers/nope/slots?service_id=" + serviceID + "&date=2026-10-19"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, tt.path, "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBookEndpoint(t *testing.T) {
	env := newEnv(t)
	body := map[string]any{
		"barber_id":  uuid.NewString(),
		"service_id": uuid.NewString(),
		"start_time": "2026-10-19T10:00:00+02:00",
	}

	w := env.do(http.MethodPost, "/v1/appointments", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/v1/appointments", env.customer, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "5551234567", env.stub.booked.CustomerNumber)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Guest", resp.CustomerName)
	assert.Equal(t, "10:00 - 10:30", resp.Label)

	body["start_time"] = "2026-10-19T10:07:00+02:00"
	w = env.do(http.MethodPost, "/v1/appointments", env.customer, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	delete(body, "start_time")
	w = env.do(http.MethodPost, "/v1/appointments", env.customer, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEndpoint(t *testing.T) {
	env := newEnv(t)

	w := env.do(http.MethodGet, "/v1/appointments?customer_number=5559999999", env.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5551234567", env.stub.upcomingFor)
	assert.Nil(t, env.stub.listFilter)

	barberID := uuid.NewString()
	w = env.do(http.MethodGet, "/v1/appointments?barber_id="+barberID+"&from=2026-10-19T00:00:00Z&sort_order=desc", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.stub.listFilter)
	assert.Equal(t, barberID, env.stub.listFilter.BarberID)
	assert.Equal(t, "DESC", env.stub.listFilter.SortOrder)
	require.NotNil(t, env.stub.listFilter.From)
	assert.True(t, env.stub.listFilter.From.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, env.stub.listFilter.To)
}

func TestCancelEndpoint(t *testing.T) {
	env := newEnv(t)
	id := uuid.NewString()

	w := env.do(http.MethodDelete, "/v1/appointments/"+id, env.admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, env.stub.cancelled)
	assert.True(t, env.stub.cancelAdmin)
}
