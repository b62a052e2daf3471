package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guesthouse/internal/database"
	"guesthouse/internal/events"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/pkg/jwt"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

type suite struct {
	t      *testing.T
	router *gin.Engine
	jwt    *jwt.Service
	owner  string
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:server_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	j := jwt.New("test-secret", time.Hour)
	owner, err := j.GenerateToken("owner-1")
	require.NoError(t, err)

	log := zap.NewNop()
	hub := events.NewHub(nil, log)
	router := NewRouter(Deps{
		Store:     repository.NewStore(db),
		JWT:       j,
		Locker:    lock.NewLocal(),
		Publisher: hub,
		Hub:       hub,
		Clock:     &clock.Fixed{T: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)},
		Log:       log,
	})
	return &suite{t: t, router: router, jwt: j, owner: owner}
}

func (s *suite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *suite) decode(w *httptest.ResponseRecorder, data any) envelope {
	s.t.Helper()
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(s.t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *suite) createID(path string, body any) string {
	s.t.Helper()
	w := s.do(http.MethodPost, path, s.owner, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		ID string `json:"id"`
	}
	s.decode(w, &out)
	require.NotEmpty(s.t, out.ID)
	return out.ID
}

type world struct {
	houseID string
	roomID  string
	guestID string
}

func (s *suite) seed() world {
	s.t.Helper()
	houseID := s.createID("/api/v1/houses", gin.H{"name": "Seaside"})
	roomID := s.createID("/api/v1/rooms", gin.H{"house_id": houseID, "room_number": "101", "type": "double", "price": "120"})
	s.createID("/api/v1/rooms", gin.H{"house_id": houseID, "room_number": "102", "type": "single", "price": "80"})
	guestID := s.createID("/api/v1/guests", gin.H{"name": "Ada"})
	return world{houseID: houseID, roomID: roomID, guestID: guestID}
}

func stay(roomID, guestID string, fromDay, toDay int) gin.H {
	base := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	return gin.H{
		"room_id":        roomID,
		"guest_id":       guestID,
		"check_in_date":  base.AddDate(0, 0, fromDay).Format(time.RFC3339),
		"check_out_date": base.AddDate(0, 0, toDay).Format(time.RFC3339),
	}
}

func TestHealth(t *testing.T) {
	s := setupSuite(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHouse_InitOnce(t *testing.T) {
	s := setupSuite(t)
	s.createID("/api/v1/houses", gin.H{"name": "Seaside"})

	w := s.do(http.MethodPost, "/api/v1/houses", s.owner, gin.H{"name": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	env := s.decode(w, nil)
	assert.Equal(t, "ALREADY_INITIALIZED", env.Error.Code)
	assert.Equal(t, "House has already been initialized", env.Error.Message)
}

func TestMutationsRequireToken(t *testing.T) {
	s := setupSuite(t)
	w := s.do(http.MethodPost, "/api/v1/houses", "", gin.H{"name": "Seaside"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRooms_OwnerOnlyAndDuplicates(t *testing.T) {
	s := setupSuite(t)
	wd := s.seed()

	stranger, err := s.jwt.GenerateToken("stranger")
	require.NoError(t, err)
	w := s.do(http.MethodPost, "/api/v1/rooms", stranger, gin.H{"house_id": wd.houseID, "room_number": "201", "price": "50"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/rooms", s.owner, gin.H{"house_id": wd.houseID, "room_number": "101", "price": "50"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Room number already exists in this house", s.decode(w, nil).Error.Message)

	w = s.do(http.MethodPost, "/api/v1/rooms", s.owner, gin.H{"house_id": wd.houseID, "price": "50"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := s.decode(w, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "room_number")
}

func TestRooms_PriceSearch(t *testing.T) {
	s := setupSuite(t)
	wd := s.seed()

	w := s.do(http.MethodGet, "/api/v1/houses/"+wd.houseID+"/rooms/search/price?min=90&max=130", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rooms []struct {
		ID    string `json:"id"`
		Price string `json:"price"`
	}
	s.decode(w, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, wd.roomID, rooms[0].ID)

	w = s.do(http.MethodGet, "/api/v1/houses/"+wd.houseID+"/rooms/search/price?min=500&max=900", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationLifecycle(t *testing.T) {
	s := setupSuite(t)
	wd := s.seed()

	w := s.do(http.MethodPost, "/api/v1/reservations", s.owner, stay(wd.roomID, wd.guestID, 0, 3))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Reservation struct {
			ID      string `json:"id"`
			HouseID string `json:"house_id"`
		} `json:"reservation"`
		Message string `json:"message"`
	}
	s.decode(w, &created)
	resID := created.Reservation.ID
	assert.Equal(t, wd.houseID, created.Reservation.HouseID)
	assert.Equal(t, fmt.Sprintf("Reservation ID: %s made successfully", resID), created.Message)

	// overlapping stay
	w = s.do(http.MethodPost, "/api/v1/reservations", s.owner, stay(wd.roomID, wd.guestID, 2, 4))
	assert.Equal(t, http.StatusConflict, w.Code)

	// touching stay
	w = s.do(http.MethodPost, "/api/v1/reservations", s.owner, stay(wd.roomID, wd.guestID, 3, 5))
	assert.Equal(t, http.StatusCreated, w.Code)

	base := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	q := fmt.Sprintf("?check_in=%s&check_out=%s", base.AddDate(0, 0, 1).Format(time.RFC3339), base.AddDate(0, 0, 2).Format(time.RFC3339))
	w = s.do(http.MethodGet, "/api/v1/rooms/"+wd.roomID+"/availability"+q, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var avail struct {
		Available bool `json:"available"`
	}
	s.decode(w, &avail)
	assert.False(t, avail.Available)

	w = s.do(http.MethodPost, "/api/v1/reservations/"+resID+"/checkout", s.owner, gin.H{"amount": "150.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var paid struct {
		Msg    string  `json:"msg"`
		Amount float64 `json:"amount"`
	}
	s.decode(w, &paid)
	assert.Equal(t, 150.0, paid.Amount)

	w = s.do(http.MethodGet, "/api/v1/rooms/"+wd.roomID, "", nil)
	var room struct {
		IsBooked bool `json:"is_booked"`
	}
	s.decode(w, &room)
	assert.False(t, room.IsBooked)

	w = s.do(http.MethodGet, "/api/v1/reservations/"+resID+"/payments", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/houses/"+wd.houseID+"/payments/export", s.owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())

	w = s.do(http.MethodDelete, "/api/v1/reservations/"+resID, s.owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/reservations/"+resID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckout_UnknownReservation(t *testing.T) {
	s := setupSuite(t)
	s.seed()

	w := s.do(http.MethodPost, "/api/v1/reservations/nonexistent-id/checkout", s.owner, gin.H{"amount": "10"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := s.decode(w, nil)
	assert.Equal(t, "Reservation not found", env.Error.Message)

	var details struct {
		Msg    string  `json:"msg"`
		Amount float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Zero(t, details.Amount)
}

func TestGuestRequests(t *testing.T) {
	s := setupSuite(t)
	wd := s.seed()

	w := s.do(http.MethodGet, "/api/v1/guests/"+wd.guestID+"/requests", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	reqID := s.createID("/api/v1/guests/"+wd.guestID+"/requests", gin.H{"details": "Late checkout"})

	w = s.do(http.MethodPut, "/api/v1/guest-requests/"+reqID+"/status", s.owner, gin.H{"status": "Fulfilled"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/guests/"+wd.guestID+"/requests", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fulfilled")
}

func TestEventFeed_OwnerOnly(t *testing.T) {
	s := setupSuite(t)
	w0 := s.seed()
	stranger, err := s.jwt.GenerateToken("stranger")
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/v1/ws/events?house_id="+w0.houseID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the house owner can perform this action", s.decode(w, nil).Error.Message)

	w = s.do(http.MethodGet, "/api/v1/ws/events?token="+stranger, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/ws/events?house_id=missing", s.owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/ws/events?house_id="+w0.houseID, "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
