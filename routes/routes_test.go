package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keyless-stay/config"
	"keyless-stay/database/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

type envelope struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := testdb.New(t)
	cfg := &config.Config{
		JWTSecret:            testSecret,
		AccessCodeLength:     config.DefaultAccessCodeLength,
		AccessCodeGraceHours: config.DefaultAccessCodeGraceHours,
		AccessCodeRatePerMin: 600,
		AccessCodeRateBurst:  50,
	}

	app := fiber.New()
	shutdown := SetupRoutes(app, db, cfg)
	t.Cleanup(shutdown)
	return app
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func call(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, into))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	status, env := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", env.Message)
}

func TestManagementRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/dashboard/stats", token(t, "guest-1", "guest"), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestKeylessEntryFlow(t *testing.T) {
	app := newTestApp(t)
	owner := token(t, "owner-1", "owner")
	stranger := token(t, "owner-2", "owner")

	status, env := call(t, app, http.MethodPost, "/api/properties", owner, fiber.Map{"name": "Riverside Inn"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var property struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	decodeData(t, env, &property)
	assert.Equal(t, "riverside-inn", property.Slug)

	status, env = call(t, app, http.MethodPost, "/api/rooms", owner, fiber.Map{
		"property_id": property.ID,
		"room_number": "101",
		"price":       "500",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var room struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &room)

	status, _ = call(t, app, http.MethodGet, "/api/rooms?propertyId="+property.ID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, status)

	today := time.Now().UTC()
	status, env = call(t, app, http.MethodPost, "/api/bookings/admin", owner, fiber.Map{
		"property_id": property.ID,
		"room_id":     room.ID,
		"check_in":    today.Format("2006-01-02"),
		"check_out":   today.AddDate(0, 0, 2).Format("2006-01-02"),
		"guest": fiber.Map{
			"first_name":   "Somchai",
			"last_name":    "Jaidee",
			"email":        "somchai@example.com",
			"phone_number": "0812345678",
		},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var booking struct {
		ID            string `json:"id"`
		BookingNumber string `json:"booking_number"`
		Status        string `json:"status"`
	}
	decodeData(t, env, &booking)
	assert.Equal(t, "confirmed", booking.Status)

	status, env = call(t, app, http.MethodGet, "/api/access-codes/booking/"+booking.ID, owner, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var codes []struct {
		Code string `json:"code"`
	}
	decodeData(t, env, &codes)
	require.Len(t, codes, 1)

	status, env = call(t, app, http.MethodPost, "/api/access-codes/use/"+codes[0].Code, "", nil)
	assert.Equal(t, http.StatusOK, status, env.Message)

	status, env = call(t, app, http.MethodPost, "/api/access-codes/use/"+codes[0].Code, "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	var refused struct {
		Code string `json:"code"`
	}
	decodeData(t, env, &refused)
	assert.Equal(t, "CODE_INVALID", refused.Code)

	status, env = call(t, app, http.MethodGet, "/api/bookings/"+booking.ID, owner, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	decodeData(t, env, &booking)
	assert.Equal(t, "checked_in", booking.Status)

	status, env = call(t, app, http.MethodGet, "/api/bookings/number/"+booking.BookingNumber, "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var public map[string]interface{}
	decodeData(t, env, &public)
	assert.NotContains(t, public, "guest")
	assert.Equal(t, "Somchai Jaidee", public["guest_name"])
}

func TestGuestBookingIsPublic(t *testing.T) {
	app := newTestApp(t)
	owner := token(t, "owner-1", "owner")

	_, env := call(t, app, http.MethodPost, "/api/properties", owner, fiber.Map{"name": "Hill Lodge"})
	var property struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &property)

	_, env = call(t, app, http.MethodPost, "/api/rooms", owner, fiber.Map{
		"property_id": property.ID,
		"room_number": "1",
		"price":       "900",
	})
	var room struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &room)

	checkIn := time.Now().UTC().AddDate(0, 0, 7)
	body := fiber.Map{
		"property_id": property.ID,
		"room_id":     room.ID,
		"check_in":    checkIn.Format("2006-01-02"),
		"check_out":   checkIn.AddDate(0, 0, 1).Format("2006-01-02"),
		"guest": fiber.Map{
			"first_name":   "Anna",
			"last_name":    "Lee",
			"email":        "anna@example.com",
			"phone_number": "0898765432",
		},
	}

	status, env := call(t, app, http.MethodPost, "/api/bookings", "", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var booking struct {
		Status string `json:"status"`
	}
	decodeData(t, env, &booking)
	assert.Equal(t, "pending", booking.Status)

	status, env = call(t, app, http.MethodPost, "/api/bookings", "", body)
	assert.Equal(t, http.StatusConflict, status)
	var failure struct {
		Code string `json:"code"`
	}
	decodeData(t, env, &failure)
	assert.Equal(t, "ROOM_NOT_AVAILABLE", failure.Code)
}
