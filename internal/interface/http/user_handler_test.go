package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/infrastructure/inmemory"
	handlers "github.com/userboard/userboard/internal/interface/http"
	"github.com/userboard/userboard/internal/router"
	"github.com/userboard/userboard/internal/router/modules"
	"github.com/userboard/userboard/pkg/validation"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := userapp.NewService(inmemory.NewUserRepository(), logger)
	h := handlers.NewUserHandler(svc, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(h))
	reg.RegisterAll()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

const anaBody = `{
	"username": "ana",
	"email": "ANA@x.com",
	"phoneNumber": "1234567890",
	"address": {"street": "1 Rd", "city": "X", "zip": "00000", "geo": {"lat": 1, "lng": 2}}
}`

func TestCreateUser(t *testing.T) {
	engine := newTestEngine()

	w, body := doJSON(t, engine, http.MethodPost, "/api/user/create", anaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User created successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["_id"])
	assert.Equal(t, "ana", data["username"])
	assert.Equal(t, "ana@x.com", data["email"]) // lowercased on create
	assert.Equal(t, "1234567890", data["phoneNumber"])
	geo := data["address"].(map[string]interface{})["geo"].(map[string]interface{})
	assert.Equal(t, float64(1), geo["lat"])
	assert.Equal(t, float64(2), geo["lng"])
	assert.NotEmpty(t, data["createdAt"])
	assert.NotEmpty(t, data["updatedAt"])
}

func TestCreateUserValidation(t *testing.T) {
	engine := newTestEngine()

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing username", `{"email":"a@b.co","phoneNumber":"1234567890","address":{"street":"s","city":"c","zip":"z","geo":{"lat":1,"lng":2}}}`, "username"},
		{"bad phone", `{"username":"a","email":"a@b.co","phoneNumber":"123","address":{"street":"s","city":"c","zip":"z","geo":{"lat":1,"lng":2}}}`, "phoneNumber"},
		{"bad email", `{"username":"a","email":"nope","phoneNumber":"1234567890","address":{"street":"s","city":"c","zip":"z","geo":{"lat":1,"lng":2}}}`, "email"},
		{"missing address", `{"username":"a","email":"a@b.co","phoneNumber":"1234567890"}`, "address"},
		{"missing geo", `{"username":"a","email":"a@b.co","phoneNumber":"1234567890","address":{"street":"s","city":"c","zip":"z"}}`, "address.geo"},
		{"missing lat", `{"username":"a","email":"a@b.co","phoneNumber":"1234567890","address":{"street":"s","city":"c","zip":"z","geo":{"lng":2}}}`, "address.geo.lat"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doJSON(t, engine, http.MethodPost, "/api/user/create", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
			details := body["error"].(map[string]interface{})
			assert.Contains(t, details, tc.field)
		})
	}
}

func TestCreateUserMalformedBody(t *testing.T) {
	engine := newTestEngine()

	w, body := doJSON(t, engine, http.MethodPost, "/api/user/create", `{"username":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
}

func TestCreateDuplicateEmail(t *testing.T) {
	engine := newTestEngine()

	w, _ := doJSON(t, engine, http.MethodPost, "/api/user/create", anaBody)
	require.Equal(t, http.StatusCreated, w.Code)

	dup := `{
		"username": "other",
		"email": "ana@X.com",
		"phoneNumber": "0987654321",
		"address": {"street": "2 Rd", "city": "Y", "zip": "11111", "geo": {"lat": 3, "lng": 4}}
	}`
	w, body := doJSON(t, engine, http.MethodPost, "/api/user/create", dup)
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := body["error"].(map[string]interface{})
	assert.Contains(t, details, "email")
}

func TestListEmptyIsNotAnError(t *testing.T) {
	engine := newTestEngine()

	w, body := doJSON(t, engine, http.MethodGet, "/api/user/list", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok, "data must be a (possibly empty) array")
	assert.Empty(t, data)
}

func TestProfileErrors(t *testing.T) {
	engine := newTestEngine()

	w, body := doJSON(t, engine, http.MethodGet, "/api/user/profile/not-hex", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID format", body["message"])

	w, body = doJSON(t, engine, http.MethodGet, "/api/user/profile/66f0c2a9b6d3f001122aabbc", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", body["message"])
}

func TestUpdatePartialMerge(t *testing.T) {
	engine := newTestEngine()

	_, created := doJSON(t, engine, http.MethodPost, "/api/user/create", anaBody)
	id := created["data"].(map[string]interface{})["_id"].(string)

	w, body := doJSON(t, engine, http.MethodPut, "/api/user/update/"+id, `{"address":{"city":"Y"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User updated successfully", body["message"])

	addr := body["data"].(map[string]interface{})["address"].(map[string]interface{})
	assert.Equal(t, "Y", addr["city"])
	assert.Equal(t, "1 Rd", addr["street"])
	geo := addr["geo"].(map[string]interface{})
	assert.Equal(t, float64(1), geo["lat"])
	assert.Equal(t, float64(2), geo["lng"])
}

func TestUpdateRejectsInvalidMerge(t *testing.T) {
	engine := newTestEngine()

	_, created := doJSON(t, engine, http.MethodPost, "/api/user/create", anaBody)
	id := created["data"].(map[string]interface{})["_id"].(string)

	w, body := doJSON(t, engine, http.MethodPut, "/api/user/update/"+id, `{"username":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := body["error"].(map[string]interface{})
	assert.Contains(t, details, "username")

	// stored record unchanged
	_, got := doJSON(t, engine, http.MethodGet, "/api/user/profile/"+id, "")
	assert.Equal(t, "ana", got["data"].(map[string]interface{})["username"])
}

func TestDeleteFlow(t *testing.T) {
	engine := newTestEngine()

	_, created := doJSON(t, engine, http.MethodPost, "/api/user/create", anaBody)
	id := created["data"].(map[string]interface{})["_id"].(string)

	w, body := doJSON(t, engine, http.MethodDelete, "/api/user/delete/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully", body["message"])
	_, hasData := body["data"]
	assert.False(t, hasData, "delete carries no body data")

	w, _ = doJSON(t, engine, http.MethodDelete, "/api/user/delete/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/user/profile/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAfterCreates(t *testing.T) {
	engine := newTestEngine()

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{
			"username": "user%d",
			"email": "user%d@x.com",
			"phoneNumber": "123456789%d",
			"address": {"street": "s", "city": "c", "zip": "z", "geo": {"lat": 1, "lng": 2}}
		}`, i, i, i)
		w, _ := doJSON(t, engine, http.MethodPost, "/api/user/create", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	_, body := doJSON(t, engine, http.MethodGet, "/api/user/list", "")
	data := body["data"].([]interface{})
	require.Len(t, data, 3)
	// insertion order
	assert.Equal(t, "user0", data[0].(map[string]interface{})["username"])
	assert.Equal(t, "user2", data[2].(map[string]interface{})["username"])
}
