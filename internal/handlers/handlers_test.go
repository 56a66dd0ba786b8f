package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oseyili/myspace-dashboard/internal/auth"
	"github.com/oseyili/myspace-dashboard/internal/endpoint"
	"github.com/oseyili/myspace-dashboard/internal/gateway"
	"github.com/oseyili/myspace-dashboard/internal/middleware"
	"github.com/oseyili/myspace-dashboard/internal/rooms"
	"github.com/oseyili/myspace-dashboard/internal/session"
)

// fakeBackend is a minimal stand-in for the remote hotel API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["password"] != "right" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"bad credentials"}`))
				return
			}
			w.Write([]byte(`{"token":"backend-token"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/auth/register":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/rooms/"):
			w.Write([]byte(`{"rooms":[{"id":"1","roomNumber":"101","roomType":"Deluxe"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/rooms":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"missing token"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// buildTestRouter wires the dashboard API the way main does.
func buildTestRouter(backendURL string) (*gin.Engine, *session.Store, *rooms.Directory) {
	gin.SetMode(gin.TestMode)

	gw := gateway.New(endpoint.Resolve(backendURL))
	sessions := session.New(session.NewMemoryStorage())
	flow := auth.New(gw, sessions)
	directory := rooms.New(gw)
	events := NewEventHub()

	router := gin.New()
	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.Credential(sessions))
	{
		apiGroup.POST("/auth/login", Login(flow, sessions, events))
		apiGroup.POST("/auth/register", Register(flow, sessions))
		apiGroup.POST("/auth/logout", Logout(sessions, directory, events))
		apiGroup.GET("/session", Session(sessions))
		apiGroup.GET("/rooms/:hotelId", LoadRooms(directory, events))
		apiGroup.POST("/rooms", CreateRoom(directory, events))
		apiGroup.GET("/rooms/:hotelId/export", ExportRooms(directory))
	}
	return router, sessions, directory
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	backend := fakeBackend(t)
	router, sessions, directory := buildTestRouter(backend.URL)

	// Wrong password surfaces the backend's message.
	resp := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"wrong"}`, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "bad credentials") {
		t.Fatalf("expected backend message, got %s", resp.Body.String())
	}

	// Correct password authenticates and persists the token server-side.
	resp = doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"right"}`, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", resp.Code, resp.Body.String())
	}
	if sessions.Credential() != "backend-token" {
		t.Fatalf("credential = %q", sessions.Credential())
	}

	// Load a room list, then log out: session and list must both clear.
	resp = doJSON(t, router, http.MethodGet, "/api/rooms/h1", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("load status = %d", resp.Code)
	}
	if len(directory.State().Rooms) != 1 {
		t.Fatalf("rooms = %+v", directory.State().Rooms)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout status = %d", resp.Code)
	}
	if sessions.Authenticated() {
		t.Fatal("session must be anonymous after logout")
	}
	if len(directory.State().Rooms) != 0 {
		t.Fatal("room list must be discarded after logout")
	}

	var sessionResp SessionResponse
	resp = doJSON(t, router, http.MethodGet, "/api/session", "", nil)
	json.Unmarshal(resp.Body.Bytes(), &sessionResp)
	if sessionResp.Authenticated {
		t.Fatal("session endpoint must report anonymous")
	}
}

func TestCreateRoomUsesSessionCredential(t *testing.T) {
	backend := fakeBackend(t)
	router, _, directory := buildTestRouter(backend.URL)

	// Without a session the directory's token precondition answers.
	resp := doJSON(t, router, http.MethodPost, "/api/rooms", `{"hotelId":"h1","roomNumber":"5"}`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Enter a token") {
		t.Fatalf("expected token precondition message, got %s", resp.Body.String())
	}

	// Log in, then create: the persisted credential is used automatically.
	doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"right"}`, nil)
	resp = doJSON(t, router, http.MethodPost, "/api/rooms", `{"hotelId":"h1","roomNumber":"5","roomType":"Suite","price":"120"}`, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	if directory.Draft() != (rooms.Draft{}) {
		t.Fatalf("draft should be cleared, got %+v", directory.Draft())
	}
}

func TestCreateRoomAcceptsExplicitBearerOverride(t *testing.T) {
	backend := fakeBackend(t)
	router, _, _ := buildTestRouter(backend.URL)

	resp := doJSON(t, router, http.MethodPost, "/api/rooms",
		`{"hotelId":"h1","roomNumber":"7"}`,
		map[string]string{"Authorization": "Bearer pasted-token"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
}

func TestExportRoomsReturnsPDF(t *testing.T) {
	backend := fakeBackend(t)
	router, _, _ := buildTestRouter(backend.URL)

	doJSON(t, router, http.MethodGet, "/api/rooms/h1", "", nil)
	resp := doJSON(t, router, http.MethodGet, "/api/rooms/h1/export", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF document")
	}
}

func TestUnconfiguredBackendSurfacesConfigError(t *testing.T) {
	router, _, _ := buildTestRouter("PASTE")

	resp := doJSON(t, router, http.MethodGet, "/api/rooms/h1", "", nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Missing backend base URL") {
		t.Fatalf("expected configuration error, got %s", resp.Body.String())
	}
}
