package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseyili/myspace-dashboard/internal/auth"
	"github.com/oseyili/myspace-dashboard/internal/rooms"
	"github.com/oseyili/myspace-dashboard/internal/session"
)

// CredentialsRequest is the request body for login and register.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse describes the current session to the dashboard UI.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Login authenticates against the backend and keeps the bearer token
// server-side.
func Login(flow *auth.Flow, sessions *session.Store, events *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := flow.Login(c.Request.Context(), req.Email, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"authenticated": false,
				"error":         sessions.AuthError(),
			})
			return
		}

		snapshot := sessionResponse(sessions)
		events.Broadcast(Event{Type: EventSession, Session: &snapshot})
		c.JSON(http.StatusOK, gin.H{"authenticated": true})
	}
}

// Register creates a backend account. The response tells the UI to switch
// back to the login form; registering never authenticates by itself.
func Register(flow *auth.Flow, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		msg, err := flow.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": sessions.AuthError()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": msg, "switchToLogin": true})
	}
}

// Logout clears the session and drops the loaded room list so a logged-out
// user is never shown stale rooms.
func Logout(sessions *session.Store, directory *rooms.Directory, events *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Logout(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		directory.Reset()

		sessionSnapshot := sessionResponse(sessions)
		roomsSnapshot := directoryResponse(directory)
		events.Broadcast(Event{Type: EventSession, Session: &sessionSnapshot})
		events.Broadcast(Event{Type: EventRooms, Rooms: &roomsSnapshot})
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
	}
}

// Session reports the current authentication state.
func Session(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sessionResponse(sessions))
	}
}

func sessionResponse(sessions *session.Store) SessionResponse {
	resp := SessionResponse{
		Authenticated: sessions.Authenticated(),
		Error:         sessions.AuthError(),
	}
	if claims, ok := sessions.Claims(); ok {
		resp.Subject = claims.Subject
		if !claims.ExpiresAt.IsZero() {
			resp.ExpiresAt = claims.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
	}
	return resp
}
