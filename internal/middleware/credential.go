package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oseyili/myspace-dashboard/internal/session"
)

// credentialKey is the gin context key the resolved credential is stored under.
const credentialKey = "credential"

// Credential resolves the bearer credential for the request: an explicit
// "Authorization: Bearer <token>" header on the incoming request wins,
// otherwise the session store's persisted credential is used. The resolved
// value may be empty; the room directory enforces its own token
// precondition with a user-facing message.
func Credential(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := sessions.Credential()

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
				credential = parts[1]
			}
		}

		c.Set(credentialKey, credential)
		c.Next()
	}
}

// CredentialFrom reads the credential resolved by Credential middleware.
func CredentialFrom(c *gin.Context) string {
	value, _ := c.Get(credentialKey)
	credential, _ := value.(string)
	return credential
}
