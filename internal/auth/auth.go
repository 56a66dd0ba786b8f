package auth

import (
	"context"
	"errors"

	"github.com/oseyili/myspace-dashboard/internal/gateway"
	"github.com/oseyili/myspace-dashboard/internal/session"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

// tokenFields are the response field names a login token may hide under,
// probed in order; the first non-empty match wins.
var tokenFields = []string{"token", "accessToken", "jwt"}

// credentials is the payload shape shared by login and register.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Flow orchestrates login and registration against the gateway and updates
// the session store. Every failure is converted into a session auth error;
// nothing escapes to the caller unclassified.
type Flow struct {
	gateway  *gateway.Gateway
	sessions *session.Store
}

func New(gw *gateway.Gateway, sessions *session.Store) *Flow {
	return &Flow{gateway: gw, sessions: sessions}
}

// Login authenticates against the backend and, on success, stores the
// returned bearer token. Re-running it always re-evaluates from the given
// input; there is no hidden state between attempts.
func (f *Flow) Login(ctx context.Context, email, password string) error {
	f.sessions.ClearAuthError()

	payload, err := f.gateway.Post(ctx, loginPath, credentials{Email: email, Password: password}, "")
	if err != nil {
		f.sessions.SetAuthError(authErrorMessage(err, "Network error during login."))
		return err
	}

	for _, field := range tokenFields {
		if token := gateway.StringField(payload, field); token != "" {
			return f.sessions.SetCredential(ctx, token)
		}
	}
	return f.sessions.SetCredential(ctx, "")
}

// Register creates an account. It does not authenticate; on success the
// returned message tells the user to log in.
func (f *Flow) Register(ctx context.Context, email, password string) (string, error) {
	f.sessions.ClearAuthError()

	payload, err := f.gateway.Post(ctx, registerPath, credentials{Email: email, Password: password}, "")
	if err != nil {
		msg := authErrorMessage(err, "Network error during registration.")
		f.sessions.SetAuthError(msg)
		return "", err
	}

	if msg := gateway.MessageField(payload); msg != "" {
		return msg, nil
	}
	return "Registered! You can now log in.", nil
}

// authErrorMessage maps a gateway error to the user-facing auth message:
// server-reported text for request errors, a fixed generic line for
// configuration and transport failures.
func authErrorMessage(err error, generic string) string {
	var reqErr *gateway.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return generic
}
