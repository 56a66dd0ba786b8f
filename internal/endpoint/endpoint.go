package endpoint

import (
	"fmt"
	"strings"
)

// Placeholder tokens that show up when the backend URL was never filled in
// after copying the deployment template.
var placeholders = []string{"YOUR_RENDER_BACKEND_URL", "PASTE"}

// Endpoint is the result of resolving the configured backend base URL.
type Endpoint struct {
	BaseURL string
	Valid   bool
	Status  string
}

// Resolve normalizes and validates the raw configured base URL.
// It is a pure function: no I/O, no state.
func Resolve(raw string) Endpoint {
	if strings.TrimSpace(raw) == "" {
		return Endpoint{
			Status: fmt.Sprintf("Backend base URL is not configured (got %q). Set API_BASE_URL and restart.", raw),
		}
	}

	for _, p := range placeholders {
		if strings.Contains(raw, p) {
			return Endpoint{
				Status: fmt.Sprintf("Backend base URL is not configured (got %q). Set API_BASE_URL and restart.", raw),
			}
		}
	}

	base := strings.TrimSuffix(raw, "/")
	return Endpoint{
		BaseURL: base,
		Valid:   true,
		Status:  fmt.Sprintf("Using backend at %s", base),
	}
}
