package endpoint

import (
	"strings"
	"testing"
)

func TestResolveRejectsUnconfiguredValues(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"render placeholder", "https://YOUR_RENDER_BACKEND_URL"},
		{"paste placeholder", "PASTE your url here"},
		{"placeholder inside url", "https://api.example.com/PASTE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ep := Resolve(tc.raw)
			if ep.Valid {
				t.Fatalf("expected %q to be invalid", tc.raw)
			}
			if ep.BaseURL != "" {
				t.Fatalf("invalid endpoint should carry no base URL, got %q", ep.BaseURL)
			}
			if !strings.Contains(ep.Status, tc.raw) {
				t.Fatalf("status should include the raw value for diagnostics, got %q", ep.Status)
			}
		})
	}
}

func TestResolveStripsExactlyOneTrailingSlash(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://api.example.com", "https://api.example.com"},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com//", "https://api.example.com/"},
		{"https://api.example.com/v1/", "https://api.example.com/v1"},
	}

	for _, tc := range cases {
		ep := Resolve(tc.raw)
		if !ep.Valid {
			t.Fatalf("expected %q to be valid", tc.raw)
		}
		if ep.BaseURL != tc.want {
			t.Fatalf("Resolve(%q).BaseURL = %q, want %q", tc.raw, ep.BaseURL, tc.want)
		}
		if !strings.Contains(ep.Status, tc.want) {
			t.Fatalf("status should include the normalized value, got %q", ep.Status)
		}
	}
}
