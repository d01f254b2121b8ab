package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRenderer(t *testing.T) {
	t.Parallel()

	p := PageRenderer{LoginURL: "https://example.com/login?next=<home>"}

	pages := []struct {
		page      Page
		showLogin bool
	}{
		{PageRegistrationComplete, true},
		{PageAlreadyVerified, true},
		{PageLinkExpired, false},
		{PageInvalidToken, false},
		{PageInvalidLink, false},
		{PageRegistrationFailed, false},
	}

	for _, tt := range pages {
		t.Run(tt.page.Title, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			p.Render(rec, http.StatusBadRequest, tt.page)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			body := rec.Body.String()
			require.Contains(t, body, "<title>"+tt.page.Title+"</title>")
			require.Contains(t, body, tt.page.Message)
			if tt.showLogin {
				// html/template escapes the URL.
				require.Contains(t, body, "https://example.com/login?next=%3chome%3e")
				require.NotContains(t, body, "<home>")
			} else {
				require.NotContains(t, body, "example.com/login")
			}
		})
	}
}
