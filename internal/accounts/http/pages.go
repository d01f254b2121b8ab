package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

//go:embed pages/*.html
var pageFS embed.FS

var resultPage = template.Must(template.ParseFS(pageFS, "pages/result.html"))

// pageCSP only allows the inline stylesheet the result pages carry.
const pageCSP = "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none'"

// Page is one of the results shown after following a verification link.
type Page struct {
	Title   string
	Message string

	// ShowLogin adds a link to the login page.
	ShowLogin bool
}

var (
	PageRegistrationComplete = Page{
		Title:     "Registration Complete",
		Message:   "Your email has been verified and your account has been created successfully.",
		ShowLogin: true,
	}
	PageAlreadyVerified = Page{
		Title:     "Account Already Verified",
		Message:   "Your email has already been verified.",
		ShowLogin: true,
	}
	PageLinkExpired = Page{
		Title:   "Link Expired",
		Message: "Your verification link has expired. Please generate a new verification request.",
	}
	PageInvalidToken = Page{
		Title:   "Invalid Token",
		Message: "The token provided is invalid. Please generate a new verification request.",
	}
	PageInvalidLink = Page{
		Title:   "Invalid Link",
		Message: "Unable to verify. Please generate the request again.",
	}
	PageRegistrationFailed = Page{
		Title:   "Registration Failed",
		Message: "Failed to complete registration. Please try again later.",
	}
)

// PageRenderer writes result pages. LoginURL is the target of the login link.
type PageRenderer struct {
	LoginURL string
}

func (p PageRenderer) Render(w http.ResponseWriter, code int, page Page) {
	data := struct {
		Title    string
		Message  string
		LoginURL string
	}{Title: page.Title, Message: page.Message}
	if page.ShowLogin {
		data.LoginURL = p.LoginURL
	}

	var buf bytes.Buffer
	if err := resultPage.Execute(&buf, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Security-Policy", pageCSP)
	httpx.WriteHTML(w, code, buf.Bytes())
}
