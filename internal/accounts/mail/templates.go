package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"math"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// VerificationSubject is the subject line of registration emails.
const VerificationSubject = "Account Verification"

type verificationData struct {
	Title    string
	Link     string
	ValidFor string
}

// VerificationMessage renders the email carrying a registration link.
func VerificationMessage(from, to, link string, validFor time.Duration) (Message, error) {
	data := verificationData{
		Title:    VerificationSubject,
		Link:     link,
		ValidFor: humanDuration(validFor),
	}

	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, "verification.txt", data); err != nil {
		return Message{}, fmt.Errorf("mail: render text: %w", err)
	}
	if err := htmlTemplates.ExecuteTemplate(&html, "verification.html", data); err != nil {
		return Message{}, fmt.Errorf("mail: render html: %w", err)
	}

	return Message{
		From:    from,
		To:      to,
		Subject: VerificationSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(math.Round(d.Minutes())), "minute")
	default:
		return plural(int(math.Round(d.Hours())), "hour")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
