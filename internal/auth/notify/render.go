package notify

import (
	"embed"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const dateLayout = "2 January 2006"

// Renderer turns notices into messages.
type Renderer struct {
	publicURL   string
	invitation  *template.Template
	credentials *template.Template
}

// NewRenderer parses the embedded templates. publicURL is the externally
// reachable base used for acceptance links.
func NewRenderer(publicURL string) (*Renderer, error) {
	inv, err := template.ParseFS(templateFS, "templates/invitation.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse invitation template: %w", err)
	}
	creds, err := template.ParseFS(templateFS, "templates/credentials.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse credentials template: %w", err)
	}
	return &Renderer{
		publicURL:   strings.TrimRight(publicURL, "/"),
		invitation:  inv,
		credentials: creds,
	}, nil
}

// AcceptURL is the link an invitee follows to redeem token.
func (r *Renderer) AcceptURL(token string) string {
	return r.publicURL + "/auth/accept-invitation?token=" + url.QueryEscape(token)
}

func (r *Renderer) Invitation(n domain.InvitationNotice) (Message, error) {
	name := "Our Platform"
	if len(n.TenantNames) > 0 {
		name = n.TenantNames[0]
	}
	data := struct {
		TenantName string
		TenantList string
		AcceptURL  string
		ExpiresAt  string
	}{
		TenantName: name,
		TenantList: strings.Join(n.TenantNames, ", "),
		AcceptURL:  r.AcceptURL(n.Token),
		ExpiresAt:  n.ExpiresAt.UTC().Format(dateLayout),
	}
	if data.TenantList == "" {
		data.TenantList = name
	}
	return render(r.invitation, n.Email, data)
}

func (r *Renderer) Credentials(n domain.CredentialsNotice) (Message, error) {
	data := struct {
		Email     string
		Username  string
		Password  string
		Tenants   []string
		ExpiresAt string
	}{
		Email:     n.Email,
		Username:  n.Username,
		Password:  n.Password,
		Tenants:   n.Tenants,
		ExpiresAt: formatDate(n.ExpiresAt),
	}
	return render(r.credentials, n.Email, data)
}

func render(t *template.Template, to string, data any) (Message, error) {
	var subject, body strings.Builder
	if err := t.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := t.ExecuteTemplate(&body, "body", data); err != nil {
		return Message{}, fmt.Errorf("render body: %w", err)
	}
	return Message{
		To:      to,
		Subject: strings.TrimSpace(subject.String()),
		Body:    body.String(),
	}, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
