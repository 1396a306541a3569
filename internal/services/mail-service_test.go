package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderMailTemplates(t *testing.T) {
	svc, err := NewMailService(SMTPConfig{Host: "localhost", Port: "25"}, zap.NewNop())
	require.NoError(t, err)
	tmpl := svc.(*smtpMailService).tmpl

	body, err := renderMail(tmpl, Mail{Template: "document-reviewed.html", Data: map[string]any{
		"FullName":        "Sipho <Dlamini>",
		"DocumentLabel":   "SACE certificate",
		"Status":          "rejected",
		"RejectionReason": "blurry scan",
		"Verified":        false,
		"Link":            "https://app.temped.example/teacher/documents",
	}})
	require.NoError(t, err)
	assert.Contains(t, body, "Sipho &lt;Dlamini&gt;")
	assert.Contains(t, body, "Reason: blurry scan")
	assert.NotContains(t, body, "now shows as verified")

	body, err = renderMail(tmpl, Mail{Template: "document-reviewed.html", Data: map[string]any{
		"FullName": "Sipho", "DocumentLabel": "CV", "Status": "approved", "RejectionReason": "", "Verified": true, "Link": "x",
	}})
	require.NoError(t, err)
	assert.Contains(t, body, "has been approved")
	assert.Contains(t, body, "now shows as verified")

	_, err = renderMail(tmpl, Mail{Template: "missing.html"})
	assert.Error(t, err)
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("TempEd", "noreply@temped.example", "sipho@example.com", "Welcome to TempEd", "<p>hi</p>"))

	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, head, "From: TempEd <noreply@temped.example>")
	assert.Contains(t, head, "To: sipho@example.com")
	assert.Contains(t, head, "Subject: Welcome to TempEd")
	assert.Contains(t, head, `Content-Type: text/html; charset="UTF-8"`)
	assert.Equal(t, "<p>hi</p>", body)
}
