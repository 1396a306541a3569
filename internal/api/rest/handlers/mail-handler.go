package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/services"
)

// MailHandler turns events from the topic into notification emails.
type MailHandler struct {
	MailService services.MailService
	appBaseURL  string
	log         *zap.Logger
}

func NewMailHandler(ms services.MailService, appBaseURL string, log *zap.Logger) *MailHandler {
	return &MailHandler{MailService: ms, appBaseURL: strings.TrimRight(appBaseURL, "/"), log: log}
}

func (h *MailHandler) HandleMessage(ctx context.Context, key, value []byte) error {
	var env dto.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}

	mail, ok, err := h.mailFor(env)
	if err != nil {
		return fmt.Errorf("%s: %w", env.Event, err)
	}
	if !ok {
		h.log.Debug("event ignored", zap.String("event", env.Event), zap.ByteString("key", key))
		return nil
	}

	h.log.Info("event received", zap.String("event", env.Event), zap.String("to", mail.To))
	return h.MailService.Send(ctx, mail)
}

func (h *MailHandler) mailFor(env dto.Envelope) (services.Mail, bool, error) {
	switch env.Event {
	case dto.EventUserRegistered:
		var ev dto.UserRegisteredEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return services.Mail{}, false, err
		}
		return services.Mail{
			To:       ev.Email,
			Subject:  "Welcome to TempEd",
			Template: "welcome.html",
			Data: map[string]any{
				"FullName": ev.FullName,
				"Role":     ev.Role,
				"Link":     h.appBaseURL,
			},
		}, true, nil

	case dto.EventDocumentReviewed:
		var ev dto.DocumentReviewedEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return services.Mail{}, false, err
		}
		reason := ""
		if ev.RejectionReason != nil {
			reason = *ev.RejectionReason
		}
		return services.Mail{
			To:       ev.Email,
			Subject:  fmt.Sprintf("Your %s was %s", ev.DocumentLabel, ev.Status),
			Template: "document-reviewed.html",
			Data: map[string]any{
				"FullName":        ev.FullName,
				"DocumentLabel":   ev.DocumentLabel,
				"Status":          ev.Status,
				"RejectionReason": reason,
				"Verified":        ev.Verified,
				"Link":            h.appBaseURL + "/teacher/documents",
			},
		}, true, nil

	case dto.EventApplicationStatusChanged:
		var ev dto.ApplicationStatusChangedEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return services.Mail{}, false, err
		}
		return services.Mail{
			To:       ev.Email,
			Subject:  fmt.Sprintf("Application update: %s", ev.JobTitle),
			Template: "application-status.html",
			Data: map[string]any{
				"FullName":   ev.FullName,
				"JobTitle":   ev.JobTitle,
				"SchoolName": ev.SchoolName,
				"Status":     ev.Status,
				"Link":       h.appBaseURL + "/teacher/applications",
			},
		}, true, nil
	}
	return services.Mail{}, false, nil
}
