// cmd/predictor/email.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/insightbiz/insight-core/internal/config"
)

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type emailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	To      string `json:"to"`
}

type mailer struct {
	cfg config.SMTPConfig
}

func newMailer(cfg config.SMTPConfig) *mailer {
	return &mailer{cfg: cfg}
}

func (m *mailer) sendHandler(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" || req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, predictError{Error: "Missing required fields: 'to' and 'subject'"})
		return
	}

	// Without SMTP credentials, run in mock mode so development flows still work.
	if m.cfg.User == "" || m.cfg.Password == "" {
		log.Printf("SMTP not configured, would send email to %s with subject %q", req.To, req.Subject)
		writeJSON(w, http.StatusOK, emailResponse{
			Status:  "sent",
			Message: "Email service not configured. Running in mock mode.",
			To:      req.To,
		})
		return
	}

	if err := m.send(req); err != nil {
		log.Printf("Error sending email: %v", err)
		writeJSON(w, http.StatusInternalServerError, predictError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, emailResponse{
		Status:  "sent",
		Message: fmt.Sprintf("Email sent successfully to %s", req.To),
		To:      req.To,
	})
}

func (m *mailer) send(req emailRequest) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", req.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", req.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	if req.HTML != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(req.HTML)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(req.Text)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Server)
	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{req.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
