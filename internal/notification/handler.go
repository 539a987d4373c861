package notification

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ============================================
// Templates
// ============================================

var bookedTmpl = template.Must(template.New("booked").Parse(
	`Hi {{.ClientName}},

Your appointment request with {{.ArtistName}} was received.

When:     {{.Start.Format "Mon, 02 Jan 2006 15:04 MST"}}
Duration: {{.DurationMinutes}} minutes
{{- if .TattooStyle}}
Style:    {{.TattooStyle}}
{{- end}}
Status:   {{.Status}}

The artist will confirm or get back to you shortly.
`))

var statusTmpl = template.Must(template.New("status").Parse(
	`Hi {{.ClientName}},

Your appointment with {{.ArtistName}} on {{.Start.Format "Mon, 02 Jan 2006 15:04 MST"}}
changed from {{.PreviousStatus}} to {{.Status}}.
`))

func render(t *template.Template, p AppointmentPayload) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ============================================
// Handler
// ============================================

type Handler struct {
	mailer Mailer
}

func NewHandler(mailer Mailer) *Handler {
	return &Handler{mailer: mailer}
}

func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeAppointmentBooked, h.HandleAppointmentBooked)
	mux.HandleFunc(TypeAppointmentStatus, h.HandleAppointmentStatus)
}

func (h *Handler) HandleAppointmentBooked(ctx context.Context, task *asynq.Task) error {
	p, err := UnmarshalPayload(task.Payload())
	if err != nil {
		// Retrying cannot fix a broken payload.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	body, err := render(bookedTmpl, p)
	if err != nil {
		return fmt.Errorf("render booked email: %w", err)
	}

	msg := Message{
		To:      recipients(p.ClientEmail, p.ArtistEmail),
		Subject: fmt.Sprintf("Appointment request with %s", p.ArtistName),
		Body:    body,
	}
	return h.send(ctx, task.Type(), p, msg)
}

func (h *Handler) HandleAppointmentStatus(ctx context.Context, task *asynq.Task) error {
	p, err := UnmarshalPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	body, err := render(statusTmpl, p)
	if err != nil {
		return fmt.Errorf("render status email: %w", err)
	}

	msg := Message{
		To:      recipients(p.ClientEmail),
		Subject: fmt.Sprintf("Your appointment is now %s", p.Status),
		Body:    body,
	}
	return h.send(ctx, task.Type(), p, msg)
}

func (h *Handler) send(ctx context.Context, taskType string, p AppointmentPayload, msg Message) error {
	if len(msg.To) == 0 {
		log.Warn().
			Str("type", taskType).
			Str("appointment_id", p.AppointmentID.String()).
			Msg("notification has no recipients, skipping")
		return nil
	}

	if err := h.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("type", taskType).
			Str("appointment_id", p.AppointmentID.String()).
			Msg("notification send failed")
		return fmt.Errorf("send %s: %w", taskType, err)
	}

	log.Info().
		Str("type", taskType).
		Str("appointment_id", p.AppointmentID.String()).
		Msg("notification sent")
	return nil
}

func recipients(addrs ...string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
