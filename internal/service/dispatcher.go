package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/certavo/certavo-backend/internal/model"
	"github.com/certavo/certavo-backend/internal/store"
)

// Sender delivers one HTML email. Implemented by mailer.SMTP.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher sends a campaign's personalized emails, one per student in
// upload order. A failed recipient is logged and skipped; the batch always
// runs to completion.
type Dispatcher struct {
	Store   store.Store
	Sender  Sender
	Subject string

	// Delay paces consecutive sends to respect outbound rate limits.
	Delay time.Duration

	Log zerolog.Logger
}

// Dispatch runs one full send for the campaign and records the outcome as
// the campaign's last dispatch report. The returned error covers only the
// inability to run at all, never individual recipients.
func (d *Dispatcher) Dispatch(campaignID, fixedURL string) error {
	c, err := d.Store.Get(campaignID)
	if err != nil {
		return err
	}

	report := model.DispatchReport{Total: len(c.Students)}
	for i, st := range c.Students {
		if i > 0 && d.Delay > 0 {
			time.Sleep(d.Delay)
		}

		body, err := RenderMessage(c.EmailMessage, map[string]string{
			"nombre": st.Name,
			"codigo": st.Code,
			"url":    fixedURL,
		})
		if err != nil {
			d.Log.Error().Err(err).
				Str("campaign_id", campaignID).
				Str("email", st.Email).
				Msg("failed to render message")
			report.Failed++
			continue
		}

		if err := d.Sender.Send(st.Email, d.Subject, body); err != nil {
			d.Log.Error().Err(err).
				Str("campaign_id", campaignID).
				Str("email", st.Email).
				Msg("failed to send email")
			report.Failed++
			continue
		}
		report.Sent++
	}

	report.CompletedAt = time.Now()
	if err := d.Store.SetDispatchReport(campaignID, report); err != nil {
		d.Log.Error().Err(err).Str("campaign_id", campaignID).Msg("failed to record dispatch report")
	}

	d.Log.Info().
		Str("campaign_id", campaignID).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Msg("dispatch finished")
	return nil
}
