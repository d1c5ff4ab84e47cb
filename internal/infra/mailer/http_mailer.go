// Package mailer invokes the external serverless function that sends the
// acceptance emails. Email composition and localization happen remotely; the
// core only hands over the two identifiers.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"logbid/config"
	deliverycontext "logbid/internal/delivery/context"
	"logbid/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// httpMailer implements service.AcceptanceMailer over plain HTTP POST.
type httpMailer struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// noopMailer is used when no mailer endpoint is configured.
type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) SendAcceptanceEmails(ctx context.Context, bidID, offerID int64) error {
	m.logger.Debug("[Mailer] No endpoint configured, skipping acceptance emails",
		slog.Int64("bid_id", bidID),
		slog.Int64("offer_id", offerID),
	)

	return nil
}

// New creates an AcceptanceMailer from configuration. Without an endpoint the
// mailer degrades to a logged no-op so local development needs no function.
func New(cfg *config.Config, logger *slog.Logger) service.AcceptanceMailer {
	if cfg.Mailer == nil || cfg.Mailer.Endpoint == "" {
		logger.Info("Mailer not configured, using no-op mailer")

		return &noopMailer{logger: logger}
	}

	timeout := cfg.Mailer.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpMailer{
		endpoint: cfg.Mailer.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SendAcceptanceEmails triggers the email function with the closed bid and the
// winning offer.
func (m *httpMailer) SendAcceptanceEmails(ctx context.Context, bidID, offerID int64) error {
	payload := struct {
		BidID   int64 `json:"bid_id"`
		OfferID int64 `json:"offer_id"`
	}{
		BidID:   bidID,
		OfferID: offerID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("mail function returned non-success status: %d", resp.StatusCode)
	}

	m.logger.Info("[Mailer] Acceptance emails requested",
		slog.Int64("bid_id", bidID),
		slog.Int64("offer_id", offerID),
	)

	return nil
}
