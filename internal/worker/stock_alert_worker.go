package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job envelope sent to QueueStockAlert when a sale
// leaves a product below its reorder level.
type StockAlertPayload struct {
	Product   string `json:"product"`
	Location  string `json:"location"`
	Remaining string `json:"remaining"`
	Threshold string `json:"threshold"`
}

// StockAlertWorker emails the operations inbox about products that dropped
// below their reorder level.
type StockAlertWorker struct {
	mailer  *infra.Mailer
	alertTo string
}

func NewStockAlertWorker(mailer *infra.Mailer, alertTo string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, alertTo: alertTo}
}

func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.alertTo == "" {
		log.Warn().Msg("stock_alert_worker: ALERT_EMAIL not configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s at %s", payload.Product, payload.Location)
	body := fmt.Sprintf(
		"%s at %s is down to %s (reorder level %s). Consider scheduling a production run or transfer.",
		payload.Product, payload.Location, payload.Remaining, payload.Threshold,
	)
	if err := w.mailer.SendAlert(w.alertTo, subject, body); err != nil {
		log.Error().Err(err).Str("product", payload.Product).Msg("stock_alert_worker: failed to send alert")
		return err
	}
	log.Info().Str("product", payload.Product).Str("location", payload.Location).Msg("stock_alert_worker: alert sent")
	return nil
}
