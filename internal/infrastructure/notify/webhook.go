package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
)

var _ ledger.AlertNotifier = (*WebhookNotifier)(nil)

// WebhookNotifier publica alertas de stock bajo a un webhook externo (el
// dashboard operativo o un canal de chat) vía HTTP POST.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier construye el notificador. url vacío produce un
// notificador que no hace nada.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &WebhookNotifier{client: client, url: url}
}

// lowStockPayload cuerpo del POST al webhook.
type lowStockPayload struct {
	Source    string              `json:"source"`
	Timestamp time.Time           `json:"timestamp"`
	Alerts    []dto.LowStockAlert `json:"alerts"`
}

// NotifyLowStock envía el lote de alertas. Sin URL configurada es un no-op.
func (n *WebhookNotifier) NotifyLowStock(ctx context.Context, alerts []dto.LowStockAlert) error {
	if n.url == "" || len(alerts) == 0 {
		return nil
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(lowStockPayload{
			Source:    "almacen-ledger",
			Timestamp: time.Now(),
			Alerts:    alerts,
		}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post alertas de stock bajo: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook de alertas respondió %s", resp.Status())
	}
	return nil
}
