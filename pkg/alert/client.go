package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/termii-gateway/environments"
	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/pkg/logger"
)

// Client posts balance alerts to an operator webhook (Slack, PagerDuty
// relay, ...).
type Client struct {
	httpClient *resty.Client
	webhookURL string
}

func NewAlertClient(cfg environments.AlertConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		webhookURL: cfg.WebhookURL,
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c.webhookURL != ""
}

type lowBalancePayload struct {
	domain.LowBalanceAlert
	Alert     string `json:"alert"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) SendLowBalanceAlert(ctx context.Context, alert domain.LowBalanceAlert) error {
	if !c.Enabled() {
		return fmt.Errorf("alert webhook is not configured")
	}

	payload := lowBalancePayload{
		LowBalanceAlert: alert,
		Alert:           "termii_low_balance",
		Message: fmt.Sprintf(
			"Termii balance %.2f %s has been below %.2f for %d consecutive checks",
			alert.Balance, alert.Currency, alert.Threshold, alert.ConsecutiveLow,
		),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	logger.Infof("Alert request to %s completed in %v (status: %d)", c.webhookURL, time.Since(startTime), resp.StatusCode())

	if !resp.IsSuccess() {
		return fmt.Errorf("alert webhook returned status %d, body: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
