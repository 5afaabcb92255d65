package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/termii-gateway/environments"
	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/pkg/logger"
)

type Client struct {
	client valkey.Client
}

const (
	balanceSnapshotKey = "termii:balance_snapshot"
	balanceSnapshotTTL = 24 * time.Hour
)

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client}, nil
}

// SaveBalanceSnapshot replaces the stored snapshot. It expires after a day
// so a stopped monitor does not leave a stale balance behind forever.
func (c *Client) SaveBalanceSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal balance snapshot: %w", err)
	}

	cmd := c.client.B().Set().Key(balanceSnapshotKey).Value(string(data)).Ex(balanceSnapshotTTL).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to store balance snapshot: %w", err)
	}

	logger.Debugf("Stored balance snapshot %.2f %s", snapshot.Balance, snapshot.Currency)

	return nil
}

// GetBalanceSnapshot returns nil, nil when no snapshot is stored.
func (c *Client) GetBalanceSnapshot(ctx context.Context) (*domain.BalanceSnapshot, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(balanceSnapshotKey).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance snapshot: %w", result.Error())
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read balance snapshot: %w", err)
	}

	var snapshot domain.BalanceSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance snapshot: %w", err)
	}

	return &snapshot, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
