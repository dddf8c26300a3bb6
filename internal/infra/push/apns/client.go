// Package apns delivers VoIP pushes through the Apple Push Notification service.
package apns

import (
	"context"
	"crypto/ecdsa"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

var ErrDelivery = errs.Refine(errs.ErrUpstream, "push delivery failed")

// Client sends VoIP pushes with a provider token that apns2 re-signs
// before Apple's one hour limit.
type Client struct {
	apns  *apns2.Client
	topic string
}

func NewClient(cfg config.PushConfig) (*Client, error) {
	pemBytes := []byte(cfg.PrivateKey)
	if len(pemBytes) == 0 && cfg.PrivateKeyFile != "" {
		b, err := os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "apns: read private key"), errs.ErrConfiguration)
		}
		pemBytes = b
	}
	key, err := token.AuthKeyFromBytes(pemBytes)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "apns: parse private key"), errs.ErrConfiguration)
	}

	host := cfg.Host
	if host == "" {
		host = apns2.HostProduction
		if cfg.Sandbox {
			host = apns2.HostDevelopment
		}
	}
	return newClient(nil, host, cfg, key), nil
}

// newClient keeps apns2's HTTP/2 client unless httpClient is given.
func newClient(httpClient *http.Client, host string, cfg config.PushConfig, key *ecdsa.PrivateKey) *Client {
	c := apns2.NewTokenClient(&token.Token{AuthKey: key, KeyID: cfg.KeyID, TeamID: cfg.TeamID})
	if httpClient != nil {
		c.HTTPClient = httpClient
	} else if cfg.Timeout > 0 {
		c.HTTPClient.Timeout = cfg.Timeout
	}
	c.Host = strings.TrimRight(host, "/")
	return &Client{apns: c, topic: cfg.BundleID + ".voip"}
}

// Send posts a VoIP push and returns the apns-id of the accepted notification.
func (c *Client) Send(ctx context.Context, deviceToken string, data map[string]any) (string, error) {
	p := payload.NewPayload().ContentAvailable()
	for k, v := range data {
		if k != "aps" {
			p.Custom(k, v)
		}
	}

	res, err := c.apns.PushWithContext(ctx, &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       c.topic,
		PushType:    apns2.PushTypeVOIP,
		Priority:    apns2.PriorityHigh,
		Payload:     p,
	})
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "apns: send"), ErrDelivery)
	}
	if !res.Sent() {
		return "", errs.Mark(errs.Newf("apns: status=%d reason=%s", res.StatusCode, res.Reason), ErrDelivery)
	}
	return res.ApnsID, nil
}

// LogMessenger records pushes in the log instead of sending them.
type LogMessenger struct {
	logger *slog.Logger
}

func NewLogMessenger(logger *slog.Logger) *LogMessenger {
	return &LogMessenger{logger: logger}
}

func (m *LogMessenger) Send(ctx context.Context, deviceToken string, payload map[string]any) (string, error) {
	id := uuid.NewString()
	m.logger.InfoContext(ctx, "push skipped (APNs disabled)",
		"delivery_id", id,
		"device", redact(deviceToken),
		"type", payload["type"],
	)
	return id, nil
}

func redact(tok string) string {
	if len(tok) <= 8 {
		return "****"
	}
	return tok[:4] + "…" + tok[len(tok)-4:]
}

var (
	_ commands.DeviceMessenger = (*Client)(nil)
	_ commands.DeviceMessenger = (*LogMessenger)(nil)
)
