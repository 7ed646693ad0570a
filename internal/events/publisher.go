package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Channels for post-commit notifications.
const (
	ChannelGoalContribution = "goals.contribution"
	ChannelPortfolioTrade   = "portfolio.trade"
)

// Publisher pushes best-effort notifications onto redis pub/sub channels
// after a commit has succeeded. Failures are logged and swallowed; the
// commit, not the notification, is the unit of correctness.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher returns a publisher backed by the given redis client.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Notify publishes the payload as JSON on the channel. Safe to call on a nil
// publisher so services can run without a broker wired (tests, migrations).
func (p *Publisher) Notify(ctx context.Context, channel string, payload any) {
	if p == nil || p.rdb == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"channel": channel,
			"error":   err.Error(),
		}).Warn("event payload marshal failed")
		return
	}
	if err := p.rdb.Publish(ctx, channel, b).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"channel": channel,
			"error":   err.Error(),
		}).Warn("event publish failed")
	}
}
