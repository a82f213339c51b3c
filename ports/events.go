package ports

import (
	"context"
	"time"

	"github.com/layer-3/weather/core"
)

// EventPublisher publishes events to notify other instances
type EventPublisher interface {
	PublishForecastUpdated(ctx context.Context, date time.Time, forecast core.Forecast) error
	PublishTokenRevoked(ctx context.Context, token core.Token) error
}
