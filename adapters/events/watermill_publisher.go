package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/ports"
)

const (
	// ForecastUpdatedTopic receives a ForecastUpdatedEvent for every authorized write
	ForecastUpdatedTopic = "weather.forecast.updated"

	// TokenRevokedTopic receives a TokenRevokedEvent for every successful revocation
	TokenRevokedTopic = "weather.token.revoked"
)

// ForecastUpdatedEvent represents a forecast overwrite
type ForecastUpdatedEvent struct {
	Date         string    `json:"date"`
	RecordDate   time.Time `json:"record_date"`
	TemperatureC int       `json:"temperature_c"`
	Summary      string    `json:"summary"`
}

// TokenRevokedEvent represents a token revocation
type TokenRevokedEvent struct {
	Token     string    `json:"token"`
	RevokedAt time.Time `json:"revoked_at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
	}
}

// PublishForecastUpdated publishes a forecast update event
func (p *WatermillPublisher) PublishForecastUpdated(ctx context.Context, date time.Time, forecast core.Forecast) error {
	return p.publish(ctx, ForecastUpdatedTopic, ForecastUpdatedEvent{
		Date:         core.DayKey(date),
		RecordDate:   forecast.Date,
		TemperatureC: forecast.TemperatureC,
		Summary:      forecast.Summary,
	})
}

// PublishTokenRevoked publishes a token revocation event
func (p *WatermillPublisher) PublishTokenRevoked(ctx context.Context, token core.Token) error {
	return p.publish(ctx, TokenRevokedTopic, TokenRevokedEvent{
		Token:     token.String(),
		RevokedAt: time.Now().UTC(),
	})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
