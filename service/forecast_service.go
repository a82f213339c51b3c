package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/ports"
)

// ForecastService handles forecast reads and token gated writes
type ForecastService struct {
	registry  ports.TokenRegistry
	forecasts ports.ForecastStore
	eventPub  ports.EventPublisher
	logger    *slog.Logger
}

// NewForecastService creates a new forecast service
func NewForecastService(
	registry ports.TokenRegistry,
	forecasts ports.ForecastStore,
	eventPub ports.EventPublisher,
	logger *slog.Logger,
) *ForecastService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastService{
		registry:  registry,
		forecasts: forecasts,
		eventPub:  eventPub,
		logger:    logger,
	}
}

// Login issues a new access token.
// There are no credentials, every caller gets a token.
func (s *ForecastService) Login(ctx context.Context) core.Token {
	token := s.registry.Acquire()
	s.logger.DebugContext(ctx, "token issued")
	return token
}

// Logout revokes a token, reporting whether it was valid
func (s *ForecastService) Logout(ctx context.Context, token core.Token) bool {
	if !s.registry.Revoke(token) {
		return false
	}

	s.logger.InfoContext(ctx, "token revoked")

	// The token is already gone from the registry, a lost event only affects other instances
	if s.eventPub != nil {
		if err := s.eventPub.PublishTokenRevoked(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "failed to publish revocation event", slog.Any("error", err))
		}
	}

	return true
}

// Authorized reports whether token may write forecasts
func (s *ForecastService) Authorized(token core.Token) bool {
	return s.registry.IsAuthorized(token)
}

// Forecast returns the forecast for the day of date
func (s *ForecastService) Forecast(ctx context.Context, date time.Time) core.Forecast {
	return s.forecasts.Get(date)
}

// UpdateForecast replaces the forecast for the day of date if token is authorized
func (s *ForecastService) UpdateForecast(ctx context.Context, token core.Token, date time.Time, forecast core.Forecast) error {
	if !s.registry.IsAuthorized(token) {
		return fmt.Errorf("update forecast for %s: %w", core.DayKey(date), core.ErrUnauthorized)
	}

	s.forecasts.Set(date, forecast)

	s.logger.InfoContext(ctx, "forecast updated",
		slog.String("date", core.DayKey(date)),
		slog.Int("temperature_c", forecast.TemperatureC),
		slog.String("summary", forecast.Summary),
	)

	if s.eventPub != nil {
		if err := s.eventPub.PublishForecastUpdated(ctx, date, forecast); err != nil {
			s.logger.WarnContext(ctx, "failed to publish forecast event", slog.Any("error", err))
		}
	}

	return nil
}
