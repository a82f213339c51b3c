package weather

import (
	"context"
	"time"
)

// Client represents the public interface for interacting with the forecast service
type Client interface {
	// Ping checks that the service answers
	Ping(ctx context.Context) error

	// Login returns a new access token
	Login(ctx context.Context) (string, error)

	// Logout revokes the provided token
	Logout(ctx context.Context, token string) error

	// Forecast returns the forecast for the day of date
	Forecast(ctx context.Context, date time.Time) (Forecast, error)

	// SetForecast replaces the forecast for the day of date using token as authorization
	SetForecast(ctx context.Context, token string, date time.Time, forecast Forecast) error
}

// Forecast is a forecast as exchanged with the service
type Forecast struct {
	Date         time.Time `json:"date"`
	TemperatureC int       `json:"temperatureC"`
	TemperatureF int       `json:"temperatureF,omitempty"`
	Summary      string    `json:"summary"`
}
