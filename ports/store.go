package ports

import (
	"time"

	"github.com/layer-3/weather/core"
)

// ForecastStore keeps one forecast per calendar day.
// Get synthesizes and remembers a forecast for days never seen before.
type ForecastStore interface {
	Get(date time.Time) core.Forecast
	Set(date time.Time, forecast core.Forecast)
}
