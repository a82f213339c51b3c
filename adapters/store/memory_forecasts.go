package store

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/ports"
)

// MemoryForecasts is an in-memory implementation of the ForecastStore interface.
// Unknown days get a random forecast which is kept for all later reads.
type MemoryForecasts struct {
	forecasts map[string]core.Forecast
	rnd       *rand.Rand
	mu        sync.RWMutex
}

var _ ports.ForecastStore = (*MemoryForecasts)(nil)

// Option configures a MemoryForecasts
type Option func(*MemoryForecasts)

// WithRand replaces the random source used to synthesize forecasts
func WithRand(rnd *rand.Rand) Option {
	return func(s *MemoryForecasts) {
		s.rnd = rnd
	}
}

// NewMemoryForecasts creates an empty forecast store
func NewMemoryForecasts(opts ...Option) *MemoryForecasts {
	s := &MemoryForecasts{
		forecasts: make(map[string]core.Forecast),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(seed(), seed()))
	}
	return s
}

// Get returns the forecast stored for the day of date, synthesizing one on first read
func (s *MemoryForecasts) Get(date time.Time) core.Forecast {
	key := core.DayKey(date)

	s.mu.RLock()
	forecast, ok := s.forecasts[key]
	s.mu.RUnlock()
	if ok {
		return forecast
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another reader may have synthesized it while we waited for the lock
	if forecast, ok := s.forecasts[key]; ok {
		return forecast
	}

	forecast = s.synthesize(date)
	s.forecasts[key] = forecast
	return forecast
}

// Set stores forecast for the day of date, replacing whatever was there
func (s *MemoryForecasts) Set(date time.Time, forecast core.Forecast) {
	key := core.DayKey(date)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecasts[key] = forecast
}

// Len returns the number of days with a stored forecast
func (s *MemoryForecasts) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.forecasts)
}

// synthesize must be called with the write lock held, rnd is not safe for concurrent use
func (s *MemoryForecasts) synthesize(date time.Time) core.Forecast {
	return core.Forecast{
		Date:         core.Day(date),
		TemperatureC: core.MinTemperatureC + s.rnd.IntN(core.MaxTemperatureC-core.MinTemperatureC),
		Summary:      core.Summaries[s.rnd.IntN(len(core.Summaries))],
	}
}

func seed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
