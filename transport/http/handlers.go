package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/service"
)

// ForecastResponse is the JSON representation of a forecast
type ForecastResponse struct {
	Date         time.Time `json:"date"`
	TemperatureC int       `json:"temperatureC"`
	TemperatureF int       `json:"temperatureF"`
	Summary      string    `json:"summary"`
}

// ForecastRequest is the body of a forecast write.
// temperatureF is accepted for symmetry with responses but ignored.
type ForecastRequest struct {
	Date         string `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	TemperatureF int    `json:"temperatureF"`
	Summary      string `json:"summary"`
}

// NewForecastResponse converts a domain forecast for the wire
func NewForecastResponse(f core.Forecast) ForecastResponse {
	return ForecastResponse{
		Date:         f.Date,
		TemperatureC: f.TemperatureC,
		TemperatureF: f.TemperatureF(),
		Summary:      f.Summary,
	}
}

// Forecast converts the request body to a domain forecast
func (r ForecastRequest) Forecast() (core.Forecast, error) {
	forecast := core.Forecast{
		TemperatureC: r.TemperatureC,
		Summary:      r.Summary,
	}
	if r.Date != "" {
		date, err := core.ParseTime(r.Date)
		if err != nil {
			return core.Forecast{}, core.ErrInvalidForecast
		}
		forecast.Date = date
	}
	return forecast, nil
}

// ForecastHandlers contains HTTP handlers for login and forecast endpoints
type ForecastHandlers struct {
	forecastService *service.ForecastService
}

// NewForecastHandlers creates new forecast handlers
func NewForecastHandlers(forecastService *service.ForecastService) *ForecastHandlers {
	return &ForecastHandlers{
		forecastService: forecastService,
	}
}

// Health reports that the server is up
func (h *ForecastHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login issues a token, returned as plain text so it can be used as the Authorization header as is
func (h *ForecastHandlers) Login(c *gin.Context) {
	token := h.forecastService.Login(c.Request.Context())
	c.String(http.StatusOK, token.String())
}

// Logout revokes the token carried in the Authorization header
func (h *ForecastHandlers) Logout(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "An Authorization header is expected"})
		return
	}

	if !h.forecastService.Logout(c.Request.Context(), core.ParseAuthorization(auth)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetForecast returns the forecast for the date query parameter
func (h *ForecastHandlers) GetForecast(c *gin.Context) {
	date, err := core.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forecast := h.forecastService.Forecast(c.Request.Context(), date)
	c.JSON(http.StatusOK, NewForecastResponse(forecast))
}

// SetForecast stores the body as the forecast for the date query parameter.
// AuthMiddleware has already validated the token.
func (h *ForecastHandlers) SetForecast(c *gin.Context) {
	date, err := core.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	forecast, err := req.Forecast()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid forecast date"})
		return
	}

	token := c.MustGet(tokenKey).(core.Token)
	if err := h.forecastService.UpdateForecast(c.Request.Context(), token, date, forecast); err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Failed to update forecast"

		// The token may have been revoked since the middleware ran
		if errors.Is(err, core.ErrUnauthorized) {
			statusCode = http.StatusUnauthorized
			errorMsg = "The authorization provided is invalid"
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.Status(http.StatusOK)
}
