package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/weather/adapters/events"
	"github.com/layer-3/weather/adapters/store"
	"github.com/layer-3/weather/service"
	transport "github.com/layer-3/weather/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "weather",
		Short:        "Weather forecast service with token gated writes",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
	cfg.bindFlags(cmd.Flags())

	return cmd
}

func serve(ctx context.Context, cfg Config) error {
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	publisher, err := newPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	forecastService := service.NewForecastService(
		store.NewMemoryRegistry(),
		store.NewMemoryForecasts(),
		events.NewWatermillPublisher(publisher),
		logger,
	)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router, err := transport.SetupRouter(forecastService, transport.Config{
		LoginRatePerMinute: cfg.LoginRate,
		TrustedProxies:     cfg.TrustedProxies,
	}, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("weather server listening", slog.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// newPublisher returns a Redis streams publisher when a Redis URL is configured,
// otherwise an in-process pub/sub nobody outside the process can observe
func newPublisher(ctx context.Context, cfg Config) (message.Publisher, error) {
	logger := watermill.NewStdLogger(false, false)

	if cfg.RedisURL == "" {
		return gochannel.NewGoChannel(gochannel.Config{}, logger), nil
	}

	// Parse Redis URL and create client
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to create Redis publisher: %w", err)
	}

	return &redisPublisher{Publisher: publisher, client: redisClient}, nil
}

// redisPublisher closes the Redis client together with the publisher
type redisPublisher struct {
	*redisstream.Publisher
	client *redis.Client
}

func (p *redisPublisher) Close() error {
	return errors.Join(p.Publisher.Close(), p.client.Close())
}
