package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octabyte/clinic-portal/config"
	"github.com/octabyte/clinic-portal/dashboard"
	dbredis "github.com/octabyte/clinic-portal/db/redis"
	"github.com/octabyte/clinic-portal/otel"
	"github.com/octabyte/clinic-portal/otel/metrics"
	"github.com/octabyte/clinic-portal/queue"
	"github.com/octabyte/clinic-portal/services"
	"github.com/octabyte/clinic-portal/session"
	"github.com/octabyte/clinic-portal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func runServer(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init(cfg.LoggerConfig())
	defer logger.Sync()

	shutdownOtel, err := otel.InitOpenTelemetry(ctx, cfg.OtelConfig())
	if err != nil {
		return fmt.Errorf("failed to init opentelemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOtel(sctx); err != nil {
			logger.LogError("failed to flush telemetry", zap.Error(err))
		}
	}()
	if err := metrics.Init(cfg.ServiceName); err != nil {
		return err
	}

	store, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, err := bookingNotifier(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = notifier.Close() }()

	client := services.NewClient(services.ClientConfig{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.APITimeout,
		ServiceName: cfg.ServiceName,
	})
	sessions := session.NewManager(store, cfg.SessionTTL)

	handler := dashboard.NewHandler(dashboard.Options{
		Doctors:  services.NewDoctorService(client),
		Patients: services.NewPatientService(client),
		Auth:     services.NewAuthService(client),
		Notifier: notifier,
		Sessions: sessions,
		Timezone: cfg.ClinicTimezone,
	})
	renderer, err := dashboard.DefaultRenderer()
	if err != nil {
		return err
	}
	e := dashboard.NewServer(handler, renderer, dashboard.ServerConfig{
		ServiceName:  cfg.ServiceName,
		SecureCookie: cfg.CookieSecure,
		Tracing:      cfg.OtelEnabled,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		logger.LogInfo("starting server",
			zap.String("addr", addr),
			zap.String("api", cfg.APIBaseURL),
			zap.String("sessions", cfg.SessionBackend),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.LogInfo("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.LogInfo("server stopped")
	return nil
}

func sessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionBackend != config.SessionBackendRedis {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := dbredis.NewRedisClient(ctx, cfg.RedisConfig())
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

// bookingNotifier publishes to RabbitMQ when AMQP_URI is set and drops
// notifications otherwise.
func bookingNotifier(cfg *config.Config) (*queue.BookingNotifier, error) {
	if cfg.AMQPURI == "" {
		return queue.NewBookingNotifier(queue.NopPublisher{}), nil
	}

	pub := cfg.PublishConfig()
	conn, err := queue.NewConnection(queue.ConnectionConfig{
		URI:      cfg.AMQPURI,
		Exchange: queue.ExchangeConfig{Name: pub.Exchange, Kind: queue.ExchangeTypeTopic, Durable: true},
	})
	if err != nil {
		return nil, err
	}
	return queue.NewBookingNotifier(&connPublisher{Publisher: conn.Publisher(pub), conn: conn}), nil
}

// connPublisher closes the AMQP connection along with its channel.
type connPublisher struct {
	queue.Publisher
	conn *queue.Connection
}

func (p *connPublisher) Close() error {
	return errors.Join(p.Publisher.Close(), p.conn.Close())
}
