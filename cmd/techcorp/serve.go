package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vango-dev/techcorp/internal/config"
	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/inbox"
	"github.com/vango-dev/techcorp/pkg/middleware"
	"github.com/vango-dev/techcorp/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port   int
		host   string
		dev    bool
		driver string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server.

Settings come from the configuration file, then TECHCORP_* environment
variables, then these flags.

Examples:
  techcorp serve
  techcorp serve --port=3000 --dev
  TECHCORP_INBOX_DRIVER=redis techcorp serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Config
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("dev") {
				cfg.Server.Dev = dev
			}
			if cmd.Flags().Changed("inbox") {
				cfg.Inbox.Driver = driver
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, loaded.Path)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode: text logs, pretty HTML, no asset caching")
	cmd.Flags().StringVar(&driver, "inbox", "", "Inbox driver: log, memory, disk, redis or s3")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config, path string) error {
	if cfg.Server.Dev {
		cfg.Log.Format = "text"
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithVersion(version),
	}

	// With a Redis inbox, instances also share the submission budget.
	if cfg.Inbox.Driver == inbox.DriverRedis && cfg.Contact.RateLimit > 0 {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Inbox.RedisAddr,
			Password: cfg.Inbox.RedisPassword,
			DB:       cfg.Inbox.RedisDB,
		})
		defer client.Close()
		store, err := middleware.NewRedisStore(client, cfg.Inbox.RedisPrefix+":ratelimit")
		if err != nil {
			return errors.New("T301").WithDetail("Rate limit store: " + err.Error())
		}
		opts = append(opts, server.WithRateLimitStore(store))
	}

	srv, err := server.New(cfg, opts...)
	if err != nil {
		return err
	}

	printBanner()
	if path != "" {
		info("config   %s", path)
	}
	info("inbox    %s", cfg.Inbox.Driver)
	success("listening on http://%s", cfg.Server.Addr())

	return srv.Run(ctx)
}
