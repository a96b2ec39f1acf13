/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	bandwidth "github.com/tejzpr/bandwidth-go-sdk"
	"github.com/tejzpr/bandwidth-go-sdk/events"
	"github.com/tejzpr/bandwidth-go-sdk/stream"
	"github.com/tejzpr/bandwidth-go-sdk/webhook"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "receive callbacks and log every decoded event"
	serveCmdLong  = `Start an HTTP server that receives Bandwidth callbacks and logs every
	decoded event. Point the callbackUrl of an application or call at it to
	inspect what your handlers would receive.

	The server is configured through environment variables:
	- BANDWIDTH_CALLBACK_HOST: address to bind (default 0.0.0.0)
	- BANDWIDTH_CALLBACK_PORT: port to listen on (default 8080)
	- BANDWIDTH_CALLBACK_PATH: path callbacks are POSTed to (default /callbacks)
	- BANDWIDTH_STREAM_URL: optional websocket relay to read callbacks from,
	  authenticated with the resolved telephony credentials`

	serveCmdExample = `# Receive callbacks on port 9000
	BANDWIDTH_CALLBACK_PORT=9000 bandwidth serve`

	healthPath = "/-/healthz"
)

var errServeConfig = errors.New("serve configuration not valid")

// serveConfig is read from the environment.
type serveConfig struct {
	Host      string `env:"BANDWIDTH_CALLBACK_HOST" envDefault:"0.0.0.0"`
	Port      int    `env:"BANDWIDTH_CALLBACK_PORT" envDefault:"8080"`
	Path      string `env:"BANDWIDTH_CALLBACK_PATH" envDefault:"/callbacks"`
	StreamURL string `env:"BANDWIDTH_STREAM_URL"`
}

func loadServeConfig(environ map[string]string) (*serveConfig, error) {
	cfg, err := env.ParseAsWithOptions[serveConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errServeConfig, err)
	}

	var problems []string
	if cfg.Port < 1 || cfg.Port > 65535 {
		problems = append(problems, "BANDWIDTH_CALLBACK_PORT is out of valid range (1-65535)")
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		problems = append(problems, "BANDWIDTH_CALLBACK_PATH must start with /")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", errServeConfig, strings.Join(problems, ", "))
	}
	return &cfg, nil
}

// ServeCmd returns the Cobra command that runs the callback receiver.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig(env.ToMap(os.Environ()))
			if err != nil {
				return handleError(cmd, err)
			}
			if err := serve(cmd.Context(), cfg); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}
}

// newRouter returns a router that logs every event it receives.
func newRouter(log hclog.Logger) *webhook.Router {
	router := webhook.New(&webhook.Config{
		MaxBodyBytes:  webhook.DefaultMaxBodyBytes,
		IgnoreUnknown: true,
		Logger:        log,
	})
	router.On(webhook.Wildcard, func(ctx context.Context, event events.Event) error {
		hclog.FromContext(ctx).Info("callback received", "fields", event)
		return nil
	})
	return router
}

// newServeApp builds the fiber app serving the router on cfg.Path.
func newServeApp(cfg *serveConfig, router http.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
	})
	app.Get(healthPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "version": Version})
	})
	app.Post(cfg.Path, adaptor.HTTPHandler(router))
	return app
}

func serve(ctx context.Context, cfg *serveConfig) error {
	log := hclog.FromContext(ctx).Named("serve")
	router := newRouter(log)
	app := newServeApp(cfg, router)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	if cfg.StreamURL != "" {
		client, err := bandwidth.CurrentClient()
		if err != nil {
			return err
		}
		listener := stream.New(cfg.StreamURL, client, router, &stream.Config{
			HandshakeTimeout: stream.DefaultConfig().HandshakeTimeout,
			MaxRetries:       -1,
			Logger:           log,
		})
		go func() {
			if err := listener.Run(ctx); err != nil {
				errs <- err
			}
		}()
	}

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		log.Info("listening for callbacks", "address", address, "path", cfg.Path)
		if err := app.Listen(address); err != nil {
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
		return app.Shutdown()
	case err := <-errs:
		_ = app.Shutdown()
		return err
	}
}
