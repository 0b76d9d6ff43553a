package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/target/dirsearch/config"
	"github.com/target/dirsearch/internal/adapters/oidc"
	"github.com/target/dirsearch/internal/bootstrap"
	"github.com/target/dirsearch/internal/cli/output"
)

// app is everything a command needs once configuration has been loaded.
type app struct {
	cfg      config.AppConfig
	logger   *slog.Logger
	services *bootstrap.ServiceContainer
	// out carries results; status carries progress and outcome lines.
	out    *output.Printer
	status *output.Printer
}

type appOptions struct {
	// Interactive keeps statuses on stdout alongside the menus.
	Interactive bool
}

// colorEnabled honours --no-color and the NO_COLOR convention.
func colorEnabled() bool {
	if Flags.NoColor {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

// newApp loads configuration and wires the services for cmd.
func newApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return nil, err
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	logCfg := bootstrap.LoggerConfigFor(&cfg)
	logCfg.Output = cmd.ErrOrStderr()
	if Flags.Verbose {
		logCfg.Level = slog.LevelDebug
	}
	logger := bootstrap.InitLogger(logCfg)

	color := colorEnabled()
	out := output.NewPrinter(cmd.OutOrStdout(), format, color && format == output.FormatTable)
	status := output.NewPrinter(cmd.ErrOrStderr(), output.FormatTable, color)
	if opts.Interactive {
		status = out
	}

	redisClient, err := connectCache(ctx, &cfg, logger)
	if err != nil {
		return nil, err
	}

	provider, err := bootstrap.BuildIdentityProvider(ctx, bootstrap.AuthConfig{
		Auth:   cfg.Auth,
		Prompt: devicePrompt(cmd.ErrOrStderr()),
		Logger: logger,
	})
	if err != nil {
		return nil, closeOnError(err, redisClient)
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		Provider:    provider,
		RedisClient: redisClient,
		OnStatus:    status.StatusFunc(),
		Logger:      logger,
	})
	if err != nil {
		return nil, closeOnError(err, redisClient)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		services: services,
		out:      out,
		status:   status,
	}, nil
}

// connectCache returns a Redis client when the lookup cache is enabled, or nil.
// An unreachable Redis disables the cache rather than failing the command.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectCache(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.IsLookupCacheEnabled() {
		return nil, nil
	}
	client, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		logger.WarnContext(ctx, "lookup cache disabled", "error", err)
		return nil, nil
	}
	return client, nil
}

func closeOnError(err error, client redis.UniversalClient) error {
	if client == nil {
		return err
	}
	if cerr := client.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("close redis: %w", cerr))
	}
	return err
}

// close releases the services, logging rather than returning failures.
func (a *app) close(ctx context.Context) {
	if err := a.services.Close(); err != nil {
		a.logger.ErrorContext(ctx, "close services failed", "error", err)
	}
}

// watch routes interrupts to an in-flight login, or cancels ctx otherwise.
func (a *app) watch(ctx context.Context) (context.Context, func()) {
	return bootstrap.WatchInterrupts(ctx, a.services.Session, a.logger)
}

// devicePrompt prints the device-code instructions to w.
func devicePrompt(w io.Writer) oidc.PromptFunc {
	return func(_ context.Context, code oidc.DeviceCode) error {
		uri := code.VerificationURI
		if code.VerificationURIComplete != "" {
			uri = code.VerificationURIComplete
		}
		_, err := fmt.Fprintf(w, "To sign in, open %s and enter the code %s\n", uri, code.UserCode)
		return err
	}
}
