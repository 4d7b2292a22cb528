package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
	"github.com/lajutuju/go-invoiceprint/internal/config"
	"github.com/lajutuju/go-invoiceprint/internal/hints"
	"github.com/lajutuju/go-invoiceprint/internal/preview"
)

// shutdownTimeout bounds how long in-flight requests may finish after a
// signal.
const shutdownTimeout = 10 * time.Second

// mergeServeFlags applies server flags over cfg.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	if f.host != "" {
		cfg.Serve.Host = f.host
	}
	if f.port != 0 {
		cfg.Serve.Port = f.port
	}
	if f.basePath != "" {
		cfg.Serve.BasePath = f.basePath
	}
	if f.ordersDir != "" {
		cfg.Serve.OrdersDir = f.ordersDir
	}
}

// runServe starts the preview server and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional)
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := mergeRendererFlags(&flags.renderer, cfg); err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg, flags.common, env.Stderr)
	opts, err := converterOptions(cfg, log)
	if err != nil {
		return err
	}

	// Fail on bad assets or templates before listening.
	probe, err := invoiceprint.NewConverter(opts...)
	if err != nil {
		return err
	}
	_ = probe.Close()

	pool := invoiceprint.NewConverterPool(invoiceprint.ResolvePoolSize(cfg.Workers), opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing browsers")
		}
	}()

	srv := preview.New(
		preview.NewDirStore(cfg.Serve.OrdersDir),
		preview.PooledRenderer(pool),
		preview.WithBasePath(cfg.Serve.BasePath),
		preview.WithLogger(log),
	)

	addr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Preview at http://%s%s\n", addr, srv.BasePath())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(addr) }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listening on %s: %w%s", addr, err, listenHint(err, cfg.Serve.Port))
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func listenHint(err error, port int) string {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "listen" {
		return hints.ForPortInUse(port)
	}
	return ""
}
