package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"glinerd/internal/config"
	"glinerd/internal/gliner"
	"glinerd/internal/httpapi"
	"glinerd/internal/manager"
	"glinerd/internal/registry"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	configPath string
	flags      config.Config
	// logOut and listenHook are replaced in tests.
	logOut     io.Writer
	listenHook func(net.Addr)
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "Config file (.yaml, .json or .toml)")
	f.StringVar(&o.flags.Addr, "addr", "", "HTTP listen address (default :8000, env GLINER_ADDR)")
	f.StringVar(&o.flags.ModelsDir, "models-dir", "", "Models directory (default models, env GLINER_MODELS_DIR)")
	f.StringVar(&o.flags.Model, "model", "", "Model id under the models directory (env GLINER_MODEL)")
	f.StringVar(&o.flags.LogLevel, "log-level", "", "Log level: off|error|warn|info|debug (env GLINER_LOG_LEVEL)")
	f.StringVar(&o.flags.LogFormat, "log-format", "", "Log format: console|json (env GLINER_LOG_FORMAT)")
}

// resolveConfig applies defaults < config file < environment < flags.
func (o *serveOptions) resolveConfig(lookup func(string) (string, bool)) (config.Config, error) {
	cfg := config.Defaults()
	if o.configPath != "" {
		file, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, file)
	}
	cfg, err := config.FromEnv(cfg, lookup)
	if err != nil {
		return cfg, err
	}
	return config.Merge(cfg, o.flags), nil
}

func (o *serveOptions) run(cmd *cobra.Command) error {
	cfg, err := o.resolveConfig(nil)
	if err != nil {
		return err
	}
	out := o.logOut
	if out == nil {
		out = os.Stderr
	}
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		return err
	}
	return serve(cmd.Context(), cfg, logger, o.listenHook)
}

// serve runs the HTTP server until ctx is done. Model initialization starts
// once the listener is up; its failure is logged and the server keeps running.
func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger, onListen func(net.Addr)) error {
	params, err := gliner.NewParams(
		gliner.WithThreshold(float32(cfg.Threshold)),
		gliner.WithMaxWidth(cfg.MaxWidth),
		gliner.WithThreads(cfg.Threads),
	)
	if err != nil {
		return fmt.Errorf("model params: %w", err)
	}
	files, err := registry.Resolve(cfg.ModelsDir, cfg.Model)
	if err != nil {
		return err
	}

	httpapi.SetLogger(logger)
	httpapi.SetLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		ModelID:   cfg.Model,
		Logger:    &logger,
		Publisher: manager.LogPublisher{Logger: logger},
	})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	defer httpapi.SetBaseContext(nil)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{Handler: httpapi.NewMux(mgr), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Str("models_dir", cfg.ModelsDir).Str("model", cfg.Model).Msg("glinerd listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	if onListen != nil {
		onListen(ln.Addr())
	}

	go func() {
		// Errors are logged by the manager.
		_ = mgr.Initialize(baseCtx, manager.EngineLoader(files, params))
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Graceful shutdown (Ctrl+C / SIGTERM)
	logger.Info().Msg("shutting down")
	cancelBase()
	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := mgr.Close(shCtx); err != nil {
		logger.Error().Err(err).Msg("engine close error")
	}
	return nil
}
