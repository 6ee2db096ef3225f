package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veridict/veridict/internal/api"
	"github.com/veridict/veridict/internal/logging"
	"github.com/veridict/veridict/internal/pipeline"
)

var (
	servePort  int
	serveHost  string
	serveDebug bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the credibility analysis JSON API",
	Long: `Serve starts an HTTP server exposing the analysis pipeline.

Endpoints:
  POST /api/v1/analyze   {"input": "<text-or-url>", "profile": "ml"}
  GET  /api/v1/profiles
  GET  /health

One pipeline is built per configured scoring profile at startup.

Example:
  veridict serve --port 8080
  veridict serve --profile corroboration --search-endpoint http://search.local/q`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging of requests")

	serveCmd.Flags().StringVar(&classifier, "classifier", "", "classifier provider (remote, openai, local)")
	serveCmd.Flags().StringVar(&classifierURL, "classifier-url", "", "remote classifier endpoint")
	serveCmd.Flags().StringVar(&searchEndpoint, "search-endpoint", "", "corroboration search endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if serveDebug {
		cfg.Server.Debug = true
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// One pipeline per profile. Profiles whose providers cannot be
	// built (for example ml without classifier credentials) are skipped
	// with a warning instead of failing startup.
	analyzers := make(map[string]api.Analyzer)
	for name := range cfg.Profiles {
		profileCfg := *cfg
		profileCfg.Profile = name

		p, err := pipeline.NewPipeline(&profileCfg, logger)
		if err != nil {
			logger.Warn("profile unavailable",
				zap.String("profile", name),
				zap.Error(err))
			continue
		}
		analyzers[name] = p
	}
	if len(analyzers) == 0 {
		return fmt.Errorf("no scoring profile could be initialized")
	}
	if _, ok := analyzers[cfg.Profile]; !ok {
		return fmt.Errorf("default profile %q could not be initialized", cfg.Profile)
	}

	handler := api.NewHandler(analyzers, cfg.Profile, logger)
	server := api.NewServer(cfg.Server, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	fmt.Fprintf(os.Stderr, "veridict API listening on %s\n", server.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		fmt.Fprintf(os.Stderr, "received %s, shutting down\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
