package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/moeezmir/portfolio/internal/progress"
	"github.com/moeezmir/portfolio/internal/relay"
	"github.com/moeezmir/portfolio/internal/server"
	"github.com/moeezmir/portfolio/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and the contact form relay",
	Long: `Serves the built site, the wasm client and the contact form relay endpoint.
With --build the site is rebuilt first; with --watch it is rebuilt whenever
the content directory changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("build", false, "build the site before serving")
	serveCmd.Flags().Bool("watch", false, "rebuild the site when content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build, _ := cmd.Flags().GetBool("build")
	watch, _ := cmd.Flags().GetBool("watch")
	if build || watch {
		g := newGenerator(cfg, "", progress.NewReporter("Rendering pages"))
		res, err := g.Generate()
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		reportBuild(cmd, g, res)

		if watch {
			quiet := newGenerator(cfg, "", progress.Nop{})
			w := site.NewWatcher(cfg.Site.ContentDir, func() error {
				_, err := quiet.Generate()
				return err
			}, log.Component("watch"))
			go func() {
				if err := w.Run(ctx); err != nil {
					log.Error(err, "content watcher stopped")
				}
			}()
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := relay.NewHandler(newMailer(cfg, log), cfg.Mail.To, log.Component("relay"), registry)
	srv := server.New(server.Config{
		Port:      cfg.Server.Port,
		SiteDir:   cfg.Site.OutputDir,
		WasmPath:  cfg.Server.WasmPath,
		RelayPath: cfg.Relay.Path,
		AllowAll:  cfg.Server.AllowAllOrigins,
	}, handler, registry, log)

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "server shutdown")
		}
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "portfolio %s serving %s on http://localhost:%d\n", Version, cfg.Site.OutputDir, cfg.Server.Port)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Relay: POST %s (transport=%s)\n", cfg.Relay.Path, cfg.Mail.Transport)
	fmt.Fprintln(cmd.ErrOrStderr(), "Press Ctrl+C to stop.")

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
