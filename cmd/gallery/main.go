package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gallery.shikanime.studio/internal/config"
	"gallery.shikanime.studio/internal/site"
	"gallery.shikanime.studio/internal/web"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var (
	rootCmd = &cobra.Command{
		Use:               "gallery",
		Short:             "Project gallery server and static site builder",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		RunE:  runServe,
	}
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Render the gallery into static files",
		RunE:  runBuild,
	}

	// Flags
	cfgFile string
	addr    string
	outDir  string

	cfg      *config.Config
	shutdown = func() {}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a configuration file. Environment variables override its values")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Address to run the server on (host:port). If empty, uses ADDR or HOST and PORT environment variables")
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "public", "Directory to write the site into")
	rootCmd.AddCommand(serveCmd, buildCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		c, err := config.NewFromFile(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.New()
	}
	config.SetupLog(cfg)
	stop, err := config.SetupTelemetry(cmd.Context(), cfg)
	if err != nil {
		slog.Warn("failed to set up telemetry", "error", err)
	}
	shutdown = stop
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	defer shutdown()

	cfg.Watch()
	if addr != "" {
		cfg.Set("ADDR", addr)
	}

	srv, err := web.NewServerForConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.GetAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			return err
		}
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
		sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer scancel()
		if err := srv.Close(sctx); err != nil {
			slog.Error("error during shutdown", "error", err)
		}
		slog.Info("server stopped")
	}
	return nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	defer shutdown()
	_, err := site.BuildForConfig(cmd.Context(), cfg, outDir)
	return err
}
