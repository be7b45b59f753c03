// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Koipioy/forkcast-backend/internal/cascade"
	"github.com/Koipioy/forkcast-backend/internal/config"
	"github.com/Koipioy/forkcast-backend/internal/diagnostics"
	"github.com/Koipioy/forkcast-backend/internal/httputil"
	"github.com/Koipioy/forkcast-backend/internal/render"
	"github.com/Koipioy/forkcast-backend/internal/server"
	"github.com/Koipioy/forkcast-backend/internal/ytdlp"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagListen string
	flagYtdlp  string
	flagDebug  bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "forkcast",
	Short: "HTTP service resolving webpage URLs to transcriptions or media URLs",
	Long: `Forkcast runs an extraction cascade against an arbitrary webpage or
video-platform URL: headless-browser render scan, raw HTML scan, then a
yt-dlp metadata probe. It returns a subtitle-derived transcription or a
direct media URL over a small JSON API.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagListen, "listen", "l", "", "Listen address (default :8000)")
	rootCmd.PersistentFlags().StringVar(&flagYtdlp, "ytdlp", "", "Path to the yt-dlp binary")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagYtdlp != "" {
		cfg.YtdlpPath = flagYtdlp
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	log.SetPrefix("[forkcast] ")
	if !cfg.Debug {
		log.SetFlags(0)
	}

	return nil
}

// serveRun wires the cascade from configuration and serves HTTP.
func serveRun(cmd *cobra.Command, args []string) error {
	tracker := diagnostics.Start()
	extractor := ytdlp.New(cfg.YtdlpPath)
	pageClient := httputil.NewClient(cfg.FetchTimeoutDur())

	var strategies []cascade.Strategy
	for _, name := range cfg.Strategies {
		switch name {
		case "render":
			renderer := render.NewChrome(cfg.PageLoadTimeoutDur(), cfg.SettleDelayDur(), cfg.UserAgent)
			strategies = append(strategies, cascade.NewRenderScan(renderer))
		case "fetch":
			strategies = append(strategies, cascade.NewPageFetch(pageClient, cfg.FetchTimeoutDur()))
		case "metadata":
			strategies = append(strategies, cascade.NewMetadata(extractor, pageClient, cfg.ExtractorTimeoutDur()))
		}
	}

	controller := cascade.New(strategies...)
	srv := server.New(controller, extractor, tracker, cfg.Strategies, Version)

	log.Printf("listening on %s (strategies: %v)", cfg.Listen, cfg.Strategies)
	return http.ListenAndServe(cfg.Listen, srv.Handler())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the forkcast version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("forkcast", Version)
	},
}
