package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pixfetch/config"
	"github.com/s0up4200/pixfetch/filter"
	"github.com/s0up4200/pixfetch/pixiv"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *pixiv.Client

	// Command flags shared by several commands
	language   string
	filterExpr string
	preset     string
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pixfetch",
	Short: "Inspect and download pixiv artworks",
	Long: `pixfetch talks to pixiv's web API to list the pages of an artwork,
look up tag translations and encyclopedia entries, and download images.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if client != nil {
		client.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "language for translated responses, e.g. en or ko")
}

// initializeApp loads the configuration and creates the pixiv client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := initializeLogging(cmd, args); err != nil {
		return err
	}

	var err error
	client, err = pixiv.NewClient(
		pixiv.WithScheme(cfg.Pixiv.Scheme),
		pixiv.WithBaseURL(cfg.Pixiv.Host),
		pixiv.WithUserAgent(cfg.Pixiv.UserAgent),
		pixiv.WithTimeout(cfg.Pixiv.Timeout),
		pixiv.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create pixiv client: %w", err)
	}

	if !cmd.Flags().Changed("lang") {
		language = cfg.Pixiv.Language
	}

	return nil
}

// initializeLogging loads the configuration and sets up the logger only
func initializeLogging(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only when writing to a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// compilePageFilter determines the filter to use.
// Priority: command line filter > preset > none
func compilePageFilter() (filter.CompiledFilter, error) {
	expr := filterExpr
	if expr == "" && preset != "" {
		presetExpr, ok := cfg.Filter.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expr = presetExpr
	}

	if expr == "" {
		return nil, nil
	}

	f, err := filter.CompileFilter(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "page filter expression, e.g. 'Width >= 1920'")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
