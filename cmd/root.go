package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/s0up4200/shipctl/config"
	"github.com/s0up4200/shipctl/filter"
	"github.com/s0up4200/shipctl/shipengine"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *shipengine.Client
	compiler *filter.Compiler

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	outputFormat string
	filterExpr   string
	preset       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shipctl",
	Short: "A command line client for the ShipEngine shipping API",
	Long: `shipctl talks to the ShipEngine API: list and void labels, look up
shipments and rates, and track packages. Lists can be narrowed with
filter expressions evaluated locally against each result.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version and self-update commands.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	shipengine.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(1)
	}
}

// errorHint suggests a follow-up for failures that may pass on a later attempt.
func errorHint(err error) string {
	var apiErr *shipengine.Error
	if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
		return ""
	}
	if apiErr.Kind == shipengine.KindTimeout {
		return "Hint: the request timed out; raise shipengine.timeout or try again later."
	}
	return "Hint: ShipEngine is rate limiting this account; raise shipengine.retries or try again later."
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and builds the ShipEngine client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	if cmd.Flags().Changed("output") {
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}

	client, err = newClient(cfg.ShipEngine, logger)
	if err != nil {
		return fmt.Errorf("failed to create ShipEngine client: %w", err)
	}

	compiler = filter.NewCompiler(filter.WithCacheSize(cfg.Filter.CacheSize))

	logger.Debug().
		Str("base_url", cfg.ShipEngine.BaseURL).
		Int("retries", cfg.ShipEngine.Retries).
		Dur("timeout", cfg.ShipEngine.Timeout).
		Msg("ShipEngine client ready")

	return nil
}

// newClient builds an SDK client from the shipengine config section
func newClient(c config.ShipEngineConfig, log zerolog.Logger) (*shipengine.Client, error) {
	sdkCfg, err := c.Configuration()
	if err != nil {
		return nil, err
	}
	sdkCfg, err = sdkCfg.Merge(shipengine.Overrides{Logger: shipengine.Some(&log)})
	if err != nil {
		return nil, err
	}

	var opts []shipengine.ExecutorOption
	if c.RequestsPerSecond > 0 {
		burst := max(1, int(c.RequestsPerSecond))
		opts = append(opts, shipengine.WithRateLimiter(rate.NewLimiter(rate.Limit(c.RequestsPerSecond), burst)))
	}

	return shipengine.NewClientFromConfig(sdkCfg, opts...), nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// skipInit replaces initializeApp for commands that need no configuration
func skipInit(cmd *cobra.Command, args []string) error {
	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to ShipEngine",
	Long:  `Test the API key against ShipEngine and display the connected carriers.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to ShipEngine at %s...\n", cfg.ShipEngine.BaseURL)

	carriers, err := client.Carriers.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	list := bodies(carriers["carriers"])
	fmt.Fprintf(out, "\nConnected carriers: %d\n", len(list))
	for _, c := range list {
		fmt.Fprintf(out, "  • %s (%s)\n", field(c, "friendly_name"), field(c, "carrier_id"))
	}

	return nil
}

// resolveFilter determines the filter to apply.
// Priority: command line filter > preset > config default > none.
func resolveFilter(c *filter.Compiler, fc config.FilterConfig, expression, presetName string) (*filter.Filter, error) {
	switch {
	case expression != "":
	case presetName != "":
		p, ok := fc.Preset(presetName)
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", presetName)
		}
		expression = p
	case fc.DefaultExpression != "":
		expression = fc.DefaultExpression
	default:
		return nil, nil
	}

	f, err := c.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}
