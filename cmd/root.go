package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/session"
)

// stdin is the reader shared by every prompt
var stdin = bufio.NewReader(os.Stdin)

var (
	cfgFile   string
	apiURL    string
	cfg       *config.Config
	logger    zerolog.Logger
	sess      *session.Session
	filters   *filter.Manager
	formatter = catalog.NewConsoleFormatter()

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse movies, manage favorites and watchlist, and get recommendations",
	Long: `marquee is a command line client for the movie recommendation API.

Sign in once with 'marquee login'; tokens are kept in a local database and
renewed automatically when they expire.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for the version and self-update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.marquee/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override api.url from config")
}

// initializeApp loads the configuration and opens the session
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}

	logger = setupLogger(cfg.Logging)

	if !needsSession(cmd) {
		return nil
	}

	sess, err = session.Open(session.Config{
		APIURL:          cfg.API.URL,
		Timeout:         cfg.API.Timeout,
		UserAgent:       cfg.API.UserAgent,
		CredentialsPath: cfg.Credentials.Path,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if sess == nil {
		return nil
	}
	err := sess.Close()
	sess = nil
	return err
}

func needsSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "self-update", "help", "completion":
		return false
	}
	return true
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stderr
	if cfg.Format != "json" {
		fd := os.Stderr.Fd()
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
		}
	}

	if cfg.File != "" {
		output = zerolog.MultiLevelWriter(output, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// requireLogin fails early when no access credential is stored
func requireLogin() error {
	if !sess.Authenticated() {
		return fmt.Errorf("not logged in, run 'marquee login' first")
	}
	return nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, arg)
	}
	return id, nil
}

// prompt reads one line from stdin
func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(label)
	}

	fmt.Print(label)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
