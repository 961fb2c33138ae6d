package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kunalgarg/bahi/internal/api"
	"github.com/kunalgarg/bahi/internal/auth"
	"github.com/kunalgarg/bahi/internal/clock"
	"github.com/kunalgarg/bahi/internal/refcache"
	"github.com/kunalgarg/bahi/internal/service"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "bahi",
		Short: "📒 Retail shop ledger",
		Long: `bahi: the mobile-accessory shop's ledger from the terminal.

Track clients, sales, returns, and deposits; pull profit summaries,
the dashboard, and PDF reports from the shop backend.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/bahi/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))

	// Add commands
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(salesCmd())
	rootCmd.AddCommand(depositsCmd())
	rootCmd.AddCommand(profitCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/bahi", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("BAHI")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("time.offset_minutes", clock.DefaultOffsetMinutes)
	viper.SetDefault("auth.idle_timeout", "30m")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	// Parse log level
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	switch format {
	case "console":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	// Set default logger
	slog.SetDefault(slog.New(handler))

	return nil
}

// services bundles the wired collaborators behind every command.
type services struct {
	api      *api.Client
	clock    *clock.Clock
	clients  *service.ClientService
	sales    *service.SalesService
	deposits *service.DepositService
	session  *auth.Session
}

func newServices() (*services, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("api.base_url is not configured")
	}
	timeout := viper.GetDuration("api.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := api.New(baseURL, timeout)
	clk := clock.New(viper.GetInt("time.offset_minutes"))
	clients := service.NewClientService(client, refcache.NewClientCache())

	idle := viper.GetDuration("auth.idle_timeout")
	session := auth.NewSession(client, idle, func() {
		fmt.Fprintln(os.Stderr, "session expired, log in again")
	})

	return &services{
		api:      client,
		clock:    clk,
		clients:  clients,
		sales:    service.NewSalesService(client, client, clients, clk),
		deposits: service.NewDepositService(client, clients, clk),
		session:  session,
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("bahi version", "version", version)
		},
	}
}
