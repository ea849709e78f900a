package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/ecoamp/app"
	"github.com/kilianp07/ecoamp/config"
	"github.com/kilianp07/ecoamp/infra/logger"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath   string
	envFile   string
	cfg       *config.Config
	closeLogs = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:               "ecoamp",
	Short:             "EV prediction toolkit",
	Long:              "ecoamp estimates EV range, battery health, charging cost, regenerative braking gains and used EV prices.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeLogs()
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// setup loads the dotenv file, the configuration and the log output.
// A missing default config file falls back to defaults and K_ variables.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	path := cfgPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		path = ""
	}
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	closeLogs = logger.Configure(cfg.Logging.Options())
	return nil
}

func runServe(*cobra.Command, []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}

// withService builds a service for one-shot commands.
func withService(fn func(*app.Service) error) error {
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}
