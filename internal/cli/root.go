package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TutorBooking/internal/app"
	"github.com/m04kA/SMC-TutorBooking/internal/config"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

const defaultConfigPath = "config.toml"

// NewRootCmd корневая команда tutorbooking
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tutorbooking",
		Short:         "Tutor availability and booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config.toml")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newSlotsCmd(&configPath))
	root.AddCommand(newBookCmd(&configPath))

	return root
}

// Execute запускает CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию и логгер
func bootstrap(configPath string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// buildApp собирает сервис; вызывающий закрывает App и логгер
func buildApp(ctx context.Context, configPath string, opts ...app.Option) (*app.App, *logger.Logger, error) {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, log, opts...)
	if err != nil {
		_ = log.Close()
		return nil, nil, err
	}
	return a, log, nil
}
