package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/procurement-atlas/pkg/server"
	"github.com/de-tools/procurement-atlas/pkg/services/analytics"
	"github.com/de-tools/procurement-atlas/pkg/services/config"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Procurement Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", "",
		"Path to the profiles file (default is $HOME/.procurementcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if profilesPath != "" {
		cfg.ProfilesPath = profilesPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfg.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profiles registry: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfg.ProfilesPath)
	logger.Info().Msgf("Found the following profiles:")
	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}

	generator := analytics.NewGenerator(analytics.Settings{
		Title:    cfg.Report.Title,
		Currency: cfg.Report.Currency,
	})

	web := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Dependencies: server.Dependencies{
			Profiles:  registry,
			Sources:   source.NewDefaultRegistry(cfg.Storage.DbPath),
			Generator: generator,
			Logger:    logger,
		},
	})

	return web.Start()
}
