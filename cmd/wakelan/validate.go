package main

import (
	"fmt"
	"os"

	"github.com/fgeck/wakelan/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the host inventory file",
	Long:  `Validate the host inventory file without sending any packets.`,
	RunE:  validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		log.Error().Msg("config file is required")
		return cmd.Help()
	}

	// Check if file exists
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Error().Str("file", configFile).Msg("config file not found")
		return fmt.Errorf("config file not found: %s", configFile)
	}

	// Load configuration
	parser := config.NewParser()
	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to parse config")
		return err
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("configuration validation failed")
		return err
	}

	// Print configuration summary
	fmt.Println("Configuration is valid!")
	fmt.Println()
	fmt.Println("Defaults:")
	fmt.Printf("  Broadcast: %s\n", cfg.Defaults.Broadcast)
	fmt.Printf("  Port: %d\n", cfg.Defaults.Port)
	fmt.Println()
	fmt.Printf("Hosts (%d):\n", len(cfg.Hosts))

	for _, host := range cfg.Hosts {
		fmt.Println()
		fmt.Printf("  %s:\n", host.Name)
		fmt.Printf("    MAC: %s\n", host.MAC)
		fmt.Printf("    Broadcast: %s\n", host.Broadcast)
		fmt.Printf("    Port: %d\n", host.Port)
		if host.Password != "" {
			fmt.Printf("    SecureOn: (configured)\n")
		}
		if host.PollURL != "" {
			fmt.Printf("    Poll URL: %s\n", host.PollURL)
			fmt.Printf("    Timeout: %s\n", host.Timeout)
			fmt.Printf("    Poll Interval: %s\n", host.PollInterval)
			fmt.Printf("    Stabilize Wait: %s\n", host.StabilizeWait)
		}
	}

	return nil
}
