package main

import (
	"fmt"

	"github.com/fgeck/wakelan/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the hosts in the inventory file",
	RunE:  listHosts,
}

func listHosts(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		log.Error().Msg("config file is required")
		return cmd.Help()
	}

	parser := config.NewParser()
	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return err
	}

	for _, host := range cfg.Hosts {
		fmt.Printf("%-20s %s  %s:%d\n", host.Name, host.MAC, host.Broadcast, host.Port)
	}
	return nil
}
