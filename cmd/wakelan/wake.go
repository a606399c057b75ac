package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fgeck/wakelan/internal/config"
	"github.com/fgeck/wakelan/internal/models"
	"github.com/fgeck/wakelan/internal/services/waker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	broadcastFlag string
	portFlag      int
	sourceFlag    string
	passwordFlag  string
	repeatFlag    int
	waitFlag      bool
)

var wakeCmd = &cobra.Command{
	Use:   "wake <mac|host>...",
	Short: "Wake one or more machines",
	Long: `Wake machines by sending them Wake-on-LAN magic packets.

Each target is either a literal MAC address (woken using the --broadcast,
--port and --password flags) or the name of a host from the inventory
file given with --config (woken using that host's settings).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().StringVarP(&broadcastFlag, "broadcast", "b", "255.255.255.255", "broadcast address for literal MAC targets")
	wakeCmd.Flags().IntVarP(&portFlag, "port", "p", 9, "destination UDP port for literal MAC targets")
	wakeCmd.Flags().StringVar(&sourceFlag, "source", "", "local ip:port to send from (default: OS-assigned)")
	wakeCmd.Flags().StringVar(&passwordFlag, "password", "", "SecureOn password (hex) for literal MAC targets")
	wakeCmd.Flags().IntVar(&repeatFlag, "repeat", 1, "number of magic packets to send per target")
	wakeCmd.Flags().BoolVar(&waitFlag, "wait", false, "wait for hosts with a poll_url to become reachable")
}

func runWake(cmd *cobra.Command, args []string) error {
	var cfg *models.Config
	if configFile != "" {
		parser := config.NewParser()
		loaded, err := parser.LoadFile(configFile)
		if err != nil {
			log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
			return err
		}
		if err := config.Validate(loaded); err != nil {
			log.Error().Err(err).Msg("invalid configuration")
			return err
		}
		cfg = loaded
	}

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	svc := waker.New(log.Logger)

	failures := 0
	for _, arg := range args {
		target, err := resolveTarget(cfg, arg)
		if err != nil {
			log.Error().Err(err).Str("target", arg).Msg("cannot resolve target")
			return err
		}

		result, err := svc.Wake(ctx, target)
		if err != nil {
			return err
		}
		if result.Error != nil {
			log.Error().Err(result.Error).Str("target", arg).Msg("wake failed")
			failures++
			continue
		}

		log.Info().
			Str("target", arg).
			Int("packets", result.PacketsSent).
			Bool("ready", result.TargetReady).
			Msg("wake completed")
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d targets failed", failures, len(args))
	}
	return nil
}

// resolveTarget turns a command line argument into a wake target: a
// literal MAC address uses the wake flags, anything else is looked up
// as a host name in the inventory.
func resolveTarget(cfg *models.Config, arg string) (models.WakeTarget, error) {
	if _, err := net.ParseMAC(arg); err == nil {
		password, err := config.ParsePassword(passwordFlag)
		if err != nil {
			return models.WakeTarget{}, err
		}
		return models.WakeTarget{
			MACAddress: arg,
			Broadcast:  broadcastFlag,
			Port:       portFlag,
			Source:     sourceFlag,
			Password:   password,
			Repeat:     repeatFlag,
		}, nil
	}

	if cfg == nil {
		return models.WakeTarget{}, fmt.Errorf("%q is not a MAC address and no inventory file is loaded", arg)
	}

	for _, host := range cfg.Hosts {
		if host.Name != arg {
			continue
		}

		password, err := config.ParsePassword(host.Password)
		if err != nil {
			return models.WakeTarget{}, err
		}

		target := models.WakeTarget{
			MACAddress: host.MAC,
			Broadcast:  host.Broadcast,
			Port:       host.Port,
			Source:     sourceFlag,
			Password:   password,
			Repeat:     repeatFlag,
		}
		if waitFlag {
			target.PollURL = host.PollURL
			target.Timeout = host.Timeout
			target.PollInterval = host.PollInterval
			target.StabilizeWait = host.StabilizeWait
		}
		return target, nil
	}

	return models.WakeTarget{}, fmt.Errorf("host %q not found in %s", arg, configFile)
}
