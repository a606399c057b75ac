// Package waker provides Wake-on-LAN operations.
package waker

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fgeck/wakelan/internal/models"
	"github.com/fgeck/wakelan/wol"
	"github.com/rs/zerolog"
)

// Service defines the interface for wake operations.
type Service interface {
	Wake(ctx context.Context, target models.WakeTarget) (*models.WakeResult, error)
}

// Client sends a single magic packet. It wraps the wol package for mocking.
type Client interface {
	Send(mac net.HardwareAddr, password []byte, dst, src *net.UDPAddr) error
}

// HTTPClient allows mocking HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is the default implementation using the wol package.
type DefaultClient struct{}

// Send builds a magic packet for mac and transmits it to dst from src.
func (c *DefaultClient) Send(mac net.HardwareAddr, password []byte, dst, src *net.UDPAddr) error {
	packet, err := wol.NewWithPassword(mac, password)
	if err != nil {
		return fmt.Errorf("building magic packet: %w", err)
	}
	return packet.SendTo(dst, src)
}

// Impl implements the wake Service interface.
type Impl struct {
	wolClient  Client
	httpClient HTTPClient
	logger     zerolog.Logger
}

// New creates a new wake service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		wolClient: &DefaultClient{},
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NewWithClients creates a new wake service with custom clients (for testing).
func NewWithClients(logger zerolog.Logger, wolClient Client, httpClient HTTPClient) *Impl {
	return &Impl{
		wolClient:  wolClient,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Wake sends the target's magic packets and optionally waits for the
// target to become available.
func (s *Impl) Wake(ctx context.Context, target models.WakeTarget) (*models.WakeResult, error) {
	result := &models.WakeResult{}
	start := time.Now()

	// Parse MAC address
	mac, err := net.ParseMAC(target.MACAddress)
	if err != nil {
		result.Error = fmt.Errorf("invalid MAC address %q: %w", target.MACAddress, err)
		return result, nil
	}

	// Resolve destination
	ip := net.ParseIP(target.Broadcast)
	if ip == nil {
		result.Error = fmt.Errorf("invalid broadcast IP: %s", target.Broadcast)
		return result, nil
	}
	port := target.Port
	if port == 0 {
		port = wol.DefaultPort
	}
	dst := &net.UDPAddr{IP: ip, Port: port}

	// Resolve optional source binding
	var src *net.UDPAddr
	if target.Source != "" {
		src, err = net.ResolveUDPAddr("udp", target.Source)
		if err != nil {
			result.Error = fmt.Errorf("invalid source address %q: %w", target.Source, err)
			return result, nil
		}
	}

	repeat := target.Repeat
	if repeat < 1 {
		repeat = 1
	}

	s.logger.Info().
		Str("mac", target.MACAddress).
		Str("broadcast", target.Broadcast).
		Int("port", port).
		Int("repeat", repeat).
		Msg("sending magic packet")

	// Each send is an independent one-shot; a failure is not retried.
	for i := 0; i < repeat; i++ {
		if err := s.wolClient.Send(mac, target.Password, dst, src); err != nil {
			result.Error = err
			return result, nil //nolint:nilerr // error is stored in result struct by design
		}
		result.PacketsSent++
	}

	s.logger.Info().Int("packets", result.PacketsSent).Msg("magic packet sent successfully")

	// If no poll URL specified, we're done
	if target.PollURL == "" {
		result.WaitDuration = time.Since(start)
		result.TargetReady = true
		return result, nil
	}

	// Wait for target to become available
	s.logger.Info().
		Str("url", target.PollURL).
		Dur("timeout", target.Timeout).
		Msg("waiting for target to become available")

	if err := s.waitForTarget(ctx, target); err != nil {
		result.WaitDuration = time.Since(start)
		result.Error = err
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	// Wait for stabilization
	if target.StabilizeWait > 0 {
		s.logger.Debug().Str("wait", target.StabilizeWait.Round(time.Millisecond).String()).Msg("waiting for target to stabilize")
		select {
		case <-ctx.Done():
			result.WaitDuration = time.Since(start)
			result.Error = ctx.Err()
			return result, nil
		case <-time.After(target.StabilizeWait):
		}
	}

	result.TargetReady = true
	result.WaitDuration = time.Since(start)

	s.logger.Info().
		Dur("duration", result.WaitDuration).
		Msg("target is ready")

	return result, nil
}

func (s *Impl) waitForTarget(ctx context.Context, target models.WakeTarget) error {
	deadline := time.Now().Add(target.Timeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for target at %s", target.PollURL)
		}

		// Try to connect to target
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.PollURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			// Any response means the target is up
			return nil
		}

		s.logger.Debug().Err(err).Msg("target not ready yet")

		// Wait before next poll
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(target.PollInterval):
		}
	}
}
