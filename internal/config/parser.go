// Package config provides configuration file parsing.
package config

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/fgeck/wakelan/internal/models"
	"github.com/fgeck/wakelan/wol"
	"github.com/spf13/viper"
)

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.Config, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a reader (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Config, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

// hostEntry mirrors a hosts[] item in the YAML file.
type hostEntry struct {
	Name          string        `mapstructure:"name"`
	MAC           string        `mapstructure:"mac"`
	Broadcast     string        `mapstructure:"broadcast"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	PollURL       string        `mapstructure:"poll_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	StabilizeWait time.Duration `mapstructure:"stabilize_wait"`
}

func (p *Parser) parse() (*models.Config, error) {
	cfg := &models.Config{}

	// Parse defaults.
	cfg.Defaults = models.Defaults{
		Broadcast: p.v.GetString("defaults.broadcast"),
		Port:      p.v.GetInt("defaults.port"),
	}
	if cfg.Defaults.Broadcast == "" {
		cfg.Defaults.Broadcast = "255.255.255.255"
	}
	if cfg.Defaults.Port == 0 {
		cfg.Defaults.Port = wol.DefaultPort
	}

	// Parse hosts (required).
	var entries []hostEntry
	if err := p.v.UnmarshalKey("hosts", &entries); err != nil {
		return nil, fmt.Errorf("parsing hosts: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("hosts is required")
	}

	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("hosts[%d].name is required", i)
		}
		if entry.MAC == "" {
			return nil, fmt.Errorf("hosts[%d].mac is required", i)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("duplicate host name %q", entry.Name)
		}
		seen[entry.Name] = true

		host := models.Host{
			Name:          entry.Name,
			MAC:           entry.MAC,
			Broadcast:     entry.Broadcast,
			Port:          entry.Port,
			Password:      p.expandEnv(entry.Password),
			PollURL:       entry.PollURL,
			Timeout:       entry.Timeout,
			PollInterval:  entry.PollInterval,
			StabilizeWait: entry.StabilizeWait,
		}

		// Apply defaults.
		if host.Broadcast == "" {
			host.Broadcast = cfg.Defaults.Broadcast
		}
		if host.Port == 0 {
			host.Port = cfg.Defaults.Port
		}
		if host.PollURL != "" {
			if host.Timeout == 0 {
				host.Timeout = 5 * time.Minute
			}
			if host.PollInterval == 0 {
				host.PollInterval = 10 * time.Second
			}
			if host.StabilizeWait == 0 {
				host.StabilizeWait = 10 * time.Second
			}
		}

		cfg.Hosts = append(cfg.Hosts, host)
	}

	return cfg, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if len(cfg.Hosts) == 0 {
		return fmt.Errorf("hosts is required")
	}

	for _, host := range cfg.Hosts {
		if _, err := net.ParseMAC(host.MAC); err != nil {
			return fmt.Errorf("host %q: invalid MAC address %q", host.Name, host.MAC)
		}
		if net.ParseIP(host.Broadcast) == nil {
			return fmt.Errorf("host %q: invalid broadcast IP %q", host.Name, host.Broadcast)
		}
		if host.Port < 1 || host.Port > 65535 {
			return fmt.Errorf("host %q: port must be between 1 and 65535", host.Name)
		}
		if _, err := ParsePassword(host.Password); err != nil {
			return fmt.Errorf("host %q: %w", host.Name, err)
		}
	}

	return nil
}

// ParsePassword decodes a SecureOn password from its textual form: hex
// digits, optionally separated by colons or dashes, e.g.
// "12:34:56:78:9a:bc". An empty string means no password.
func ParsePassword(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	cleaned := strings.NewReplacer(":", "", "-", "").Replace(s)
	password, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid SecureOn password %q: %w", s, err)
	}

	switch len(password) {
	case 4, 6:
		return password, nil
	default:
		return nil, fmt.Errorf("SecureOn password must be 4 or 6 bytes, got %d", len(password))
	}
}
