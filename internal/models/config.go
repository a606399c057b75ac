// Package models contains the data structures used throughout wakelan.
package models

import "time"

// Config holds the host inventory loaded from the configuration file.
type Config struct {
	Defaults Defaults
	Hosts    []Host
}

// Defaults apply to hosts that leave the corresponding field unset.
type Defaults struct {
	Broadcast string
	Port      int
}

// Host is one wakeable machine from the inventory.
type Host struct {
	Name          string
	MAC           string
	Broadcast     string
	Port          int
	Password      string        // optional SecureOn password, hex encoded
	PollURL       string        // optional URL to poll until the machine is ready
	Timeout       time.Duration // max time to wait for the machine
	PollInterval  time.Duration // how often to poll the URL
	StabilizeWait time.Duration // wait after the machine responds
}
