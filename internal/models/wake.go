package models

import "time"

// WakeTarget is a fully resolved wake request.
type WakeTarget struct {
	MACAddress    string
	Broadcast     string
	Port          int
	Source        string // optional "ip:port" to bind the sending socket to
	Password      []byte // optional SecureOn password bytes
	Repeat        int    // independent sends per request; defaults to 1
	PollURL       string // URL to poll until the target machine is ready
	Timeout       time.Duration
	PollInterval  time.Duration
	StabilizeWait time.Duration
}

// WakeResult holds the outcome of a wake operation.
type WakeResult struct {
	PacketsSent  int
	TargetReady  bool
	WaitDuration time.Duration
	Error        error
}
