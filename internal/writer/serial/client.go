// internal/writer/serial/client.go
package serial

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	goserial "github.com/goburrow/serial"
	"go.bug.st/serial/enumerator"
)

// AutoPort asks Open to pick the controller's port by USB identity.
const AutoPort = "auto"

// Client implements writer.Link over a local serial port (8N1).
// This adapter is transport-only: it moves bytes, nothing more.
type Client struct {
	port    goserial.Port
	address string
}

// Config is minimal transport config.
type Config struct {
	Address     string
	BaudRate    int
	ReadTimeout time.Duration
}

// Open opens the port. ONE attempt.
func Open(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("serial: address required")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("serial: invalid baud rate %d", cfg.BaudRate)
	}
	// A zero timeout would make reads block; diagnostics must never block.
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 20 * time.Millisecond
	}

	address := cfg.Address
	if address == AutoPort {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		address = detected
	}

	p, err := goserial.Open(&goserial.Config{
		Address:  address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &Client{port: p, address: address}, nil
}

// Address is the device actually opened (resolved when "auto").
func (c *Client) Address() string { return c.address }

// ---- writer.Link ----

func (c *Client) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *Client) ReadAvailable(p []byte) (int, error) {
	n, err := c.port.Read(p)
	if errors.Is(err, goserial.ErrTimeout) {
		return n, nil
	}
	return n, err
}

func (c *Client) Close() error {
	if c == nil || c.port == nil {
		return nil
	}
	return c.port.Close()
}

// ---- discovery ----

// PortInfo describes one serial port on this host.
type PortInfo struct {
	Name         string
	USB          bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// knownVIDs are USB vendors of common microcontroller boards and
// USB-serial bridges, in preference order.
var knownVIDs = []string{
	"2341", // Arduino
	"2a03", // Arduino (.org)
	"1a86", // QinHeng CH340
	"0403", // FTDI
	"10c4", // Silicon Labs CP210x
}

// Ports lists serial ports on this host.
func Ports() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial: enumerate ports: %w", err)
	}

	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{
			Name:         d.Name,
			USB:          d.IsUSB,
			VID:          strings.ToLower(d.VID),
			PID:          strings.ToLower(d.PID),
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return out, nil
}

// Detect picks the controller's port: a known board vendor first,
// otherwise the first USB port.
func Detect() (string, error) {
	ports, err := Ports()
	if err != nil {
		return "", err
	}
	name, ok := pick(ports)
	if !ok {
		return "", errors.New("serial: no USB serial port found")
	}
	return name, nil
}

func pick(ports []PortInfo) (string, bool) {
	best, bestRank := "", len(knownVIDs)+1
	for _, p := range ports {
		if !p.USB {
			continue
		}
		rank := slices.Index(knownVIDs, p.VID)
		if rank < 0 {
			rank = len(knownVIDs)
		}
		if rank < bestRank {
			best, bestRank = p.Name, rank
		}
	}
	return best, best != ""
}
