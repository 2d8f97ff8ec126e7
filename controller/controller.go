// Package controller uploads pulse-time sequences to the ramp player firmware over a serial port
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/config"
	"github.com/calvinmclean/stepcurve/firmware/commands"
	"github.com/calvinmclean/stepcurve/metrics"
)

var (
	ErrNoPort       = errors.New("no serial port selected")
	ErrDevice       = errors.New("device error")
	ErrClosed       = errors.New("serial connection closed")
	ErrNotUploaded  = errors.New("no sequence uploaded")
	ErrInvalidValue = errors.New("sequence value out of range for device")
)

const (
	loadedMarker = "loaded"
	doneMarker   = "ramp done"
	errorMarker  = "error:"
)

// Config selects the serial port and how long to wait for the device to answer
type Config struct {
	SerialPort string
	BaudRate   int
	Timeout    time.Duration
}

// ConfigFrom converts the [device] section of the application config
func ConfigFrom(d config.Device) Config {
	return Config{
		SerialPort: d.SerialPort,
		BaudRate:   d.BaudRate,
		Timeout:    d.Timeout.Duration,
	}
}

// Controller sends commands to the firmware and waits for its acknowledgements
type Controller struct {
	port    io.ReadWriteCloser
	timeout time.Duration
	logger  *slog.Logger

	lines chan string

	mu       sync.Mutex
	uploaded []int
}

// NewFromEnv opens the port named by the environment. Without one, the first USB serial port is used
func NewFromEnv(logger *slog.Logger) (*Controller, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	c := ConfigFrom(cfg.Device)
	if c.SerialPort == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		c.SerialPort = ports[0]
	}

	return Open(c, logger)
}

// Open connects to the serial port in cfg
func Open(cfg Config, logger *slog.Logger) (*Controller, error) {
	if cfg.SerialPort == "" || cfg.SerialPort == SerialPortNone {
		return nil, ErrNoPort
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = config.DefaultBaudRate
	}

	port, err := serial.Open(cfg.SerialPort, &serial.Mode{
		BaudRate: cfg.BaudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
	}

	logger.Info("opened serial port", "port", cfg.SerialPort, "baud_rate", cfg.BaudRate)

	return New(port, cfg.Timeout, logger), nil
}

// New uses an already open connection. Device output is read in the background until the
// connection is closed
func New(port io.ReadWriteCloser, timeout time.Duration, logger *slog.Logger) *Controller {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	c := &Controller{
		port:    port,
		timeout: timeout,
		logger:  logger,
		lines:   make(chan string, 64),
	}
	go c.readLines()

	return c
}

func (c *Controller) readLines() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.Trim(scanner.Text(), "\x00"))
		if line == "" {
			continue
		}
		c.logger.Debug("device output", "line", line)
		c.lines <- line
	}
}

// Upload sends seq as the device's ramp table and waits for the device to accept it
func (c *Controller) Upload(ctx context.Context, seq []int) error {
	frame, err := commands.EncodeLoad(seq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.send(ctx, frame, loadedMarker, c.timeout)
	if err != nil {
		return fmt.Errorf("error uploading sequence: %w", err)
	}

	c.uploaded = append([]int(nil), seq...)
	c.logger.Info("uploaded sequence", "points", len(seq))
	return nil
}

// Run plays the uploaded ramp. DirectionNext plays from the first entry to the last
func (c *Controller) Run(ctx context.Context, dir stepcurve.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uploaded == nil {
		return ErrNotUploaded
	}

	// the device only answers once the ramp is finished
	playTime := time.Duration(metrics.TotalTraversalTime(c.uploaded)) * time.Microsecond

	err := c.send(ctx, commands.EncodeRun(dir == stepcurve.DirectionPrev), doneMarker, c.timeout+playTime)
	if err != nil {
		return fmt.Errorf("error running ramp: %w", err)
	}

	c.logger.Info("ran ramp", "direction", dir.String())
	return nil
}

// Jog moves the motor at constant speed by units × 50 steps
func (c *Controller) Jog(units int) error {
	frame, err := commands.EncodeJog(units)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.port.Write(frame)
	if err != nil {
		return fmt.Errorf("error writing to serial port: %w", err)
	}
	return nil
}

func (c *Controller) send(ctx context.Context, frame []byte, marker string, timeout time.Duration) error {
	// drop output left over from earlier commands
	c.drain()

	_, err := c.port.Write(frame)
	if err != nil {
		return fmt.Errorf("error writing to serial port: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("error waiting for %q: %w", marker, ctx.Err())
		case line, ok := <-c.lines:
			if !ok {
				return ErrClosed
			}
			if _, msg, found := strings.Cut(line, errorMarker); found {
				return fmt.Errorf("%w: %s", ErrDevice, strings.TrimSpace(msg))
			}
			if strings.Contains(line, marker) {
				return nil
			}
		}
	}
}

func (c *Controller) drain() {
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Close closes the serial connection
func (c *Controller) Close() error {
	return c.port.Close()
}
