package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/controller"
)

const (
	prefSerialPort = "serialPort"
	prefBaudRate   = "baudRate"
)

// DeviceWindow uploads the current sequence to the ramp player
type DeviceWindow struct {
	app     fyne.App
	logger  *slog.Logger
	current func() []int

	cfg  controller.Config
	conn *controller.Controller
}

func NewDeviceWindow(app fyne.App, cfg controller.Config, current func() []int, logger *slog.Logger) *DeviceWindow {
	return &DeviceWindow{
		app:     app,
		logger:  logger,
		current: current,
		cfg:     cfg,
	}
}

// loadPreferences fills settings not given by the config file or environment
func (dw *DeviceWindow) loadPreferences() {
	prefs := dw.app.Preferences()
	if dw.cfg.SerialPort == "" {
		dw.cfg.SerialPort = prefs.StringWithFallback(prefSerialPort, "")
	}
	if dw.cfg.BaudRate == 0 {
		dw.cfg.BaudRate = prefs.IntWithFallback(prefBaudRate, 115200)
	}
}

func (dw *DeviceWindow) savePreferences() {
	prefs := dw.app.Preferences()
	prefs.SetString(prefSerialPort, dw.cfg.SerialPort)
	prefs.SetInt(prefBaudRate, dw.cfg.BaudRate)
}

// connect opens the selected port, reusing an open connection
func (dw *DeviceWindow) connect() (*controller.Controller, error) {
	if dw.conn != nil {
		return dw.conn, nil
	}

	c, err := controller.Open(dw.cfg, dw.logger)
	if err != nil {
		return nil, err
	}
	dw.conn = c
	return c, nil
}

func (dw *DeviceWindow) disconnect() {
	if dw.conn == nil {
		return
	}
	err := dw.conn.Close()
	if err != nil {
		dw.logger.Warn("error closing serial port", "error", err)
	}
	dw.conn = nil
}

func (dw *DeviceWindow) Show() {
	window := dw.app.NewWindow("Step Curve - Device")
	window.Resize(fyne.NewSize(400, 220))
	window.SetOnClosed(dw.disconnect)

	dw.loadPreferences()

	serialPorts, err := controller.GetSerialPorts()
	if err != nil && !errors.Is(err, controller.ErrNoUSBSerial) {
		dialog.ShowError(fmt.Errorf("error getting serial ports: %w", err), window)
	}
	serialPorts = append(serialPorts, controller.SerialPortNone)

	if dw.cfg.SerialPort == "" {
		dw.cfg.SerialPort = serialPorts[0]
	}
	serialEntry := widget.NewSelect(serialPorts, nil)
	serialEntry.Bind(binding.BindString(&dw.cfg.SerialPort))

	baudRateEntry := widget.NewEntry()
	baudRateEntry.SetText(strconv.Itoa(dw.cfg.BaudRate))

	status := widget.NewLabel("")

	var buttons []*widget.Button
	setBusy := func(busy bool) {
		for _, b := range buttons {
			if busy {
				b.Disable()
			} else {
				b.Enable()
			}
		}
	}

	// run calls f off the UI goroutine and reports the result in the status label
	run := func(action string, f func(context.Context, *controller.Controller) error) {
		baud, err := strconv.Atoi(baudRateEntry.Text)
		if err != nil || baud <= 0 {
			dialog.ShowError(fmt.Errorf("invalid baud rate %q", baudRateEntry.Text), window)
			return
		}
		if baud != dw.cfg.BaudRate {
			dw.disconnect()
			dw.cfg.BaudRate = baud
		}
		dw.savePreferences()

		c, err := dw.connect()
		if err != nil {
			dialog.ShowError(err, window)
			return
		}

		setBusy(true)
		status.SetText(action + "...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			err := f(ctx, c)
			fyne.Do(func() {
				setBusy(false)
				if err != nil {
					status.SetText(action + " failed")
					dialog.ShowError(err, window)
					return
				}
				status.SetText(action + " done")
			})
		}()
	}

	uploadButton := widget.NewButton("Upload", func() {
		seq := dw.current()
		run("upload", func(ctx context.Context, c *controller.Controller) error {
			return c.Upload(ctx, seq)
		})
	})
	forwardButton := widget.NewButton("Run >", func() {
		run("run", func(ctx context.Context, c *controller.Controller) error {
			return c.Run(ctx, stepcurve.DirectionNext)
		})
	})
	reverseButton := widget.NewButton("< Run", func() {
		run("run", func(ctx context.Context, c *controller.Controller) error {
			return c.Run(ctx, stepcurve.DirectionPrev)
		})
	})
	jogBack := widget.NewButton("Jog -", func() {
		run("jog", func(_ context.Context, c *controller.Controller) error {
			return c.Jog(-1)
		})
	})
	jogForward := widget.NewButton("Jog +", func() {
		run("jog", func(_ context.Context, c *controller.Controller) error {
			return c.Jog(1)
		})
	})
	buttons = []*widget.Button{uploadButton, forwardButton, reverseButton, jogBack, jogForward}

	serialEntry.OnChanged = func(_ string) { dw.disconnect() }

	window.SetContent(container.NewVBox(
		widget.NewCard("Device", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Serial Port:"),
				serialEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Baud Rate:"),
				baudRateEntry,
			),
		)),
		container.NewHBox(uploadButton, reverseButton, forwardButton, jogBack, jogForward),
		status,
	))
	window.Show()
}
