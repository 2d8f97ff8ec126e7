package controller

import (
	"errors"
	"fmt"

	"go.bug.st/serial/enumerator"
)

// SerialPortNone is offered next to the detected ports so a session can run without a device
const SerialPortNone = "None"

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// GetSerialPorts lists the names of USB serial ports
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	return usbPortNames(ports)
}

func usbPortNames(ports []*enumerator.PortDetails) ([]string, error) {
	var names []string
	for _, p := range ports {
		if p.IsUSB {
			names = append(names, p.Name)
		}
	}

	if len(names) == 0 {
		return nil, ErrNoUSBSerial
	}
	return names, nil
}
