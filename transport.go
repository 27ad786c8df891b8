package ledboard

import (
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"
)

// Transport delivers one encoded frame to the board. Implementations must
// treat Send as best-effort: a failed delivery is reported, not retried.
type Transport interface {
	Send(frame []byte) error
	Close() error
}

// SerialTransport writes frames to the board controller over a serial port.
// The port is opened lazily on first send and reopened after a write error,
// so a temporarily unplugged board recovers on a later cycle.
type SerialTransport struct {
	portName string
	baud     int

	mu   sync.Mutex
	port serial.Port
}

// NewSerialTransport creates a transport for the given port and baud rate.
func NewSerialTransport(portName string, baud int) *SerialTransport {
	return &SerialTransport{portName: portName, baud: baud}
}

// Send writes the frame and drains the output buffer so the whole frame is
// on the wire before the next cycle starts.
func (t *SerialTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		p, err := serial.Open(t.portName, &serial.Mode{BaudRate: t.baud})
		if err != nil {
			return fmt.Errorf("open %s: %w", t.portName, err)
		}
		t.port = p
		log.Printf("serial: opened %s at %d baud", t.portName, t.baud)
	}

	if _, err := t.port.Write(frame); err != nil {
		t.dropLocked()
		return fmt.Errorf("write to %s: %w", t.portName, err)
	}
	if err := t.port.Drain(); err != nil {
		t.dropLocked()
		return fmt.Errorf("drain %s: %w", t.portName, err)
	}
	return nil
}

// Close releases the port if it is open.
func (t *SerialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *SerialTransport) dropLocked() {
	if t.port != nil {
		_ = t.port.Close()
		t.port = nil
	}
}
