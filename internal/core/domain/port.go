package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultProtocol is used when a port is opened without a protocol.
const DefaultProtocol = "TCP"

// Port is a unit port as understood by open-port and close-port.
type Port struct {
	Number   int
	Protocol string
}

// NewPort builds a port, defaulting and upper-casing the protocol.
func NewPort(number int, protocol string) Port {
	if protocol == "" {
		protocol = DefaultProtocol
	}
	return Port{Number: number, Protocol: strings.ToUpper(protocol)}
}

// ParsePort parses "443", "443/tcp" or "100/UDP".
func ParsePort(s string) (Port, error) {
	num, proto, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 || n > 65535 {
		return Port{}, fmt.Errorf("%w: port %q", ErrInvalidInput, s)
	}
	return NewPort(n, proto), nil
}

// String returns the hook tool argument form, e.g. "443/TCP".
func (p Port) String() string {
	return fmt.Sprintf("%d/%s", p.Number, p.Protocol)
}
