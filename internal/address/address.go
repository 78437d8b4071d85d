package address

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultHost is substituted when an addr carries a port only
const DefaultHost = "0.0.0.0"

type Address struct {
	Host string
	Port uint16
}

// Parse accepts addrs of the "host", ":port" and "host:port" forms. An
// omitted host binds all the interfaces, an omitted port is left zero
func Parse(addr string) (Address, error) {
	if !strings.Contains(addr, ":") {
		return Address{Host: addr}, nil
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return Address{}, err
	}

	if len(host) == 0 {
		host = DefaultHost
	}

	if len(portStr) == 0 {
		return Address{Host: host}, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Address{}, fmt.Errorf("bad port: %s", portStr)
	}

	return Address{Host: host, Port: uint16(port)}, nil
}

func (a Address) SetPort(port uint16) Address {
	a.Port = port
	return a
}

func (a Address) IsLocalhost() bool {
	return strings.EqualFold(a.Host, "localhost")
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}
