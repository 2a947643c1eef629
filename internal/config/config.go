// ABOUTME: CLI configuration for the peerdisco experiment
// ABOUTME: Parses instance name, service options, and key=value properties
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Defaults for the optional CLI flags.
const (
	DefaultService = "_example._udp"
	DefaultDomain  = "local."
	DefaultPort    = 0 // OS-assigned ephemeral port
)

// Property is a single key=value pair shared with peers via the
// service's TXT record. Order is preserved as given on the command line.
type Property struct {
	Key   string
	Value string
}

// ParseProperty splits s at the first '=' into a Property.
// "a=b=c" yields ("a", "b=c"). A string without '=' is an error.
func ParseProperty(s string) (Property, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Property{}, fmt.Errorf("invalid KEY=value: no `=` found in %q", s)
	}
	return Property{Key: key, Value: value}, nil
}

// Config holds everything parsed at startup. It is read-only after
// FromArgs returns; components that need it receive a copy.
type Config struct {
	Instance   string
	Service    string
	Domain     string
	Port       int
	Properties []Property
}

// FromArgs parses command-line arguments: a positional instance name,
// -s/-p options, and any number of trailing key=value properties.
func FromArgs(prog string, args []string) (Config, error) {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	service := fs.String("s", DefaultService, "Service name")
	port := fs.Int("p", DefaultPort, "Port (0 = OS-assigned)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("missing required instance name")
	}

	cfg := Config{
		Instance: rest[0],
		Service:  *service,
		Domain:   DefaultDomain,
		Port:     *port,
	}

	for _, arg := range rest[1:] {
		prop, err := ParseProperty(arg)
		if err != nil {
			return Config{}, err
		}
		cfg.Properties = append(cfg.Properties, prop)
	}

	return cfg, nil
}

// TXT renders the configured properties as key=value strings for the
// advertised service record.
func (c Config) TXT() []string {
	txt := make([]string, 0, len(c.Properties))
	for _, p := range c.Properties {
		txt = append(txt, p.Key+"="+p.Value)
	}
	return txt
}

// ServiceName returns the fully-qualified service name, e.g.
// "_example._udp.local.".
func (c Config) ServiceName() string {
	return c.Service + "." + c.Domain
}
