package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the client's command-line flags from args.
//
// Flags:
//
//	-a gateway address in format [host]:[port]
//	-timeout gateway request timeout (e.g., "15s")
//	-dbid database identifier
//	-log-level zerolog level name
//	-broker MQTT broker URL
//	-client-id MQTT client id
//	-codec change event codec (json|msgpack)
//	-keep-alive MQTT keep-alive in seconds
//	-dsn token cache DSN
//	-collection collection to watch
//	-private use the private sync namespace
//	-id-field record id field
//	-mode persistence mode
//	-c/-config json or yaml file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var gatewayAddress NetAddress
	var requestTimeout time.Duration
	var dbid, logLevel string
	var brokerURL, clientID, codec string
	var keepAlive uint
	var dsn string
	var collection, idField, mode string
	var private bool
	var configPath string

	fs.Var(&gatewayAddress, "a", "Gateway net address host:port")
	fs.DurationVar(&requestTimeout, "timeout", 0, "Gateway request timeout (e.g., 15s)")
	fs.StringVar(&dbid, "dbid", "", "Database identifier")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&brokerURL, "broker", "", "MQTT broker URL")
	fs.StringVar(&clientID, "client-id", "", "MQTT client id")
	fs.StringVar(&codec, "codec", "", "Change event codec (json|msgpack)")
	fs.UintVar(&keepAlive, "keep-alive", 0, "MQTT keep-alive in seconds")
	fs.StringVar(&dsn, "dsn", "", "Token cache DSN")
	fs.StringVar(&collection, "collection", "", "Collection to watch")
	fs.BoolVar(&private, "private", false, "Use the private sync namespace")
	fs.StringVar(&idField, "id-field", "", "Record id field")
	fs.StringVar(&mode, "mode", "", "Persistence mode")
	fs.StringVar(&configPath, "c", "", "JSON/YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON/YAML config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if keepAlive > 0xFFFF {
		return nil, errors.New("keep-alive must fit in 16 bits")
	}

	return &StructuredConfig{
		App: App{
			DBID:     dbid,
			LogLevel: logLevel,
		},
		Gateway: Gateway{
			Address:        gatewayAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Stream: Stream{
			BrokerURL: brokerURL,
			ClientID:  clientID,
			Codec:     codec,
			KeepAlive: uint16(keepAlive),
		},
		Storage: Storage{DSN: dsn},
		Sync: Sync{
			Collection: collection,
			Private:    private,
			IDField:    idField,
			Mode:       mode,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
