package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] in the layout accepted by
// JSON and YAML config files.
type StructuredFileConfig struct {
	App struct {
		DBID     string `json:"dbid" yaml:"dbid"`
		LogLevel string `json:"log_level" yaml:"log_level"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Gateway struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"gateway,omitempty" yaml:"gateway,omitempty"`

	Stream struct {
		BrokerURL string `json:"broker_url" yaml:"broker_url"`
		ClientID  string `json:"client_id" yaml:"client_id"`
		Codec     string `json:"codec" yaml:"codec"`
		KeepAlive uint16 `json:"keep_alive" yaml:"keep_alive"`
	} `json:"stream,omitempty" yaml:"stream,omitempty"`

	Storage struct {
		DSN    string `json:"dsn" yaml:"dsn"`
		Secret string `json:"secret" yaml:"secret"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Sync struct {
		Collection string `json:"collection" yaml:"collection"`
		Private    bool   `json:"private" yaml:"private"`
		IDField    string `json:"id_field" yaml:"id_field"`
		Mode       string `json:"mode" yaml:"mode"`
	} `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// parseFile reads a config file. Files ending in ".yaml" or ".yml" are
// decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{
			DBID:     fileCfg.App.DBID,
			LogLevel: fileCfg.App.LogLevel,
		},
		Gateway: Gateway{
			Address:        fileCfg.Gateway.Address,
			RequestTimeout: time.Duration(fileCfg.Gateway.RequestTimeout),
		},
		Stream: Stream{
			BrokerURL: fileCfg.Stream.BrokerURL,
			ClientID:  fileCfg.Stream.ClientID,
			Codec:     fileCfg.Stream.Codec,
			KeepAlive: fileCfg.Stream.KeepAlive,
		},
		Storage: Storage{DSN: fileCfg.Storage.DSN, Secret: fileCfg.Storage.Secret},
		Sync: Sync{
			Collection: fileCfg.Sync.Collection,
			Private:    fileCfg.Sync.Private,
			IDField:    fileCfg.Sync.IDField,
			Mode:       fileCfg.Sync.Mode,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var ns int64
	if err := node.Decode(&ns); err == nil {
		*d = Duration(ns)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
