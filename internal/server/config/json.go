package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/fortress-vault/fortress/internal/flagx"
	"github.com/fortress-vault/fortress/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	AdvisoryEndpoint string         `json:"advisory_endpoint"`
	AdvisoryAPIKey   string         `json:"advisory_api_key"`
	AdvisoryModel    string         `json:"advisory_model"`
	AdvisoryTimeout  timex.Duration `json:"advisory_timeout"`
	DebounceInterval timex.Duration `json:"debounce_interval"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flags. If neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.AdvisoryEndpoint = c.AdvisoryEndpoint
	config.AdvisoryAPIKey = c.AdvisoryAPIKey
	config.AdvisoryModel = c.AdvisoryModel
	config.AdvisoryTimeout = time.Duration(c.AdvisoryTimeout.Duration)
	config.DebounceInterval = time.Duration(c.DebounceInterval.Duration)
}
