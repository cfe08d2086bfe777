package config

import (
	"flag"
	"os"
	"time"

	"github.com/fortress-vault/fortress/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-e string   advisory API endpoint
//	-k string   advisory API key
//	-m string   advisory model name
//	-t int      advisory call timeout, seconds
//	-w int      advisory debounce interval, milliseconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-k", "-m", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AdvisoryEndpoint, "e", config.AdvisoryEndpoint, "advisory API endpoint")
	fs.StringVar(&config.AdvisoryAPIKey, "k", config.AdvisoryAPIKey, "advisory API key")
	fs.StringVar(&config.AdvisoryModel, "m", config.AdvisoryModel, "advisory model name")

	advisoryTimeout := fs.Int("t", int(config.AdvisoryTimeout.Seconds()), "advisory_timeout (in seconds)")
	debounceInterval := fs.Int("w", int(config.DebounceInterval.Milliseconds()), "debounce_interval (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AdvisoryTimeout = time.Duration(*advisoryTimeout) * time.Second
	config.DebounceInterval = time.Duration(*debounceInterval) * time.Millisecond
}
