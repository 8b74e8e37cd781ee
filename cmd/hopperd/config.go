package main

import (
	"fmt"

	flags "github.com/jessevdk/go-flags"
)

// config holds hopperd's process-bootstrap options: everything the Hopper
// actor itself does not know or care about.
type config struct {
	DebugLevel string `long:"debuglevel" description:"logging level for all subsystems" default:"info"`

	KeyFile string `long:"keyfile" description:"path to this node's persisted Curve25519 key pair; generated on first run if absent"`
}

// loadConfig parses command-line arguments into a config, applying defaults
// for anything left unset.
func loadConfig(args []string) (*config, error) {
	cfg := config{}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("hopperd: parse args: %w", err)
	}

	return &cfg, nil
}
