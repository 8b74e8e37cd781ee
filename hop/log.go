package hop

import "github.com/btcsuite/btclog"

// log is the package-level logger used by this package, disabled by default
// per the btclog convention used throughout the lnd codebase.
var log = btclog.Disabled

// UseLogger sets the package-level logger used by this package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
