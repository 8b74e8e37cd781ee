package cryptde

import "github.com/btcsuite/btclog"

// log is the package-level logger used by this package's CryptDE
// implementations. It is disabled by default; callers wire in a real
// backend with UseLogger, mirroring the per-package logger convention used
// throughout the lnd codebase.
var log = btclog.Disabled

// UseLogger sets the package-level logger used by this package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
