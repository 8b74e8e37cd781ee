package hopper

// Sink is a one-way handle accepting an ExpiredCoresPackage: the contract
// the core's local consumers (a proxy server or proxy client) must satisfy.
// A non-nil error from Send is treated by Hopper as a fatal delivery
// failure — sinks are not expected to apply backpressure at this release.
type Sink interface {
	Send(pkg ExpiredCoresPackage) error
}
