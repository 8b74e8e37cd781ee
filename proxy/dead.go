package proxy

import (
	"errors"

	"github.com/substratum-net/hopper/hopper"
)

// Dead is a hopper.Sink that always reports delivery failure, for exercising
// Hopper's "sink is dead" fatal path in tests.
type Dead struct{}

// Send always fails.
func (Dead) Send(hopper.ExpiredCoresPackage) error {
	return errors.New("proxy: sink refused delivery")
}
