// Package hopper implements the onion-routing forwarding core: the layered
// cores-package codec and the single-writer actor that peels one
// cryptographic layer off each in-transit packet and dispatches the result
// to a local consumer.
package hopper

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/hop"
	"github.com/substratum-net/hopper/primitives"
)

// IncipientCoresPackage is the origination-side, cleartext form of a cores
// package: a caller-constructed route, a cleartext payload, and the public
// key of the payload's final recipient (which need not be the next hop).
type IncipientCoresPackage struct {
	Route                 hop.Route
	Payload               primitives.PlainData
	PayloadDestinationKey primitives.Key
}

// NewIncipientCoresPackage builds an IncipientCoresPackage from its three
// constituent fields.
func NewIncipientCoresPackage(route hop.Route, payload primitives.PlainData,
	payloadDestinationKey primitives.Key) IncipientCoresPackage {

	return IncipientCoresPackage{
		Route:                 route,
		Payload:               payload,
		PayloadDestinationKey: payloadDestinationKey,
	}
}

// LiveCoresPackage is the on-wire, layered form of a cores package: one
// still-encrypted entry per remaining hop, and a payload encrypted under the
// final recipient's key.
type LiveCoresPackage struct {
	Hops    []primitives.CryptData
	Payload primitives.CryptData
}

// NewLiveCoresPackage builds a LiveCoresPackage directly from wire-shaped
// fields, with no further transformation. Used both by tests constructing a
// package from scratch and by relays passing an already-layered package
// along unchanged.
func NewLiveCoresPackage(hops []primitives.CryptData, payload primitives.CryptData) LiveCoresPackage {
	return LiveCoresPackage{Hops: hops, Payload: payload}
}

// wireLiveCoresPackage is the CBOR-serializable shape of a LiveCoresPackage,
// per §6: a structured record of { hops: sequence<bytes>, payload: bytes }.
type wireLiveCoresPackage struct {
	Hops    [][]byte `cbor:"hops"`
	Payload []byte   `cbor:"payload"`
}

// MarshalCBOR encodes the package into the self-describing binary wire
// format §6 mandates, so that a relay can forward it and a test can
// reconstruct the exact bytes it put on the wire.
func (p LiveCoresPackage) MarshalCBOR() ([]byte, error) {
	w := wireLiveCoresPackage{
		Hops:    make([][]byte, len(p.Hops)),
		Payload: p.Payload.Bytes(),
	}
	for i, h := range p.Hops {
		w.Hops[i] = h.Bytes()
	}

	raw, err := cbor.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("hopper: marshal live cores package: %w", err)
	}

	return raw, nil
}

// UnmarshalLiveCoresPackage is the inverse of MarshalCBOR.
func UnmarshalLiveCoresPackage(data []byte) (LiveCoresPackage, error) {
	var w wireLiveCoresPackage
	if err := cbor.Unmarshal(data, &w); err != nil {
		return LiveCoresPackage{}, fmt.Errorf("hopper: unmarshal live cores package: %w", err)
	}

	hops := make([]primitives.CryptData, len(w.Hops))
	for i, h := range w.Hops {
		hops[i] = primitives.NewCryptData(h)
	}

	return LiveCoresPackage{
		Hops:    hops,
		Payload: primitives.NewCryptData(w.Payload),
	}, nil
}

// UnmarshalCBOR implements cbor.Unmarshaler so a LiveCoresPackage can be
// embedded directly as a field of a larger CBOR-encoded message, symmetric
// with MarshalCBOR.
func (p *LiveCoresPackage) UnmarshalCBOR(data []byte) error {
	decoded, err := UnmarshalLiveCoresPackage(data)
	if err != nil {
		return err
	}

	*p = decoded

	return nil
}

// ExpiredCoresPackage is the form delivered locally once a packet's
// first hop names this node as its terminus: the remaining route (the hop
// just decrypted at this node, followed by the still-encrypted hops after
// it), and the cleartext payload meant for this node.
type ExpiredCoresPackage struct {
	RemainingRoute hop.Route
	Payload        primitives.PlainData
}

// FromIncipient performs the originator-side transform: it encrypts the
// payload under the package's destination key, deconstructs the route to
// learn the first hop, and returns the resulting LiveCoresPackage alongside
// the public key of the node that package should be sent to.
//
// It fails if the route's first hop names no public key — a packet must
// have a next network hop to be emitted, since this release never resolves
// a route whose very first step is already local.
func FromIncipient(incipient IncipientCoresPackage,
	de cryptde.CryptDE) (LiveCoresPackage, primitives.Key, error) {

	payloadCrypt, err := de.Encode(incipient.PayloadDestinationKey, incipient.Payload)
	if err != nil {
		return LiveCoresPackage{}, nil, fmt.Errorf("hopper: encode payload: %w", err)
	}

	firstHop, tail, err := incipient.Route.Deconstruct(de)
	if err != nil {
		return LiveCoresPackage{}, nil, fmt.Errorf("hopper: deconstruct route: %w", err)
	}

	if firstHop.PublicKey.IsNone() {
		return LiveCoresPackage{}, nil, fmt.Errorf(
			"hopper: from_incipient: leading hop has no public key; nowhere to send this packet")
	}

	firstHopKey := firstHop.PublicKey.UnwrapOr(nil)

	return LiveCoresPackage{Hops: tail, Payload: payloadCrypt}, firstHopKey, nil
}

// NextHop decrypts and deserializes this package's first hop without
// consuming it, for inspection before deciding how to dispatch. It fails if
// Hops is empty.
func (p LiveCoresPackage) NextHop(de cryptde.CryptDE) (hop.Hop, error) {
	if len(p.Hops) == 0 {
		return hop.Hop{}, fmt.Errorf("hopper: next_hop: called on a package with no remaining hops")
	}

	return hop.Decode(de.PrivateKey(), de, p.Hops[0])
}

// ToExpired consumes this package's first hop, decrypts the payload with
// the local private key (the terminal-recipient case), and rebuilds a Route
// from the decrypted first hop and the remaining still-encrypted hops.
func (p LiveCoresPackage) ToExpired(de cryptde.CryptDE) (ExpiredCoresPackage, error) {
	if len(p.Hops) == 0 {
		return ExpiredCoresPackage{}, fmt.Errorf("hopper: to_expired: called on a package with no remaining hops")
	}

	firstHop, err := hop.Decode(de.PrivateKey(), de, p.Hops[0])
	if err != nil {
		return ExpiredCoresPackage{}, fmt.Errorf("hopper: to_expired: decode first hop: %w", err)
	}

	payload, err := de.Decode(de.PrivateKey(), p.Payload)
	if err != nil {
		return ExpiredCoresPackage{}, fmt.Errorf("hopper: to_expired: decode payload: %w", err)
	}

	remaining := hop.Construct(firstHop, p.Hops[1:])

	return ExpiredCoresPackage{RemainingRoute: remaining, Payload: payload}, nil
}
