package hop

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/fn"
	"github.com/substratum-net/hopper/primitives"
)

// Hop is a routing directive describing one step of a route: a next node to
// hand the packet to, a local component to deliver the payload to, or both.
// At least one of the two must be set; Encode/Decode reject a Hop with
// neither.
type Hop struct {
	// PublicKey names the next node's identity. Absent iff this hop is
	// the terminal hop of a segment.
	PublicKey fn.Option[primitives.Key]

	// Component names the local consumer to deliver to at this node.
	// Absent when the hop only names a next node.
	Component fn.Option[Component]
}

// NewHopWithKey builds a Hop whose only instruction is "forward to key".
func NewHopWithKey(key primitives.Key) Hop {
	return Hop{PublicKey: fn.Some(key)}
}

// NewHopWithComponent builds a Hop whose only instruction is "deliver to
// component".
func NewHopWithComponent(component Component) Hop {
	return Hop{Component: fn.Some(component)}
}

// NewHop builds a Hop naming both a next node and a local component.
func NewHop(key primitives.Key, component Component) Hop {
	return Hop{PublicKey: fn.Some(key), Component: fn.Some(component)}
}

// IsWellFormed reports whether at least one of PublicKey or Component is
// set, per the §3 Hop invariant.
func (h Hop) IsWellFormed() bool {
	return h.PublicKey.IsSome() || h.Component.IsSome()
}

// wireHop is the CBOR-serializable shape of a Hop. Optional fields are
// represented as nil-able values (a byte slice for the key, a pointer for the
// component) so that an absent field is omitted from the wire bytes
// entirely, rather than leaking fn.Option's internal representation.
type wireHop struct {
	PublicKey []byte `cbor:"1,keyasint,omitempty"`
	Component *uint8 `cbor:"2,keyasint,omitempty"`
}

func (h Hop) toWire() wireHop {
	var w wireHop
	h.PublicKey.WhenSome(func(k primitives.Key) {
		w.PublicKey = k.Bytes()
	})
	h.Component.WhenSome(func(c Component) {
		v := uint8(c)
		w.Component = &v
	})
	return w
}

func (w wireHop) toHop() Hop {
	var h Hop
	if w.PublicKey != nil {
		h.PublicKey = fn.Some(primitives.NewKey(w.PublicKey))
	}
	if w.Component != nil {
		h.Component = fn.Some(Component(*w.Component))
	}
	return h
}

// serialize marshals the Hop to its wire bytes using a self-describing CBOR
// encoding, per §6.
func serialize(h Hop) (primitives.PlainData, error) {
	raw, err := cbor.Marshal(h.toWire())
	if err != nil {
		return nil, fmt.Errorf("hop: serialize: %w", err)
	}

	return primitives.NewPlainData(raw), nil
}

// deserialize is the inverse of serialize.
func deserialize(data primitives.PlainData) (Hop, error) {
	var w wireHop
	if err := cbor.Unmarshal(data.Bytes(), &w); err != nil {
		return Hop{}, fmt.Errorf("hop: deserialize: %w", err)
	}

	return w.toHop(), nil
}

// Encode serializes h and encrypts it under recipientPublicKey, per the §6
// Hop codec contract.
func (h Hop) Encode(recipientPublicKey primitives.Key,
	de cryptde.CryptDE) (primitives.CryptData, error) {

	if !h.IsWellFormed() {
		return nil, fmt.Errorf("hop: cannot encode a hop with neither a public key nor a component")
	}

	plain, err := serialize(h)
	if err != nil {
		return nil, err
	}

	crypt, err := de.Encode(recipientPublicKey, plain)
	if err != nil {
		return nil, fmt.Errorf("hop: encode error: %w", err)
	}

	return crypt, nil
}

// Decode decrypts cryptData with privateKey and deserializes the result into
// a Hop, per the §6 Hop codec contract.
func Decode(privateKey primitives.Key, de cryptde.CryptDE,
	cryptData primitives.CryptData) (Hop, error) {

	plain, err := de.Decode(privateKey, cryptData)
	if err != nil {
		return Hop{}, fmt.Errorf("hop: decode error: %w", err)
	}

	h, err := deserialize(plain)
	if err != nil {
		return Hop{}, err
	}

	if !h.IsWellFormed() {
		return Hop{}, fmt.Errorf("hop: decoded a hop with neither a public key nor a component")
	}

	return h, nil
}
