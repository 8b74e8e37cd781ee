package hop

import (
	"fmt"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/primitives"
)

// Route is an ordered sequence of encrypted hops. The core never inspects a
// Route's internals beyond Deconstruct/Construct/NewRoute; implementers of
// those three operations are free to choose their own representation, per
// the §9 design note that Route and Hop should carry their own property
// tests independent of the Hopper actor.
type Route struct {
	// remaining holds the still-encrypted hops. Each element is
	// decryptable by the node whose turn it is at that position. While
	// head is unset, remaining[0] is the route's head itself, decryptable
	// by whoever currently holds the route; once Construct has set head,
	// remaining holds only the hops that come after it.
	remaining []primitives.CryptData

	// head, when set, is a hop that has already been decrypted. It is
	// set by Construct to carry the hop that was just peeled off at this
	// node into an ExpiredCoresPackage's remaining route; it is unset for
	// a route that is still fully in its wire (encrypted) form.
	head *Hop
}

// NewRoute builds the encrypted Route for an author-constructed path: a
// node sends the package to path[0], path[0] forwards it to path[1], and so
// on, until the last node in path delivers to terminal. The very first
// entry is self-encrypted under the author's own public key so that
// Deconstruct can read it back out locally before the package is ever sent.
func NewRoute(path []primitives.Key, terminal Component,
	author cryptde.CryptDE) (Route, error) {

	if len(path) == 0 {
		return Route{}, fmt.Errorf("hop: route must name at least one hop")
	}

	entries := make([]primitives.CryptData, 0, len(path)+1)

	firstHopEntry, err := NewHopWithKey(path[0]).Encode(author.PublicKey(), author)
	if err != nil {
		return Route{}, fmt.Errorf("hop: encode self-addressed first entry: %w", err)
	}
	entries = append(entries, firstHopEntry)

	for i := 1; i < len(path); i++ {
		entry, err := NewHopWithKey(path[i]).Encode(path[i-1], author)
		if err != nil {
			return Route{}, fmt.Errorf("hop: encode hop %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	lastEntry, err := NewHopWithComponent(terminal).Encode(path[len(path)-1], author)
	if err != nil {
		return Route{}, fmt.Errorf("hop: encode terminal entry: %w", err)
	}
	entries = append(entries, lastEntry)

	return Route{remaining: entries}, nil
}

// Construct rebuilds a Route from a hop that has already been decrypted
// (typically the hop this node just peeled off) and the still-encrypted
// hops that remain after it.
func Construct(first Hop, tail []primitives.CryptData) Route {
	h := first
	return Route{head: &h, remaining: tail}
}

// Deconstruct decrypts the route's first hop with de's private key and
// returns it alongside the still-encrypted tail. If Construct set a head,
// that already-decrypted hop is returned as is and de is not used.
func (r Route) Deconstruct(de cryptde.CryptDE) (Hop, []primitives.CryptData, error) {
	if r.head != nil {
		return *r.head, r.remaining, nil
	}

	if len(r.remaining) == 0 {
		return Hop{}, nil, fmt.Errorf("hop: deconstruct called on an empty route")
	}

	first, err := Decode(de.PrivateKey(), de, r.remaining[0])
	if err != nil {
		return Hop{}, nil, err
	}

	return first, r.remaining[1:], nil
}

// First returns the route's head hop if Construct set one, for comparing
// routes in tests without requiring the CryptDE used to build the route.
func (r Route) First() (Hop, bool) {
	if r.head == nil {
		return Hop{}, false
	}
	return *r.head, true
}

// Remaining returns the still-encrypted hops following the head, for test
// assertions.
func (r Route) Remaining() []primitives.CryptData {
	return r.remaining
}
