package hopper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/hop"
	"github.com/substratum-net/hopper/primitives"
)

// TestLiveCoresPackageConstructionFromScratch mirrors the literal scenario
// S1: a LiveCoresPackage built directly from wire-shaped fields carries
// those fields through byte-for-byte.
func TestLiveCoresPackageConstructionFromScratch(t *testing.T) {
	t.Parallel()

	hops := []primitives.CryptData{
		primitives.NewCryptData([]byte{1, 2}),
		primitives.NewCryptData([]byte{3, 4}),
	}
	payload := primitives.NewCryptData([]byte{5, 6})

	pkg := NewLiveCoresPackage(hops, payload)

	require.Equal(t, hops, pkg.Hops)
	require.True(t, pkg.Payload.Equal(payload))
}

// TestFromIncipientOriginatorTransform mirrors the literal scenario S2: with
// a null CryptDE, from_incipient's output hops and payload equal explicit,
// independently-computed ciphertexts.
func TestFromIncipientOriginatorTransform(t *testing.T) {
	t.Parallel()

	k12 := primitives.NewKey([]byte{1, 2})
	k34 := primitives.NewKey([]byte{3, 4})
	k56 := primitives.NewKey([]byte{5, 6})
	payload := primitives.NewPlainData([]byte{9, 9, 9})

	de := cryptde.NewNullCryptDE(k12)

	route, err := hop.NewRoute([]primitives.Key{k12, k34}, hop.ComponentNeighborhood, de)
	require.NoError(t, err)

	incipient := NewIncipientCoresPackage(route, payload, k56)

	live, firstHopKey, err := FromIncipient(incipient, de)
	require.NoError(t, err)
	require.True(t, firstHopKey.Equal(k12))

	expectedHop0, err := hop.NewHopWithKey(k34).Encode(k12, de)
	require.NoError(t, err)
	expectedHop1, err := hop.NewHopWithComponent(hop.ComponentNeighborhood).Encode(k34, de)
	require.NoError(t, err)

	require.Len(t, live.Hops, 2)
	require.True(t, live.Hops[0].Equal(expectedHop0))
	require.True(t, live.Hops[1].Equal(expectedHop1))

	expectedPayload, err := de.Encode(k56, payload)
	require.NoError(t, err)
	require.True(t, live.Payload.Equal(expectedPayload))
}

func TestFromIncipientFailsWithoutNextHopKey(t *testing.T) {
	t.Parallel()

	selfKey := primitives.NewKey([]byte{7, 7})
	de := cryptde.NewNullCryptDE(selfKey)

	// A route whose only entry names a local component: there is no next
	// network hop to emit to.
	route := hop.Construct(hop.NewHopWithComponent(hop.ComponentProxyClient), nil)
	incipient := NewIncipientCoresPackage(route, primitives.NewPlainData([]byte{1}), selfKey)

	_, _, err := FromIncipient(incipient, de)
	require.Error(t, err)
}

// TestSingleHopRoundTrip mirrors Testable Property 1: a one-hop,
// sender-equals-receiver round trip from_incipient -> to_expired returns the
// original payload.
func TestSingleHopRoundTrip(t *testing.T) {
	t.Parallel()

	selfKey := primitives.NewKey([]byte{11, 22})
	de := cryptde.NewNullCryptDE(selfKey)

	route, err := hop.NewRoute([]primitives.Key{selfKey}, hop.ComponentProxyClient, de)
	require.NoError(t, err)

	originalPayload := primitives.NewPlainData([]byte{42, 43, 44})
	incipient := NewIncipientCoresPackage(route, originalPayload, selfKey)

	live, _, err := FromIncipient(incipient, de)
	require.NoError(t, err)

	expired, err := live.ToExpired(de)
	require.NoError(t, err)

	require.True(t, expired.Payload.Equal(originalPayload))
}

// TestToExpiredShortensHopsByOne covers Testable Property 2.
func TestToExpiredShortensHopsByOne(t *testing.T) {
	t.Parallel()

	selfKey := primitives.NewKey([]byte{1})
	relayKey := primitives.NewKey([]byte{2})
	de := cryptde.NewNullCryptDE(selfKey)

	route, err := hop.NewRoute([]primitives.Key{selfKey, relayKey}, hop.ComponentProxyServer, de)
	require.NoError(t, err)

	incipient := NewIncipientCoresPackage(route, primitives.NewPlainData([]byte{1, 2}), selfKey)

	live, _, err := FromIncipient(incipient, de)
	require.NoError(t, err)
	require.Len(t, live.Hops, 2)

	expired, err := live.ToExpired(de)
	require.NoError(t, err)

	require.Len(t, expired.RemainingRoute.Remaining(), 1)

	head, ok := expired.RemainingRoute.First()
	require.True(t, ok)
	require.True(t, head.PublicKey.UnwrapOr(primitives.Key{}).Equal(relayKey))
}

// TestPeelingWithWrongKeyFails covers Testable Property 4.
func TestPeelingWithWrongKeyFails(t *testing.T) {
	t.Parallel()

	recipientKey := primitives.NewKey([]byte{1, 2})
	wrongKey := primitives.NewKey([]byte{9, 9})

	deAtRecipient := cryptde.NewNullCryptDE(recipientKey)
	deWithWrongKey := cryptde.NewNullCryptDE(wrongKey)

	route, err := hop.NewRoute([]primitives.Key{recipientKey}, hop.ComponentProxyClient, deAtRecipient)
	require.NoError(t, err)

	incipient := NewIncipientCoresPackage(route, primitives.NewPlainData([]byte{1}), recipientKey)

	live, _, err := FromIncipient(incipient, deAtRecipient)
	require.NoError(t, err)

	_, err = live.ToExpired(deWithWrongKey)
	require.Error(t, err)
}

// TestLiveCoresPackageCBORRoundTrip covers §6's wire-format mandate: a
// LiveCoresPackage marshaled to CBOR and unmarshaled back carries its hops
// and payload through byte-for-byte.
func TestLiveCoresPackageCBORRoundTrip(t *testing.T) {
	t.Parallel()

	pkg := NewLiveCoresPackage(
		[]primitives.CryptData{
			primitives.NewCryptData([]byte{1, 2}),
			primitives.NewCryptData([]byte{3, 4}),
		},
		primitives.NewCryptData([]byte{5, 6}),
	)

	raw, err := pkg.MarshalCBOR()
	require.NoError(t, err)

	decoded, err := UnmarshalLiveCoresPackage(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Hops, 2)
	require.True(t, decoded.Hops[0].Equal(pkg.Hops[0]))
	require.True(t, decoded.Hops[1].Equal(pkg.Hops[1]))
	require.True(t, decoded.Payload.Equal(pkg.Payload))
}

func TestNextHopFailsWhenHopsEmpty(t *testing.T) {
	t.Parallel()

	de := cryptde.NewNullCryptDE(primitives.NewKey([]byte{1}))
	pkg := NewLiveCoresPackage(nil, primitives.NewCryptData([]byte{1}))

	_, err := pkg.NextHop(de)
	require.Error(t, err)
}
