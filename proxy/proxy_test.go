package proxy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/substratum-net/hopper/hop"
	"github.com/substratum-net/hopper/hopper"
	"github.com/substratum-net/hopper/primitives"
)

func TestRecorderRecordsInArrivalOrder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	require.Equal(t, 0, rec.Len())

	for i := 0; i < 3; i++ {
		pkg := hopper.ExpiredCoresPackage{
			RemainingRoute: hop.Construct(hop.NewHopWithComponent(hop.ComponentProxyClient), nil),
			Payload:        primitives.NewPlainData([]byte{byte(i)}),
		}
		require.NoError(t, rec.Send(pkg))
	}

	require.Equal(t, 3, rec.Len())

	received := rec.Received()
	require.Len(t, received, 3)
	for i, pkg := range received {
		require.Equal(t, []byte{byte(i)}, pkg.Payload.Bytes())
	}
}

func TestDeadAlwaysFails(t *testing.T) {
	t.Parallel()

	err := Dead{}.Send(hopper.ExpiredCoresPackage{})
	require.Error(t, err)
}
