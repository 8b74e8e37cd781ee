package hop

// Component is the closed enumeration of local consumers a Hop can name as
// its terminal destination at a given node.
type Component uint8

const (
	// ComponentProxyServer is the ingress consumer: bytes returning to the
	// overlay originator.
	ComponentProxyServer Component = iota

	// ComponentProxyClient is the egress consumer: bytes leaving the
	// overlay for the external internet.
	ComponentProxyClient

	// ComponentHopper names the forwarding core itself. Reserved; not a
	// valid terminal component in this release.
	ComponentHopper

	// ComponentNeighborhood names the routing/dispatch collaborator.
	// Reserved; not a valid terminal component in this release.
	ComponentNeighborhood
)

// String renders the component name for diagnostics.
func (c Component) String() string {
	switch c {
	case ComponentProxyServer:
		return "ProxyServer"
	case ComponentProxyClient:
		return "ProxyClient"
	case ComponentHopper:
		return "Hopper"
	case ComponentNeighborhood:
		return "Neighborhood"
	default:
		return "Unknown"
	}
}
