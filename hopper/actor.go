package hopper

import (
	"sync"
	"sync/atomic"

	"github.com/go-errors/errors"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/hop"
)

// PeerActors is the table of local collaborator handles a BindMessage
// carries. Only the two sinks Hopper cares about are present; a real
// actor-system binding message would carry handles to every actor in the
// process.
type PeerActors struct {
	ProxyServer Sink
	ProxyClient Sink
}

// BindMessage wires a Hopper's sinks exactly once, before any traffic may be
// admitted.
type BindMessage struct {
	PeerActors PeerActors
}

// incipientMessage and liveMessage wrap the two traffic message kinds the
// actor's loop selects on, alongside a reply channel so callers can observe
// a handling failure synchronously for ease of testing; a production caller
// that does not care can pass a nil channel.
type incipientMessage struct {
	pkg   IncipientCoresPackage
	reply chan error
}

type liveMessage struct {
	pkg   LiveCoresPackage
	reply chan error
}

// Hopper is the single-writer actor that peels one cryptographic layer off
// each in-transit packet and dispatches the result to a local consumer. It
// must be started with Start before it will process anything, and every
// message is handled strictly in arrival order by one goroutine.
type Hopper struct {
	cryptde cryptde.CryptDE

	toProxyServer Sink
	toProxyClient Sink

	binds      chan BindMessage
	incipients chan incipientMessage
	lives      chan liveMessage

	started  int32
	shutdown int32
	wg       sync.WaitGroup
	quit     chan struct{}
}

// New constructs a Hopper that owns de exclusively. Its sinks are unbound
// until a BindMessage is processed.
func New(de cryptde.CryptDE) *Hopper {
	return &Hopper{
		cryptde:    de,
		binds:      make(chan BindMessage),
		incipients: make(chan incipientMessage),
		lives:      make(chan liveMessage),
		quit:       make(chan struct{}),
	}
}

// Start launches the actor's message loop in its own goroutine.
func (h *Hopper) Start() error {
	if !atomic.CompareAndSwapInt32(&h.started, 0, 1) {
		return errors.New("hopper: already started")
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		for {
			select {
			case bind := <-h.binds:
				h.handleBind(bind)

			case msg := <-h.incipients:
				err := h.handleIncipient(msg.pkg)
				if msg.reply != nil {
					msg.reply <- err
				}

			case msg := <-h.lives:
				err := h.handleLive(msg.pkg)
				if msg.reply != nil {
					msg.reply <- err
				}

			case <-h.quit:
				return
			}
		}
	}()

	return nil
}

// Stop shuts the actor's message loop down and waits for it to exit.
func (h *Hopper) Stop() error {
	if !atomic.CompareAndSwapInt32(&h.shutdown, 0, 1) {
		return nil
	}

	close(h.quit)
	h.wg.Wait()

	return nil
}

// Bind sends a BindMessage to the actor, wiring its sinks. It is fire-and-
// forget: per §4.3, idempotency is not required and callers must send at
// most one.
func (h *Hopper) Bind(peers PeerActors) {
	h.binds <- BindMessage{PeerActors: peers}
}

// SendIncipient hands the actor a locally-constructed IncipientCoresPackage
// for origination. It blocks until the actor has finished handling the
// message and returns whatever error the handler produced, so tests can
// assert on fatal conditions without races against the actor goroutine.
func (h *Hopper) SendIncipient(pkg IncipientCoresPackage) error {
	reply := make(chan error, 1)
	h.incipients <- incipientMessage{pkg: pkg, reply: reply}
	return <-reply
}

// SendLive hands the actor a LiveCoresPackage that arrived from the
// network, for relaying.
func (h *Hopper) SendLive(pkg LiveCoresPackage) error {
	reply := make(chan error, 1)
	h.lives <- liveMessage{pkg: pkg, reply: reply}
	return <-reply
}

func (h *Hopper) handleBind(msg BindMessage) {
	h.toProxyServer = msg.PeerActors.ProxyServer
	h.toProxyClient = msg.PeerActors.ProxyClient
}

// handleIncipient implements the originator-side transform: run the codec,
// then dispatch exactly as the relay path does.
func (h *Hopper) handleIncipient(incipient IncipientCoresPackage) error {
	live, _, err := FromIncipient(incipient, h.cryptde)
	if err != nil {
		log.Criticalf("hopper: from_incipient failed: %v", err)
		panic(errors.Wrap(err, 0))
	}

	return h.dispatch(live)
}

// handleLive implements the relay path: inspect the first hop and branch on
// its component.
func (h *Hopper) handleLive(live LiveCoresPackage) error {
	return h.dispatch(live)
}

// dispatch inspects live's first hop and sends the peeled package to the
// appropriate local sink, or fails fatally per §4.1/§7.
func (h *Hopper) dispatch(live LiveCoresPackage) error {
	next, err := live.NextHop(h.cryptde)
	if err != nil {
		log.Criticalf("hopper: next_hop failed: %v", err)
		panic(errors.Wrap(err, 0))
	}

	if next.Component.IsNone() {
		h.fatalf("well-formed route must terminate with a component at this node")
	}

	component := next.Component.UnwrapOr(0)

	switch component {
	case hop.ComponentProxyServer:
		return h.deliverTo(live, h.toProxyServer, "ProxyServer", "Proxy Server")

	case hop.ComponentProxyClient:
		return h.deliverTo(live, h.toProxyClient, "ProxyClient", "Proxy Client")

	default:
		h.fatalf("this release does not support terminal component %v", component)
		return nil // unreachable: fatalf never returns
	}
}

// deliverTo peels live and sends the resulting ExpiredCoresPackage to sink,
// failing fatally if sink is unbound or reports delivery failure. unboundName
// and deadName carry the exact diagnostic tokens §7/§8 require for each
// case ("ProxyServer unbound in Hopper" vs. "Proxy Server is dead").
func (h *Hopper) deliverTo(live LiveCoresPackage, sink Sink, unboundName, deadName string) error {
	if sink == nil {
		h.fatalf("%s unbound in Hopper", unboundName)
	}

	expired, err := live.ToExpired(h.cryptde)
	if err != nil {
		log.Criticalf("hopper: to_expired failed: %v", err)
		panic(errors.Wrap(err, 0))
	}

	if err := sink.Send(expired); err != nil {
		h.fatalf("%s is dead", deadName)
	}

	return nil
}

// fatalf logs msg and panics, the actor-restart-supervised equivalent of
// aborting the handler on an invariant violation.
func (h *Hopper) fatalf(format string, args ...interface{}) {
	err := errors.Errorf(format, args...)
	log.Criticalf("hopper: %v", err)
	panic(err)
}
