// Command hopperd bootstraps a single Hopper actor: it builds a real
// CryptDE, constructs the actor, binds it to its local proxy collaborators,
// and runs until interrupted. Everything in this file is process glue; none
// of it is exercised by the forwarding core itself.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btclog"

	"github.com/substratum-net/hopper/cryptde"
	"github.com/substratum-net/hopper/hop"
	"github.com/substratum-net/hopper/hopper"
	"github.com/substratum-net/hopper/proxy"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hopperd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	backend := newBackendLogger(cfg.DebugLevel)
	cryptde.UseLogger(backend.Logger("CRDE"))
	hop.UseLogger(backend.Logger("HOP "))
	hopper.UseLogger(backend.Logger("HPR "))

	log := backend.Logger("MAIN")

	var de *cryptde.RealCryptDE
	if cfg.KeyFile != "" {
		de, err = cryptde.NewRealCryptDEFromFile(cfg.KeyFile)
	} else {
		de, err = cryptde.NewRealCryptDE()
	}
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}
	log.Infof("node public key: %x", de.PublicKey().Bytes())

	h := hopper.New(de)
	if err := h.Start(); err != nil {
		return fmt.Errorf("start hopper: %w", err)
	}
	defer h.Stop()

	// The real ProxyServer/ProxyClient live outside this module; hopperd
	// binds recording stand-ins so the actor is never left unbound, per
	// the binding protocol in §4.3.
	h.Bind(hopper.PeerActors{
		ProxyServer: proxy.NewRecorder(),
		ProxyClient: proxy.NewRecorder(),
	})

	log.Info("hopperd started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("hopperd shutting down")

	return nil
}

// backendLogger is a minimal btclog backend wiring: a single level shared
// by every subsystem, matching the --debuglevel flag's scope at this
// release (lnd's per-subsystem override syntax is not implemented here).
type backendLogger struct {
	level btclog.Level
}

func newBackendLogger(levelName string) *backendLogger {
	level, ok := btclog.LevelFromString(levelName)
	if !ok {
		level = btclog.LevelInfo
	}

	return &backendLogger{level: level}
}

func (b *backendLogger) Logger(subsystem string) btclog.Logger {
	backend := btclog.NewBackend(os.Stdout)
	logger := backend.Logger(subsystem)
	logger.SetLevel(b.level)

	return logger
}
