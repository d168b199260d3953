// roguecore-server serves the simulation demo over SSH. Every connection
// gets its own independent simulation on the same map. Build:
//
//	go build -o roguecore-server ./cmd/server
//
// Usage:
//
//	./roguecore-server [-port 2222] [-key server_host_key] [-config sim.yaml] [-map level.txt | -generate]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"

	"roguecore/internal/config"
	"roguecore/internal/game"
	"roguecore/internal/logging"
	"roguecore/internal/render"
	internalssh "roguecore/internal/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "PEM-encoded host key, generated when absent")
	cfgPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	mapPath := flag.String("map", "", "text layout file (a built-in map when empty)")
	generated := flag.Bool("generate", false, "give every session its own generated level")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	src := game.Source{MapPath: *mapPath, Generated: *generated}
	// Fail at startup rather than on the first connection.
	if _, err := game.Build(cfg, src, logging.Discard()); err != nil {
		logger.WithError(err).Fatal("build simulation")
	}

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.WithError(err).Fatal("host key")
	}

	h := &handler{cfg: cfg, src: src, logger: logger}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.serve,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	logger.WithField("port", *port).Infof("listening; connect with ssh -t -p %d localhost", *port)
	logger.Fatal(srv.ListenAndServe())
}

// handler runs one simulation per SSH session.
type handler struct {
	cfg    config.Config
	src    game.Source
	logger logrus.FieldLogger
}

func (h *handler) serve(s gossh.Session) {
	log := h.logger.WithFields(logrus.Fields{
		"user":   sanitizeName(s.User()),
		"remote": s.RemoteAddr().String(),
	})

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This demo needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		log.WithError(err).Warn("screen setup failed")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	sm, err := game.Build(h.cfg, h.src, log)
	if err != nil {
		log.WithError(err).Error("build simulation")
		return
	}
	log.WithField("sim", sm.ID.String()).Info("session started")

	if err := game.New(screen, sm, render.ASCII, log).Run(s.Context()); err != nil {
		log.WithError(err).Debug("session ended")
		return
	}
	log.Info("session finished")
}

// maxNameLen caps user names in log lines, in runes.
const maxNameLen = 16

// sanitizeName drops non-printable runes from a client-supplied name and
// truncates it.
func sanitizeName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if !unicode.IsPrint(r) || r == ' ' {
			continue
		}
		if n == maxNameLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger logrus.FieldLogger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	logger.WithField("path", path).Info("generating ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; a fresh key works for this run either way.
	if block, err := xssh.MarshalPrivateKey(key, "roguecore server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.WithError(err).Warn("could not save host key")
		}
	}
	return signer, nil
}
