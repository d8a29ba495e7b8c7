// mages-tower-server hosts the tower over SSH. Each user name gets its
// own climb, persisted in one shared SQLite database. Build:
//
//	go build -o mages-tower-server ./cmd/server
//
// Usage:
//
//	./mages-tower-server [--port 2222] [--key server_host_key] [--db tower.db]
//
// Connect with:
//
//	ssh -t -p 2222 wizard@localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	mrand "math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	xssh "golang.org/x/crypto/ssh"

	"mages-tower/internal/audio"
	"mages-tower/internal/config"
	"mages-tower/internal/game"
	"mages-tower/internal/save"
	internalssh "mages-tower/internal/ssh"
	"mages-tower/internal/storage"
	"mages-tower/internal/storage/sqlite"
	"mages-tower/internal/telemetry"
)

const (
	maxNameBytes = 16
	defaultTerm  = "xterm-256color"
	guestName    = "guest"
)

// allowedTerms lists the TERM values handed to terminfo. Anything else
// falls back to defaultTerm so a client cannot steer terminfo lookups.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	dbPath := flag.String("db", "", "SQLite database path (default $MAGES_TOWER_DATA_DIR/server.db)")
	flag.Parse()

	if err := run(*port, *keyFile, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(port int, keyFile, dbPath string) error {
	env, err := config.Load()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: env.Level()}))

	if err := os.MkdirAll(env.DataDir, 0o755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	if dbPath == "" {
		dbPath = filepath.Join(env.DataDir, "server.db")
	}

	shutdown, err := telemetry.Setup(context.Background(), telemetry.ServiceName+"-server", env.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdown(context.Background())

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	signer, err := loadOrCreateHostKey(keyFile, log)
	if err != nil {
		return err
	}

	h := newHost(store, env, log, telemetry.Tracer("mages-tower/server"))
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	log.Info("server: listening", "port", port, "db", dbPath)
	return srv.ListenAndServe()
}

// host runs one tower per connected user.
type host struct {
	store  storage.Store
	env    config.Env
	log    *slog.Logger
	tracer trace.Tracer

	mu     sync.Mutex
	active map[string]string // slot -> session id
}

func newHost(store storage.Store, env config.Env, log *slog.Logger, tracer trace.Tracer) *host {
	return &host{
		store:  store,
		env:    env,
		log:    log,
		tracer: tracer,
		active: make(map[string]string),
	}
}

// claim reserves slot for session id. A user may only climb from one
// connection at a time, since two controllers would race on one save.
func (h *host) claim(slot, id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.active[slot]; busy {
		return false
	}
	h.active[slot] = id
	return true
}

func (h *host) release(slot, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active[slot] == id {
		delete(h.active, slot)
	}
}

// handleSession blocks for the lifetime of one connection.
func (h *host) handleSession(s gossh.Session) {
	tty, ok := internalssh.Open(s)
	if !ok {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p <port> <name>@<host>")
		return
	}
	defer tty.Close()

	name := sanitizeName(s.User())
	slot := slotName(name)
	id := uuid.NewString()
	log := h.log.With("session", id, "user", slot)

	if !h.claim(slot, id) {
		fmt.Fprintf(s, "%s is already climbing the tower from another session.\n", name)
		log.Info("server: duplicate session refused")
		return
	}
	defer h.release(slot, id)

	term := tty.Term()
	if !allowedTerms[term] {
		term = defaultTerm
	}

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()
	screen.EnableMouse()

	log.Info("server: session started", "term", term)
	app := game.NewApp(screen, h.options(slot, log))
	if err := app.Run(s.Context()); err != nil {
		log.Warn("server: session ended with error", "error", err)
		return
	}
	log.Info("server: session ended")
}

// options builds the controller wiring for one user. The durable store is
// shared and namespaced by slot; session data lives as long as the
// connection.
func (h *host) options(slot string, log *slog.Logger) game.Options {
	repo := save.NewRepository(
		storage.WithPrefix(h.store, slot),
		storage.NewMemory(),
		log,
		h.tracer,
	)
	userDir := filepath.Join(h.env.DataDir, "users", slot)
	return game.Options{
		Rules:      h.env.Rules(),
		Rand:       mrand.New(mrand.NewSource(time.Now().UnixNano())),
		Repo:       repo,
		Audio:      audio.Silent{},
		Log:        log,
		Tracer:     h.tracer,
		ExportPath: filepath.Join(userDir, "tower_autosave.json"),
		RunLogDir:  userDir,
	}
}

// termMu serialises os.Setenv("TERM") with terminfo screen creation.
var termMu sync.Mutex

// sanitizeName strips control characters and limits the name to
// maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == utf8.RuneError || unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// slotName maps a display name to a key prefix and directory name.
func slotName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}
	if strings.Trim(b.String(), "_") == "" {
		return guestName
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("server: loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("server: generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "mages-tower server")
	if err != nil {
		log.Warn("server: host key not persisted", "error", err)
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.Warn("server: host key not persisted", "error", err)
	}
	return signer, nil
}
