package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mages-tower/internal/storage"
	"mages-tower/internal/tower"
)

// Storage keys.
const (
	KeyAutosave = "tower_autosave"
	KeyLegacy   = "mages_tower_save"
	// KeyFlavoredRefresh marks that the next load follows a deliberate
	// refresh. It lives in session storage.
	KeyFlavoredRefresh = "mages_tower_flavored_refresh"
)

// ProbeKeys are tried in order on load.
var ProbeKeys = []string{KeyAutosave, KeyLegacy}

// ErrNoSave is returned by Probe when no key holds a parseable record.
var ErrNoSave = errors.New("save: no saved game")

// Repository reads and writes saves. Durable outlives the process; Session
// holds the flavored refresh marker and is expected to be per-process.
type Repository struct {
	Durable storage.Store
	Session storage.Store
	Log     *slog.Logger
	Tracer  trace.Tracer
}

// NewRepository wires a repository. A nil tracer disables spans.
func NewRepository(durable, session storage.Store, log *slog.Logger, tracer trace.Tracer) *Repository {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("save")
	}
	return &Repository{Durable: durable, Session: session, Log: log, Tracer: tracer}
}

func (r *Repository) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Save writes st under KeyAutosave.
func (r *Repository) Save(ctx context.Context, st *tower.State) (err error) {
	ctx, span := r.span(ctx, "save.Save", attribute.Int("tower.floor", st.Floor), attribute.Int("tower.tempo", st.Tempo))
	defer func() { endSpan(span, err) }()

	data, err := Encode(st)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := r.Durable.Set(ctx, KeyAutosave, string(data)); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	return nil
}

// Probe returns the first stored record that parses, with the key it came
// from. Unreadable or malformed entries are logged and skipped.
func (r *Repository) Probe(ctx context.Context) (_ map[string]any, _ string, err error) {
	ctx, span := r.span(ctx, "save.Probe")
	defer func() { endSpan(span, err) }()

	for _, key := range ProbeKeys {
		data, err := r.Durable.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				r.Log.Warn("save: read failed", "key", key, "error", err)
			}
			continue
		}
		if data == "" {
			continue
		}
		raw, err := Decode([]byte(data))
		if err != nil {
			r.Log.Warn("save: skipping unparseable record", "key", key, "error", err)
			continue
		}
		span.SetAttributes(attribute.String("save.key", key))
		return raw, key, nil
	}
	return nil, "", ErrNoSave
}

// MarkFlavored sets the refresh marker.
func (r *Repository) MarkFlavored(ctx context.Context) error {
	if r.Session == nil {
		return storage.ErrUnavailable
	}
	return r.Session.Set(ctx, KeyFlavoredRefresh, "1")
}

// TakeFlavored reports and clears the refresh marker. Storage failures read
// as "not marked".
func (r *Repository) TakeFlavored(ctx context.Context) bool {
	if r.Session == nil {
		return false
	}
	v, err := r.Session.Get(ctx, KeyFlavoredRefresh)
	if err != nil || v == "" {
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.Log.Warn("save: read refresh marker", "error", err)
		}
		return false
	}
	if err := r.Session.Delete(ctx, KeyFlavoredRefresh); err != nil {
		r.Log.Warn("save: clear refresh marker", "error", err)
	}
	return true
}

// Export writes st as indented JSON to path.
func (r *Repository) Export(ctx context.Context, st *tower.State, path string) (err error) {
	_, span := r.span(ctx, "save.Export", attribute.String("save.path", path))
	defer func() { endSpan(span, err) }()

	data, err := EncodeIndent(st)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ReadImport parses the record stored at path.
func (r *Repository) ReadImport(ctx context.Context, path string) (_ map[string]any, err error) {
	_, span := r.span(ctx, "save.Import", attribute.String("save.path", path))
	defer func() { endSpan(span, err) }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return Decode(data)
}
