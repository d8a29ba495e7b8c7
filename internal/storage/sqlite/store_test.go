package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"mages-tower/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tower.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)

	if _, err := s.Get(ctx, "tower_autosave"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on empty store: %v", err)
	}
	if err := s.Set(ctx, "tower_autosave", `{"floor":1}`); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "tower_autosave", `{"floor":2}`); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "tower_autosave")
	if err != nil || got != `{"floor":2}` {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := s.Delete(ctx, "tower_autosave"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "tower_autosave"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tower.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got, err := s.Get(ctx, "k"); err != nil || got != "v" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)

	const users, writes = 16, 50
	var wg sync.WaitGroup
	errs := make(chan error, users*writes)
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			key := fmt.Sprintf("u%d/tower_autosave", u)
			for i := 0; i < writes; i++ {
				if err := s.Set(ctx, key, fmt.Sprintf(`{"floor":%d}`, i)); err != nil {
					errs <- err
				}
			}
		}(u)
	}
	wg.Wait()
	close(errs)

	failed := 0
	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		t.Fatalf("failed writes = %d/%d, first: %v", failed, users*writes, first)
	}
	for u := 0; u < users; u++ {
		got, err := s.Get(ctx, fmt.Sprintf("u%d/tower_autosave", u))
		if err != nil || got != fmt.Sprintf(`{"floor":%d}`, writes-1) {
			t.Errorf("user %d: Get = %q, %v", u, got, err)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)

	var timeout int
	if err := s.db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatal(err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d; want 5000", timeout)
	}
	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q; want wal", mode)
	}
}

func TestNilStoreIsUnavailable(t *testing.T) {
	var s *Store
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("err = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}

func TestApplyMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	fsys := fstest.MapFS{
		"0002_extra.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE extra (id INTEGER);\n-- +migrate Down\nDROP TABLE extra;\n")},
	}
	for i := 0; i < 2; i++ {
		if err := applyMigrations(ctx, s.db, fsys, "."); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("applied migrations = %d; want 2", n)
	}
}

func TestUpSection(t *testing.T) {
	cases := []struct{ in, want string }{
		{"CREATE TABLE a (x);", "CREATE TABLE a (x);"},
		{"-- +migrate Up\nUP\n-- +migrate Down\nDOWN", "\nUP\n"},
		{"-- +migrate Up\nUP", "\nUP"},
	}
	for _, tc := range cases {
		if got := upSection(tc.in); got != tc.want {
			t.Errorf("upSection(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
