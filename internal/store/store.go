// Package store persists project records and their archived file versions
// under a single storage root:
//
//	projects/<sha256(id)>.json   one portable JSON blob per record
//	versions/<sha256(content)>   raw file bytes, content-addressed
//	index.db                     tabular summary index (SQLite)
//
// Record blobs are written via temp file, fsync, and atomic rename, so a
// crash mid-write never corrupts the previously committed version. Version
// blobs are deduplicated by content hash and never mutated after write.
//
// Single-process, single-writer model: writes to one project id are
// serialized through a per-id mutex; no cross-process coordination exists.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wedgeworks/printdesk/internal/domain/project"
	"github.com/wedgeworks/printdesk/internal/sqlite"
)

// Store maps project identifiers to persisted records and archived file
// content, keeping both durable and consistent across restarts.
type Store struct {
	projectsDir string
	versionsDir string
	db          *sqlite.DB
	idx         *sqlite.IndexRepository
	logger      *slog.Logger

	mu    sync.Mutex
	cache map[string]*project.Record
	locks map[string]*sync.Mutex
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Customer    project.Customer
	Responsible string
	Status      project.Status
	Quantity    int
}

// Open prepares the storage root and opens the index, rebuilding it from the
// record blobs when it is missing, unreadable, or out of step with the
// projects directory.
func Open(root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "store"))

	s := &Store{
		projectsDir: filepath.Join(root, "projects"),
		versionsDir: filepath.Join(root, "versions"),
		logger:      logger,
		cache:       make(map[string]*project.Record),
		locks:       make(map[string]*sync.Mutex),
	}
	for _, dir := range []string{s.projectsDir, s.versionsDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	ctx := context.Background()
	indexPath := filepath.Join(root, "index.db")
	rebuild := false

	db, idx, count, err := openIndex(indexPath)
	if err != nil {
		// Unreadable index: start fresh and repair from the blobs.
		logger.Warn("index unreadable, rebuilding", "path", indexPath, "error", err)
		if db != nil {
			db.Close()
		}
		if rmErr := os.Remove(indexPath); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, &StorageError{Op: "remove", Path: indexPath, Err: rmErr}
		}
		if db, idx, count, err = openIndex(indexPath); err != nil {
			return nil, err
		}
		rebuild = true
	}
	s.db, s.idx = db, idx

	files, err := s.recordFiles()
	if err != nil {
		db.Close()
		return nil, err
	}
	if !rebuild && count != len(files) {
		logger.Warn("index row count mismatch, rebuilding",
			"rows", count, "records", len(files))
		rebuild = true
	}
	if rebuild {
		if err := s.RebuildIndex(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

func openIndex(path string) (*sqlite.DB, *sqlite.IndexRepository, int, error) {
	db, err := sqlite.New(path)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := db.Migrate(); err != nil {
		return db, nil, 0, err
	}
	idx := sqlite.NewIndexRepository(db)
	count, err := idx.Count(context.Background())
	if err != nil {
		return db, nil, 0, err
	}
	return db, idx, count, nil
}

// Close releases the index database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record for id, loading it from its blob if not cached.
func (s *Store) Get(ctx context.Context, id string) (*project.Record, error) {
	s.mu.Lock()
	rec, ok := s.cache[id]
	s.mu.Unlock()
	if ok {
		return rec, nil
	}

	row, err := s.idx.Get(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting index row for %s: %w", id, err)
	}

	rec, err = s.loadRecord(row.StorageKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[id] = rec
	s.mu.Unlock()
	return rec, nil
}

// Create constructs and persists a new record. An empty id gets a generated
// one. Fails with ErrDuplicateID if the id is already tracked, leaving the
// existing record and index untouched.
func (s *Store) Create(ctx context.Context, req CreateRequest) (*project.Record, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	lock := s.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.idx.Get(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	} else if !errors.Is(err, sqlite.ErrNotFound) {
		return nil, fmt.Errorf("checking index for %s: %w", id, err)
	}

	rec := project.New(id, req.Customer, req.Responsible, req.Status)
	rec.Name = req.Name
	if req.Quantity > 0 {
		rec.Quantity = req.Quantity
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "id", id, "status", rec.Status)
	return rec, nil
}

// Save serializes the full record to its blob and updates the index row.
func (s *Store) Save(ctx context.Context, rec *project.Record) error {
	lock := s.idLock(rec.ID)
	lock.Lock()
	defer lock.Unlock()
	return s.save(ctx, rec)
}

func (s *Store) save(ctx context.Context, rec *project.Record) error {
	// Cancellation is honored only before the write begins; the write
	// itself is not interruptible.
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}

	key := storageKey(rec.ID)
	if err := writeFileAtomic(filepath.Join(s.projectsDir, key), data); err != nil {
		s.dropCache(rec.ID)
		return err
	}

	row := project.Summary{
		ID:           rec.ID,
		Status:       rec.Status,
		Responsible:  rec.Responsible,
		LastModified: time.Now().UTC(),
		StorageKey:   key,
	}
	if err := s.idx.Upsert(ctx, row); err != nil {
		return fmt.Errorf("updating index for %s: %w", rec.ID, err)
	}

	s.mu.Lock()
	s.cache[rec.ID] = rec
	s.mu.Unlock()
	return nil
}

// ArchiveFile appends a version entry to the record, stores the raw bytes
// under their content hash (identical content archived twice is stored
// once), persists the record, and returns the hash.
func (s *Store) ArchiveFile(ctx context.Context, id string, content []byte, originalFilename string) (string, error) {
	lock := s.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	hash := rec.ArchiveVersion(content, originalFilename)
	blobPath := filepath.Join(s.versionsDir, hash)
	if _, err := os.Stat(blobPath); err != nil {
		if !os.IsNotExist(err) {
			s.dropCache(id)
			return "", &StorageError{Op: "stat", Path: blobPath, Err: err}
		}
		if err := writeFileAtomic(blobPath, content); err != nil {
			s.dropCache(id)
			return "", err
		}
	}

	if err := s.save(ctx, rec); err != nil {
		s.dropCache(id)
		return "", err
	}

	s.logger.Info("file archived",
		"id", id,
		"version", rec.Versions[len(rec.Versions)-1].Number,
		"hash", hash,
		"filename", originalFilename,
	)
	return hash, nil
}

// ReadVersion returns the archived bytes for a content hash.
func (s *Store) ReadVersion(ctx context.Context, hash string) ([]byte, error) {
	path := filepath.Join(s.versionsDir, hash)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: version %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// List returns index rows, newest first, optionally filtered by status.
// Only the index is consulted; no record blobs are loaded. Each call
// re-queries, so the result is a restartable, internally consistent snapshot.
func (s *Store) List(ctx context.Context, status project.Status) ([]project.Summary, error) {
	return s.idx.List(ctx, status)
}

// RebuildIndex scans all persisted record blobs and reconstructs the index
// from scratch. Fails with ErrCorruptIndex only if a blob itself fails to
// deserialize; otherwise the index is silently repaired.
func (s *Store) RebuildIndex(ctx context.Context) error {
	entries, err := os.ReadDir(s.projectsDir)
	if err != nil {
		return &StorageError{Op: "readdir", Path: s.projectsDir, Err: err}
	}

	var rows []project.Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.projectsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return &StorageError{Op: "read", Path: path, Err: err}
		}
		var rec project.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("%w: record %s: %v", ErrCorruptIndex, entry.Name(), err)
		}
		info, err := entry.Info()
		if err != nil {
			return &StorageError{Op: "stat", Path: path, Err: err}
		}
		rows = append(rows, project.Summary{
			ID:           rec.ID,
			Status:       rec.Status,
			Responsible:  rec.Responsible,
			LastModified: info.ModTime().UTC(),
			StorageKey:   entry.Name(),
		})
	}

	if err := s.idx.Replace(ctx, rows); err != nil {
		return fmt.Errorf("replacing index: %w", err)
	}
	s.logger.Info("index rebuilt", "projects", len(rows))
	return nil
}

// idLock returns the mutex serializing writes for one project id.
func (s *Store) idLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// dropCache evicts a record so the next Get reloads committed state. Called
// on failed writes, where the in-memory record may be ahead of disk.
func (s *Store) dropCache(id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
}

func (s *Store) loadRecord(key string) (*project.Record, error) {
	path := filepath.Join(s.projectsDir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	var rec project.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", key, err)
	}
	return &rec, nil
}

func (s *Store) recordFiles() ([]string, error) {
	entries, err := os.ReadDir(s.projectsDir)
	if err != nil {
		return nil, &StorageError{Op: "readdir", Path: s.projectsDir, Err: err}
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// storageKey derives the record filename from the project id. Hashing keeps
// keys fixed-width and collision-resistant without a central allocator.
func storageKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:]) + ".json"
}

// writeFileAtomic writes data via temp file, fsync, and rename. On any
// failure the temp file is removed and the previously committed file, if
// any, is left untouched.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp-" + uuid.NewString()[:8]
	f, err := os.Create(tmp)
	if err != nil {
		return &StorageError{Op: "create", Path: tmp, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return &StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &StorageError{Op: "sync", Path: tmp, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "close", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
