// SPDX-License-Identifier: EPL-2.0

// Package index persists per-track decode indexes so later opens of the same
// source skip the full-stream scan.
//
// One badger database is kept per cache directory and shared, reference
// counted, by every source opened in the process.
package index

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	badger "github.com/dgraph-io/badger/v4"
)

const keyPrefix = "bsidx/"

// Record is what is remembered about one track of one file.
type Record struct {
	Size       int64  `json:"size"`
	ModTime    int64  `json:"mod_time"`
	Track      int    `json:"track"`
	Format     string `json:"format"`
	NumSamples int64  `json:"num_samples"`
}

// NewRecord stamps a record with the identity of fi.
func NewRecord(fi os.FileInfo, track int, format string, numSamples int64) Record {
	return Record{
		Size:       fi.Size(),
		ModTime:    fi.ModTime().UnixNano(),
		Track:      track,
		Format:     format,
		NumSamples: numSamples,
	}
}

// Fresh reports whether the record still describes fi.
func (r Record) Fresh(fi os.FileInfo) bool {
	return r.Size == fi.Size() && r.ModTime == fi.ModTime().UnixNano()
}

type shared struct {
	db   *badger.DB
	refs int
}

var (
	mu  sync.Mutex
	dbs = map[string]*shared{}
)

// Store is a handle on a shared index database.
type Store struct {
	dir    string
	db     *badger.DB
	log    *slog.Logger
	once   sync.Once
	closed error
}

// DirFor returns the index directory for source: cachePath when set,
// otherwise a hidden directory next to the source.
func DirFor(source, cachePath string) string {
	if cachePath != "" {
		return cachePath
	}
	return filepath.Join(filepath.Dir(source), ".bestaudio")
}

// Open returns a store on dir, opening the database on first use.
func Open(dir string, log *slog.Logger) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving index dir: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	sh, ok := dbs[abs]
	if !ok {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("creating index dir: %w", err)
		}

		opts := badger.DefaultOptions(abs).
			WithLogger(badgerLogger{log: log}).
			WithNumVersionsToKeep(1).
			WithMemTableSize(8 << 20).
			WithBlockCacheSize(8 << 20).
			WithValueLogFileSize(32 << 20)

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		sh = &shared{db: db}
		dbs[abs] = sh
		log.Debug("index opened", "dir", abs)
	}
	sh.refs++

	return &Store{dir: abs, db: sh.db, log: log}, nil
}

// Close drops this reference; the database closes with the last one.
func (s *Store) Close() error {
	s.once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		sh, ok := dbs[s.dir]
		if !ok {
			return
		}
		sh.refs--
		if sh.refs > 0 {
			return
		}
		delete(dbs, s.dir)
		s.closed = sh.db.Close()
		s.log.Debug("index closed", "dir", s.dir)
	})
	return s.closed
}

// Key derives the database key for a track of a source file.
func Key(source string, track int) []byte {
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}

	key := make([]byte, len(keyPrefix)+12)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], xxhash.Sum64String(abs))
	binary.BigEndian.PutUint32(key[len(keyPrefix)+8:], uint32(int32(track)))
	return key
}

// Get loads the record for source/track. ok is false when there is none.
func (s *Store) Get(source string, track int) (rec Record, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(source, track))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading index: %w", err)
	}
	return rec, true, nil
}

// Put stores rec for source/track, replacing any previous record.
func (s *Store) Put(source string, track int, rec Record) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(Key(source, track), val)
	})
	if err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// Delete removes the record for source/track.
func (s *Store) Delete(source string, track int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(Key(source, track))
	})
	if err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}
	return nil
}

// badgerLogger routes badger's printf-style logging to slog.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
