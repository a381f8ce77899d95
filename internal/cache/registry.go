package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var artifactsBucket = []byte("artifacts")

// Registry is a small embedded-database index of on-disk caching artifacts
// (protected-TT backup files, frozen End-DB slices) keyed by name. It exists
// so a long-running solver can tell, without re-reading every file, which
// slices it has already built and how large they were the last time it
// touched them — a cheap integrity aid, not a cache of nimbers itself.
type Registry struct {
	db *bolt.DB
}

// ArtifactInfo records what a Registry remembers about one on-disk artifact.
type ArtifactInfo struct {
	SizeBytes int64
	BuiltAt   time.Time
}

// OpenRegistry opens (creating if necessary) a bbolt-backed registry at path.
func OpenRegistry(path string) (*Registry, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: cannot open registry: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(artifactsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: cannot initialize registry: %w", err)
	}
	return &Registry{db: db}, nil
}

func (r *Registry) Close() error { return r.db.Close() }

// Record stores or overwrites the bookkeeping entry for name.
func (r *Registry) Record(name string, info ArtifactInfo) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		buf := make([]byte, 16)
		binary.BigEndian.PutUint64(buf[0:8], uint64(info.SizeBytes))
		binary.BigEndian.PutUint64(buf[8:16], uint64(info.BuiltAt.Unix()))
		return b.Put([]byte(name), buf)
	})
}

// Lookup returns the recorded info for name, if any.
func (r *Registry) Lookup(name string) (ArtifactInfo, bool, error) {
	var info ArtifactInfo
	var found bool
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		v := b.Get([]byte(name))
		if v == nil {
			return nil
		}
		if len(v) != 16 {
			return fmt.Errorf("cache: corrupt registry entry for %q", name)
		}
		info.SizeBytes = int64(binary.BigEndian.Uint64(v[0:8]))
		info.BuiltAt = time.Unix(int64(binary.BigEndian.Uint64(v[8:16])), 0)
		found = true
		return nil
	})
	return info, found, err
}

// Forget removes the bookkeeping entry for name, e.g. after its artifact is
// deleted or found to be stale.
func (r *Registry) Forget(name string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(artifactsBucket).Delete([]byte(name))
	})
}

// ForgetAll removes the bookkeeping entries for every name in names,
// e.g. after a sweep deletes several stale artifacts at once. It keeps
// going past a failing entry and returns every error it hit together,
// rather than stopping at the first one.
func (r *Registry) ForgetAll(names []string) error {
	var errs []error
	for _, name := range names {
		if err := r.Forget(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Names returns every artifact name the registry currently knows about.
func (r *Registry) Names() ([]string, error) {
	var names []string
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(artifactsBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
