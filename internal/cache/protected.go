package cache

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// PositionCodec knows how to serialize and deserialize positions of a single
// game to a fixed-size binary encoding. Protected uses it to persist the
// protected part of a transposition table to a backup file. Game adapters
// that want their positions eligible for protection implement this
// interface directly; it is deliberately narrower than the full Game
// interface so that this package never needs to import internal/game.
type PositionCodec[P any] interface {
	WritePosition(w io.Writer, p P) error
	ReadPosition(r io.Reader) (P, error)
	PositionSizeBytes() int
}

// ProtectPredicate decides whether a position's nimber should be kept in the
// protected, backed-up part of a table rather than the (possibly lossy)
// unprotected part. Search engines typically protect positions near the root
// of the tree, since recomputing them after a crash is the most expensive to
// redo.
type ProtectPredicate[P any] func(p P) bool

// Protected is a transposition table that never loses the nimbers of
// positions selected by should be protected: they are kept in an exact,
// in-memory map and mirrored, append-only, to a backup file after every
// write. Nimbers of the remaining positions are delegated to an arbitrary
// (possibly lossy) Storer, e.g. a Succinct or LRUCache.
//
// On construction the backup file is replayed to repopulate the protected
// map. If the predicate has changed since the file was last written (so some
// replayed entries are no longer considered protected), those entries are
// moved into unprotected and the backup file is rewritten to hold only the
// entries still considered protected.
type Protected[P comparable] struct {
	codec         PositionCodec[P]
	unprotected   Storer[P]
	protected     map[P]uint8
	shouldProtect ProtectPredicate[P]
	backupFile    *os.File
	backup        *bufio.Writer
}

// NewProtected opens (or creates) backupFileName and constructs a Protected
// table around it. unprotected receives the nimbers of positions for which
// shouldProtect returns false.
func NewProtected[P comparable](codec PositionCodec[P], backupFileName string, shouldProtect ProtectPredicate[P], unprotected Storer[P]) (*Protected[P], error) {
	f, err := os.OpenFile(backupFileName, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cache: cannot open protected backup file: %w", err)
	}

	protected := make(map[P]uint8)
	var backupPosition int64
	var backupHasExtraPositions bool

	reader := bufio.NewReader(f)
	nimberBuf := make([]byte, 1)
	for {
		position, err := codec.ReadPosition(reader)
		if err != nil {
			break
		}
		if _, err := io.ReadFull(reader, nimberBuf); err != nil {
			break
		}
		nimber := nimberBuf[0]
		if shouldProtect(position) {
			protected[position] = nimber
			backupPosition += int64(codec.PositionSizeBytes()) + 1
		} else {
			unprotected.StoreNimber(position, nimber)
			backupHasExtraPositions = true
		}
	}

	if _, err := f.Seek(backupPosition, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("cache: cannot seek protected backup file: %w", err)
	}

	if backupHasExtraPositions {
		if err := rewriteBackup(f, codec, protected); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &Protected[P]{
		codec:         codec,
		unprotected:   unprotected,
		protected:     protected,
		shouldProtect: shouldProtect,
		backupFile:    f,
		backup:        bufio.NewWriterSize(f, codec.PositionSizeBytes()+1),
	}, nil
}

// rewriteBackup truncates the backup file and writes exactly the entries in
// protected, used when the predicate changed between runs and the file on
// disk holds entries that are no longer protected.
func rewriteBackup[P comparable](f *os.File, codec PositionCodec[P], protected map[P]uint8) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cache: cannot rewind protected backup file: %w", err)
	}
	w := bufio.NewWriter(f)
	for p, n := range protected {
		if err := codec.WritePosition(w, p); err != nil {
			return fmt.Errorf("cache: cannot write position to protected backup file: %w", err)
		}
		if _, err := w.Write([]byte{n}); err != nil {
			return fmt.Errorf("cache: cannot write nimber to protected backup file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cache: cannot flush protected backup file: %w", err)
	}
	size, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("cache: cannot determine protected backup file size: %w", err)
	}
	if err := f.Truncate(size); err != nil {
		return fmt.Errorf("cache: cannot shrink protected backup file: %w", err)
	}
	return nil
}

func (p *Protected[P]) GetNimber(position P) (uint8, bool) {
	if p.shouldProtect(position) {
		n, ok := p.protected[position]
		return n, ok
	}
	return p.unprotected.GetNimber(position)
}

func (p *Protected[P]) GetNimberAndSelfOrganize(position P) (uint8, bool) {
	if p.shouldProtect(position) {
		n, ok := p.protected[position]
		return n, ok
	}
	return p.unprotected.GetNimberAndSelfOrganize(position)
}

// StoreNimber stores position's nimber, appending it to the backup file and
// fsync-ing before returning if position is protected. The fsync makes a
// protected nimber durable against a crash immediately after this call
// returns, at the cost of one write+flush+sync per protected store.
func (p *Protected[P]) StoreNimber(position P, nimber uint8) {
	if p.shouldProtect(position) {
		if err := p.codec.WritePosition(p.backup, position); err != nil {
			panic(fmt.Errorf("cache: cannot write position to protected backup file: %w", err))
		}
		if _, err := p.backup.Write([]byte{nimber}); err != nil {
			panic(fmt.Errorf("cache: cannot write nimber to protected backup file: %w", err))
		}
		if err := p.backup.Flush(); err != nil {
			panic(fmt.Errorf("cache: cannot flush protected backup file: %w", err))
		}
		if err := p.backupFile.Sync(); err != nil {
			panic(fmt.Errorf("cache: cannot sync protected backup file: %w", err))
		}
		p.protected[position] = nimber
		return
	}
	p.unprotected.StoreNimber(position, nimber)
}

func (p *Protected[P]) Len() int { return len(p.protected) + lenOf(p.unprotected) }

// lenOf reports the length of a Storer if it exposes one, or 0 otherwise.
// Succinct and LRUCache both expose Len; MapCache does too.
func lenOf[P comparable](s Storer[P]) int {
	type lenner interface{ Len() int }
	if l, ok := s.(lenner); ok {
		return l.Len()
	}
	return 0
}

// Close flushes and closes the backup file.
func (p *Protected[P]) Close() error {
	if err := p.backup.Flush(); err != nil {
		return err
	}
	return p.backupFile.Close()
}
