package cache

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uint32Codec is a minimal PositionCodec used only to exercise Protected's
// replay-on-open and append-on-store logic in tests.
type uint32Codec struct{}

func (uint32Codec) WritePosition(w io.Writer, p uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], p)
	_, err := w.Write(buf[:])
	return err
}

func (uint32Codec) ReadPosition(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (uint32Codec) PositionSizeBytes() int { return 4 }

func TestProtectedStoreAndReplay(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "protected.bin")
	protectAll := func(uint32) bool { return true }

	pt, err := NewProtected[uint32](uint32Codec{}, backup, protectAll, NewMapCache[uint32]())
	require.NoError(t, err)

	pt.StoreNimber(10, 2)
	pt.StoreNimber(20, 3)
	require.NoError(t, pt.Close())

	// Reopen: the backup file should replay both entries back into the
	// protected part without the caller recomputing them.
	reopened, err := NewProtected[uint32](uint32Codec{}, backup, protectAll, NewMapCache[uint32]())
	require.NoError(t, err)
	defer reopened.Close()

	n, ok := reopened.GetNimber(10)
	assert.True(t, ok)
	assert.Equal(t, uint8(2), n)

	n, ok = reopened.GetNimber(20)
	assert.True(t, ok)
	assert.Equal(t, uint8(3), n)

	assert.Equal(t, 2, reopened.Len())
}

func TestProtectedPredicateChangeRewritesBackup(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "protected.bin")
	protectAll := func(uint32) bool { return true }

	pt, err := NewProtected[uint32](uint32Codec{}, backup, protectAll, NewMapCache[uint32]())
	require.NoError(t, err)
	pt.StoreNimber(1, 1)
	pt.StoreNimber(2, 2)
	require.NoError(t, pt.Close())

	// Reopen with a stricter predicate: only even positions stay protected.
	protectEven := func(p uint32) bool { return p%2 == 0 }
	unprotected := NewMapCache[uint32]()
	reopened, err := NewProtected[uint32](uint32Codec{}, backup, protectEven, unprotected)
	require.NoError(t, err)
	defer reopened.Close()

	_, stillProtected := reopened.protected[1]
	assert.False(t, stillProtected)
	n, ok := unprotected.GetNimber(1)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), n)

	n, ok = reopened.protected[2]
	assert.True(t, ok)
	assert.Equal(t, uint8(2), n)

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size()) // one (position, nimber) pair: 4+1 bytes
}
