package enddb

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/game"
	"github.com/beling/impartial-games/internal/nimberset"
)

// recordArtifact updates registry's bookkeeping entry for a just-written
// cache file, if a registry was supplied; a nil registry is a no-op, so
// Builder/DecomposableBuilder work unchanged without one.
func recordArtifact(registry *cache.Registry, name string, sizeBytes int64) {
	if registry == nil {
		return
	}
	// The registry entry is purely an optimization a caller consults before
	// re-stat'ing every slice file; a failure to record it doesn't affect
	// the slice that was just written successfully, so it is not returned.
	_ = registry.Record(name, cache.ArtifactInfo{SizeBytes: sizeBytes, BuiltAt: time.Now()})
}

func cacheFileName(cacheDir, gameName, methodName string, sliceIndex int) (string, error) {
	dir := filepath.Join(cacheDir, fmt.Sprintf("%s-%s", gameName, methodName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%08d.edb", sliceIndex)), nil
}

// Builder builds an EndDB for a SimpleGame one slice at a time, computing
// each slice's nimbers by definition (recursive mex) over whatever the
// already-built slices and the in-progress slice know, exactly as
// EndDbBuilder::build_slice does for a SimpleGame.
type Builder[P comparable, ISP cmp.Ordered] struct {
	Game       game.SimpleGame[P]
	GameName   string
	MethodName string
	Codec      cache.PositionCodec[ISP]
	Verifier   Verifier[ISP]
	EndDB      *EndDB[P, ISP]

	// Registry, if set, gets one entry recorded per slice file this
	// Builder writes to cacheDir, so a caller building many End-DBs in one
	// run can list what exists without re-stat'ing every slice file.
	Registry *cache.Registry
}

// NewBuilder returns a Builder over an empty EndDB addressed by provider.
// A nil verifier defaults to NullVerifier.
func NewBuilder[P comparable, ISP cmp.Ordered](g game.SimpleGame[P], gameName, methodName string, provider SliceProvider[P, ISP], codec cache.PositionCodec[ISP], verifier Verifier[ISP]) *Builder[P, ISP] {
	if verifier == nil {
		verifier = NullVerifier[ISP]{}
	}
	return &Builder[P, ISP]{Game: g, GameName: gameName, MethodName: methodName, Codec: codec, Verifier: verifier, EndDB: New[P, ISP](provider)}
}

func (b *Builder[P, ISP]) getNimber(position P, current *SortedSlice[ISP]) uint8 {
	stripped := b.EndDB.Provider.Strip(position)
	if idx, ok := b.EndDB.Provider.PositionToSlice(position); ok && idx < len(b.EndDB.Slices) {
		if n, found := b.EndDB.Slices[idx].GetNimber(stripped); found {
			return n
		}
		return b.addNimber(position, current)
	}
	if n, found := current.GetNimber(stripped); found {
		return n
	}
	return b.addNimber(position, current)
}

func (b *Builder[P, ISP]) addNimber(position P, current *SortedSlice[ISP]) uint8 {
	var successors []P
	successors = b.Game.Successors(position, successors[:0])
	var seen nimberset.Set64
	for _, s := range successors {
		seen = seen.Append(b.getNimber(s, current))
	}
	result := seen.Mex()
	current.StoreNimber(b.EndDB.Provider.Strip(position), result)
	return result
}

// BuildSlice builds the next slice (index len(EndDB.Slices)) in full and
// pushes it, returning false if the provider has no more slices to give.
func (b *Builder[P, ISP]) BuildSlice() bool {
	positions, ok := b.EndDB.Provider.SliceContent(len(b.EndDB.Slices))
	if !ok {
		return false
	}
	current := NewSortedSlice[ISP]()
	for _, p := range positions {
		b.addNimber(p, current)
	}
	snapshot := b.Verifier.Snapshot(current)
	b.EndDB.pushSlice(current)
	b.Verifier.Check(snapshot, current)
	return true
}

func (b *Builder[P, ISP]) readSliceFromFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	slice, err := ReadSortedSlice[ISP](f, b.Codec)
	if err != nil {
		return err
	}
	b.EndDB.pushSlice(slice)
	return nil
}

func (b *Builder[P, ISP]) writeSliceToFile(filename string, sliceIndex int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	slice := b.EndDB.Slices[sliceIndex]
	if err := WriteSortedSlice(f, b.Codec, slice); err != nil {
		return err
	}
	recordArtifact(b.Registry, filename, int64(slice.SizeBytes(b.Codec)))
	return nil
}

// BuildSliceCached behaves like BuildSlice, but first tries to read the
// next slice from "{cacheDir}/{gameName}-{MethodName}/{index:08d}.edb" and,
// on a genuine build, writes the slice there afterward.
func (b *Builder[P, ISP]) BuildSliceCached(cacheDir string) (bool, error) {
	filename, nameErr := cacheFileName(cacheDir, b.GameName, b.MethodName, len(b.EndDB.Slices))
	if nameErr == nil {
		if err := b.readSliceFromFile(filename); err == nil {
			return true, nil
		}
	}
	if !b.BuildSlice() {
		return false, nil
	}
	if nameErr != nil {
		return true, nameErr
	}
	if err := b.writeSliceToFile(filename, len(b.EndDB.Slices)-1); err != nil {
		return true, err
	}
	return true, nil
}

// DecomposableBuilder is the decomposable-game counterpart of Builder: a
// component's nimber is the XOR of the nimbers of the components every move
// decomposes it into, mirroring add_decomposable_game_nimber.
type DecomposableBuilder[P comparable, DP any, ISP cmp.Ordered] struct {
	Game       game.DecomposableGame[P, DP]
	GameName   string
	MethodName string
	Codec      cache.PositionCodec[ISP]
	Verifier   Verifier[ISP]
	EndDB      *EndDB[P, ISP]

	// Registry, if set, gets one entry recorded per slice file this
	// DecomposableBuilder writes to cacheDir.
	Registry *cache.Registry

	currentInUse *SortedSlice[ISP]
}

// NewDecomposableBuilder returns a DecomposableBuilder over an empty EndDB
// addressed by provider. A nil verifier defaults to NullVerifier.
func NewDecomposableBuilder[P comparable, DP any, ISP cmp.Ordered](g game.DecomposableGame[P, DP], gameName, methodName string, provider SliceProvider[P, ISP], codec cache.PositionCodec[ISP], verifier Verifier[ISP]) *DecomposableBuilder[P, DP, ISP] {
	if verifier == nil {
		verifier = NullVerifier[ISP]{}
	}
	return &DecomposableBuilder[P, DP, ISP]{Game: g, GameName: gameName, MethodName: methodName, Codec: codec, Verifier: verifier, EndDB: New[P, ISP](provider)}
}

func (b *DecomposableBuilder[P, DP, ISP]) getNimber(position P, current *SortedSlice[ISP]) uint8 {
	stripped := b.EndDB.Provider.Strip(position)
	if idx, ok := b.EndDB.Provider.PositionToSlice(position); ok && idx < len(b.EndDB.Slices) {
		if n, found := b.EndDB.Slices[idx].GetNimber(stripped); found {
			return n
		}
		return b.addNimber(position, current)
	}
	if n, found := current.GetNimber(stripped); found {
		return n
	}
	return b.addNimber(position, current)
}

func (b *DecomposableBuilder[P, DP, ISP]) decomposedNimber(decomposed DP) uint8 {
	var components []P
	components = b.Game.Decompose(decomposed, components[:0])
	var result uint8
	for _, c := range components {
		result ^= b.getNimber(c, b.currentInUse)
	}
	return result
}

// currentInUse lets decomposedNimber reach the in-progress slice without
// threading it through Decompose's signature; set for the duration of
// addNimber below.
func (b *DecomposableBuilder[P, DP, ISP]) addNimber(position P, current *SortedSlice[ISP]) uint8 {
	prev := b.currentInUse
	b.currentInUse = current
	defer func() { b.currentInUse = prev }()

	var decompositions []DP
	decompositions = b.Game.Successors(position, decompositions[:0])
	var seen nimberset.Set64
	for _, d := range decompositions {
		seen = seen.Append(b.decomposedNimber(d))
	}
	result := seen.Mex()
	current.StoreNimber(b.EndDB.Provider.Strip(position), result)
	return result
}

// BuildSlice builds the next slice in full and pushes it, returning false if
// the provider has no more slices to give.
func (b *DecomposableBuilder[P, DP, ISP]) BuildSlice() bool {
	positions, ok := b.EndDB.Provider.SliceContent(len(b.EndDB.Slices))
	if !ok {
		return false
	}
	current := NewSortedSlice[ISP]()
	for _, p := range positions {
		b.addNimber(p, current)
	}
	snapshot := b.Verifier.Snapshot(current)
	b.EndDB.pushSlice(current)
	b.Verifier.Check(snapshot, current)
	return true
}

func (b *DecomposableBuilder[P, DP, ISP]) readSliceFromFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	slice, err := ReadSortedSlice[ISP](f, b.Codec)
	if err != nil {
		return err
	}
	b.EndDB.pushSlice(slice)
	return nil
}

func (b *DecomposableBuilder[P, DP, ISP]) writeSliceToFile(filename string, sliceIndex int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	slice := b.EndDB.Slices[sliceIndex]
	if err := WriteSortedSlice(f, b.Codec, slice); err != nil {
		return err
	}
	recordArtifact(b.Registry, filename, int64(slice.SizeBytes(b.Codec)))
	return nil
}

// BuildSliceCached behaves like BuildSlice, but first tries to read the next
// slice from its cache file and, on a genuine build, writes it there after.
func (b *DecomposableBuilder[P, DP, ISP]) BuildSliceCached(cacheDir string) (bool, error) {
	filename, nameErr := cacheFileName(cacheDir, b.GameName, b.MethodName, len(b.EndDB.Slices))
	if nameErr == nil {
		if err := b.readSliceFromFile(filename); err == nil {
			return true, nil
		}
	}
	if !b.BuildSlice() {
		return false, nil
	}
	if nameErr != nil {
		return true, nameErr
	}
	if err := b.writeSliceToFile(filename, len(b.EndDB.Slices)-1); err != nil {
		return true, err
	}
	return true, nil
}

// Build drives BuildSlice/BuildSliceCached the same way Builder.Build does;
// see its doc comment for the cacheDir/stopOnWriteErr semantics.
func (b *DecomposableBuilder[P, DP, ISP]) Build(targetSizeBytes int, cacheDir string, stopOnWriteErr bool) error {
	haveTarget := targetSizeBytes > 0
	current := 0
	if haveTarget {
		current = b.EndDB.SizeBytes(b.Codec)
		if current >= targetSizeBytes {
			return nil
		}
	}
	var errs error
	for {
		var ok bool
		var err error
		if cacheDir != "" {
			ok, err = b.BuildSliceCached(cacheDir)
			if err != nil {
				if stopOnWriteErr {
					return err
				}
				errs = multierror.Append(errs, err)
			}
		} else {
			ok = b.BuildSlice()
		}
		if !ok {
			return errs
		}
		if haveTarget {
			current += b.EndDB.Slices[len(b.EndDB.Slices)-1].Len()*(b.Codec.PositionSizeBytes()+1) + 4
			if current >= targetSizeBytes {
				return errs
			}
		}
	}
}

// Build drives BuildSlice/BuildSliceCached until the provider is exhausted
// or the database reaches targetSizeBytes (0 means no limit). When cacheDir
// is non-empty and stopOnWriteErr is false, a write error on one slice is
// swallowed (and accumulated into the returned error) rather than aborting
// the run — the slice itself was still computed and pushed in memory. This
// Builder does not write that slice again; a later run that finds no file
// for it builds and writes it anew.
func (b *Builder[P, ISP]) Build(targetSizeBytes int, cacheDir string, stopOnWriteErr bool) error {
	haveTarget := targetSizeBytes > 0
	current := 0
	if haveTarget {
		current = b.EndDB.SizeBytes(b.Codec)
		if current >= targetSizeBytes {
			return nil
		}
	}
	var errs error
	for {
		var ok bool
		var err error
		if cacheDir != "" {
			ok, err = b.BuildSliceCached(cacheDir)
			if err != nil {
				if stopOnWriteErr {
					return err
				}
				errs = multierror.Append(errs, err)
			}
		} else {
			ok = b.BuildSlice()
		}
		if !ok {
			return errs
		}
		if haveTarget {
			current += b.EndDB.Slices[len(b.EndDB.Slices)-1].Len()*(b.Codec.PositionSizeBytes()+1) + 4
			if current >= targetSizeBytes {
				return errs
			}
		}
	}
}
