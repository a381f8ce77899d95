package cache

// emptyEntry marks an unoccupied cluster slot.
const emptyEntry uint32 = 0xFFFFFFFF

// clusterConf derives the bit layout of a cluster's 32-bit entries from the
// configured cluster capacity and nimber width.
type clusterConf struct {
	idMask   uint32
	idSize   uint8
	capacity uint8
	maxNimber uint8
}

func newClusterConf(clusterCapacityLog2, bitsPerNimber uint8) clusterConf {
	inClusterKeySize := 32 - bitsPerNimber
	return clusterConf{
		idMask:    uint32(1)<<inClusterKeySize - 1,
		idSize:    inClusterKeySize,
		capacity:  1 << clusterCapacityLog2,
		maxNimber: uint8(1)<<bitsPerNimber - 1,
	}
}

func (c clusterConf) id(entryOrKey uint32) uint32 { return entryOrKey & c.idMask }
func (c clusterConf) nimber(entry uint32) uint8   { return uint8(entry >> c.idSize) }
func (c clusterConf) entry(key uint64, nimber uint8) uint32 {
	return uint32(nimber)<<c.idSize | uint32(key)&c.idMask
}

// ClusterPolicy governs how a fixed-size cluster of entries is updated and
// searched. The zero value of Fifo is the default: newest entry in, oldest
// entry out, no reordering on lookup.
type ClusterPolicy interface {
	// StoreEntry conditionally stores toStore (which encodes nimber) into
	// cluster, possibly evicting an existing entry.
	StoreEntry(conf clusterConf, cluster []uint32, toStore uint32, nimber uint8)

	// GetNimber searches cluster for idToFind, without reorganizing it.
	GetNimber(conf clusterConf, cluster []uint32, idToFind uint32) (uint8, bool)

	// GetNimberAndSelfOrganize searches cluster for idToFind, and on a hit
	// may reorder cluster's entries (e.g. to implement LRU/MRU promotion).
	GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, idToFind uint32) (uint8, bool)
}

func defaultGetNimber(conf clusterConf, cluster []uint32, idToFind uint32) (uint8, bool) {
	for _, e := range cluster {
		if e == emptyEntry {
			return 0, false
		}
		if conf.id(e) == idToFind {
			return conf.nimber(e), true
		}
	}
	return 0, false
}

// shiftUpAndInsert shifts cluster[0:len-1] up by one slot (discarding the
// last entry) and writes toStore at index 0.
func shiftUpAndInsert(cluster []uint32, toStore uint32) {
	copy(cluster[1:], cluster[:len(cluster)-1])
	cluster[0] = toStore
}

// Fifo discards the oldest entry in a full cluster to make room for a new
// one, and never reorders on lookup.
type Fifo struct{}

func (Fifo) StoreEntry(_ clusterConf, cluster []uint32, toStore uint32, _ uint8) {
	shiftUpAndInsert(cluster, toStore)
}

func (Fifo) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (f Fifo) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return f.GetNimber(conf, cluster, id)
}

// FifoLru evicts in FIFO order but promotes a hit entry one slot towards the
// front by swapping it with its predecessor.
type FifoLru struct{}

func (FifoLru) StoreEntry(_ clusterConf, cluster []uint32, toStore uint32, _ uint8) {
	shiftUpAndInsert(cluster, toStore)
}

func (FifoLru) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (FifoLru) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	for i, e := range cluster {
		if e == emptyEntry {
			return 0, false
		}
		if conf.id(e) == id {
			if i != 0 {
				cluster[i] = cluster[i-1]
				cluster[i-1] = e
			}
			return conf.nimber(e), true
		}
	}
	return 0, false
}

// Lru evicts in FIFO order but fully promotes a hit entry to the front of
// the cluster, shifting everything before it back by one slot.
type Lru struct{}

func (Lru) StoreEntry(_ clusterConf, cluster []uint32, toStore uint32, _ uint8) {
	shiftUpAndInsert(cluster, toStore)
}

func (Lru) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (Lru) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	for i, e := range cluster {
		if e == emptyEntry {
			return 0, false
		}
		if conf.id(e) == id {
			if i != 0 {
				copy(cluster[1:i+1], cluster[:i])
				cluster[0] = e
			}
			return conf.nimber(e), true
		}
	}
	return 0, false
}

// nimbersStoreEntry implements the shared insertion logic for LowestNimbers
// and LargestNimbers: scan for the first empty slot or the first entry that
// should be displaced, and insert toStore there, shifting the remainder of
// the cluster down by one (discarding its last entry).
func nimbersStoreEntry(conf clusterConf, cluster []uint32, toStore uint32, shouldBeStoredBefore func(stored uint8) bool) {
	for i, e := range cluster {
		if e == emptyEntry {
			cluster[i] = toStore
			return
		}
		if shouldBeStoredBefore(conf.nimber(e)) {
			copy(cluster[i+1:], cluster[i:len(cluster)-1])
			cluster[i] = toStore
			return
		}
	}
}

// LowestNimbers keeps the entries with the smallest known nimbers, evicting
// the largest when the cluster is full. Useful when small nimbers are
// expected to be queried far more often (e.g. P-positions, nimber 0).
type LowestNimbers struct{}

func (LowestNimbers) StoreEntry(conf clusterConf, cluster []uint32, toStore uint32, nimber uint8) {
	nimbersStoreEntry(conf, cluster, toStore, func(stored uint8) bool { return nimber <= stored })
}

func (LowestNimbers) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (p LowestNimbers) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return p.GetNimber(conf, cluster, id)
}

// LargestNimbers is the dual of LowestNimbers: it keeps the largest known
// nimbers.
type LargestNimbers struct{}

func (LargestNimbers) StoreEntry(conf clusterConf, cluster []uint32, toStore uint32, nimber uint8) {
	nimbersStoreEntry(conf, cluster, toStore, func(stored uint8) bool { return nimber >= stored })
}

func (LargestNimbers) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (p LargestNimbers) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return p.GetNimber(conf, cluster, id)
}

// BalancedRandom spreads overwrites evenly across a full cluster using a
// round-robin cursor, rather than always evicting the same slot.
type BalancedRandom struct {
	index uint32
}

func (p *BalancedRandom) StoreEntry(_ clusterConf, cluster []uint32, toStore uint32, _ uint8) {
	i := len(cluster) - 1
	if cluster[i] == emptyEntry {
		for i != 0 {
			i--
			if cluster[i] != emptyEntry {
				cluster[i+1] = toStore
				return
			}
		}
		cluster[0] = toStore
		return
	}
	cluster[p.index] = toStore
	p.index = (p.index + 1) % uint32(len(cluster))
}

func (BalancedRandom) GetNimber(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return defaultGetNimber(conf, cluster, id)
}

func (p *BalancedRandom) GetNimberAndSelfOrganize(conf clusterConf, cluster []uint32, id uint32) (uint8, bool) {
	return p.GetNimber(conf, cluster, id)
}
