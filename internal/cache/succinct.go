package cache

// Succinct is a fixed-capacity nimber cache for 64-bit position encodings.
// It packs each entry into 32 bits (a fragment of the mixed key plus the
// nimber), so a table holding 2^capacityLog2 entries occupies exactly
// 2^(capacityLog2+2) bytes regardless of the real position-key width.
//
// Entries are grouped into clusters of 2^clusterCapacityLog2 slots; a
// position is assigned to exactly one cluster (by the high bits of its mixed
// key) and can only be found among that cluster's slots. When a cluster is
// full, inserting a new position for it evicts one of the cluster's existing
// entries according of Policy, even if the table overall has free capacity
// elsewhere.
//
// Succinct is lossy: GetNimber can return "not found" for a position it has
// previously stored, if that position's entry was since evicted from its
// cluster. Positions whose mixed, masked keys are equal share an entry, so
// unless the mixer is a bijection on [0, keyMask] (WithoutMixing always is;
// the other mixers truncate their 64-bit result to the mask) GetNimber can
// also return the nimber stored for a different position.
type Succinct struct {
	data     []uint32
	conf     clusterConf
	keyMask  uint64
	mixBits  BitMixer
	policy   ClusterPolicy
}

// NewSuccinct constructs a table holding 2^capacityLog2 entries, grouped
// into clusters of 2^clusterCapacityLog2 entries each, with bitsPerNimber
// bits of every 32-bit entry reserved for the nimber (the rest identify the
// position within its cluster). capacityLog2 must be >= clusterCapacityLog2,
// and bitsPerNimber <= 8.
func NewSuccinct(capacityLog2, clusterCapacityLog2, bitsPerNimber uint8, mixBits BitMixer, policy ClusterPolicy) *Succinct {
	if capacityLog2 < clusterCapacityLog2 {
		panic("cache: capacityLog2 must be >= clusterCapacityLog2")
	}
	if bitsPerNimber > 8 {
		panic("cache: bitsPerNimber must be <= 8")
	}
	conf := newClusterConf(clusterCapacityLog2, bitsPerNimber)
	clustersNumLog2 := capacityLog2 - clusterCapacityLog2
	bitsPerKey := clustersNumLog2 + conf.idSize
	if bitsPerKey > 64 {
		panic("cache: capacityLog2/bitsPerNimber combination needs more than 64 key bits")
	}
	data := make([]uint32, 1<<capacityLog2)
	for i := range data {
		data[i] = emptyEntry
	}
	return &Succinct{
		data:    data,
		conf:    conf,
		keyMask: uint64(1)<<bitsPerKey - 1,
		mixBits: mixBits,
		policy:  policy,
	}
}

// Capacity returns the total number of entry slots in the table.
func (t *Succinct) Capacity() int { return len(t.data) }

// Len returns the number of occupied entry slots.
func (t *Succinct) Len() int {
	n := 0
	for _, e := range t.data {
		if e != emptyEntry {
			n++
		}
	}
	return n
}

func (t *Succinct) clusterBegin(key uint64) int {
	return int(key>>t.conf.idSize) * int(t.conf.capacity)
}

func (t *Succinct) cluster(key uint64) []uint32 {
	begin := t.clusterBegin(key)
	return t.data[begin : begin+int(t.conf.capacity)]
}

func (t *Succinct) GetNimber(position uint64) (uint8, bool) {
	if position > t.keyMask {
		return 0, false
	}
	key := t.mixBits(position, t.keyMask)
	return t.policy.GetNimber(t.conf, t.cluster(key), t.conf.id(uint32(key)))
}

func (t *Succinct) GetNimberAndSelfOrganize(position uint64) (uint8, bool) {
	if position > t.keyMask {
		return 0, false
	}
	key := t.mixBits(position, t.keyMask)
	idToFind := t.conf.id(uint32(key))
	return t.policy.GetNimberAndSelfOrganize(t.conf, t.cluster(key), idToFind)
}

func (t *Succinct) StoreNimber(position uint64, nimber uint8) {
	if position > t.keyMask || nimber > t.conf.maxNimber {
		return
	}
	key := t.mixBits(position, t.keyMask)
	toStore := t.conf.entry(key, nimber)
	if toStore == emptyEntry {
		return
	}
	t.policy.StoreEntry(t.conf, t.cluster(key), toStore, nimber)
}
