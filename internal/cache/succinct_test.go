package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccinctBasics(t *testing.T) {
	tt := NewSuccinct(4, 2, 2, Stafford13, Fifo{})
	tt.StoreNimber(1, 0)
	tt.StoreNimber(3, 1)
	tt.StoreNimber(4, 2)
	tt.StoreNimber(5, 4) // nimber too large for 2 bits, should be ignored

	n, ok := tt.GetNimber(1)
	assert.True(t, ok)
	assert.Equal(t, uint8(0), n)

	n, ok = tt.GetNimber(3)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), n)

	n, ok = tt.GetNimber(4)
	assert.True(t, ok)
	assert.Equal(t, uint8(2), n)

	_, ok = tt.GetNimber(5)
	assert.False(t, ok)

	assert.Equal(t, 16, tt.Capacity())
	assert.Equal(t, 3, tt.Len())
}

// constructCluster builds an 8-slot cluster with ids 1..64 and nimbers
// id%16, via the given policy, mirroring the Rust construct_cluster helper.
func constructCluster(t *testing.T, policy ClusterPolicy) ([]uint32, clusterConf) {
	t.Helper()
	cluster := make([]uint32, 8)
	for i := range cluster {
		cluster[i] = emptyEntry
	}
	conf := newClusterConf(2, 4)
	for id := uint64(1); id < 65; id++ {
		nimber := uint8(id % 16)
		policy.StoreEntry(conf, cluster, conf.entry(id, nimber), nimber)
	}
	return cluster, conf
}

func TestClusterPolicyFifoKeepsLatest(t *testing.T) {
	cluster, conf := constructCluster(t, Fifo{})
	policy := Fifo{}
	for id := uint32(1); id < 65; id++ {
		nimber := uint8(id % 16)
		n, ok := policy.GetNimberAndSelfOrganize(conf, cluster, id)
		if id >= 65-8 {
			assert.True(t, ok)
			assert.Equal(t, nimber, n)
		} else {
			assert.False(t, ok)
		}
	}
}

func TestClusterPolicyLowestNimbersKeepsSmallest(t *testing.T) {
	cluster, conf := constructCluster(t, LowestNimbers{})
	policy := LowestNimbers{}
	for id := uint32(1); id < 65; id++ {
		nimber := uint8(id % 16)
		n, ok := policy.GetNimberAndSelfOrganize(conf, cluster, id)
		if nimber <= 1 {
			assert.True(t, ok)
			assert.Equal(t, nimber, n)
		} else {
			assert.False(t, ok)
		}
	}
}

func TestClusterPolicyLargestNimbersKeepsBiggest(t *testing.T) {
	cluster, conf := constructCluster(t, LargestNimbers{})
	policy := LargestNimbers{}
	for id := uint32(1); id < 65; id++ {
		nimber := uint8(id % 16)
		n, ok := policy.GetNimberAndSelfOrganize(conf, cluster, id)
		if nimber >= 14 {
			assert.True(t, ok)
			assert.Equal(t, nimber, n)
		} else {
			assert.False(t, ok)
		}
	}
}
