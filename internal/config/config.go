// Package config loads solver configuration from a TOML file, the on-disk
// counterpart of the flags cmd/nimsolve and cmd/octsolve also accept.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TTKind names a transposition-table backend, selectable independently of
// the game being solved.
type TTKind string

const (
	TTMap      TTKind = "map"
	TTLRU      TTKind = "lru"
	TTSuccinct TTKind = "succinct"
)

// ClusterPolicyName names a Succinct transposition table's replacement
// policy.
type ClusterPolicyName string

const (
	PolicyFIFO           ClusterPolicyName = "fifo"
	PolicyFIFOLRU        ClusterPolicyName = "fifo-lru"
	PolicyLRU            ClusterPolicyName = "lru"
	PolicyLowestNimbers  ClusterPolicyName = "lowest-nimbers"
	PolicyLargestNimbers ClusterPolicyName = "largest-nimbers"
	PolicyBalancedRandom ClusterPolicyName = "balanced-random"
)

// Method names a recursion strategy.
type Method string

const (
	MethodDEF   Method = "def"
	MethodLVB   Method = "lvb"
	MethodBR    Method = "br"
	MethodBRAsp Method = "br-aspset"
)

// TranspositionTable configures a solver run's transposition table.
type TranspositionTable struct {
	Kind                TTKind            `toml:"kind"`
	CapacityLog2        uint8             `toml:"capacity_log2"`
	ClusterCapacityLog2 uint8             `toml:"cluster_capacity_log2"`
	BitsPerNimber       uint8             `toml:"bits_per_nimber"`
	ClusterPolicy       ClusterPolicyName `toml:"cluster_policy"`
	ProtectedPath       string            `toml:"protected_path"`
}

// EndDB configures where a solver run looks for (and writes) end-game
// database slices.
type EndDB struct {
	Dir            string `toml:"dir"`
	TargetSizeMiB  uint64 `toml:"target_size_mib"`
	StopOnWriteErr bool   `toml:"stop_on_write_err"`
}

// OctalMethod names an octal-game solving strategy.
type OctalMethod string

const (
	OctalNaive      OctalMethod = "naive"
	OctalRC         OctalMethod = "rc"
	OctalRCDynamic  OctalMethod = "rc-dynamic"
	OctalRC2        OctalMethod = "rc2"
	OctalRC2Dynamic OctalMethod = "rc2-dynamic"
)

// Octal configures a cmd/octsolve run's default strategy.
type Octal struct {
	Method           OctalMethod `toml:"method"`
	RebuildThreshold uint32      `toml:"rebuild_threshold"`
}

// Config is the top-level solver configuration, loaded from a TOML file and
// overridable by command-line flags.
type Config struct {
	Method             Method             `toml:"method"`
	TranspositionTable TranspositionTable `toml:"transposition_table"`
	EndDB              EndDB              `toml:"end_db"`
	Octal              Octal              `toml:"octal"`
	RegistryPath       string             `toml:"registry_path"`
}

// Default returns the configuration a solver run uses when no TOML file is
// given: an unbounded map-backed transposition table, no end-game database,
// and the LVB method.
func Default() Config {
	return Config{
		Method: MethodLVB,
		TranspositionTable: TranspositionTable{
			Kind: TTMap,
		},
		Octal: Octal{Method: OctalNaive},
	}
}

// Load reads and parses a TOML configuration file, starting from Default()
// so a file only needs to set the fields it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
