package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "swap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes
var (
	// PoolKeyPrefix is the prefix for pool records keyed by pool ID
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByDenomsKeyPrefix indexes pools by their ordered denom pair
	PoolByDenomsKeyPrefix = []byte{0x03}

	// ShareKeyPrefix is the prefix for liquidity share positions
	ShareKeyPrefix = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return append(PoolKeyPrefix, bz...)
}

// PoolByDenomsKey returns the index key for a pool by its denom pair.
// Denoms are sorted so either argument order resolves to the same key.
func PoolByDenomsKey(denomA, denomB string) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := append(PoolByDenomsKeyPrefix, []byte(denomA)...)
	key = append(key, []byte("/")...)
	return append(key, []byte(denomB)...)
}

// ShareKey returns the store key for a holder's share position in a pool
func ShareKey(poolID uint64, holder sdk.AccAddress) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	key := append(ShareKeyPrefix, bz...)
	return append(key, holder.Bytes()...)
}

// ShareKeyByPoolPrefix returns the prefix for all share positions in a pool
func ShareKeyByPoolPrefix(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return append(ShareKeyPrefix, bz...)
}
