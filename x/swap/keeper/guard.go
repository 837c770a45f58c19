package keeper

import (
	"fmt"
	"sync"

	errorsmod "cosmossdk.io/errors"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// ReentrancyGuard provides non-reentrant locks for pool mutations. A second
// entry for the same pool is rejected, never queued.
type ReentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewReentrancyGuard creates a new guard instance.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{locks: make(map[string]struct{})}
}

// Lock acquires a named lock or returns an error if already held.
func (g *ReentrancyGuard) Lock(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.locks[key]; exists {
		return types.ErrReentrancy.Wrapf("reentrancy detected for %s", key)
	}

	g.locks[key] = struct{}{}
	return nil
}

// Unlock releases a named lock.
func (g *ReentrancyGuard) Unlock(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
}

// withPoolLock executes fn while holding the lock for a pool. The lock covers
// all mutating operations on the pool and is released even if fn panics.
func (k Keeper) withPoolLock(poolID uint64, operation string, fn func() error) error {
	lockKey := fmt.Sprintf("pool/%d", poolID)

	if err := k.guard.Lock(lockKey); err != nil {
		return errorsmod.Wrapf(err, "%s rejected for pool %d", operation, poolID)
	}
	defer k.guard.Unlock(lockKey)

	return fn()
}
