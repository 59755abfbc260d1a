package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/astrochart/observe"
)

// ComputeFunc produces the artifact pair for a key on a cache miss.
type ComputeFunc func(ctx context.Context) (jsonBytes, imageBytes []byte, err error)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Store holds the artifact pairs. Required.
	Store Store

	// Keyer derives keys from request fields. Defaults to DigestKeyer.
	Keyer Keyer

	// Policy governs retention. Defaults to DefaultPolicy.
	Policy Policy

	// Logger receives store failures and sweep outcomes. Defaults to nop.
	Logger observe.Logger
}

// Manager fronts a Store with key derivation, per-key computation dedup,
// and advisory TTL sweeps.
//
// Concurrent requests for the same key share one computation via
// singleflight; requests for different keys proceed independently. A store
// failure after a successful computation is logged and the result is still
// served, with the outcome marking it as not persisted.
type Manager struct {
	store  Store
	keyer  Keyer
	policy Policy
	logger observe.Logger

	group    singleflight.Group
	sweeping atomic.Bool
	lastMu   sync.Mutex
	last     time.Time
}

// NewManager returns a Manager, applying defaults for optional fields.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.Keyer == nil {
		cfg.Keyer = NewDigestKeyer()
	}
	if cfg.Policy == (Policy{}) {
		cfg.Policy = DefaultPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	return &Manager{
		store:  cfg.Store,
		keyer:  cfg.Keyer,
		policy: cfg.Policy,
		logger: cfg.Logger,
	}, nil
}

// Key derives the cache key for the given request fields.
func (m *Manager) Key(fields ...string) string {
	return m.keyer.Key(fields...)
}

// Outcome reports how GetOrCompute satisfied a request.
type Outcome struct {
	// Cached is true when the pair was served from the store without
	// invoking compute.
	Cached bool

	// Stored is true when the pair sits in the store after the call.
	// False means persistence failed and an identical request will
	// recompute.
	Stored bool
}

// GetOrCompute returns the artifact pair for the request fields, computing
// and storing it on a miss. The outcome carries whether the pair came from
// the store and whether it is persisted; a store failure after a successful
// computation is not an error, the result is served with Stored false.
func (m *Manager) GetOrCompute(ctx context.Context, compute ComputeFunc, fields ...string) (entry *Entry, outcome Outcome, err error) {
	if compute == nil {
		return nil, Outcome{}, ErrNilComputeFn
	}
	key := m.keyer.Key(fields...)
	m.maybeSweep()

	type flightResult struct {
		entry   *Entry
		outcome Outcome
	}
	v, err, _ := m.group.Do(key, func() (any, error) {
		if e, ok := m.store.Lookup(ctx, key); ok {
			if !m.policy.Expired(e.CreatedAt, time.Now()) {
				return flightResult{entry: e, outcome: Outcome{Cached: true, Stored: true}}, nil
			}
			if derr := m.store.Delete(ctx, key); derr != nil {
				m.logger.Warn(ctx, "cache delete of expired pair failed",
					observe.Field{Key: "key", Value: key},
					observe.Field{Key: "error", Value: derr.Error()},
				)
			}
		}

		jsonBytes, imageBytes, cerr := compute(ctx)
		if cerr != nil {
			return nil, cerr
		}
		e := &Entry{Key: key, JSON: jsonBytes, Image: imageBytes, CreatedAt: time.Now()}
		stored := true
		if serr := m.store.Put(ctx, key, jsonBytes, imageBytes); serr != nil {
			// Degrade to availability: the caller still gets the result,
			// it just will not be served from cache next time.
			stored = false
			m.logger.Error(ctx, "cache store failed, serving uncached",
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "error", Value: serr.Error()},
			)
		}
		return flightResult{entry: e, outcome: Outcome{Stored: stored}}, nil
	})
	if err != nil {
		return nil, Outcome{}, err
	}
	r := v.(flightResult)
	return r.entry, r.outcome, nil
}

// Lookup returns a stored, unexpired pair without computing anything.
func (m *Manager) Lookup(ctx context.Context, key string) (*Entry, bool) {
	e, ok := m.store.Lookup(ctx, key)
	if !ok {
		return nil, false
	}
	if m.policy.Expired(e.CreatedAt, time.Now()) {
		return nil, false
	}
	return e, true
}

// Sweep runs one synchronous sweep with the policy TTL.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	if !m.policy.Expires() {
		return 0, nil
	}
	return m.store.Sweep(ctx, m.policy.TTL)
}

// maybeSweep kicks an advisory background sweep, at most one at a time and
// no more often than the policy interval.
func (m *Manager) maybeSweep() {
	if !m.policy.Expires() {
		return
	}
	m.lastMu.Lock()
	due := time.Since(m.last) >= m.policy.SweepInterval
	if due {
		m.last = time.Now()
	}
	m.lastMu.Unlock()
	if !due {
		return
	}
	if !m.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer m.sweeping.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		removed, err := m.store.Sweep(ctx, m.policy.TTL)
		if err != nil {
			m.logger.Warn(ctx, "cache sweep failed",
				observe.Field{Key: "error", Value: err.Error()},
			)
			return
		}
		if removed > 0 {
			m.logger.Info(ctx, "cache sweep removed expired pairs",
				observe.Field{Key: "removed", Value: removed},
			)
		}
	}()
}
