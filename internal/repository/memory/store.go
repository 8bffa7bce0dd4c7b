// Package memory is an in-process implementation of the repository contracts,
// used for local runs and service tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store holds every collection behind one lock. Units of work are serialised
// by txMu, and so are writes made outside one, so a rollback never discards
// a concurrent write.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	branches     map[string]branch.Branch
	drivers      map[string]driver.Driver
	vehicles     map[string]vehicle.Vehicle
	schemes      map[string]scheme.Scheme
	assignments  map[string]salary.Assignment
	sessions     map[string]duty.Session
	transactions map[string]wallet.Transaction
	balances     map[string]decimal.Decimal
}

func NewStore() *Store {
	return &Store{
		branches:     make(map[string]branch.Branch),
		drivers:      make(map[string]driver.Driver),
		vehicles:     make(map[string]vehicle.Vehicle),
		schemes:      make(map[string]scheme.Scheme),
		assignments:  make(map[string]salary.Assignment),
		sessions:     make(map[string]duty.Session),
		transactions: make(map[string]wallet.Transaction),
		balances:     make(map[string]decimal.Decimal),
	}
}

type txKey struct{}

type snapshot struct {
	branches     map[string]branch.Branch
	drivers      map[string]driver.Driver
	vehicles     map[string]vehicle.Vehicle
	schemes      map[string]scheme.Scheme
	assignments  map[string]salary.Assignment
	sessions     map[string]duty.Session
	transactions map[string]wallet.Transaction
	balances     map[string]decimal.Decimal
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTx implements database.Transactor. State is restored if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		branches:     maps.Clone(s.branches),
		drivers:      maps.Clone(s.drivers),
		vehicles:     maps.Clone(s.vehicles),
		schemes:      maps.Clone(s.schemes),
		assignments:  maps.Clone(s.assignments),
		sessions:     maps.Clone(s.sessions),
		transactions: maps.Clone(s.transactions),
		balances:     maps.Clone(s.balances),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = snap.branches
	s.drivers = snap.drivers
	s.vehicles = snap.vehicles
	s.schemes = snap.schemes
	s.assignments = snap.assignments
	s.sessions = snap.sessions
	s.transactions = snap.transactions
	s.balances = snap.balances
}

// write runs fn under the write lock, joining the caller's unit of work if any.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

var _ database.Transactor = (*Store)(nil)
