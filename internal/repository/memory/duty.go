package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
)

type dutySessionRepository struct {
	store *Store
}

func NewDutySessionRepository(store *Store) duty.SessionRepository {
	return &dutySessionRepository{store: store}
}

// activeFor must be called with the store lock held.
func (r *dutySessionRepository) activeFor(driverID string) (duty.Session, bool) {
	for _, s := range r.store.sessions {
		if s.DriverID == driverID && s.Status == duty.StatusActive {
			return s, true
		}
	}
	return duty.Session{}, false
}

func (r *dutySessionRepository) CreateActive(ctx context.Context, s duty.Session) (duty.Session, error) {
	err := r.store.write(ctx, func() error {
		if _, ok := r.activeFor(s.DriverID); ok {
			return duty.ErrActiveSessionExists
		}
		now := time.Now()
		s.ID = newID()
		s.Status = duty.StatusActive
		s.CreatedAt = now
		s.UpdatedAt = now
		r.store.sessions[s.ID] = s
		return nil
	})
	if err != nil {
		return duty.Session{}, err
	}
	return s, nil
}

func (r *dutySessionRepository) GetByID(ctx context.Context, id string) (duty.Session, error) {
	var s duty.Session
	err := r.store.read(ctx, func() error {
		found, ok := r.store.sessions[id]
		if !ok {
			return duty.ErrSessionNotFound
		}
		s = found
		return nil
	})
	return s, err
}

func (r *dutySessionRepository) GetActiveByDriver(ctx context.Context, driverID string) (duty.Session, error) {
	var s duty.Session
	err := r.store.read(ctx, func() error {
		found, ok := r.activeFor(driverID)
		if !ok {
			return duty.ErrSessionNotFound
		}
		s = found
		return nil
	})
	return s, err
}

func (r *dutySessionRepository) Complete(ctx context.Context, id string, c duty.Closing) (duty.Session, error) {
	var s duty.Session
	err := r.store.write(ctx, func() error {
		found, ok := r.store.sessions[id]
		if !ok {
			return duty.ErrSessionNotFound
		}
		if found.Status != duty.StatusActive {
			return duty.ErrSessionAlreadyCompleted
		}
		s = found.Apply(c)
		r.store.sessions[id] = s
		return nil
	})
	return s, err
}

func (r *dutySessionRepository) ListCompletedByBranch(ctx context.Context, branchID string) ([]duty.Session, error) {
	sessions := []duty.Session{}
	err := r.store.read(ctx, func() error {
		for _, s := range r.store.sessions {
			if s.BranchID == branchID && s.Status == duty.StatusCompleted {
				sessions = append(sessions, s)
			}
		}
		return nil
	})
	sort.Slice(sessions, func(i, j int) bool {
		ei, ej := *sessions[i].EndTime, *sessions[j].EndTime
		if ei.Equal(ej) {
			return sessions[i].ID > sessions[j].ID
		}
		return ei.After(ej)
	})
	return sessions, err
}
