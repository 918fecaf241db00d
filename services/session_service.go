package services

import (
	"context"
	"fmt"
	"sync"

	"bajarun-backend/config"
)

type sessionEntry struct {
	session *NightSession
	cancel  context.CancelFunc
}

// SessionRegistry hands out one NightSession per tour night. Sessions are
// created lazily on first use; each one subscribes to remote assignment
// pushes for its night so a second admin's save is observed live.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[int]sessionEntry
	inventory *InventoryService
	store     *NightAssignmentStore
	ctx       context.Context
}

func NewSessionRegistry(ctx context.Context, inventory *InventoryService, store *NightAssignmentStore) *SessionRegistry {
	return &SessionRegistry{
		sessions:  make(map[int]sessionEntry),
		inventory: inventory,
		store:     store,
		ctx:       ctx,
	}
}

// Session returns the engine session for a night, creating it on first use.
func (r *SessionRegistry) Session(ctx context.Context, day int) (*NightSession, error) {
	if !config.IsLodgingNight(day) {
		return nil, fmt.Errorf("night %d has no lodging assignment", day)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[day]; ok {
		return entry.session, nil
	}

	rooms, err := r.inventory.ForNight(day)
	if err != nil {
		return nil, err
	}

	session, err := NewNightSession(ctx, day, rooms, r.store)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(r.ctx)
	if updates := r.store.Subscribe(subCtx, day); updates != nil {
		go func() {
			for snapshot := range updates {
				session.ApplyRemote(snapshot)
			}
		}()
	}

	r.sessions[day] = sessionEntry{session: session, cancel: cancel}
	return session, nil
}

// Reset drops a night's session and its subscription so the next access
// reloads inventory and the persisted document. Unsaved edits for that night
// are discarded.
func (r *SessionRegistry) Reset(day int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[day]; ok {
		entry.cancel()
		delete(r.sessions, day)
	}
}
