package services

import (
	"context"
	"log"
	"sync"
	"time"

	"bajarun-backend/models"

	"github.com/google/uuid"
)

// poolBedName labels the slot part of pool assignment keys; pools have no
// real beds, capacity comes from the unique suffix.
const poolBedName = "spot"

// NightSession is the assignment engine for one tour night: an ordered
// operator selection, a working copy of the night's assignment map, and a
// dirty flag tracking divergence from the last loaded or saved snapshot.
//
// Remote snapshots (another admin saving) only replace the working copy while
// the session is clean; once the operator has unsaved edits the snapshot is
// kept as baseline so local work is never silently discarded.
type NightSession struct {
	mu sync.Mutex

	day       int
	inventory []models.RoomInventoryEntry
	store     AssignmentPersistence

	selected []models.RiderRef
	working  models.AssignmentStoreMap
	baseline models.AssignmentStoreMap
	dirty    bool
}

// NewNightSession loads the night's current assignment document and starts a
// clean session over it.
func NewNightSession(ctx context.Context, day int, inventory []models.RoomInventoryEntry, store AssignmentPersistence) (*NightSession, error) {
	loaded, err := store.Load(ctx, day)
	if err != nil {
		return nil, err
	}
	return &NightSession{
		day:       day,
		inventory: inventory,
		store:     store,
		working:   loaded.Clone(),
		baseline:  loaded.Clone(),
	}, nil
}

func (s *NightSession) Day() int { return s.day }

func (s *NightSession) Inventory() []models.RoomInventoryEntry {
	return s.inventory
}

func (s *NightSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Working returns a copy of the current working map.
func (s *NightSession) Working() models.AssignmentStoreMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Selected returns the riders currently picked by the operator, in the order
// they were picked. Selection order decides bed order on assignment.
func (s *NightSession) Selected() []models.RiderRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RiderRef, len(s.selected))
	copy(out, s.selected)
	return out
}

// ToggleSelection adds or removes a rider from the selection. Riders already
// holding a slot for this night cannot be selected.
func (s *NightSession) ToggleSelection(rider models.RiderRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working.HasOccupant(rider.ID) {
		return
	}
	for i, sel := range s.selected {
		if sel.ID == rider.ID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, rider)
}

// AssignToRoom places the current selection into a standard room. Exactly two
// selected riders are treated as a couple sharing one bed; any other count is
// placed one rider per fully-free bed, in selection order, and riders beyond
// the free-bed count are dropped. Returns false (and changes nothing) when
// the room has no capacity or nothing assignable is selected.
func (s *NightSession) AssignToRoom(roomID, operator string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := FindRoom(s.inventory, roomID)
	if !ok || !room.IsStandardRoom() || len(room.Beds) == 0 {
		return false
	}

	// Riders who already hold a slot for the night are never placed twice.
	candidates := make([]models.RiderRef, 0, len(s.selected))
	for _, r := range s.selected {
		if !s.working.HasOccupant(r.ID) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	now := time.Now().UTC()

	if len(candidates) == 2 {
		// Couple: both riders share the first unoccupied bed. Occupancy is
		// checked on the exact __0 key — a half-filled bed still carries its
		// __0 record, so shared beds are skipped too. When every bed is
		// taken the pair lands on the room's first bed regardless; that
		// matches the historical behavior and keeps couples together.
		bed := room.Beds[0]
		for _, b := range room.Beds {
			probe := models.AssignmentKey{RoomID: room.RoomID, Bed: b, Suffix: "0"}
			if _, taken := s.working[probe.String()]; !taken {
				bed = b
				break
			}
		}
		for i, rider := range candidates {
			key := models.AssignmentKey{RoomID: room.RoomID, Bed: bed, Suffix: suffixFor(i)}
			s.working[key.String()] = models.BedAssignment{
				OccupantID:   rider.ID,
				OccupantName: rider.FullName,
				AssignedAt:   now,
				AssignedBy:   operator,
			}
		}
		s.selected = nil
		s.dirty = true
		return true
	}

	free := s.freeBeds(room)
	if len(free) == 0 {
		return false
	}

	for i, rider := range candidates {
		if i >= len(free) {
			break // overflow riders are dropped, not queued
		}
		key := models.AssignmentKey{RoomID: room.RoomID, Bed: free[i], Suffix: "0"}
		s.working[key.String()] = models.BedAssignment{
			OccupantID:   rider.ID,
			OccupantName: rider.FullName,
			AssignedAt:   now,
			AssignedBy:   operator,
		}
	}
	s.selected = nil
	s.dirty = true
	return true
}

// AssignToPool drops a single rider into a camping or own-accommodation pool.
// Pools never fill; every call gets a fresh key.
func (s *NightSession) AssignToPool(poolRoomID string, rider models.RiderRef, operator string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := FindRoom(s.inventory, poolRoomID)
	if !ok || !room.IsPool() {
		return false
	}
	if s.working.HasOccupant(rider.ID) {
		return false
	}

	key := models.AssignmentKey{RoomID: room.RoomID, Bed: poolBedName, Suffix: uuid.NewString()}
	s.working[key.String()] = models.BedAssignment{
		OccupantID:   rider.ID,
		OccupantName: rider.FullName,
		AssignedAt:   time.Now().UTC(),
		AssignedBy:   operator,
	}

	for i, sel := range s.selected {
		if sel.ID == rider.ID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			break
		}
	}
	s.dirty = true
	return true
}

// RemoveAssignment deletes the record at key. Returns false when the key does
// not exist.
func (s *NightSession) RemoveAssignment(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.working[key]; !ok {
		return false
	}
	delete(s.working, key)
	s.dirty = true
	return true
}

// Save persists the working copy in full. On failure the working copy and the
// dirty flag are left untouched so the operator can retry.
func (s *NightSession) Save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.working.Clone()
	s.mu.Unlock()

	if err := s.store.Save(ctx, s.day, snapshot); err != nil {
		return err
	}

	s.mu.Lock()
	s.baseline = snapshot
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// ApplyRemote feeds a snapshot pushed by another session's save. While clean
// it replaces the working copy (last writer wins); while dirty it only
// refreshes the baseline so local edits survive.
func (s *NightSession) ApplyRemote(snapshot models.AssignmentStoreMap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baseline = snapshot.Clone()
	if s.dirty {
		log.Printf("night %d: remote save observed while editing; keeping local working copy", s.day)
		return
	}
	s.working = snapshot.Clone()
}

// freeBeds lists the room's beds that carry no assignment at all, by key
// prefix, preserving bed order. A bed shared by a couple is not free.
func (s *NightSession) freeBeds(room models.RoomInventoryEntry) []string {
	free := make([]string, 0, len(room.Beds))
	for _, bed := range room.Beds {
		if !bedOccupied(s.working, room.RoomID, bed) {
			free = append(free, bed)
		}
	}
	return free
}

func bedOccupied(store models.AssignmentStoreMap, roomID, bed string) bool {
	for raw := range store {
		key, err := models.ParseAssignmentKey(raw)
		if err != nil {
			continue
		}
		if key.RoomID == roomID && key.Bed == bed {
			return true
		}
	}
	return false
}

func suffixFor(i int) string {
	if i == 0 {
		return "0"
	}
	return "1"
}
