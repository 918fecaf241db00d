package services

import (
	"context"
	"errors"
	"testing"

	"bajarun-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// fakePersistence is an in-memory AssignmentPersistence for engine tests.
type fakePersistence struct {
	initial   models.AssignmentStoreMap
	saved     map[int]models.AssignmentStoreMap
	failSave  bool
	saveCalls int
}

func newFakePersistence(initial models.AssignmentStoreMap) *fakePersistence {
	if initial == nil {
		initial = models.AssignmentStoreMap{}
	}
	return &fakePersistence{initial: initial, saved: map[int]models.AssignmentStoreMap{}}
}

func (f *fakePersistence) Load(_ context.Context, _ int) (models.AssignmentStoreMap, error) {
	return f.initial.Clone(), nil
}

func (f *fakePersistence) Save(_ context.Context, day int, store models.AssignmentStoreMap) error {
	f.saveCalls++
	if f.failSave {
		return errors.New("store unreachable")
	}
	f.saved[day] = store.Clone()
	return nil
}

func doubleRoom(roomID string) models.RoomInventoryEntry {
	return models.RoomInventoryEntry{
		RoomID:    roomID,
		Day:       1,
		SuiteName: "Cabana",
		Beds:      datatypes.NewJSONSlice([]string{"bed-1", "bed-2"}),
	}
}

func campingPool(roomID string) models.RoomInventoryEntry {
	return models.RoomInventoryEntry{RoomID: roomID, Day: 1, SuiteName: "Camping", IsCamping: true}
}

func newTestSession(t *testing.T, inventory []models.RoomInventoryEntry, initial models.AssignmentStoreMap) (*NightSession, *fakePersistence) {
	t.Helper()
	store := newFakePersistence(initial)
	session, err := NewNightSession(context.Background(), 1, inventory, store)
	require.NoError(t, err)
	return session, store
}

func rider(id, name string) models.RiderRef {
	return models.RiderRef{ID: id, FullName: name}
}

func TestSinglesFillRoomThenFurtherAssignmentIsRejected(t *testing.T) {
	room := doubleRoom("R-A")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, nil)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	session.ToggleSelection(rider("2", "Bob Brown"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	working := session.Working()
	assert.True(t, RoomIsFull(room, working))
	assert.Equal(t, 2, DistinctOccupiedBeds(room, working))

	// Room is full: a third single is a strict no-op.
	session.ToggleSelection(rider("3", "Cara Cole"))
	assert.False(t, session.AssignToRoom("R-A", "admin"))
	assert.Equal(t, working, session.Working())
	assert.Len(t, session.Selected(), 1, "rejected selection stays selected")
}

func TestCoupleSharesFirstFreeBed(t *testing.T) {
	room := doubleRoom("R-A")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, nil)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	session.ToggleSelection(rider("2", "Bob Brown"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	working := session.Working()
	first, ok := working["R-A__bed-1__0"]
	require.True(t, ok)
	second, ok := working["R-A__bed-1__1"]
	require.True(t, ok)
	assert.Equal(t, "Alice Aaron", first.OccupantName)
	assert.Equal(t, "Bob Brown", second.OccupantName)
	assert.Equal(t, "admin", first.AssignedBy)

	// Both occupants share one physical bed: the room is not full.
	assert.Equal(t, 2, len(RoomOccupants(room, working)))
	assert.Equal(t, 1, DistinctOccupiedBeds(room, working))
	assert.False(t, RoomIsFull(room, working))
	assert.Empty(t, session.Selected())
}

func TestCoupleSkipsHalfFilledBed(t *testing.T) {
	room := doubleRoom("R-A")
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "9", OccupantName: "Zed Zane"},
	}
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, initial)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	session.ToggleSelection(rider("2", "Bob Brown"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	working := session.Working()
	assert.Contains(t, working, "R-A__bed-2__0")
	assert.Contains(t, working, "R-A__bed-2__1")
	assert.Equal(t, "Zed Zane", working["R-A__bed-1__0"].OccupantName)
}

func TestCoupleFallsBackToFirstBedWhenNoBedIsFree(t *testing.T) {
	room := doubleRoom("R-A")
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "8", OccupantName: "Yara Young"},
		"R-A__bed-2__0": {OccupantID: "9", OccupantName: "Zed Zane"},
	}
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, initial)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	session.ToggleSelection(rider("2", "Bob Brown"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	// Historical quirk: with every bed taken the pair lands on bed-1 anyway,
	// replacing its existing records.
	working := session.Working()
	assert.Equal(t, "Alice Aaron", working["R-A__bed-1__0"].OccupantName)
	assert.Equal(t, "Bob Brown", working["R-A__bed-1__1"].OccupantName)
}

func TestSinglesOverflowIsDroppedSilently(t *testing.T) {
	room := doubleRoom("R-A")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, nil)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	session.ToggleSelection(rider("2", "Bob Brown"))
	session.ToggleSelection(rider("3", "Cara Cole"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	working := session.Working()
	assert.Len(t, working, 2)
	assert.Equal(t, "Alice Aaron", working["R-A__bed-1__0"].OccupantName)
	assert.Equal(t, "Bob Brown", working["R-A__bed-2__0"].OccupantName)
	assert.False(t, working.HasOccupant("3"))
	assert.Empty(t, session.Selected(), "selection clears even for dropped riders")
}

func TestRemoveThenReassignDoesNotResurrectOldRecord(t *testing.T) {
	room := doubleRoom("R-A")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{room}, nil)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	require.True(t, session.AssignToRoom("R-A", "admin"))
	firstAssigned := session.Working()["R-A__bed-1__0"]

	require.True(t, session.RemoveAssignment("R-A__bed-1__0"))
	assert.False(t, session.Working().HasOccupant("1"))

	session.ToggleSelection(rider("1", "Alice Aaron"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	working := session.Working()
	assert.Len(t, working, 1)
	reassigned, ok := working["R-A__bed-1__0"]
	require.True(t, ok)
	assert.Equal(t, firstAssigned.OccupantID, reassigned.OccupantID)
}

func TestRemoveMissingKeyIsNoOp(t *testing.T) {
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, nil)
	assert.False(t, session.RemoveAssignment("R-A__bed-1__0"))
	assert.False(t, session.Dirty())
}

func TestToggleSelectionIgnoresAssignedRider(t *testing.T) {
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "1", OccupantName: "Alice Aaron"},
	}
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, initial)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	assert.Empty(t, session.Selected())
}

func TestAssignedRiderCannotEnterPoolTwice(t *testing.T) {
	pool := campingPool("R-CAMP")
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "1", OccupantName: "Alice Aaron"},
	}
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A"), pool}, initial)

	assert.False(t, session.AssignToPool("R-CAMP", rider("1", "Alice Aaron"), "admin"))
	assert.Len(t, session.Working(), 1)
}

func TestPoolAssignmentsNeverCollide(t *testing.T) {
	pool := campingPool("R-CAMP")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{pool}, nil)

	for i, name := range []string{"Alice Aaron", "Bob Brown", "Cara Cole", "Dave Dunn", "Eve East"} {
		require.True(t, session.AssignToPool("R-CAMP", rider(string(rune('1'+i)), name), "admin"))
	}

	working := session.Working()
	assert.Len(t, working, 5)
	for raw := range working {
		key, err := models.ParseAssignmentKey(raw)
		require.NoError(t, err)
		assert.Equal(t, "R-CAMP", key.RoomID)
	}
}

func TestPoolAssignmentRemovesRiderFromSelection(t *testing.T) {
	pool := campingPool("R-CAMP")
	session, _ := newTestSession(t, []models.RoomInventoryEntry{pool}, nil)

	session.ToggleSelection(rider("1", "Alice Aaron"))
	session.ToggleSelection(rider("2", "Bob Brown"))
	require.True(t, session.AssignToPool("R-CAMP", rider("1", "Alice Aaron"), "admin"))

	selected := session.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "2", selected[0].ID)
}

func TestAssignToPoolRejectsStandardRoom(t *testing.T) {
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, nil)
	assert.False(t, session.AssignToPool("R-A", rider("1", "Alice Aaron"), "admin"))
}

func TestAssignToRoomRejectsPool(t *testing.T) {
	session, _ := newTestSession(t, []models.RoomInventoryEntry{campingPool("R-CAMP")}, nil)
	session.ToggleSelection(rider("1", "Alice Aaron"))
	assert.False(t, session.AssignToRoom("R-CAMP", "admin"))
}

func TestSaveRoundTripIsIdempotent(t *testing.T) {
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "1", OccupantName: "Alice Aaron"},
	}
	session, store := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, initial)

	require.NoError(t, session.Save(context.Background()))
	assert.Equal(t, initial, store.saved[1])
	assert.False(t, session.Dirty())
	assert.Equal(t, initial, session.Working())
}

func TestSaveOfEmptyStoreClearsNight(t *testing.T) {
	initial := models.AssignmentStoreMap{
		"R-A__bed-1__0": {OccupantID: "1", OccupantName: "Alice Aaron"},
	}
	session, store := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, initial)

	require.True(t, session.RemoveAssignment("R-A__bed-1__0"))
	require.NoError(t, session.Save(context.Background()))
	assert.Empty(t, store.saved[1])
}

func TestFailedSaveKeepsWorkingCopyAndDirtyFlag(t *testing.T) {
	session, store := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, nil)
	store.failSave = true

	session.ToggleSelection(rider("1", "Alice Aaron"))
	require.True(t, session.AssignToRoom("R-A", "admin"))

	err := session.Save(context.Background())
	require.Error(t, err)
	assert.True(t, session.Dirty())
	assert.True(t, session.Working().HasOccupant("1"))

	// Retry after the store recovers.
	store.failSave = false
	require.NoError(t, session.Save(context.Background()))
	assert.False(t, session.Dirty())
	assert.Equal(t, 2, store.saveCalls)
}

func TestRemoteSnapshotReplacesWorkingOnlyWhileClean(t *testing.T) {
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, nil)

	remote := models.AssignmentStoreMap{
		"R-A__bed-2__0": {OccupantID: "9", OccupantName: "Zed Zane"},
	}
	session.ApplyRemote(remote)
	assert.Equal(t, remote, session.Working(), "clean session follows remote saves")

	session.ToggleSelection(rider("1", "Alice Aaron"))
	require.True(t, session.AssignToRoom("R-A", "admin"))
	dirtyWorking := session.Working()

	session.ApplyRemote(models.AssignmentStoreMap{})
	assert.Equal(t, dirtyWorking, session.Working(), "dirty session keeps local edits")
}

func TestDirtyFlagLifecycle(t *testing.T) {
	session, _ := newTestSession(t, []models.RoomInventoryEntry{doubleRoom("R-A")}, nil)
	assert.False(t, session.Dirty())

	session.ToggleSelection(rider("1", "Alice Aaron"))
	assert.False(t, session.Dirty(), "selection alone is not an edit")

	require.True(t, session.AssignToRoom("R-A", "admin"))
	assert.True(t, session.Dirty())

	require.NoError(t, session.Save(context.Background()))
	assert.False(t, session.Dirty())
}
