package services

import (
	"testing"

	"bajarun-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSortInventoryPutsCampingLast(t *testing.T) {
	rooms := []models.RoomInventoryEntry{
		{RoomID: "camp", SuiteName: "Camping", IsCamping: true},
		{RoomID: "own", SuiteName: "On Their Own", IsOwnAccommodation: true},
		{RoomID: "z", SuiteName: "Zocalo", Beds: datatypes.NewJSONSlice([]string{"bed-1"})},
		{RoomID: "a", SuiteName: "alcoba", Beds: datatypes.NewJSONSlice([]string{"bed-1"})},
		{RoomID: "c", SuiteName: "Cabana", Beds: datatypes.NewJSONSlice([]string{"bed-1"})},
	}

	SortInventory(rooms)

	order := make([]string, 0, len(rooms))
	for _, r := range rooms {
		order = append(order, r.RoomID)
	}
	// Standard rooms alphabetical (case-insensitive), then the own pool,
	// with camping always last.
	assert.Equal(t, []string{"a", "c", "z", "own", "camp"}, order)
}

func TestFindRoom(t *testing.T) {
	rooms := []models.RoomInventoryEntry{
		{RoomID: "r-1", SuiteName: "Cabana"},
		{RoomID: "r-2", SuiteName: "Casita"},
	}

	room, ok := FindRoom(rooms, "r-2")
	assert.True(t, ok)
	assert.Equal(t, "Casita", room.SuiteName)

	_, ok = FindRoom(rooms, "r-9")
	assert.False(t, ok)
}

func TestInventoryEntryShape(t *testing.T) {
	standard := models.RoomInventoryEntry{Beds: datatypes.NewJSONSlice([]string{"bed-1"})}
	camping := models.RoomInventoryEntry{IsCamping: true}
	own := models.RoomInventoryEntry{IsOwnAccommodation: true}

	assert.True(t, standard.IsStandardRoom())
	assert.False(t, standard.IsPool())
	assert.True(t, camping.IsPool())
	assert.True(t, own.IsPool())
	assert.False(t, camping.IsStandardRoom())
}
