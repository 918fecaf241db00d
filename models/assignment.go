package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KeySeparator joins the parts of an assignment key in the persisted map.
// Room ids and bed names must not contain it.
const KeySeparator = "__"

// AssignmentKey addresses one slot in a night's assignment map. RoomID and
// Bed locate the physical bed; Suffix distinguishes co-occupants of the same
// bed ("0"/"1" for a couple) and keeps pool entries unique.
type AssignmentKey struct {
	RoomID string
	Bed    string
	Suffix string
}

func (k AssignmentKey) String() string {
	return k.RoomID + KeySeparator + k.Bed + KeySeparator + k.Suffix
}

// SameBed reports whether both keys point at the same physical bed,
// ignoring the co-occupant suffix.
func (k AssignmentKey) SameBed(other AssignmentKey) bool {
	return k.RoomID == other.RoomID && k.Bed == other.Bed
}

// ParseAssignmentKey decodes the persisted roomID__bed__suffix form.
func ParseAssignmentKey(s string) (AssignmentKey, error) {
	parts := strings.Split(s, KeySeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return AssignmentKey{}, fmt.Errorf("malformed assignment key %q", s)
	}
	return AssignmentKey{RoomID: parts[0], Bed: parts[1], Suffix: parts[2]}, nil
}

// BedAssignment is one occupant record. It is created and deleted as a whole;
// re-assigning a rider means delete-then-create, never an in-place update.
type BedAssignment struct {
	OccupantID   string    `json:"occupantId"`
	OccupantName string    `json:"occupantName"`
	AssignedAt   time.Time `json:"assignedAt"`
	AssignedBy   string    `json:"assignedBy"`
}

// AssignmentStoreMap is one night's full assignment document: encoded
// AssignmentKey -> BedAssignment.
type AssignmentStoreMap map[string]BedAssignment

// Clone returns an independent copy; mutations on the copy do not leak back.
func (m AssignmentStoreMap) Clone() AssignmentStoreMap {
	out := make(AssignmentStoreMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// HasOccupant reports whether the rider already holds any slot in the map.
func (m AssignmentStoreMap) HasOccupant(occupantID string) bool {
	for _, a := range m {
		if a.OccupantID == occupantID {
			return true
		}
	}
	return false
}

// NightAssignments is the persisted row backing one night's document.
// The whole map is replaced on every save.
type NightAssignments struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Day         int            `gorm:"uniqueIndex;column:day" json:"day"`
	Assignments datatypes.JSON `gorm:"column:assignments" json:"assignments"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
