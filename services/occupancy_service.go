package services

import (
	"sort"
	"strings"

	"bajarun-backend/models"
)

// NightStats are the derived occupancy counters the operator dashboard shows.
// Bed and room counters cover standard rooms only; the pools are unlimited
// and excluded.
type NightStats struct {
	TotalRooms      int `json:"totalRooms"`
	FullRooms       int `json:"fullRooms"`
	TotalBeds       int `json:"totalBeds"`
	AssignedBeds    int `json:"assignedBeds"`
	UnassignedCount int `json:"unassignedCount"`
}

// DistinctOccupiedBeds counts the room's beds carrying at least one occupant.
// A bed shared by a couple counts once.
func DistinctOccupiedBeds(room models.RoomInventoryEntry, store models.AssignmentStoreMap) int {
	count := 0
	for _, bed := range room.Beds {
		if bedOccupied(store, room.RoomID, bed) {
			count++
		}
	}
	return count
}

// RoomIsFull reports whether every distinct bed in the room is occupied.
func RoomIsFull(room models.RoomInventoryEntry, store models.AssignmentStoreMap) bool {
	if !room.IsStandardRoom() || len(room.Beds) == 0 {
		return false
	}
	return DistinctOccupiedBeds(room, store) == len(room.Beds)
}

// RoomOccupants returns the room's occupants ordered by bed position and
// co-occupant suffix, so output never depends on map iteration order.
func RoomOccupants(room models.RoomInventoryEntry, store models.AssignmentStoreMap) []models.BedAssignment {
	var out []models.BedAssignment
	for _, bed := range room.Beds {
		for _, suffix := range []string{"0", "1"} {
			key := models.AssignmentKey{RoomID: room.RoomID, Bed: bed, Suffix: suffix}
			if a, ok := store[key.String()]; ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// KeyedAssignment pairs an occupant record with the key addressing it, so
// the operator UI can remove individual assignments.
type KeyedAssignment struct {
	Key        string               `json:"key"`
	Assignment models.BedAssignment `json:"assignment"`
}

// OccupantsWithKeys lists a unit's occupants with their keys. Standard rooms
// are ordered by bed position and couple suffix; pools by key.
func OccupantsWithKeys(room models.RoomInventoryEntry, store models.AssignmentStoreMap) []KeyedAssignment {
	out := []KeyedAssignment{}
	if room.IsStandardRoom() {
		for _, bed := range room.Beds {
			for _, suffix := range []string{"0", "1"} {
				key := models.AssignmentKey{RoomID: room.RoomID, Bed: bed, Suffix: suffix}
				if a, ok := store[key.String()]; ok {
					out = append(out, KeyedAssignment{Key: key.String(), Assignment: a})
				}
			}
		}
		return out
	}

	keys := make([]string, 0)
	for raw := range store {
		key, err := models.ParseAssignmentKey(raw)
		if err != nil {
			continue
		}
		if key.RoomID == room.RoomID {
			keys = append(keys, raw)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, KeyedAssignment{Key: k, Assignment: store[k]})
	}
	return out
}

// ComputeNightStats derives the dashboard counters for one night.
func ComputeNightStats(
	inventory []models.RoomInventoryEntry,
	store models.AssignmentStoreMap,
	views []models.RiderView,
) NightStats {
	stats := NightStats{}
	for _, room := range inventory {
		if !room.IsStandardRoom() {
			continue
		}
		stats.TotalRooms++
		stats.TotalBeds += len(room.Beds)
		stats.AssignedBeds += DistinctOccupiedBeds(room, store)
		if RoomIsFull(room, store) {
			stats.FullRooms++
		}
	}
	for _, v := range views {
		if !v.Assigned {
			stats.UnassignedCount++
		}
	}
	return stats
}

// IsPreferenceMatch reports whether either rider asked for the other by name.
// Matching is symmetric and name-based; ids are not compared because the
// preference source only records names.
func IsPreferenceMatch(a, b models.RiderView) bool {
	return nameMatches(a.PreferredRoommate, b.FullName) || nameMatches(b.PreferredRoommate, a.FullName)
}

func nameMatches(preferred, name string) bool {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" {
		return false
	}
	return strings.EqualFold(preferred, strings.TrimSpace(name))
}

// RoomPreferenceSatisfied is true only when the room holds exactly two
// occupants and they are a preference match.
func RoomPreferenceSatisfied(
	room models.RoomInventoryEntry,
	store models.AssignmentStoreMap,
	views []models.RiderView,
) bool {
	occupants := RoomOccupants(room, store)
	if len(occupants) != 2 {
		return false
	}

	byID := make(map[string]models.RiderView, len(views))
	for _, v := range views {
		byID[v.RiderID] = v
	}
	a, okA := byID[occupants[0].OccupantID]
	b, okB := byID[occupants[1].OccupantID]
	if !okA || !okB {
		return false
	}
	return IsPreferenceMatch(a, b)
}
