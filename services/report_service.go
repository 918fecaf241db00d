package services

import (
	"sort"
	"strings"

	"bajarun-backend/models"
)

// ReportLine is one printable row: a room label and its occupants joined in
// assignment order.
type ReportLine struct {
	Room      string `json:"room"`
	Occupants string `json:"occupants"`
}

// NightReport is the export-ready grouping of one night's saved assignments.
// Rooms with one bed and rooms with several are listed separately; the pools
// get plain name lists. The sink renders and paginates this, we only group.
type NightReport struct {
	SingleRooms []ReportLine `json:"singleRooms"`
	SharedRooms []ReportLine `json:"sharedRooms"`
	Camping     []string     `json:"camping"`
	OnTheirOwn  []string     `json:"onTheirOwn"`
}

// BuildNightReport groups a persisted assignment map for printing. Output is
// deterministic: every group is sorted by surname, and room occupants are
// ordered by bed position and couple suffix, never by map iteration order.
func BuildNightReport(inventory []models.RoomInventoryEntry, store models.AssignmentStoreMap) NightReport {
	report := NightReport{
		SingleRooms: []ReportLine{},
		SharedRooms: []ReportLine{},
		Camping:     []string{},
		OnTheirOwn:  []string{},
	}

	for _, room := range inventory {
		switch {
		case room.IsCamping:
			report.Camping = append(report.Camping, poolOccupantNames(room, store)...)
		case room.IsOwnAccommodation:
			report.OnTheirOwn = append(report.OnTheirOwn, poolOccupantNames(room, store)...)
		default:
			occupants := RoomOccupants(room, store)
			if len(occupants) == 0 {
				continue
			}
			names := make([]string, 0, len(occupants))
			for _, o := range occupants {
				names = append(names, o.OccupantName)
			}
			line := ReportLine{Room: roomLabel(room), Occupants: strings.Join(names, " and ")}
			if len(room.Beds) == 1 {
				report.SingleRooms = append(report.SingleRooms, line)
			} else {
				report.SharedRooms = append(report.SharedRooms, line)
			}
		}
	}

	sortLinesBySurname(report.SingleRooms)
	sortLinesBySurname(report.SharedRooms)
	sortNamesBySurname(report.Camping)
	sortNamesBySurname(report.OnTheirOwn)
	return report
}

func roomLabel(room models.RoomInventoryEntry) string {
	return strings.TrimSpace(strings.TrimSpace(room.SuiteName) + " " + strings.TrimSpace(room.RoomNumber))
}

// poolOccupantNames collects a pool's occupants sorted by key so the result
// is stable before the surname sort.
func poolOccupantNames(room models.RoomInventoryEntry, store models.AssignmentStoreMap) []string {
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

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, store[k].OccupantName)
	}
	return names
}

// Surname is the last whitespace-delimited token of a full name,
// lower-cased for sorting.
func Surname(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

func sortLinesBySurname(lines []ReportLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return surnameOfLine(lines[i]) < surnameOfLine(lines[j])
	})
}

// surnameOfLine sorts a room line by its first occupant's surname.
func surnameOfLine(line ReportLine) string {
	first := line.Occupants
	if idx := strings.Index(first, " and "); idx >= 0 {
		first = first[:idx]
	}
	return Surname(first)
}

func sortNamesBySurname(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Surname(names[i]) < Surname(names[j])
	})
}
