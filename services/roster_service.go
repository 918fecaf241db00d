package services

import (
	"log"
	"sort"
	"strings"

	"bajarun-backend/models"

	"gorm.io/gorm"
)

type RosterService struct {
	DB *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{DB: db}
}

// GetRiders returns the full roster, alphabetical by name.
func (s *RosterService) GetRiders() ([]models.Rider, error) {
	var riders []models.Rider
	err := s.DB.Order("full_name ASC").Find(&riders).Error
	return riders, err
}

func (s *RosterService) GetRiderByID(id uint) (*models.Rider, error) {
	var rider models.Rider
	if err := s.DB.First(&rider, id).Error; err != nil {
		return nil, err
	}
	return &rider, nil
}

// RiderViewsFor builds the derived per-rider view for one night: roster entry
// + night selection + roommate preference + assignment status, sorted with
// unassigned riders first and alphabetically within each group.
func (s *RosterService) RiderViewsFor(day int, store models.AssignmentStoreMap) ([]models.RiderView, error) {
	riders, err := s.GetRiders()
	if err != nil {
		return nil, err
	}

	var selections []models.NightSelection
	if err := s.DB.Where("day = ?", day).Find(&selections).Error; err != nil {
		log.Printf("warning: night selections unavailable for day %d: %v", day, err)
		selections = nil
	}

	var prefs []models.RoommatePreference
	if err := s.DB.Find(&prefs).Error; err != nil {
		log.Printf("warning: roommate preferences unavailable: %v", err)
		prefs = nil
	}

	return BuildRiderViews(riders, selections, prefs, store), nil
}

// BuildRiderViews is the pure assembly step behind RiderViewsFor.
//
// Selection and preference rows may be keyed by either the roster id or the
// identity uid; the lookup tries the primary id first and falls back to the
// uid. Riders missing from both degrade to the documented defaults
// (accommodation "hotel", no roommate preference) instead of erroring.
func BuildRiderViews(
	riders []models.Rider,
	selections []models.NightSelection,
	prefs []models.RoommatePreference,
	store models.AssignmentStoreMap,
) []models.RiderView {
	selByKey := make(map[string]models.NightSelection, len(selections))
	for _, sel := range selections {
		selByKey[sel.RiderKey] = sel
	}
	prefByKey := make(map[string]string, len(prefs))
	for _, p := range prefs {
		prefByKey[p.RiderKey] = strings.TrimSpace(p.PreferredName)
	}

	views := make([]models.RiderView, 0, len(riders))
	for _, rider := range riders {
		view := models.RiderView{
			RiderID:       rider.Key(),
			FullName:      rider.FullName,
			Email:         rider.Email,
			Accommodation: models.AccommodationHotel,
			Assigned:      store.HasOccupant(rider.Key()),
		}

		sel, ok := selByKey[rider.Key()]
		if !ok && rider.UID != "" {
			sel, ok = selByKey[rider.UID]
		}
		if ok {
			if sel.Accommodation != "" {
				view.Accommodation = sel.Accommodation
			}
			view.PrefersSingleRoom = sel.PrefersSingleRoom
		}

		pref, ok := prefByKey[rider.Key()]
		if !ok && rider.UID != "" {
			pref = prefByKey[rider.UID]
		}
		view.PreferredRoommate = pref

		views = append(views, view)
	}

	SortRiderViews(views)
	return views
}

// SortRiderViews orders views the way the operator's rider list shows them:
// unassigned before assigned, alphabetical by full name within each group.
func SortRiderViews(views []models.RiderView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Assigned != views[j].Assigned {
			return !views[i].Assigned
		}
		return strings.ToLower(views[i].FullName) < strings.ToLower(views[j].FullName)
	})
}
