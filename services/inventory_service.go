package services

import (
	"sort"
	"strings"

	"bajarun-backend/models"

	"gorm.io/gorm"
)

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// ForNight returns the lodging inventory for one night in the order the
// operator's room grid uses: standard rooms alphabetically by suite name,
// then the own-accommodation pool, with camping always last.
func (s *InventoryService) ForNight(day int) ([]models.RoomInventoryEntry, error) {
	var rooms []models.RoomInventoryEntry
	if err := s.DB.Where("day = ?", day).Find(&rooms).Error; err != nil {
		return nil, err
	}
	SortInventory(rooms)
	return rooms, nil
}

func (s *InventoryService) Create(room *models.RoomInventoryEntry) error {
	return s.DB.Create(room).Error
}

func (s *InventoryService) Delete(id uint) (int64, error) {
	result := s.DB.Delete(&models.RoomInventoryEntry{}, id)
	return result.RowsAffected, result.Error
}

// SortInventory orders entries in place: camping after everything else,
// pools after standard rooms, standard rooms alphabetical by suite name.
func SortInventory(rooms []models.RoomInventoryEntry) {
	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := rooms[i], rooms[j]
		if a.IsCamping != b.IsCamping {
			return b.IsCamping
		}
		if a.IsPool() != b.IsPool() {
			return b.IsPool()
		}
		return strings.ToLower(a.SuiteName) < strings.ToLower(b.SuiteName)
	})
}

// FindRoom locates an inventory entry by its stable room id.
func FindRoom(rooms []models.RoomInventoryEntry, roomID string) (models.RoomInventoryEntry, bool) {
	for _, r := range rooms {
		if r.RoomID == roomID {
			return r, true
		}
	}
	return models.RoomInventoryEntry{}, false
}
