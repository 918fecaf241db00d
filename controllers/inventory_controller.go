package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"bajarun-backend/config"
	"bajarun-backend/models"
	"bajarun-backend/services"
	"bajarun-backend/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	Inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{Inventory: inventory}
}

// GetInventory returns the full inventory, or one night's slice when ?day= is
// given, in room-grid order.
func (ic *InventoryController) GetInventory(c *gin.Context) {
	rawDay := strings.TrimSpace(c.Query("day"))
	if rawDay == "" {
		var rooms []models.RoomInventoryEntry
		if err := ic.Inventory.DB.Order("day ASC").Find(&rooms).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load inventory")
			return
		}
		services.SortInventory(rooms)
		utils.JSONSuccess(c, http.StatusOK, rooms)
		return
	}

	day, err := strconv.Atoi(rawDay)
	if err != nil || !config.IsLodgingNight(day) {
		utils.JSONError(c, http.StatusBadRequest, "invalid night")
		return
	}

	rooms, err := ic.Inventory.ForNight(day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ic *InventoryController) CreateRoom(c *gin.Context) {
	var room models.RoomInventoryEntry
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.RoomID = strings.TrimSpace(room.RoomID)
	if room.RoomID == "" {
		utils.JSONError(c, http.StatusBadRequest, "room id is required")
		return
	}
	if strings.Contains(room.RoomID, models.KeySeparator) {
		utils.JSONError(c, http.StatusBadRequest, "room id must not contain '__'")
		return
	}
	for _, bed := range room.Beds {
		if strings.Contains(bed, models.KeySeparator) {
			utils.JSONError(c, http.StatusBadRequest, "bed names must not contain '__'")
			return
		}
	}
	if !config.IsLodgingNight(room.Day) {
		utils.JSONError(c, http.StatusBadRequest, "invalid night")
		return
	}
	if room.IsCamping && room.IsOwnAccommodation {
		utils.JSONError(c, http.StatusBadRequest, "room cannot be both camping and own-accommodation")
		return
	}
	if room.IsStandardRoom() && len(room.Beds) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "standard rooms need at least one bed")
		return
	}

	if err := ic.Inventory.Create(&room); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.JSONError(c, http.StatusConflict, "room id already exists for this night")
			return
		}
		log.Printf("❌ create room failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ic *InventoryController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}

	affected, err := ic.Inventory.Delete(uint(id))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	if affected == 0 {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
