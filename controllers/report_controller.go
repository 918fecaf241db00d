package controllers

import (
	"net/http"
	"strconv"

	"bajarun-backend/config"
	"bajarun-backend/services"
	"bajarun-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Inventory *services.InventoryService
	Store     *services.NightAssignmentStore
}

func NewReportController(inventory *services.InventoryService, store *services.NightAssignmentStore) *ReportController {
	return &ReportController{Inventory: inventory, Store: store}
}

// GetNightReport builds the print-ready grouping for one night from the
// persisted document — not from anyone's unsaved working copy.
func (rc *ReportController) GetNightReport(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || !config.IsLodgingNight(day) {
		utils.JSONError(c, http.StatusBadRequest, "invalid night")
		return
	}

	rooms, err := rc.Inventory.ForNight(day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load inventory")
		return
	}

	store, err := rc.Store.Load(c.Request.Context(), day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load assignments")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"day":    day,
		"report": services.BuildNightReport(rooms, store),
	})
}
