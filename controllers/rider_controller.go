package controllers

import (
	"net/http"

	"bajarun-backend/services"
	"bajarun-backend/utils"

	"github.com/gin-gonic/gin"
)

type RiderController struct {
	Roster *services.RosterService
}

func NewRiderController(roster *services.RosterService) *RiderController {
	return &RiderController{Roster: roster}
}

// GetRiders returns the roster. Registration happens upstream; this backend
// only reads it.
func (rc *RiderController) GetRiders(c *gin.Context) {
	riders, err := rc.Roster.GetRiders()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load roster")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, riders)
}
