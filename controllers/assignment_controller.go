package controllers

import (
	"log"
	"net/http"
	"strconv"

	"bajarun-backend/middleware"
	"bajarun-backend/models"
	"bajarun-backend/services"
	"bajarun-backend/utils"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Sessions *services.SessionRegistry
	Roster   *services.RosterService
}

func NewAssignmentController(sessions *services.SessionRegistry, roster *services.RosterService) *AssignmentController {
	return &AssignmentController{Sessions: sessions, Roster: roster}
}

// roomView is one cell of the operator's room grid: the inventory entry plus
// its current occupancy, derived from the session's working copy.
type roomView struct {
	models.RoomInventoryEntry
	Occupants           []services.KeyedAssignment `json:"occupants"`
	OccupiedBeds        int                        `json:"occupiedBeds"`
	IsFull              bool                       `json:"isFull"`
	PreferenceSatisfied bool                       `json:"preferenceSatisfied"`
}

func (ac *AssignmentController) session(c *gin.Context) (*services.NightSession, int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid night")
		return nil, 0, false
	}

	session, err := ac.Sessions.Session(c.Request.Context(), day)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return nil, 0, false
	}
	return session, day, true
}

func operatorName(c *gin.Context) string {
	return c.GetString(middleware.OperatorKey)
}

// GetNightState returns everything the operator UI needs for one night:
// room grid with occupancy, rider list, current selection, stats, dirty flag.
func (ac *AssignmentController) GetNightState(c *gin.Context) {
	session, day, ok := ac.session(c)
	if !ok {
		return
	}

	working := session.Working()
	views, err := ac.Roster.RiderViewsFor(day, working)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load riders")
		return
	}

	inventory := session.Inventory()
	rooms := make([]roomView, 0, len(inventory))
	for _, room := range inventory {
		rooms = append(rooms, roomView{
			RoomInventoryEntry:  room,
			Occupants:           services.OccupantsWithKeys(room, working),
			OccupiedBeds:        services.DistinctOccupiedBeds(room, working),
			IsFull:              services.RoomIsFull(room, working),
			PreferenceSatisfied: services.RoomPreferenceSatisfied(room, working, views),
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"day":       day,
		"rooms":     rooms,
		"riders":    views,
		"selection": session.Selected(),
		"stats":     services.ComputeNightStats(inventory, working, views),
		"dirty":     session.Dirty(),
	})
}

type riderPayload struct {
	RiderID uint `json:"riderId"`
}

// ToggleSelection adds or removes a rider from the night's selection.
func (ac *AssignmentController) ToggleSelection(c *gin.Context) {
	session, _, ok := ac.session(c)
	if !ok {
		return
	}

	var payload riderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	rider, err := ac.Roster.GetRiderByID(payload.RiderID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "rider not found")
		return
	}

	session.ToggleSelection(rider.Ref())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"selection": session.Selected()})
}

// AssignRoom places the current selection into a standard room. A capacity
// rejection is not an error: changed=false tells the UI nothing happened.
func (ac *AssignmentController) AssignRoom(c *gin.Context) {
	session, _, ok := ac.session(c)
	if !ok {
		return
	}

	changed := session.AssignToRoom(c.Param("roomId"), operatorName(c))
	utils.JSONSuccess(c, http.StatusOK, gin.H{"changed": changed, "dirty": session.Dirty()})
}

// AssignPool drops one rider into a camping or own-accommodation pool.
func (ac *AssignmentController) AssignPool(c *gin.Context) {
	session, _, ok := ac.session(c)
	if !ok {
		return
	}

	var payload riderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	rider, err := ac.Roster.GetRiderByID(payload.RiderID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "rider not found")
		return
	}

	changed := session.AssignToPool(c.Param("roomId"), rider.Ref(), operatorName(c))
	utils.JSONSuccess(c, http.StatusOK, gin.H{"changed": changed, "dirty": session.Dirty()})
}

// RemoveAssignment deletes one occupant record by its key.
func (ac *AssignmentController) RemoveAssignment(c *gin.Context) {
	session, _, ok := ac.session(c)
	if !ok {
		return
	}

	changed := session.RemoveAssignment(c.Param("key"))
	if !changed {
		utils.JSONError(c, http.StatusNotFound, "assignment not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"changed": true, "dirty": session.Dirty()})
}

// SaveNight persists the working copy. On failure the working copy stays in
// memory, so the operator can retry without losing edits.
func (ac *AssignmentController) SaveNight(c *gin.Context) {
	session, day, ok := ac.session(c)
	if !ok {
		return
	}

	if err := session.Save(c.Request.Context()); err != nil {
		log.Printf("❌ save failed for night %d: %v", day, err)
		utils.JSONError(c, http.StatusBadGateway, "save failed; your unsaved changes are kept — retry")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"saved": true})
}

// ReloadNight discards the night's session, including unsaved edits, and
// reloads from the persisted document. The UI confirms before calling this.
func (ac *AssignmentController) ReloadNight(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid night")
		return
	}

	ac.Sessions.Reset(day)
	if _, err := ac.Sessions.Session(c.Request.Context(), day); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reloaded": true})
}
