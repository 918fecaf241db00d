package controllers

import (
	"net/http"

	"bajarun-backend/config"
	"bajarun-backend/models"

	"github.com/gin-gonic/gin"
)

func GetTourSettings(c *gin.Context) {
	var setting models.TourSetting
	if err := config.DB.First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tour settings not found"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

func UpdateTourSettings(c *gin.Context) {
	var payload models.TourSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var setting models.TourSetting
	if err := config.DB.First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tour settings not found"})
		return
	}

	setting.Name = payload.Name
	setting.Year = payload.Year
	setting.ContactEmail = payload.ContactEmail
	setting.ContactPhone = payload.ContactPhone

	if err := config.DB.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, setting)
}
