package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bajarun-backend/controllers"
	"bajarun-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ic *controllers.InventoryController,
	rc *controllers.RiderController,
	ac *controllers.AssignmentController,
	rpc *controllers.ReportController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		admin := api.Group("", middleware.RequireAuth())
		{
			admins := admin.Group("/admins")
			{
				admins.GET("", controllers.GetAdmins)
				admins.POST("", controllers.CreateAdmin)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/tour", controllers.GetTourSettings)
				settings.PUT("/tour", controllers.UpdateTourSettings)
			}

			inventory := admin.Group("/inventory")
			{
				inventory.GET("", ic.GetInventory)
				inventory.POST("", ic.CreateRoom)
				inventory.DELETE("/:id", ic.DeleteRoom)
			}

			admin.GET("/riders", rc.GetRiders)

			nights := admin.Group("/nights/:day")
			{
				nights.GET("", ac.GetNightState)
				nights.POST("/selection", ac.ToggleSelection)
				nights.POST("/rooms/:roomId/assign", ac.AssignRoom)
				nights.POST("/pools/:roomId/assign", ac.AssignPool)
				nights.DELETE("/assignments/:key", ac.RemoveAssignment)
				nights.POST("/save", ac.SaveNight)
				nights.POST("/reload", ac.ReloadNight)
				nights.GET("/report", rpc.GetNightReport)
			}
		}
	}

	return r
}
