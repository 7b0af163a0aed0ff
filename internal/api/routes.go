package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/auth/signup", handler.Signup)
		api.POST("/auth/login", handler.Login)
		api.POST("/admin/login", handler.AdminLogin)

		api.GET("/properties", handler.GetProperties)
		api.GET("/catalog/meta", handler.GetCatalogMeta)

		user := api.Group("", handler.RequireUser)
		{
			user.POST("/auth/logout", handler.Logout)
			user.GET("/me", handler.GetProfile)
			user.PUT("/me", handler.UpdateProfile)
			user.PUT("/favorites", handler.UpdateFavorites)
			user.POST("/chat", handler.Chat)
			user.POST("/chat/start", handler.ChatStart)
			user.POST("/chat/geolocation", handler.Geolocation)
			user.POST("/contact", handler.SubmitContact)
			user.POST("/compare", handler.CompareProperties)
		}

		admin := api.Group("/admin", handler.RequireAdmin)
		{
			admin.GET("/properties", handler.AdminListProperties)
			admin.POST("/properties", handler.AdminCreateProperty)
			admin.PUT("/properties/:id", handler.AdminUpdateProperty)
			admin.DELETE("/properties/:id", handler.AdminDeleteProperty)
			admin.POST("/generate/description", handler.AdminGenerateDescription)

			admin.GET("/leads", handler.AdminListLeads)
			admin.PUT("/leads/:id", handler.AdminUpdateLead)
			admin.DELETE("/leads/:id", handler.AdminDeleteLead)
			admin.POST("/leads/:id/notes", handler.AdminAddLeadNote)
			admin.POST("/leads/:id/follow-up", handler.AdminFollowUp)

			admin.GET("/locations", handler.AdminListLocations)
			admin.POST("/locations", handler.AdminAddLocation)
			admin.DELETE("/locations", handler.AdminDeleteLocation)
		}
	}
}
