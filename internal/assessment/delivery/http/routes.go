package http

import (
	"github.com/gin-gonic/gin"

	"crashify360/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. The external
// valuation lookup is rate limited to protect the Auto Grap quota.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	assessments := rg.Group("/assessments")
	{
		assessments.POST("", h.Assess)
		assessments.POST("/batch", h.AssessBatch)
	}

	decisions := rg.Group("/decisions")
	{
		decisions.GET("", h.Search)
		decisions.GET("/recent", h.Recent)
		decisions.GET("/:id", h.Detail)
		decisions.POST("/export", h.Export)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("/:vin/decisions", h.History)
		vehicles.GET("/:vin/valuation", mw.RateLimit(), h.Lookup)
	}

	salvage := rg.Group("/salvage")
	{
		salvage.POST("/parse", h.ParseSalvage)
		salvage.POST("/requests", h.SendSalvage)
	}

	rg.GET("/statistics", h.Statistics)
}
