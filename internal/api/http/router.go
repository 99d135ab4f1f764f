package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func SetupRouter(participants *ParticipantController, messages *MessageController, rps rate.Limit, burst int) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{
		"Content-Type",
		"Origin",
		"Accept",
		UserHeader,
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(config))

	if rps > 0 {
		router.Use(RateLimit(rps, burst))
	}

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/participants", participants.Join)
	router.GET("/participants", participants.List)
	router.POST("/status", participants.Heartbeat)

	router.POST("/messages", messages.Send)
	router.GET("/messages", messages.List)
	router.PUT("/messages/:id", messages.Edit)
	router.DELETE("/messages/:id", messages.Delete)

	return router
}
