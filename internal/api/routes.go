package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"werewolf_web/internal/api/handlers"
	"werewolf_web/internal/middleware"
	"werewolf_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	roomHandler := handlers.NewRoomHandler(services.RoomService)
	gameHandler := handlers.NewGameHandler(services.RoomService)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager, services.RoomService)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 創建和加入房間時簽發玩家會話令牌
		api.POST("/rooms", roomHandler.CreateRoom)
		api.POST("/rooms/:code/join", roomHandler.JoinRoom)
		api.GET("/rooms", roomHandler.ListRooms)
		api.GET("/rooms/:code", roomHandler.GetRoom)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要玩家會話令牌的路由
	authorized := api.Group("/")
	authorized.Use(middleware.PlayerAuth())
	{
		rooms := authorized.Group("/rooms")
		{
			// 房間參與
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)

			// 遊戲流程
			rooms.POST("/:code/assign-roles", gameHandler.AssignRoles)
			rooms.POST("/:code/start", gameHandler.StartGame)
			rooms.POST("/:code/night-action", gameHandler.SubmitNightAction)
			rooms.POST("/:code/vote", gameHandler.SubmitVote)
			rooms.POST("/:code/chat", gameHandler.SendChat)

			// WebSocket 連接點
			rooms.GET("/:code/ws", wsHandler.HandleWebSocket)
		}
	}
}
