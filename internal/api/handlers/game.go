package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"werewolf_web/internal/models"
	"werewolf_web/internal/service"
)

// GameHandler 處理遊戲進行中的請求（角色分配、開始、夜晚行動、投票）
type GameHandler struct {
	roomService *service.RoomService
}

// NewGameHandler 創建一個新的 GameHandler 實例
func NewGameHandler(roomService *service.RoomService) *GameHandler {
	return &GameHandler{roomService: roomService}
}

// AssignRoles 處理分配角色的請求
func (h *GameHandler) AssignRoles(c *gin.Context) {
	if err := h.roomService.AssignRoles(c.Param("code")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "角色分配完成"})
}

// StartGame 處理開始遊戲的請求
func (h *GameHandler) StartGame(c *gin.Context) {
	if err := h.roomService.StartGame(c.Param("code")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "遊戲開始"})
}

// SubmitNightAction 處理提交夜晚行動的請求
func (h *GameHandler) SubmitNightAction(c *gin.Context) {
	var input struct {
		Kind     string `json:"kind" binding:"required"`
		TargetID string `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := c.Param("code")
	playerID := c.GetString("playerID")

	err := h.roomService.SubmitNightAction(code, playerID, models.ActionKind(input.Kind), input.TargetID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "行動已記錄"})
}

// SubmitVote 處理提交投票的請求，target_id 為空表示棄票
func (h *GameHandler) SubmitVote(c *gin.Context) {
	var input struct {
		TargetID string `json:"target_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := c.Param("code")
	playerID := c.GetString("playerID")

	if err := h.roomService.SubmitVote(code, playerID, input.TargetID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "投票已記錄"})
}

// SendChat 處理白天討論的聊天消息
func (h *GameHandler) SendChat(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := c.Param("code")
	playerID := c.GetString("playerID")

	if err := h.roomService.SendChatMessage(code, playerID, input.Content); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "消息已送出"})
}
