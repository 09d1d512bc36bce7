package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"werewolf_web/internal/service"
	"werewolf_web/internal/utils"
)

// RoomHandler 處理與遊戲房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// statusFor 把服務層的錯誤映射成 HTTP 狀態碼
// 驗證錯誤 400、查無資料 404、狀態衝突 409
func statusFor(err error) int {
	switch {
	case service.IsNotFound(err):
		return http.StatusNotFound
	case service.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrAlreadyStarted),
		errors.Is(err, service.ErrRoomNotReady),
		errors.Is(err, service.ErrNotReady),
		errors.Is(err, service.ErrWrongPhase),
		errors.Is(err, service.ErrDeadActor),
		errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrExcluded),
		errors.Is(err, service.ErrDeadVoter):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(input.Username)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	// 簽發創建者的會話令牌
	token, err := utils.GenerateToken(room.HostID, room.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "獲取token失敗"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"room":      room,
		"player_id": room.HostID,
		"token":     token,
	})
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := c.Param("code")
	player, err := h.roomService.JoinRoom(code, input.Username)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateToken(player.ID, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "獲取token失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player_id": player.ID,
		"token":     token,
	})
}

// LeaveRoom 處理離開房間的請求
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	code := c.Param("code")
	playerID := c.GetString("playerID")

	if err := h.roomService.LeaveRoom(code, playerID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功離開房間"})
}

// GetRoom 處理取得房間快照的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	snapshot, err := h.roomService.GetRoomSnapshot(c.Param("code"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ListRooms 處理取得房間列表的請求
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}
