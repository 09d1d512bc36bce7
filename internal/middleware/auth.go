package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"werewolf_web/internal/utils"
)

// PlayerAuth 是一個 Gin 中間件，用於驗證玩家的會話令牌
// 令牌在創建或加入房間時簽發，代表房間內的一位玩家
func PlayerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 檢查 Authorization 頭的格式
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		// 解析玩家會話令牌
		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 將玩家信息設置到上下文中
		c.Set("playerID", claims.PlayerID)
		c.Set("roomCode", claims.RoomCode)
		c.Next() // 繼續處理請求
	}
}
