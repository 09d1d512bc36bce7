// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了各種中間件函數，用於在 HTTP 請求處理過程中執行額外的操作。
// 目前只有玩家會話令牌的驗證，令牌在創建或加入房間時簽發。
package middleware
