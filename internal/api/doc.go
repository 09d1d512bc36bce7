// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了所有的 HTTP 處理器（handlers）。
// 它負責將客戶端事件（創建房間、加入、夜晚行動、投票等）
// 轉換為遊戲核心的服務調用，並將結果轉換回 HTTP 響應。
package api
