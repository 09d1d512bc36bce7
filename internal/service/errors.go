package service

import "errors"

// 遊戲核心的錯誤定義，分為三類：
// 輸入驗證錯誤（拒絕後房間狀態不變）、狀態衝突錯誤（當前階段不允許，
// 呼叫方可以稍後重試）、查無資料錯誤
var (
	// 查無資料
	ErrRoomNotFound   = errors.New("房間不存在")
	ErrPlayerNotFound = errors.New("玩家不存在")

	// 輸入驗證
	ErrInvalidUsername    = errors.New("用戶名必須為 3-10 個字元")
	ErrUsernameTaken      = errors.New("用戶名已被使用")
	ErrInvalidPlayerCount = errors.New("玩家人數必須為 5-10 人")

	// 狀態衝突
	ErrRoomFull       = errors.New("房間已滿")
	ErrAlreadyStarted = errors.New("遊戲已經開始")
	ErrRoomNotReady   = errors.New("角色已經分配過")
	ErrNotReady       = errors.New("房間尚未準備就緒")
	ErrWrongPhase     = errors.New("當前階段不允許此操作")
	ErrDeadActor      = errors.New("死亡的玩家不能行動")
	ErrRoleMismatch   = errors.New("玩家角色與行動種類不符")
	ErrExcluded       = errors.New("平票玩家不能參與重新投票")
	ErrDeadVoter      = errors.New("死亡的玩家不能投票")
)

// IsNotFound 回傳錯誤是否屬於查無資料類
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrPlayerNotFound)
}

// IsValidation 回傳錯誤是否屬於輸入驗證類
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrInvalidPlayerCount)
}
