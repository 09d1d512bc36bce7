package service

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"werewolf_web/internal/models"
	"werewolf_web/internal/repository"
	"werewolf_web/pkg/config"
)

// fakeClock 是測試用的假時鐘，時間只在呼叫 Advance 時前進
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	ch       chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.waiters = append(c.waiters, fakeWaiter{deadline: c.current.Add(d), ch: ch})
	return ch
}

// Advance 前進指定的時間並觸發所有到期的計時器
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	var due []chan time.Time
	remaining := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.deadline.After(c.current) {
			due = append(due, w.ch)
		} else {
			remaining = append(remaining, w)
		}
	}
	c.waiters = remaining
	now := c.current
	c.mu.Unlock()

	for _, ch := range due {
		ch <- now
	}
}

// waitForWaiters 等待至少 n 個計時器掛上假時鐘
// 計時器在獨立的 goroutine 裡註冊，推進時間前必須先確認它已經就位
func (c *fakeClock) waitForWaiters(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		count := len(c.waiters)
		c.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("%d 個計時器沒有在期限內註冊", n)
}

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		NightSeconds:   30,
		MorningSeconds: 10,
		DaySeconds:     75,
		VotingSeconds:  15,
		SeerUses:       2,
		BanditMarks:    2,
		BanditWinKills: 3,
	}
}

// newTestService 建立使用記憶體存儲和假時鐘的測試服務
func newTestService(t *testing.T, seed int64) (*RoomService, *fakeClock, repository.RoomRepository) {
	t.Helper()
	repo := repository.NewMemoryRoomRepository()
	clock := newFakeClock()
	rng := rand.New(rand.NewSource(seed))
	svc := NewRoomService(repo, nil, testGameConfig(), clock, rng, zap.NewNop())
	return svc, clock, repo
}

// testPlayer 建立一位指定角色的存活玩家
func testPlayer(id string, faction models.Faction, subrole models.Subrole) models.Player {
	p := models.Player{
		ID:       id,
		Username: "user_" + id,
		Alive:    true,
		Faction:  faction,
		Subrole:  subrole,
	}
	switch subrole {
	case models.SubroleSeer:
		p.SeerUses = 2
	case models.SubroleBandit:
		p.BanditMarks = 2
	}
	return p
}

// seedPlayingRoom 直接建立一個進行中的房間並存入存儲
func seedPlayingRoom(t *testing.T, repo repository.RoomRepository, clock *fakeClock,
	phase models.GamePhase, players ...models.Player) *models.Room {
	t.Helper()
	room := &models.Room{
		Code:    "TEST1",
		HostID:  players[0].ID,
		Status:  models.RoomStatusPlaying,
		Phase:   phase,
		Round:   1,
		Players: players,
		Votes:   make(map[string]string),
	}
	room.PhaseDeadline = clock.Now().Add(30 * time.Second)
	if err := repo.Create(room); err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}

// reload 重新載入房間的最新狀態
func reload(t *testing.T, repo repository.RoomRepository, code string) *models.Room {
	t.Helper()
	room, err := repo.FindByCode(code)
	if err != nil {
		t.Fatalf("failed to reload room %s: %v", code, err)
	}
	return room
}

// buildLobby 建立一個有 n 位玩家的等待中房間，回傳房間代碼
func buildLobby(t *testing.T, svc *RoomService, n int) string {
	t.Helper()
	room, err := svc.CreateRoom("player_0")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	for i := 1; i < n; i++ {
		if _, err := svc.JoinRoom(room.Code, fmt.Sprintf("player_%d", i)); err != nil {
			t.Fatalf("failed to join room: %v", err)
		}
	}
	return room.Code
}
