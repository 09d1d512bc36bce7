package service

import (
	"testing"
	"time"

	"werewolf_web/internal/models"
	"werewolf_web/internal/repository"
)

// waitForPhase 輪詢房間直到它進入指定的階段
// 計時器在獨立的 goroutine 裡觸發，狀態變化是非同步的
func waitForPhase(t *testing.T, repo repository.RoomRepository, code string,
	phase models.GamePhase) *models.Room {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		room, err := repo.FindByCode(code)
		if err == nil && room.Phase == phase {
			return room
		}
		time.Sleep(time.Millisecond)
	}
	room, _ := repo.FindByCode(code)
	t.Fatalf("room never reached phase %s, stuck at %s", phase, room.Phase)
	return nil
}

func TestPhaseTimerDrivesFullCycle(t *testing.T) {
	svc, clock, repo := newTestService(t, 1)
	code := buildLobby(t, svc, 5)
	if err := svc.AssignRoles(code); err != nil {
		t.Fatal(err)
	}
	if err := svc.StartGame(code); err != nil {
		t.Fatal(err)
	}

	got := reload(t, repo, code)
	if got.Phase != models.PhaseNight || got.Round != 1 {
		t.Fatalf("after start: phase=%s round=%d, want night round 1", got.Phase, got.Round)
	}

	// 夜晚 → 早晨
	clock.waitForWaiters(t, 1)
	clock.Advance(30 * time.Second)
	waitForPhase(t, repo, code, models.PhaseMorning)

	// 早晨 → 白天
	clock.waitForWaiters(t, 1)
	clock.Advance(10 * time.Second)
	waitForPhase(t, repo, code, models.PhaseDay)

	// 白天 → 投票
	clock.waitForWaiters(t, 1)
	clock.Advance(75 * time.Second)
	waitForPhase(t, repo, code, models.PhaseVoting)

	// 無人投票 → 下一個夜晚，回合數加一
	clock.waitForWaiters(t, 1)
	clock.Advance(15 * time.Second)
	got = waitForPhase(t, repo, code, models.PhaseNight)
	if got.Round != 2 {
		t.Errorf("round = %d, want 2 after a full cycle", got.Round)
	}
	if got.Status != models.RoomStatusPlaying {
		t.Errorf("status = %s, want playing", got.Status)
	}
}

func TestPhaseTickOnMissingRoom(t *testing.T) {
	svc, _, _ := newTestService(t, 1)

	// 房間刪除後殘留的觸發必須被靜默丟棄
	svc.handlePhaseTick("GONE1")
}

func TestScheduleReplacesExistingTimer(t *testing.T) {
	svc, clock, repo := newTestService(t, 1)
	room := seedPlayingRoom(t, repo, clock, models.PhaseNight,
		testPlayer("v1", models.FactionInnocent, models.SubroleVillager),
		testPlayer("v2", models.FactionInnocent, models.SubroleVillager),
		testPlayer("ww", models.FactionWerewolf, models.SubroleWerewolf),
	)

	svc.schedulePhaseTimer(room.Code, 30*time.Second)
	clock.waitForWaiters(t, 1)
	svc.schedulePhaseTimer(room.Code, 60*time.Second)
	clock.waitForWaiters(t, 2)
	// 讓被取消的 goroutine 有時間觀察到取消信號並退出
	time.Sleep(20 * time.Millisecond)

	// 舊計時器已被取消，到期也不會推進階段
	clock.Advance(30 * time.Second)
	time.Sleep(20 * time.Millisecond)
	got := reload(t, repo, room.Code)
	if got.Phase != models.PhaseNight {
		t.Fatalf("phase = %s, cancelled timer must not fire", got.Phase)
	}

	clock.Advance(30 * time.Second)
	waitForPhase(t, repo, room.Code, models.PhaseMorning)
}

func TestCancelPhaseTimer(t *testing.T) {
	svc, clock, repo := newTestService(t, 1)
	room := seedPlayingRoom(t, repo, clock, models.PhaseNight,
		testPlayer("v1", models.FactionInnocent, models.SubroleVillager),
		testPlayer("v2", models.FactionInnocent, models.SubroleVillager),
		testPlayer("ww", models.FactionWerewolf, models.SubroleWerewolf),
	)

	svc.schedulePhaseTimer(room.Code, 30*time.Second)
	clock.waitForWaiters(t, 1)
	svc.cancelPhaseTimer(room.Code)
	time.Sleep(20 * time.Millisecond)

	clock.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	got := reload(t, repo, room.Code)
	if got.Phase != models.PhaseNight {
		t.Errorf("phase = %s, cancelled timer must not fire", got.Phase)
	}
}
