package service

import (
	"testing"

	"werewolf_web/internal/models"
)

func TestAssignRolesFactionCounts(t *testing.T) {
	tests := []struct {
		n        int
		innocent int
		neutral  int
		werewolf int
	}{
		{n: 5, innocent: 3, neutral: 1, werewolf: 1},
		{n: 6, innocent: 3, neutral: 2, werewolf: 1},
		{n: 7, innocent: 4, neutral: 2, werewolf: 1},
		{n: 8, innocent: 4, neutral: 2, werewolf: 2},
		{n: 9, innocent: 5, neutral: 2, werewolf: 2},
		{n: 10, innocent: 5, neutral: 3, werewolf: 2},
	}

	for _, tt := range tests {
		svc, _, repo := newTestService(t, 42)
		code := buildLobby(t, svc, tt.n)

		if err := svc.AssignRoles(code); err != nil {
			t.Fatalf("n=%d: AssignRoles failed: %v", tt.n, err)
		}

		room := reload(t, repo, code)
		if room.Status != models.RoomStatusReady {
			t.Errorf("n=%d: status = %s, want ready", tt.n, room.Status)
		}

		counts := map[models.Faction]int{}
		subroles := map[models.Subrole]int{}
		for _, p := range room.Players {
			counts[p.Faction]++
			subroles[p.Subrole]++
			if p.Faction == models.FactionUnassigned || p.Subrole == models.SubroleUnassigned {
				t.Errorf("n=%d: player %s left unassigned", tt.n, p.Username)
			}
		}

		if counts[models.FactionInnocent] != tt.innocent {
			t.Errorf("n=%d: innocent = %d, want %d", tt.n, counts[models.FactionInnocent], tt.innocent)
		}
		if counts[models.FactionNeutral] != tt.neutral {
			t.Errorf("n=%d: neutral = %d, want %d", tt.n, counts[models.FactionNeutral], tt.neutral)
		}
		if counts[models.FactionWerewolf] != tt.werewolf {
			t.Errorf("n=%d: werewolf = %d, want %d", tt.n, counts[models.FactionWerewolf], tt.werewolf)
		}
		total := counts[models.FactionInnocent] + counts[models.FactionNeutral] + counts[models.FactionWerewolf]
		if total != tt.n {
			t.Errorf("n=%d: faction counts sum to %d", tt.n, total)
		}

		// 特化角色在一個房間內不能重複，只有平民和額外的強盜可以
		for _, sub := range []models.Subrole{
			models.SubroleGuard, models.SubroleHunter, models.SubroleSeer, models.SubroleWitch,
		} {
			if subroles[sub] > 1 {
				t.Errorf("n=%d: subrole %s assigned %d times", tt.n, sub, subroles[sub])
			}
		}

		// 能力計數器初始化
		for _, p := range room.Players {
			switch p.Subrole {
			case models.SubroleSeer:
				if p.SeerUses != 2 {
					t.Errorf("n=%d: seer uses = %d, want 2", tt.n, p.SeerUses)
				}
			case models.SubroleBandit:
				if p.BanditMarks != 2 {
					t.Errorf("n=%d: bandit marks = %d, want 2", tt.n, p.BanditMarks)
				}
			}
		}
	}
}

func TestAssignRolesDeterministicWithSeed(t *testing.T) {
	assignments := make([]map[string]models.Subrole, 2)
	for run := 0; run < 2; run++ {
		svc, _, repo := newTestService(t, 7)
		code := buildLobby(t, svc, 8)
		if err := svc.AssignRoles(code); err != nil {
			t.Fatalf("AssignRoles failed: %v", err)
		}
		room := reload(t, repo, code)
		got := map[string]models.Subrole{}
		for _, p := range room.Players {
			got[p.Username] = p.Subrole
		}
		assignments[run] = got
	}

	for name, sub := range assignments[0] {
		if assignments[1][name] != sub {
			t.Errorf("seeded assignment differs for %s: %s vs %s", name, sub, assignments[1][name])
		}
	}
}

func TestAssignRolesInvalidPlayerCount(t *testing.T) {
	svc, _, _ := newTestService(t, 1)
	code := buildLobby(t, svc, 4)

	if err := svc.AssignRoles(code); err != ErrInvalidPlayerCount {
		t.Errorf("AssignRoles with 4 players = %v, want ErrInvalidPlayerCount", err)
	}
}

func TestAssignRolesTwice(t *testing.T) {
	svc, _, _ := newTestService(t, 1)
	code := buildLobby(t, svc, 5)

	if err := svc.AssignRoles(code); err != nil {
		t.Fatalf("first AssignRoles failed: %v", err)
	}
	if err := svc.AssignRoles(code); err != ErrRoomNotReady {
		t.Errorf("second AssignRoles = %v, want ErrRoomNotReady", err)
	}

	if err := svc.StartGame(code); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if err := svc.AssignRoles(code); err != ErrAlreadyStarted {
		t.Errorf("AssignRoles after start = %v, want ErrAlreadyStarted", err)
	}
}
