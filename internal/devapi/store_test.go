package devapi

import (
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/newsdesk/internal/model"
)

func TestExpireFlashNews(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := NewStore()

	on, _ := s.SaveFlashNews(model.FlashNews{Title: "on, expired", Status: model.FlashOn, ExpiresAt: model.NewTime(now.Add(-time.Minute))})
	_, _ = s.SaveFlashNews(model.FlashNews{Title: "on, live", Status: model.FlashOn, ExpiresAt: model.NewTime(now.Add(time.Minute))})
	_, _ = s.SaveFlashNews(model.FlashNews{Title: "off, expired", Status: model.FlashOff, ExpiresAt: model.NewTime(now.Add(-time.Hour))})

	got := s.ExpireFlashNews(now)
	if len(got) != 1 || got[0] != on.ID {
		t.Fatalf("ExpireFlashNews() = %v, want [%d]", got, on.ID)
	}
	if again := s.ExpireFlashNews(now); len(again) != 0 {
		t.Errorf("second pass expired %v, want nothing", again)
	}
	if off := s.ListFlashNews(string(model.FlashOff)); len(off) != 2 {
		t.Errorf("off items = %d, want 2", len(off))
	}
}

func TestTokenVersionBumps(t *testing.T) {
	s := NewStore()
	u, err := s.AddUser(model.User{Name: "A", Email: "a@example.com", Role: model.RoleEditor}, "h")
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		name string
		do   func()
		want int
	}{
		{"same status", func() { _ = s.SetUserStatus(u.ID, model.StatusActive) }, 0},
		{"deactivate", func() { _ = s.SetUserStatus(u.ID, model.StatusInactive) }, 1},
		{"profile only", func() {
			cur, _, _ := s.User(u.ID)
			cur.Name = "B"
			_, _ = s.UpdateUser(cur, "")
		}, 1},
		{"new password", func() {
			cur, _, _ := s.User(u.ID)
			_, _ = s.UpdateUser(cur, "h2")
		}, 2},
		{"rehash", func() { s.rehash(u.ID, "h3") }, 2},
	}
	for _, step := range steps {
		step.do()
		if _, v, _ := s.User(u.ID); v != step.want {
			t.Errorf("%s: version = %d, want %d", step.name, v, step.want)
		}
	}
}

func TestIPLimiterPrunesIdleVisitors(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := newIPLimiter(rate.Every(time.Hour), 1, func() time.Time { return now })

	if !l.allow("10.0.0.1") {
		t.Fatal("first request refused")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("second request allowed within burst")
	}
	if !l.allow("10.0.0.2") {
		t.Fatal("other address shares the bucket")
	}

	now = now.Add(11 * time.Minute)
	l.allow("10.0.0.3")
	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor not pruned")
	}
}
