package feed

import (
	"testing"

	"github.com/CrestNiraj12/cardfeed/domain"
)

func TestSelection_OpenCloseTogglesLock(t *testing.T) {
	lock := &ScrollLock{}
	s := NewSelection(lock)

	s.Open(domain.Post{ID: 1})
	if !s.IsOpen() || !lock.Locked() {
		t.Fatal("open should take the lock")
	}
	if !s.Close(CloseEscape) {
		t.Fatal("close of an open selection should report true")
	}
	if s.IsOpen() || lock.Locked() {
		t.Fatal("close should release the lock")
	}
}

func TestSelection_CloseWhenClosedIsNoop(t *testing.T) {
	lock := &ScrollLock{}
	s := NewSelection(lock)
	if s.Close(CloseOutsideClick) {
		t.Fatal("closing a closed selection should report false")
	}
	if lock.Locked() {
		t.Fatal("lock should stay free")
	}
}

func TestSelection_OpenOverOpenReplacesPost(t *testing.T) {
	lock := &ScrollLock{}
	s := NewSelection(lock)
	s.Open(domain.Post{ID: 1})
	s.Open(domain.Post{ID: 2})

	p, ok := s.Current()
	if !ok || p.ID != 2 {
		t.Fatalf("expected post 2, got %v %v", p.ID, ok)
	}
	s.Close(CloseControl)
	if lock.Locked() {
		t.Fatal("one close must release a lock taken by two opens")
	}
}

func TestSelection_HoldsCopy(t *testing.T) {
	s := NewSelection(&ScrollLock{})
	p := domain.Post{ID: 1, Title: "before", Images: []domain.Image{{URL: "a"}}}
	s.Open(p)

	p.Title = "after"
	p.Images[0].URL = "b"

	got, _ := s.Current()
	if got.Title != "before" || got.Images[0].URL != "a" {
		t.Fatalf("selection should not see later edits, got %+v", got)
	}
}

func TestScrollLock_NilIsUnlocked(t *testing.T) {
	var l *ScrollLock
	if l.Locked() {
		t.Fatal("nil lock should report unlocked")
	}
	l = &ScrollLock{}
	if !l.Acquire() || l.Acquire() {
		t.Fatal("second acquire should report false")
	}
	l.Release()
	l.Release()
	if l.Locked() {
		t.Fatal("release should free the lock")
	}
}

func TestCloseReason_String(t *testing.T) {
	want := map[CloseReason]string{
		CloseEscape:       "escape",
		CloseOutsideClick: "outside-click",
		CloseControl:      "close-control",
		CloseUnmount:      "unmount",
		CloseReason(99):   "unknown",
	}
	for r, s := range want {
		if r.String() != s {
			t.Fatalf("%d: got %q want %q", int(r), r.String(), s)
		}
	}
}
