package feed

import (
	"log/slog"

	"github.com/CrestNiraj12/cardfeed/domain"
)

// CloseReason names what dismissed the detail overlay.
type CloseReason int

const (
	CloseEscape CloseReason = iota
	CloseOutsideClick
	CloseControl
	CloseUnmount
)

func (r CloseReason) String() string {
	switch r {
	case CloseEscape:
		return "escape"
	case CloseOutsideClick:
		return "outside-click"
	case CloseControl:
		return "close-control"
	case CloseUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// ScrollLock suppresses scrolling of the card grid while held.
type ScrollLock struct {
	held bool
}

// Acquire takes the lock. It reports false if it was already held.
func (l *ScrollLock) Acquire() bool {
	if l.held {
		return false
	}
	l.held = true
	return true
}

// Release frees the lock. Releasing a free lock is a no-op.
func (l *ScrollLock) Release() {
	l.held = false
}

// Locked reports whether grid scrolling is suppressed.
func (l *ScrollLock) Locked() bool {
	return l != nil && l.held
}

// Selection tracks the single expanded post, if any. Opening acquires
// the scroll lock and closing releases it, one to one.
type Selection struct {
	post *domain.Post
	lock *ScrollLock
}

// NewSelection returns a closed selection bound to lock.
func NewSelection(lock *ScrollLock) Selection {
	return Selection{lock: lock}
}

// Open expands p. The post is copied, so later list changes never swap
// what the overlay shows. Opening over an open selection replaces the
// post without taking the lock twice.
func (s *Selection) Open(p domain.Post) {
	if s.post == nil && s.lock != nil {
		s.lock.Acquire()
	}
	cp := p
	cp.Images = append([]domain.Image(nil), p.Images...)
	s.post = &cp
}

// Close collapses the selection and releases the scroll lock. It reports
// whether anything was open.
func (s *Selection) Close(reason CloseReason) bool {
	if s.post == nil {
		return false
	}
	slog.Debug("feed: detail closed", "post", s.post.ID, "reason", reason.String())
	s.post = nil
	if s.lock != nil {
		s.lock.Release()
	}
	return true
}

// IsOpen reports whether a post is expanded.
func (s Selection) IsOpen() bool {
	return s.post != nil
}

// Current returns the expanded post.
func (s Selection) Current() (domain.Post, bool) {
	if s.post == nil {
		return domain.Post{}, false
	}
	return *s.post, true
}
