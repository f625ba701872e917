package memory

import (
	"novasalud/internal/domain/entity"

	"github.com/google/uuid"
)

// notificationRing is a fixed-capacity log where the newest entry sits at head.
// Pushing onto a full ring overwrites the oldest entry.
type notificationRing struct {
	buf  []*entity.Notification
	head int
	size int
}

func newNotificationRing(capacity int) *notificationRing {
	if capacity <= 0 {
		capacity = 1
	}

	return &notificationRing{buf: make([]*entity.Notification, capacity)}
}

func (r *notificationRing) capacity() int {
	return len(r.buf)
}

func (r *notificationRing) push(n *entity.Notification) {
	r.head = (r.head - 1 + len(r.buf)) % len(r.buf)
	r.buf[r.head] = n
	if r.size < len(r.buf) {
		r.size++
	}
}

// items returns the entries newest first.
func (r *notificationRing) items() []*entity.Notification {
	out := make([]*entity.Notification, 0, r.size)
	for i := range r.size {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}

	return out
}

func (r *notificationRing) find(id uuid.UUID) *entity.Notification {
	for i := range r.size {
		if n := r.buf[(r.head+i)%len(r.buf)]; n.ID == id {
			return n
		}
	}

	return nil
}

func (r *notificationRing) clear() {
	clear(r.buf)
	r.head = 0
	r.size = 0
}

func (r *notificationRing) clone() *notificationRing {
	cloned := &notificationRing{
		buf:  make([]*entity.Notification, len(r.buf)),
		head: r.head,
		size: r.size,
	}
	for i, n := range r.buf {
		if n != nil {
			copied := *n
			cloned.buf[i] = &copied
		}
	}

	return cloned
}
