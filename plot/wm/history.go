package wm

// History is a bounded stack of recently focused window ids. When full,
// pushing discards the oldest entry.
type History struct {
	ids  []ID
	head int
	n    int
}

// NewHistory returns an empty history holding at most capacity ids.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{ids: make([]ID, capacity)}
}

func (h *History) Len() int { return h.n }

func (h *History) Push(id ID) {
	if h.n == len(h.ids) {
		h.ids[h.head] = id
		h.head = (h.head + 1) % len(h.ids)
		return
	}
	h.ids[(h.head+h.n)%len(h.ids)] = id
	h.n++
}

// Top returns the most recent id for which alive is true, leaving it in
// place. Stale ids above it are discarded.
func (h *History) Top(alive func(ID) bool) (ID, bool) {
	for h.n > 0 {
		id := h.ids[(h.head+h.n-1)%len(h.ids)]
		if alive(id) {
			return id, true
		}
		h.n--
	}
	return None, false
}
