package actor

// HistoryCapacity is the number of past states kept per body
const HistoryCapacity = 100

// State is the 13 scalar encoding of a body's kinematic state:
// [px,py,pz, vx,vy,vz, qw,qx,qy,qz, wx,wy,wz]
type State [13]float64

// History is a fixed-capacity FIFO of states backed by a ring buffer.
// Pushing onto a full history evicts the oldest entry.
type History struct {
	buf  [HistoryCapacity]State
	head int // index of the oldest entry
	size int
}

// Push appends s, evicting the oldest state when full
func (h *History) Push(s State) {
	if h.size < HistoryCapacity {
		h.buf[(h.head+h.size)%HistoryCapacity] = s
		h.size++
		return
	}
	h.buf[h.head] = s
	h.head = (h.head + 1) % HistoryCapacity
}

func (h *History) Len() int {
	return h.size
}

func (h *History) Cap() int {
	return HistoryCapacity
}

// At returns the i-th state, 0 being the oldest
func (h *History) At(i int) State {
	if i < 0 || i >= h.size {
		panic("actor: history index out of range")
	}
	return h.buf[(h.head+i)%HistoryCapacity]
}

// Last returns a copy of the newest state
func (h *History) Last() (State, bool) {
	if h.size == 0 {
		return State{}, false
	}
	return h.At(h.size - 1), true
}

// Window copies the n newest states, oldest first. It returns fewer states
// when the history holds less than n, and none for a negative n.
func (h *History) Window(n int) []State {
	n = max(0, min(n, h.size))
	out := make([]State, n)
	for i := range n {
		out[i] = h.At(h.size - n + i)
	}
	return out
}

// Snapshot copies the whole history, oldest first
func (h *History) Snapshot() []State {
	return h.Window(h.size)
}

func (h *History) Clear() {
	h.head = 0
	h.size = 0
}
