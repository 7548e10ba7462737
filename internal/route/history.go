package route

import "slices"

// Navigator is what views get instead of global location state.
type Navigator interface {
	Current() string
	Push(path string)
	Replace(path string)
	Back() bool
	Forward() bool
	CanBack() bool
	CanForward() bool
}

// History is an in-memory browser-style history. Push drops any forward
// entries; Replace overwrites the current entry so it never becomes a
// back or forward target.
type History struct {
	entries []string
	index   int
}

func NewHistory(initial string) *History {
	if initial == "" {
		initial = ListPath
	}
	return &History{entries: []string{initial}}
}

func (h *History) Current() string {
	return h.entries[h.index]
}

func (h *History) Push(path string) {
	if path == h.Current() {
		return
	}
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

func (h *History) Replace(path string) {
	h.entries[h.index] = path
}

func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

func (h *History) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

func (h *History) CanBack() bool    { return h.index > 0 }
func (h *History) CanForward() bool { return h.index < len(h.entries)-1 }
func (h *History) Len() int         { return len(h.entries) }

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}
