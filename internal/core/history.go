package core

// History is the append-only ordered log of chat entries. It backs both
// the join-time replay and the REST history query; the two differ only
// in how many trailing entries they ask for. Like the registry it is
// mutated exclusively by the hub goroutine.
type History struct {
	entries []Entry
}

// NewHistory constructs an empty log.
func NewHistory() *History {
	return &History{}
}

// Append adds an entry at the end. Entries are never modified afterward.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
}

// Recent returns a copy of up to the last n entries, oldest first.
func (h *History) Recent(n int) []Entry {
	if n <= 0 {
		return nil
	}
	start := len(h.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Len returns the total number of appended entries.
func (h *History) Len() int {
	return len(h.entries)
}
