package core

import "strconv"

// Member is a connection currently occupying one of the room slots.
type Member struct {
	Client *Client
	Name   string
}

// Registry tracks admitted members in insertion order and enforces the
// capacity limit. It carries no locking of its own: the hub goroutine is
// its only caller.
type Registry struct {
	max     int
	members []*Member
}

// NewRegistry constructs an empty registry with the given capacity.
func NewRegistry(max int) *Registry {
	return &Registry{max: max}
}

// Admit inserts the client as a new member, assigning its display name
// from the current occupancy ("Friend 1", "Friend 2", ...). Returns
// ErrRoomFull without mutating anything when no slot is free.
//
// Names are recomputed from the current size, not a monotonic counter,
// so a number freed by a departure can be handed out again.
func (r *Registry) Admit(c *Client) (*Member, error) {
	if len(r.members) >= r.max {
		return nil, ErrRoomFull
	}
	m := &Member{
		Client: c,
		Name:   "Friend " + strconv.Itoa(len(r.members)+1),
	}
	r.members = append(r.members, m)
	return m, nil
}

// Remove deletes the member with the given connection id. Reports false
// when no such member exists; repeated calls are harmless.
func (r *Registry) Remove(id string) (*Member, bool) {
	for i, m := range r.members {
		if m.Client.ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return m, true
		}
	}
	return nil, false
}

// Find looks up a member by connection id without mutating anything.
func (r *Registry) Find(id string) (*Member, bool) {
	for _, m := range r.members {
		if m.Client.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Names returns the current display names in admission order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.Name)
	}
	return names
}

// Size returns the number of current members.
func (r *Registry) Size() int {
	return len(r.members)
}

// Max returns the capacity limit.
func (r *Registry) Max() int {
	return r.max
}
