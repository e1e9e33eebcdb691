/*
Package container implements GENtle's pool view: a Container groups the
seq_ids produced together by a pool-producing operation (digest, merge,
ligation enumeration, mw filter), bounded by max_fragments_per_container.

New code in the teacher's idiom (flat exported structs, a map-backed
state keyed by id, no hidden globals) since the teacher has no pooling
concept of its own; modelled directly on spec.md §3/§4.5's Container and
"reconciled after load" rules.
*/
package container

import "fmt"

// Kind names what kind of operation produced a container.
type Kind string

const (
	KindDigest   Kind = "Digest"
	KindMerge    Kind = "Merge"
	KindLigation Kind = "Ligation"
	KindMWFilter Kind = "MWFilter"
	KindPcr      Kind = "Pcr"
)

// Container is an ordered pool of sequence ids. The first member is the
// pool's representative (spec.md §3).
type Container struct {
	ContainerID string   `json:"containerId"`
	Kind        Kind     `json:"kind"`
	Members     []string `json:"members"`
}

// Representative returns the pool's first member, or "" if empty.
func (c Container) Representative() string {
	if len(c.Members) == 0 {
		return ""
	}
	return c.Members[0]
}

// State owns every container created so far, keyed by container id.
type State struct {
	Containers map[string]Container `json:"containers"`
	nextID     int                  `json:"-"`
}

// New returns an empty container state.
func New() *State {
	return &State{Containers: make(map[string]Container)}
}

// Create registers a container for members, failing if members would
// exceed maxFragments. kind records which operation produced the pool;
// members must already be in their desired display order.
func (s *State) Create(kind Kind, members []string, maxFragments int) (Container, error) {
	if len(members) > maxFragments {
		return Container{}, fmt.Errorf("container: %d members exceeds max_fragments_per_container (%d)", len(members), maxFragments)
	}
	s.nextID++
	c := Container{
		ContainerID: fmt.Sprintf("container-%d", s.nextID),
		Kind:        kind,
		Members:     append([]string(nil), members...),
	}
	if s.Containers == nil {
		s.Containers = make(map[string]Container)
	}
	s.Containers[c.ContainerID] = c
	return c, nil
}

// Get returns a container by id.
func (s *State) Get(id string) (Container, bool) {
	c, ok := s.Containers[id]
	return c, ok
}

// Reconcile rebuilds s.nextID from the highest existing "container-N" id
// suffix, used after a project load so subsequently created containers
// never collide with ones restored from disk.
func (s *State) Reconcile() {
	max := 0
	for id := range s.Containers {
		var n int
		if _, err := fmt.Sscanf(id, "container-%d", &n); err == nil && n > max {
			max = n
		}
	}
	s.nextID = max
}
