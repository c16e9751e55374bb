package nav

import "math"

// Region is the scrollable area that backs a section.
type Region interface {
	// Top reports the signed distance from the top of the viewport to the
	// region's top edge. ok is false until the region has been laid out.
	Top() (offset float64, ok bool)
	// ScrollIntoView requests a smooth scroll that brings the region to the
	// top of the viewport.
	ScrollIntoView()
}

// Cause says what moved the active section.
type Cause int

const (
	CauseSelected Cause = iota
	CauseScrolled
)

func (c Cause) String() string {
	switch c {
	case CauseSelected:
		return "selected"
	case CauseScrolled:
		return "scrolled"
	default:
		return "unknown"
	}
}

// Change is emitted to subscribers whenever the active section changes.
type Change struct {
	From  string
	To    string
	Cause Cause
}

// State holds the active section. It is not safe for concurrent use; drive it
// from a single event loop.
type State struct {
	sections []Section
	regions  map[string]Region
	active   string
	subs     map[int]func(Change)
	nextSub  int
}

// NewState returns a State over sections with the first one active.
func NewState(sections []Section) *State {
	s := &State{
		sections: sections,
		regions:  make(map[string]Region, len(sections)),
		subs:     make(map[int]func(Change)),
	}
	if len(sections) > 0 {
		s.active = sections[0].ID
	}
	return s
}

// Sections returns the sections in declaration order.
func (s *State) Sections() []Section { return s.sections }

// Active returns the id of the active section.
func (s *State) Active() string { return s.active }

// Register binds a section to its region. Ids that are not part of the
// section list are ignored.
func (s *State) Register(id string, r Region) {
	if !s.known(id) || r == nil {
		return
	}
	s.regions[id] = r
}

// Unregister drops the region bound to id.
func (s *State) Unregister(id string) {
	delete(s.regions, id)
}

// Select makes id the active section and asks its region to scroll into
// view. It does nothing and returns false when id has no registered region.
func (s *State) Select(id string) bool {
	r, ok := s.regions[id]
	if !ok {
		return false
	}
	s.set(id, CauseSelected)
	r.ScrollIntoView()
	return true
}

// Sync recomputes the active section from the current region offsets. When
// no region can be measured the active section is left as it was.
func (s *State) Sync() bool {
	offsets := make([]Offset, 0, len(s.sections))
	for _, sec := range s.sections {
		o := Offset{ID: sec.ID}
		if r, ok := s.regions[sec.ID]; ok {
			o.Value, o.Measured = r.Top()
		}
		offsets = append(offsets, o)
	}
	id, ok := Closest(offsets)
	if !ok {
		return false
	}
	s.set(id, CauseScrolled)
	return true
}

// Subscribe registers fn to receive every change of the active section. The
// returned func cancels the subscription.
func (s *State) Subscribe(fn func(Change)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *State) set(id string, cause Cause) {
	if id == s.active {
		return
	}
	ch := Change{From: s.active, To: id, Cause: cause}
	s.active = id
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fn(ch)
		}
	}
}

func (s *State) known(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

// Offset is one section's measured distance from the viewport top.
type Offset struct {
	ID       string
	Value    float64
	Measured bool
}

// Closest picks the measured offset nearest the viewport top. Offsets are
// folded left with a strict comparison, so on an exact tie the earlier entry
// wins. ok is false when nothing was measured.
func Closest(offsets []Offset) (id string, ok bool) {
	best := math.Inf(1)
	for _, o := range offsets {
		if !o.Measured || math.IsNaN(o.Value) {
			continue
		}
		if d := math.Abs(o.Value); !ok || d < best {
			id, best, ok = o.ID, d, true
		}
	}
	return id, ok
}
