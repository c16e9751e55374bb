package nav

import (
	"math"
	"testing"
)

type fakeRegion struct {
	top      float64
	measured bool
	scrolls  int
}

func (r *fakeRegion) Top() (float64, bool) { return r.top, r.measured }
func (r *fakeRegion) ScrollIntoView()      { r.scrolls++ }

func newTestState(t *testing.T) (*State, map[string]*fakeRegion) {
	t.Helper()
	s := NewState(Sections)
	regions := make(map[string]*fakeRegion, len(Sections))
	for _, sec := range Sections {
		r := &fakeRegion{}
		regions[sec.ID] = r
		s.Register(sec.ID, r)
	}
	return s, regions
}

func TestNewStateStartsOnFirstSection(t *testing.T) {
	s := NewState(Sections)
	if s.Active() != "about" {
		t.Fatalf("expected initial active section about, got %q", s.Active())
	}
}

func TestSelectEverySection(t *testing.T) {
	for _, sec := range Sections {
		t.Run(sec.ID, func(t *testing.T) {
			s, regions := newTestState(t)
			if !s.Select(sec.ID) {
				t.Fatalf("Select(%q) returned false", sec.ID)
			}
			if s.Active() != sec.ID {
				t.Errorf("active = %q, want %q", s.Active(), sec.ID)
			}
			for id, r := range regions {
				want := 0
				if id == sec.ID {
					want = 1
				}
				if r.scrolls != want {
					t.Errorf("region %q scrolled %d times, want %d", id, r.scrolls, want)
				}
			}
		})
	}
}

func TestSelectUnregisteredIsNoop(t *testing.T) {
	s := NewState(Sections)
	events := 0
	s.Subscribe(func(Change) { events++ })

	if s.Select("skills") {
		t.Fatal("expected Select without a region to return false")
	}
	if s.Select("blog") {
		t.Fatal("expected Select of unknown id to return false")
	}
	if s.Active() != "about" {
		t.Errorf("active changed to %q", s.Active())
	}
	if events != 0 {
		t.Errorf("expected no change events, got %d", events)
	}
}

func TestRegisterIgnoresUnknownSection(t *testing.T) {
	s := NewState(Sections)
	r := &fakeRegion{}
	s.Register("blog", r)
	if s.Select("blog") {
		t.Fatal("unknown section should not become selectable")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s, regions := newTestState(t)
	var got []Change
	cancel := s.Subscribe(func(c Change) { got = append(got, c) })

	s.Select("projects")
	s.Select("projects")
	regions["contact"].measured = true
	regions["contact"].top = 0
	s.Sync()

	want := []Change{
		{From: "about", To: "projects", Cause: CauseSelected},
		{From: "projects", To: "contact", Cause: CauseScrolled},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	cancel()
	s.Select("about")
	if len(got) != len(want) {
		t.Errorf("cancelled subscriber still notified")
	}
}

func TestSyncPicksClosestToTop(t *testing.T) {
	tests := []struct {
		name string
		tops []float64
		want string
	}{
		{"top of page", []float64{0, 600, 1200, 1800, 2400}, "about"},
		{"between about and skills", []float64{-400, 200, 800, 1400, 2000}, "skills"},
		{"scrolled past everything", []float64{-2400, -1800, -1200, -600, -10}, "contact"},
		{"negative closer than positive", []float64{-900, -50, 70, 700, 1300}, "skills"},
		{"exact tie keeps first declared", []float64{-300, 300, 900, 1500, 2100}, "about"},
		{"tie in the middle", []float64{-1000, -250, 250, 800, 1400}, "skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, regions := newTestState(t)
			for i, sec := range Sections {
				regions[sec.ID].top = tt.tops[i]
				regions[sec.ID].measured = true
			}
			if !s.Sync() {
				t.Fatal("Sync returned false with measured regions")
			}
			if s.Active() != tt.want {
				t.Errorf("active = %q, want %q", s.Active(), tt.want)
			}
		})
	}
}

func TestSyncWithoutMeasurementsKeepsActive(t *testing.T) {
	s, _ := newTestState(t)
	s.Select("experience")
	if s.Sync() {
		t.Fatal("expected Sync to report no recomputation")
	}
	if s.Active() != "experience" {
		t.Errorf("active = %q, want experience", s.Active())
	}
}

func TestClosestSkipsUnmeasured(t *testing.T) {
	id, ok := Closest([]Offset{
		{ID: "about"},
		{ID: "skills", Value: 500, Measured: true},
		{ID: "projects", Value: math.NaN(), Measured: true},
		{ID: "experience", Value: -20, Measured: true},
	})
	if !ok || id != "experience" {
		t.Fatalf("Closest = %q, %v; want experience, true", id, ok)
	}

	if _, ok := Closest(nil); ok {
		t.Error("expected no result for empty offsets")
	}
}

func TestLookup(t *testing.T) {
	sec, ok := Lookup("experience")
	if !ok || sec.Label != "Experience" {
		t.Fatalf("Lookup(experience) = %+v, %v", sec, ok)
	}
	if _, ok := Lookup("blog"); ok {
		t.Error("expected unknown id to miss")
	}
}
