package compiler

import "github.com/google/uuid"

// Snapshot is the running record of which parameter names are known to each
// control kind within one generation session. It is append-only with a
// uniqueness index; the compiler owns and mutates it for the session and
// nothing persists it. A shared snapshot must be driven by a single writer —
// there is no internal locking.
type Snapshot struct {
	sessionID string
	kinds     map[string]Kind
	sliders   []string
	dropdowns []string
}

// NewSnapshot returns an empty snapshot for a fresh session.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		sessionID: uuid.NewString(),
		kinds:     make(map[string]Kind),
	}
}

// Stock parameter lists of the host editor. Order matters: membership lists
// are emitted in this order so they are directly pasteable over the host's
// existing arrays.
var (
	stockSliders = []string{
		"gaindb", "pitch", "panpos", "dualfilcutoff", "res", "envattack",
		"envdecay", "envsus", "envrel", "lforate", "lfoamount", "samstart",
		"samlen", "loopstart", "loopend", "loopfadeamt", "actslice",
		"grainsizeperc", "grainscat", "grainpanrnd", "graindensity",
		"grainreadspeed", "gainssrcwin", "rootnote", "fx1send", "fx2send",
	}
	stockDropdowns = []string{
		"cellmode", "loopmodes", "loopmode", "samtrigtype", "polymode",
		"lfowave", "lfokeytrig", "lfobeatsync", "lforatebeatsync",
		"midimode", "reverse", "outputbus", "chokegrp", "slicestepmode",
	}
)

// DefaultSnapshot returns a snapshot seeded with the host editor's stock
// parameter catalogue.
func DefaultSnapshot() *Snapshot {
	s := NewSnapshot()
	for _, name := range stockSliders {
		s.add(name, KindContinuous)
	}
	for _, name := range stockDropdowns {
		s.add(name, KindEnumerated)
	}
	return s
}

// SessionID identifies the generation session, for host log correlation.
func (s *Snapshot) SessionID() string { return s.sessionID }

// Lookup reports the kind a name is registered under, if any.
func (s *Snapshot) Lookup(name string) (Kind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Members returns a copy of the ordered name list for a kind.
func (s *Snapshot) Members(k Kind) []string {
	var src []string
	if k == KindEnumerated {
		src = s.dropdowns
	} else {
		src = s.sliders
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// add appends a name under a kind unless already present. Kind conflicts are
// rejected earlier, in descriptor validation.
func (s *Snapshot) add(name string, k Kind) {
	if _, ok := s.kinds[name]; ok {
		return
	}
	s.kinds[name] = k
	if k == KindEnumerated {
		s.dropdowns = append(s.dropdowns, name)
	} else {
		s.sliders = append(s.sliders, name)
	}
}

// membership builds the four host views. The host maintains two independent
// registries (listener wiring and modal population) that both need the same
// lists, so each kind's pair must stay byte-identical.
func (s *Snapshot) membership() Membership {
	return Membership{
		ListenerSliders:   s.Members(KindContinuous),
		ListenerDropdowns: s.Members(KindEnumerated),
		ModalSliders:      s.Members(KindContinuous),
		ModalDropdowns:    s.Members(KindEnumerated),
	}
}
