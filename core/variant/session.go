package variant

import (
	"asset-variants/core/asset"

	"github.com/google/uuid"
)

// Mapping records one substitution made during a session.
type Mapping struct {
	Source  string     `json:"source"`
	Variant string     `json:"variant"`
	Kind    asset.Kind `json:"kind"`
}

// Session is the scoped state of one top-level call: the substitution cache,
// the processed composite paths and the variants currently being produced.
// It is not safe for concurrent use.
type Session struct {
	id        string
	cache     map[string]asset.Asset
	processed map[string]struct{}
	inFlight  map[string]string
	mappings  []Mapping
	counts    map[asset.Kind]int
}

// NewSession creates an empty rewrite session.
func NewSession() *Session {
	s := &Session{id: uuid.NewString()}
	s.Clear()
	return s
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Get returns the variant recorded for the original path.
func (s *Session) Get(original string) (asset.Asset, bool) {
	v, ok := s.cache[original]
	return v, ok
}

// Put records the variant of original. Re-putting an existing key keeps the first mapping.
func (s *Session) Put(original asset.Asset, processed asset.Asset) {
	if _, exists := s.cache[original.Path]; exists {
		return
	}
	s.cache[original.Path] = processed
	s.mappings = append(s.mappings, Mapping{Source: original.Path, Variant: processed.Path, Kind: original.Kind})
}

// Clear drops every cached mapping and processed path.
func (s *Session) Clear() {
	s.cache = make(map[string]asset.Asset)
	s.processed = make(map[string]struct{})
	s.inFlight = make(map[string]string)
	s.counts = make(map[asset.Kind]int)
	s.mappings = nil
}

// Len returns the number of cached mappings.
func (s *Session) Len() int {
	return len(s.cache)
}

// MarkProcessed adds a composite path to the processed set.
func (s *Session) MarkProcessed(original string) {
	s.processed[original] = struct{}{}
}

// IsProcessed reports whether the composite at original was already rewritten.
func (s *Session) IsProcessed(original string) bool {
	_, ok := s.processed[original]
	return ok
}

func (s *Session) begin(original, target string) {
	s.inFlight[original] = target
}

func (s *Session) end(original string) {
	delete(s.inFlight, original)
}

func (s *Session) pending(original string) (string, bool) {
	target, ok := s.inFlight[original]
	return target, ok
}

func (s *Session) count(kind asset.Kind) {
	s.counts[kind]++
}

// Count returns how many transformations of kind ran in this session.
func (s *Session) Count(kind asset.Kind) int {
	return s.counts[kind]
}

// Counts returns a copy of the per-kind transformation counters.
func (s *Session) Counts() map[asset.Kind]int {
	out := make(map[asset.Kind]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Mappings returns the substitutions in the order they were recorded.
func (s *Session) Mappings() []Mapping {
	out := make([]Mapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// seed records a mapping produced by an earlier session of the same run.
func (s *Session) seed(m Mapping) {
	s.Put(asset.Asset{Path: m.Source, Kind: m.Kind}, asset.Asset{Path: m.Variant, Kind: m.Kind})
	if m.Kind == asset.KindComposite {
		s.MarkProcessed(m.Source)
	}
}
