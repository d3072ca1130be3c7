package variant

import (
	"time"

	"asset-variants/core/asset"
)

// Mode names the kind of top-level call that produced a report.
type Mode string

const (
	ModePrefab Mode = "prefab"
	ModeScene  Mode = "scene"
	ModeFolder Mode = "folder"
)

// Report summarizes one top-level call.
type Report struct {
	RunID      string             `json:"run_id"`
	Mode       Mode               `json:"mode"`
	Root       string             `json:"root"`
	Variant    string             `json:"variant,omitempty"`
	Mappings   []Mapping          `json:"mappings"`
	Counts     map[asset.Kind]int `json:"counts"`
	Nested     []*Report          `json:"nested,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

func newReport(mode Mode, root string, sess *Session, started time.Time) *Report {
	return &Report{
		RunID:      sess.ID(),
		Mode:       mode,
		Root:       root,
		Mappings:   sess.Mappings(),
		Counts:     sess.Counts(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
}

// AllMappings returns the mappings of r followed by those of every nested report.
func (r *Report) AllMappings() []Mapping {
	out := append([]Mapping(nil), r.Mappings...)
	for _, n := range r.Nested {
		out = append(out, n.AllMappings()...)
	}
	return out
}

// Total returns how many transformations of kind ran in r and its nested reports.
func (r *Report) Total(kind asset.Kind) int {
	total := r.Counts[kind]
	for _, n := range r.Nested {
		total += n.Total(kind)
	}
	return total
}

// Duration returns the wall time of the call.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
