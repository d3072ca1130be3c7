package ledger

import (
	"time"

	"asset-variants/core/variant"
)

// Record is one substitution made by a run.
type Record struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID        string    `gorm:"column:run_id;type:varchar(36);index" json:"run_id"`
	Mode         string    `gorm:"column:mode;type:varchar(16)" json:"mode"`
	Root         string    `gorm:"column:root;type:varchar(512)" json:"root"`
	Source       string    `gorm:"column:source;type:varchar(512)" json:"source"`
	Variant      string    `gorm:"column:variant;type:varchar(512);index" json:"variant"`
	Kind         string    `gorm:"column:kind;type:varchar(16)" json:"kind"`
	SourceDigest string    `gorm:"column:source_digest;type:varchar(64)" json:"source_digest,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName implements gorm's tabler.
func (Record) TableName() string {
	return "variant_records"
}

// FromReport flattens report and its nested reports into records sharing the
// top-level run id. Digests are looked up by source path when given.
func FromReport(report *variant.Report, digests map[string]string) []Record {
	var records []Record
	var walk func(r *variant.Report)
	walk = func(r *variant.Report) {
		for _, m := range r.Mappings {
			records = append(records, Record{
				RunID:        report.RunID,
				Mode:         string(report.Mode),
				Root:         r.Root,
				Source:       m.Source,
				Variant:      m.Variant,
				Kind:         string(m.Kind),
				SourceDigest: digests[m.Source],
				CreatedAt:    r.FinishedAt,
			})
		}
		for _, n := range r.Nested {
			walk(n)
		}
	}
	walk(report)
	return records
}
