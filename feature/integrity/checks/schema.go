package checks

import (
	"fmt"

	"asset-variants/core/database"
	"asset-variants/core/ledger"

	"gorm.io/gorm"
)

// SchemaReport is the result of checking the ledger schema.
type SchemaReport struct {
	Matched bool                            `json:"matched"`
	Tables  map[string]database.TableReport `json:"tables"`
	Errors  []string                        `json:"errors"`
}

// CheckSchema verifies the ledger tables against their gorm models.
// Inspection failures are reported per table rather than aborting the check.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]database.TableReport),
		Errors:  []string{},
	}

	for _, model := range []interface{ TableName() string }{ledger.Record{}} {
		table, err := database.InspectModel(db, model)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", model.TableName(), err))
			report.Matched = false
			continue
		}
		if !table.Matched() {
			report.Matched = false
		}
		report.Tables[table.Table] = *table
	}

	return report, nil
}
