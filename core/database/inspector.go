package database

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one row of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// GetTableColumns retrieves the column definitions of tableName.
// Field names and types are lowercased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// TableReport is the result of comparing a table against its model.
type TableReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"`
}

// Matched reports whether the table fully matches its model.
func (r TableReport) Matched() bool {
	return r.Status == "ok"
}

// InspectModel compares the live table of model with the columns declared in
// its gorm tags. Only columns with an explicit type tag are type checked.
func InspectModel(db *gorm.DB, model interface{ TableName() string }) (*TableReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &TableReport{
		Table:          model.TableName(),
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actual, err := GetTableColumns(db, report.Table)
	if err != nil {
		return nil, err
	}
	actualMap := make(map[string]ColumnInfo, len(actual))
	for _, col := range actual {
		actualMap[col.Field] = col
	}

	typ := reflect.TypeOf(model)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		name := gormSetting(tag, "column")
		if name == "" {
			continue
		}

		col, ok := actualMap[name]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, name)
			report.Status = "error"
			continue
		}

		expected := strings.ToLower(gormSetting(tag, "type"))
		if expected != "" && !strings.Contains(col.Type, expected) {
			report.TypeMismatches = append(report.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", name, expected, col.Type))
			report.Status = "error"
		}
	}
	return report, nil
}

func gormSetting(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if k, v, ok := strings.Cut(part, ":"); ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
