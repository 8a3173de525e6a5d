package history

import (
	"fmt"
	"reflect"
	"strings"

	"mailrecon/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of CheckSchema.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// models are checked in this order.
var models = []any{Run{}, MatchRow{}}

// CheckSchema compares the live tables against the history models.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		tableName := model.(interface{ TableName() string }).TableName()

		actual, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[tableName] = tbl
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			actualMap[col.Field] = col
		}

		for i := 0; i < typ.NumField(); i++ {
			tag := typ.Field(i).Tag.Get("gorm")
			colName := gormTagValue(tag, "column")
			if colName == "" {
				continue
			}

			col, ok := actualMap[colName]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, colName)
				tbl.Status = "error"
				report.Matched = false
				continue
			}

			expType := strings.ToLower(gormTagValue(tag, "type"))
			if expType != "" && !typeMatches(expType, col.Type) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

// gormTagValue returns the value of key in a gorm struct tag.
func gormTagValue(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}

// typeMatches is a soft check: the base type must appear in the actual type.
// information_schema on postgres reports long names without a length.
func typeMatches(expected, actual string) bool {
	base, _, _ := strings.Cut(expected, "(")
	if strings.Contains(actual, base) {
		return true
	}
	switch base {
	case "varchar":
		return strings.Contains(actual, "character varying")
	case "text":
		return strings.Contains(actual, "longtext") || strings.Contains(actual, "character varying")
	}
	return false
}
