package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/schemescreen/internal/model"
)

// ValidateSchema checks that the Parquet schema carries a profile_id column
// and at least one profile column.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	if !columns["profile_id"] {
		return fmt.Errorf("missing required column: profile_id")
	}

	profileCols := model.ProfileColumns()
	for _, col := range profileCols {
		if columns[col] {
			return nil
		}
	}
	return fmt.Errorf("no profile columns found; need at least one of: %s",
		strings.Join(profileCols, ", "))
}
