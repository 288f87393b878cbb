package database

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Money is an exact decimal column: NUMERIC(20,10) on postgres and TEXT on
// sqlite, where a numeric column would be stored as an 8-byte float.
type Money decimal.Decimal

// Decimal returns m as a decimal.
func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return decimal.Decimal(m).String(), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value any) error {
	return (*decimal.Decimal)(m).Scan(value)
}

// GormDataType implements schema.GormDataTypeInterface.
func (Money) GormDataType() string { return "decimal" }

// GormDBDataType implements migrator.GormDataTypeInterface.
func (Money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if isSQLite(db) {
		return "text"
	}
	return "decimal(20,10)"
}

// NumericColumn returns an expression comparing column by numeric value.
// Money columns are text on sqlite and must be cast before a range check.
func NumericColumn(db *gorm.DB, column string) string {
	if isSQLite(db) {
		return "CAST(" + column + " AS NUMERIC)"
	}
	return column
}

func isSQLite(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == "sqlite"
}
