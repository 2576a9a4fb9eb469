package generator

import (
	"fmt"
	"strings"

	"github.com/matthewbaird/appforge/internal/schema"
	"github.com/matthewbaird/appforge/internal/spec"
)

// Migration emits a CREATE TABLE definition with column constraints and index
// statements for relational targets. Document stores have no DDL; they get a
// comment placeholder instead.
func Migration(t schema.Table, d spec.Database) string {
	if d.Document() {
		return fmt.Sprintf("-- %s is a document collection; mongoose creates it on first write.\n", t.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
	lines := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		lines = append(lines, "  "+columnDDL(c, d))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")

	for _, idx := range t.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		fmt.Fprintf(&b, "CREATE %sINDEX %s ON %s (%s);\n",
			unique, idx.Name, t.Name, strings.Join(idx.Columns, ", "))
	}
	return b.String()
}

func columnDDL(c schema.Column, d spec.Database) string {
	parts := []string{c.Name, sqlType(c.Type, d)}
	if c.Primary {
		parts = append(parts, "PRIMARY KEY")
	}
	if c.AutoIncrement {
		parts = append(parts, "GENERATED ALWAYS AS IDENTITY")
	}
	if c.Unique && !c.Primary {
		parts = append(parts, "UNIQUE")
	}
	if !c.Nullable && !c.Primary {
		parts = append(parts, "NOT NULL")
	}
	if c.Default == "now" {
		parts = append(parts, "DEFAULT CURRENT_TIMESTAMP")
	} else if c.Default != "" {
		parts = append(parts, fmt.Sprintf("DEFAULT '%s'", c.Default))
	}
	return strings.Join(parts, " ")
}

func sqlType(ct schema.ColumnType, d spec.Database) string {
	switch ct {
	case schema.TypeUUID:
		if d == spec.MySQL || d == spec.SQLite {
			return "CHAR(36)"
		}
		return "UUID"
	case schema.TypeString:
		return "VARCHAR(255)"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeDecimal:
		return "DECIMAL(10, 2)"
	case schema.TypeBoolean:
		return "BOOLEAN"
	case schema.TypeTimestamp:
		return "TIMESTAMP"
	case schema.TypeArray:
		if d == spec.Postgres || d == spec.Supabase {
			return "TEXT[]"
		}
		return "TEXT"
	default:
		return "VARCHAR(255)"
	}
}
