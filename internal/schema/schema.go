// Package schema defines the database and API data model shared by the
// generators: tables, columns, indexes, relations, and endpoints. Column types
// are semantic (uuid, decimal, timestamp, ...) and each generator maps them to
// its target dialect.
package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// ColumnType is the semantic type of a column, independent of any target
// database dialect.
type ColumnType string

const (
	TypeUUID      ColumnType = "uuid"
	TypeString    ColumnType = "string"
	TypeText      ColumnType = "text"
	TypeInteger   ColumnType = "integer"
	TypeDecimal   ColumnType = "decimal"
	TypeBoolean   ColumnType = "boolean"
	TypeTimestamp ColumnType = "timestamp"
	TypeArray     ColumnType = "array"
)

// Column describes a single table column.
type Column struct {
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	Nullable      bool       `json:"nullable,omitempty"`
	Default       string     `json:"default,omitempty"`
	Primary       bool       `json:"primary,omitempty"`
	Unique        bool       `json:"unique,omitempty"`
	AutoIncrement bool       `json:"auto_increment,omitempty"`
}

// Index describes a named (possibly unique) index over one or more columns.
type Index struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique,omitempty"`
}

// RelationKind enumerates the declarative relation kinds. Relations are
// advisory: not every generator materializes referential constraints.
type RelationKind string

const (
	HasOne        RelationKind = "hasOne"
	HasMany       RelationKind = "hasMany"
	BelongsTo     RelationKind = "belongsTo"
	BelongsToMany RelationKind = "belongsToMany"
)

// Relation declares a relationship to another table.
type Relation struct {
	Kind       RelationKind `json:"kind"`
	Table      string       `json:"table"`
	ForeignKey string       `json:"foreign_key"`
	LocalKey   string       `json:"local_key,omitempty"`
}

// Table is one database table definition.
type Table struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Columns   []Column   `json:"columns"`
	Indexes   []Index    `json:"indexes,omitempty"`
	Relations []Relation `json:"relations,omitempty"`
}

// PrimaryKey returns the primary column, if exactly one is marked primary.
func (t Table) PrimaryKey() (Column, bool) {
	var pk Column
	found := 0
	for _, c := range t.Columns {
		if c.Primary {
			pk = c
			found++
		}
	}
	return pk, found == 1
}

// Validate checks the table invariants: a non-empty name and exactly one
// primary column named "id".
func (t Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table %s: empty name", t.ID)
	}
	pk, ok := t.PrimaryKey()
	if !ok {
		return fmt.Errorf("table %s: expected exactly one primary column", t.Name)
	}
	if pk.Name != "id" {
		return fmt.Errorf("table %s: primary column must be named id, got %q", t.Name, pk.Name)
	}
	return nil
}

// IDColumn is the canonical primary key column every generated table carries.
func IDColumn() Column {
	return Column{Name: "id", Type: TypeUUID, Primary: true}
}

// NewTable builds a table with the canonical id primary key, the given body
// columns, and a trailing created_at timestamp.
func NewTable(name string, body ...Column) Table {
	cols := make([]Column, 0, len(body)+2)
	cols = append(cols, IDColumn())
	cols = append(cols, body...)
	cols = append(cols, Column{Name: "created_at", Type: TypeTimestamp, Default: "now"})
	return Table{
		ID:      uuid.NewString(),
		Name:    name,
		Columns: cols,
	}
}

// UsersTable is the canonical users table seeded whenever authentication is in
// play or inference finds no user entity of its own.
func UsersTable() Table {
	return Table{
		ID:   uuid.NewString(),
		Name: "users",
		Columns: []Column{
			IDColumn(),
			{Name: "email", Type: TypeString, Unique: true},
			{Name: "password", Type: TypeString},
			{Name: "name", Type: TypeString, Nullable: true},
			{Name: "created_at", Type: TypeTimestamp, Default: "now"},
			{Name: "updated_at", Type: TypeTimestamp, Default: "now"},
		},
		Indexes: []Index{
			{Name: "users_email_idx", Columns: []string{"email"}, Unique: true},
		},
	}
}

// Method is an HTTP method on an endpoint.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// Endpoint is one API endpoint the backend generator materializes as a route
// handler.
type Endpoint struct {
	ID             string         `json:"id"`
	Path           string         `json:"path"`
	Method         Method         `json:"method"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	RequestSchema  map[string]any `json:"request_schema,omitempty"`
	ResponseSchema map[string]any `json:"response_schema,omitempty"`
	Authentication bool           `json:"authentication,omitempty"`
	Middleware     []string       `json:"middleware,omitempty"`
}

// NewEndpoint builds an endpoint with a fresh ID.
func NewEndpoint(method Method, path, name string) Endpoint {
	return Endpoint{
		ID:     uuid.NewString(),
		Path:   path,
		Method: method,
		Name:   name,
	}
}
