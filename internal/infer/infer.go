// Package infer proposes provisional database tables from prior project
// source text. Detection is a fixed ordered list of keyword patterns, not a
// parser: the contract is "provisional suggestions", never schema correctness.
// Duplicate table names across corpus entries are preserved on purpose —
// downstream consumers tolerate them rather than this package merging
// heuristically.
package infer

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/matthewbaird/appforge/internal/corpus"
	"github.com/matthewbaird/appforge/internal/schema"
)

// SourceRecord is one corpus entry to scan.
type SourceRecord struct {
	Name       string
	SourceText string
}

// entityPattern pairs a keyword regex with the canonical table it implies.
type entityPattern struct {
	re     *regexp.Regexp
	table  string
	fields []string
}

// Ordered: earlier patterns emit earlier. users is matched too, but the
// canonical users table is prepended separately when no pattern produced one.
var entityPatterns = []entityPattern{
	{regexp.MustCompile(`(?i)\b(users?|accounts?|members?)\b`), "users", []string{"email", "password", "name", "avatar"}},
	{regexp.MustCompile(`(?i)\b(posts?|articles?|blogs?)\b`), "posts", []string{"title", "content", "author_id", "published"}},
	{regexp.MustCompile(`(?i)\b(products?|items?)\b`), "products", []string{"name", "description", "price", "image"}},
	{regexp.MustCompile(`(?i)\b(orders?|purchases?)\b`), "orders", []string{"user_id", "total", "status"}},
	{regexp.MustCompile(`(?i)\b(categor(y|ies)|tags?)\b`), "categories", []string{"name", "slug"}},
	{regexp.MustCompile(`(?i)\b(comments?|reviews?)\b`), "comments", []string{"content", "author_id", "rating"}},
}

// InferTables scans each corpus record against the pattern list. A pattern
// fires at most once per record; the same table name can still be emitted for
// several records. If no record produced a users table, the canonical one is
// prepended so generation always has an identity anchor.
func InferTables(records []SourceRecord) []schema.Table {
	var tables []schema.Table
	sawUsers := false

	for _, rec := range records {
		for _, p := range entityPatterns {
			if !p.re.MatchString(rec.SourceText) {
				continue
			}
			if p.table == "users" {
				sawUsers = true
			}
			tables = append(tables, buildTable(p))
		}
	}

	if !sawUsers {
		tables = append([]schema.Table{schema.UsersTable()}, tables...)
	}
	return tables
}

// InferFromStore reads the tenant's recent corpus and infers tables from it.
// A failed corpus read is a soft degradation: it logs and returns an empty
// list, since generation still works with zero inferred tables.
func InferFromStore(ctx context.Context, store corpus.Store, tenant string) []schema.Table {
	projects, err := store.Recent(ctx, tenant, corpus.RecentLimit)
	if err != nil {
		log.Printf("infer: corpus read failed, degrading to empty table set: %v", err)
		return nil
	}
	records := make([]SourceRecord, 0, len(projects))
	for _, p := range projects {
		records = append(records, SourceRecord{Name: p.Name, SourceText: p.SourceText})
	}
	return InferTables(records)
}

func buildTable(p entityPattern) schema.Table {
	cols := make([]schema.Column, 0, len(p.fields))
	for _, f := range p.fields {
		cols = append(cols, schema.Column{
			Name:     f,
			Type:     fieldType(f),
			Nullable: !strings.HasSuffix(f, "_id"),
		})
	}
	return schema.NewTable(p.table, cols...)
}

// fieldType infers a semantic column type from a field name.
func fieldType(name string) schema.ColumnType {
	switch {
	case strings.Contains(name, "id"):
		return schema.TypeUUID
	case name == "price" || name == "total":
		return schema.TypeDecimal
	case name == "content":
		return schema.TypeText
	default:
		return schema.TypeString
	}
}
