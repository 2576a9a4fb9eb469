package generator

import (
	"fmt"
	"strings"

	"github.com/matthewbaird/appforge/internal/schema"
	"github.com/matthewbaird/appforge/internal/spec"
)

// TablesFunc synthesizes the default tables for one archetype. Functions, not
// values, so every generation gets fresh table IDs.
type TablesFunc func() []schema.Table

// archetypeTables is the per-archetype synthesis registry. Archetypes without
// an entry get no tables beyond the default users table — intentional
// minimalism carried over from the reference behavior, made explicit and
// extensible here instead of a hardcoded switch.
var archetypeTables = map[spec.AppType]TablesFunc{
	spec.TypeBlog: func() []schema.Table {
		return []schema.Table{
			schema.NewTable("posts",
				schema.Column{Name: "title", Type: schema.TypeString},
				schema.Column{Name: "content", Type: schema.TypeText, Nullable: true},
				schema.Column{Name: "author_id", Type: schema.TypeUUID, Nullable: true},
				schema.Column{Name: "published", Type: schema.TypeBoolean, Default: "false"},
			),
			schema.NewTable("categories",
				schema.Column{Name: "name", Type: schema.TypeString},
				schema.Column{Name: "slug", Type: schema.TypeString, Unique: true},
			),
		}
	},
	spec.TypeEcommerce: func() []schema.Table {
		return []schema.Table{
			schema.NewTable("products",
				schema.Column{Name: "name", Type: schema.TypeString},
				schema.Column{Name: "description", Type: schema.TypeText, Nullable: true},
				schema.Column{Name: "price", Type: schema.TypeDecimal},
				schema.Column{Name: "image", Type: schema.TypeString, Nullable: true},
			),
			schema.NewTable("orders",
				schema.Column{Name: "user_id", Type: schema.TypeUUID},
				schema.Column{Name: "total", Type: schema.TypeDecimal},
				schema.Column{Name: "status", Type: schema.TypeString, Default: "pending"},
			),
		}
	},
	spec.TypeSaaS: func() []schema.Table {
		return []schema.Table{
			schema.NewTable("subscriptions",
				schema.Column{Name: "user_id", Type: schema.TypeUUID},
				schema.Column{Name: "plan", Type: schema.TypeString},
				schema.Column{Name: "status", Type: schema.TypeString, Default: "trialing"},
				schema.Column{Name: "current_period_end", Type: schema.TypeTimestamp, Nullable: true},
			),
			schema.NewTable("workspaces",
				schema.Column{Name: "name", Type: schema.TypeString},
				schema.Column{Name: "slug", Type: schema.TypeString, Unique: true},
				schema.Column{Name: "owner_id", Type: schema.TypeUUID},
			),
		}
	},
}

// RegisterArchetype installs (or overrides) table synthesis for an archetype.
func RegisterArchetype(t spec.AppType, fn TablesFunc) {
	archetypeTables[t] = fn
}

// tablesFor synthesizes the backend tables for a spec: the archetype's
// registered tables, with a users table merged in front when auth is on.
func tablesFor(s spec.AppSpec) []schema.Table {
	var tables []schema.Table
	if fn, ok := archetypeTables[s.Type]; ok {
		tables = fn()
	}
	if s.Auth && !hasTable(tables, "users") {
		tables = append([]schema.Table{schema.UsersTable()}, tables...)
	}
	return tables
}

func hasTable(tables []schema.Table, name string) bool {
	for _, t := range tables {
		if t.Name == name {
			return true
		}
	}
	return false
}

// endpointsFor derives the standard CRUD endpoint set for each table. Mutating
// endpoints require authentication when the spec enables auth.
func endpointsFor(tables []schema.Table, auth bool) []schema.Endpoint {
	var out []schema.Endpoint
	for _, t := range tables {
		base := "/" + t.Name
		single := modelName(t.Name)
		list := schema.NewEndpoint(schema.GET, base, "list"+single+"s")
		get := schema.NewEndpoint(schema.GET, base+"/:id", "get"+single)
		create := schema.NewEndpoint(schema.POST, base, "create"+single)
		update := schema.NewEndpoint(schema.PUT, base+"/:id", "update"+single)
		del := schema.NewEndpoint(schema.DELETE, base+"/:id", "delete"+single)
		for i, e := range []schema.Endpoint{list, get, create, update, del} {
			e.Description = fmt.Sprintf("%s %s", strings.ToLower(string(e.Method)), e.Path)
			// index 0 and 1 are reads; the rest mutate
			if auth && i >= 2 {
				e.Authentication = true
				e.Middleware = []string{"auth"}
			}
			out = append(out, e)
		}
	}
	return out
}
