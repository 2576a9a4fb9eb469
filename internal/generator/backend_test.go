package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/appforge/internal/schema"
	"github.com/matthewbaird/appforge/internal/spec"
)

func blogProject(db spec.Database, auth bool) BackendProject {
	tables := []schema.Table{
		schema.NewTable("posts",
			schema.Column{Name: "title", Type: schema.TypeString},
			schema.Column{Name: "content", Type: schema.TypeText, Nullable: true},
		),
		schema.NewTable("categories",
			schema.Column{Name: "name", Type: schema.TypeString},
			schema.Column{Name: "slug", Type: schema.TypeString, Unique: true},
		),
	}
	return BackendProject{
		Name:           "my-blog",
		Database:       db,
		Tables:         tables,
		Endpoints:      endpointsFor(tables, auth),
		Authentication: auth,
	}
}

func TestGenerateBackend_SeedsUsersTable(t *testing.T) {
	out, delegated := GenerateBackend(blogProject(spec.Postgres, false))
	assert.False(t, delegated)

	assert.Contains(t, out.Files, "models/users.js")
	assert.Contains(t, out.Files, "models/posts.js")
	assert.Contains(t, out.Files, "models/categories.js")

	// with no tables at all, users is still there
	out, _ = GenerateBackend(BackendProject{Name: "bare", Database: spec.Postgres})
	assert.Contains(t, out.Files, "models/users.js")
}

func TestGenerateBackend_RelationalStack(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, false))

	db := out.Files["config/database.js"]
	assert.Contains(t, db, "Sequelize")
	assert.Contains(t, db, "dialect: 'postgres'")

	model := out.Files["models/posts.js"]
	assert.Contains(t, model, "sequelize.define('Post'")
	assert.Contains(t, model, "DataTypes.UUID")
	assert.Contains(t, model, "defaultValue: DataTypes.UUIDV4")
	assert.Contains(t, model, "tableName: 'posts'")

	assert.Contains(t, out.Dependencies, "sequelize")
	assert.Contains(t, out.Dependencies, "pg")
	assert.NotContains(t, out.Dependencies, "mongoose")
}

func TestGenerateBackend_DocumentStack(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.MongoDB, false))

	assert.Contains(t, out.Files["config/database.js"], "mongoose.connect")

	model := out.Files["models/posts.js"]
	assert.Contains(t, model, "new mongoose.Schema")
	// mongoose supplies _id; the semantic primary key is not re-declared
	assert.NotContains(t, model, "id: {")

	assert.Contains(t, out.Dependencies, "mongoose")
	assert.NotContains(t, out.Dependencies, "sequelize")

	// no DDL for document stores
	for p := range out.Files {
		assert.NotContains(t, p, "migrations/")
	}
}

func TestGenerateBackend_DriverPerDatabase(t *testing.T) {
	cases := []struct {
		db     spec.Database
		driver string
	}{
		{spec.Postgres, "pg"},
		{spec.Supabase, "pg"},
		{spec.MySQL, "mysql2"},
		{spec.SQLite, "sqlite3"},
	}
	for _, tc := range cases {
		out, _ := GenerateBackend(blogProject(tc.db, false))
		assert.Contains(t, out.Dependencies, tc.driver, "database %q", tc.db)
	}
}

func TestGenerateBackend_Routes(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, false))

	routes := out.Files["routes/posts.js"]
	assert.Contains(t, routes, "router.get('/'")
	assert.Contains(t, routes, "router.get('/:id'")
	assert.Contains(t, routes, "router.post('/'")
	assert.Contains(t, routes, "router.put('/:id'")
	assert.Contains(t, routes, "router.delete('/:id'")
	assert.Contains(t, routes, "res.status(201)")
	assert.Contains(t, routes, "res.status(404)")
	assert.Contains(t, routes, "res.status(204)")
	assert.Contains(t, routes, "findByPk")
	assert.NotContains(t, routes, "authenticate")

	server := out.Files["server.js"]
	assert.Contains(t, server, "app.use('/api/posts', require('./routes/posts'))")
	assert.Contains(t, server, "app.use('/api/categories', require('./routes/categories'))")
}

func TestGenerateBackend_AuthGating(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, true))

	assert.Contains(t, out.Files, "middleware/auth.js")
	routes := out.Files["routes/posts.js"]
	assert.Contains(t, routes, "const authenticate = require('../middleware/auth')")
	assert.Contains(t, routes, "router.post('/', authenticate,")
	assert.Contains(t, routes, "router.delete('/:id', authenticate,")
	// reads stay open
	assert.Contains(t, routes, "router.get('/', async")

	noAuth, _ := GenerateBackend(blogProject(spec.Postgres, false))
	assert.NotContains(t, noAuth.Files, "middleware/auth.js")
}

func TestGenerateBackend_Migrations(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, false))

	// users is seeded in front, so it owns the first migration
	require.Contains(t, out.Files, "migrations/001_create_users.sql")
	require.Contains(t, out.Files, "migrations/002_create_posts.sql")
	require.Contains(t, out.Files, "migrations/003_create_categories.sql")

	users := out.Files["migrations/001_create_users.sql"]
	assert.Contains(t, users, "CREATE TABLE users (")
	assert.Contains(t, users, "id UUID PRIMARY KEY")
	assert.Contains(t, users, "email VARCHAR(255) UNIQUE NOT NULL")
	assert.Contains(t, users, "CREATE UNIQUE INDEX users_email_idx ON users (email);")

	posts := out.Files["migrations/002_create_posts.sql"]
	assert.Contains(t, posts, "content TEXT")
	assert.Contains(t, posts, "created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP")
}

func TestGenerateBackend_OpenAPIDocument(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, true))

	doc := out.Files["docs/openapi.json"]
	assert.Contains(t, doc, `"openapi": "3.1.0"`)
	assert.Contains(t, doc, `"/posts/:id"`)
	assert.Contains(t, doc, `"bearerAuth"`)
}

func TestGenerateBackend_EnvExample(t *testing.T) {
	out, _ := GenerateBackend(blogProject(spec.Postgres, true))
	env := out.Files[".env.example"]
	assert.Contains(t, env, "PORT=3001")
	assert.Contains(t, env, "DB_HOST=localhost")
	assert.Contains(t, env, "JWT_SECRET=")

	out, _ = GenerateBackend(blogProject(spec.MongoDB, false))
	env = out.Files[".env.example"]
	assert.Contains(t, env, "MONGODB_URI=")
	assert.NotContains(t, env, "JWT_SECRET=")
}

func TestStrategyFor_Delegation(t *testing.T) {
	for _, f := range []spec.Framework{spec.Fastify, spec.NestJS, spec.Koa} {
		strat, delegated := StrategyFor(f)
		assert.True(t, delegated, "framework %q", f)
		assert.Equal(t, "express", strat.Name())
	}

	_, delegated := StrategyFor(spec.Express)
	assert.False(t, delegated)
	_, delegated = StrategyFor("")
	assert.False(t, delegated)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "Post", modelName("posts"))
	assert.Equal(t, "Category", modelName("categories"))
	assert.Equal(t, "User", modelName("users"))
	assert.Equal(t, "Order", modelName("orders"))
}

func TestEndpointGroups(t *testing.T) {
	endpoints := []schema.Endpoint{
		schema.NewEndpoint(schema.GET, "/posts", "listPosts"),
		schema.NewEndpoint(schema.GET, "/api/posts/:id", "getPost"),
		schema.NewEndpoint(schema.POST, "/comments", "createComment"),
	}
	groups := endpointGroups(endpoints)
	require.Len(t, groups, 2)
	assert.Equal(t, "posts", groups[0].segment)
	assert.Len(t, groups[0].endpoints, 2)
	assert.Equal(t, "comments", groups[1].segment)
}

func TestSubPath(t *testing.T) {
	assert.Equal(t, "/", subPath("/posts", "posts"))
	assert.Equal(t, "/:id", subPath("/posts/:id", "posts"))
	assert.Equal(t, "/:id", subPath("/api/posts/:id", "posts"))
}
