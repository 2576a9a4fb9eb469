package generator

import (
	"fmt"
	"strings"

	"github.com/matthewbaird/appforge/internal/schema"
	"github.com/matthewbaird/appforge/internal/spec"
)

// BackendProject is the input to backend generation. Tables and Endpoints are
// synthesized by the orchestrator (or supplied directly by a caller); an empty
// table list is seeded with the canonical users table so generated servers
// always have an identity model.
type BackendProject struct {
	Name           string
	Framework      spec.Framework
	Database       spec.Database
	Tables         []schema.Table
	Endpoints      []schema.Endpoint
	Authentication bool
	Port           int
}

// BackendOutput is a generated server tree plus its package metadata.
type BackendOutput struct {
	Files           map[string]string `json:"files"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// BackendStrategy generates a server tree for one framework family.
type BackendStrategy interface {
	Name() string
	Generate(p BackendProject) BackendOutput
}

// StrategyFor selects the strategy for a framework tag. Only Express has a
// dedicated strategy today; every other tag delegates to it, and the second
// return reports that delegation so callers are never silently misled about
// what was generated.
func StrategyFor(f spec.Framework) (BackendStrategy, bool) {
	if f == spec.Express || f == "" {
		return expressStrategy{}, false
	}
	return expressStrategy{}, true
}

// GenerateBackend applies defaults, picks the framework strategy, and
// generates the server tree. The delegated return mirrors StrategyFor.
func GenerateBackend(p BackendProject) (BackendOutput, bool) {
	if p.Port == 0 {
		p.Port = 3001
	}
	if !hasTable(p.Tables, "users") {
		// The generated server always gets an identity model, even when the
		// caller supplied no users table of its own.
		p.Tables = append([]schema.Table{schema.UsersTable()}, p.Tables...)
	}
	strat, delegated := StrategyFor(p.Framework)
	return strat.Generate(p), delegated
}

// ─── Express strategy ────────────────────────────────────────────────────────

type expressStrategy struct{}

func (expressStrategy) Name() string { return "express" }

func (expressStrategy) Generate(p BackendProject) BackendOutput {
	files := make(map[string]string)

	files["server.js"] = expressServer(p)
	files["config/database.js"] = expressDatabaseConfig(p.Database)
	for _, t := range p.Tables {
		files["models/"+t.Name+".js"] = expressModel(t, p.Database)
	}
	for _, group := range endpointGroups(p.Endpoints) {
		files["routes/"+group.segment+".js"] = expressRoutes(group, p)
	}
	if p.Authentication {
		files["middleware/auth.js"] = expressAuthMiddleware
	}
	files["middleware/errorHandler.js"] = expressErrorHandler
	files[".env.example"] = expressEnvExample(p)

	if !p.Database.Document() {
		for i, t := range p.Tables {
			files[fmt.Sprintf("migrations/%03d_create_%s.sql", i+1, t.Name)] = Migration(t, p.Database)
		}
	}
	files["docs/openapi.json"] = apiDocsJSON(p.Endpoints)

	deps := map[string]string{
		"express":      "^4.18.2",
		"cors":         "^2.8.5",
		"dotenv":       "^16.3.1",
		"bcryptjs":     "^2.4.3",
		"jsonwebtoken": "^9.0.2",
	}
	if p.Database.Document() {
		deps["mongoose"] = "^8.0.0"
	} else {
		deps["sequelize"] = "^6.35.0"
		name, version := relationalDriver(p.Database)
		deps[name] = version
	}

	return BackendOutput{
		Files:           files,
		Dependencies:    deps,
		DevDependencies: map[string]string{"nodemon": "^3.0.1"},
		Scripts: map[string]string{
			"start": "node server.js",
			"dev":   "nodemon server.js",
		},
	}
}

func relationalDriver(d spec.Database) (string, string) {
	switch d {
	case spec.MySQL:
		return "mysql2", "^3.6.0"
	case spec.SQLite:
		return "sqlite3", "^5.1.6"
	default:
		// postgresql and supabase both speak the postgres wire protocol
		return "pg", "^8.11.3"
	}
}

// endpointGroup is all endpoints sharing a first path segment; each group
// becomes one route file mounted under /api/<segment>.
type endpointGroup struct {
	segment   string
	endpoints []schema.Endpoint
}

func endpointGroups(endpoints []schema.Endpoint) []endpointGroup {
	var order []string
	bySegment := make(map[string][]schema.Endpoint)
	for _, e := range endpoints {
		seg := firstSegment(e.Path)
		if seg == "" {
			continue
		}
		if _, seen := bySegment[seg]; !seen {
			order = append(order, seg)
		}
		bySegment[seg] = append(bySegment[seg], e)
	}
	groups := make([]endpointGroup, 0, len(order))
	for _, seg := range order {
		groups = append(groups, endpointGroup{segment: seg, endpoints: bySegment[seg]})
	}
	return groups
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/api")
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// modelName converts a table/segment name to its model identifier:
// "categories" -> "Category", "posts" -> "Post".
func modelName(table string) string {
	name := table
	switch {
	case strings.HasSuffix(name, "ies"):
		name = name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "s"):
		name = name[:len(name)-1]
	}
	if name == "" {
		return "Model"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func expressServer(p BackendProject) string {
	var b strings.Builder
	b.WriteString(`require('dotenv').config()
const express = require('express')
const cors = require('cors')
const { connectDatabase } = require('./config/database')
const errorHandler = require('./middleware/errorHandler')

const app = express()

app.use(cors())
app.use(express.json())

`)
	for _, group := range endpointGroups(p.Endpoints) {
		fmt.Fprintf(&b, "app.use('/api/%s', require('./routes/%s'))\n", group.segment, group.segment)
	}
	fmt.Fprintf(&b, `
app.get('/health', (req, res) => {
  res.json({ status: 'ok' })
})

app.use((req, res) => {
  res.status(404).json({ error: 'not found' })
})

app.use(errorHandler)

const port = process.env.PORT || %d

connectDatabase().then(() => {
  app.listen(port, () => {
    console.log('%s listening on port ' + port)
  })
})
`, p.Port, p.Name)
	return b.String()
}

func expressDatabaseConfig(d spec.Database) string {
	if d.Document() {
		return `const mongoose = require('mongoose')

async function connectDatabase() {
  const uri = process.env.MONGODB_URI || 'mongodb://localhost:27017/app'
  await mongoose.connect(uri)
  console.log('connected to mongodb')
}

module.exports = { connectDatabase, mongoose }
`
	}
	return fmt.Sprintf(`const { Sequelize } = require('sequelize')

const sequelize = new Sequelize(
  process.env.DB_NAME || 'app',
  process.env.DB_USER || 'postgres',
  process.env.DB_PASSWORD || '',
  {
    host: process.env.DB_HOST || 'localhost',
    port: process.env.DB_PORT || 5432,
    dialect: '%s',
    logging: false,
  }
)

async function connectDatabase() {
  await sequelize.authenticate()
  await sequelize.sync()
  console.log('database connection established')
}

module.exports = { connectDatabase, sequelize }
`, d.Dialect())
}

// expressModel emits one model file for a table, branching on database family.
func expressModel(t schema.Table, d spec.Database) string {
	if d.Document() {
		return mongooseModel(t)
	}
	return sequelizeModel(t)
}

// documentType maps a semantic column type to its mongoose schema type.
func documentType(ct schema.ColumnType) string {
	s := string(ct)
	switch {
	case strings.HasPrefix(s, "int"):
		return "Number"
	case ct == schema.TypeDecimal:
		return "Number"
	case strings.HasPrefix(s, "bool"):
		return "Boolean"
	case strings.HasPrefix(s, "date"), ct == schema.TypeTimestamp:
		return "Date"
	case strings.HasPrefix(s, "array"):
		return "[String]"
	default:
		return "String"
	}
}

func mongooseModel(t schema.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const mongoose = require('mongoose')\n\nconst %sSchema = new mongoose.Schema({\n", lowerFirst(modelName(t.Name)))
	for _, c := range t.Columns {
		if c.Primary {
			continue // mongoose supplies _id
		}
		fmt.Fprintf(&b, "  %s: {\n    type: %s,\n", c.Name, documentType(c.Type))
		if !c.Nullable {
			b.WriteString("    required: true,\n")
		}
		if c.Unique {
			b.WriteString("    unique: true,\n")
		}
		if c.Default != "" && c.Default != "now" {
			fmt.Fprintf(&b, "    default: %q,\n", c.Default)
		}
		b.WriteString("  },\n")
	}
	b.WriteString("}, { timestamps: true })\n")
	for _, idx := range t.Indexes {
		fields := make([]string, 0, len(idx.Columns))
		for _, col := range idx.Columns {
			fields = append(fields, col+": 1")
		}
		fmt.Fprintf(&b, "\n%sSchema.index({ %s }%s)\n",
			lowerFirst(modelName(t.Name)), strings.Join(fields, ", "), uniqueOption(idx.Unique))
	}
	fmt.Fprintf(&b, "\nmodule.exports = mongoose.model('%s', %sSchema)\n", modelName(t.Name), lowerFirst(modelName(t.Name)))
	return b.String()
}

func uniqueOption(unique bool) string {
	if unique {
		return ", { unique: true }"
	}
	return ""
}

// relationalType maps a semantic column type to its Sequelize DataTypes name.
func relationalType(ct schema.ColumnType) string {
	switch ct {
	case schema.TypeUUID:
		return "DataTypes.UUID"
	case schema.TypeText:
		return "DataTypes.TEXT"
	case schema.TypeInteger:
		return "DataTypes.INTEGER"
	case schema.TypeDecimal:
		return "DataTypes.DECIMAL(10, 2)"
	case schema.TypeBoolean:
		return "DataTypes.BOOLEAN"
	case schema.TypeTimestamp:
		return "DataTypes.DATE"
	case schema.TypeArray:
		return "DataTypes.JSON"
	default:
		return "DataTypes.STRING"
	}
}

func sequelizeModel(t schema.Table) string {
	var b strings.Builder
	b.WriteString("const { DataTypes } = require('sequelize')\nconst { sequelize } = require('../config/database')\n\n")
	fmt.Fprintf(&b, "const %s = sequelize.define('%s', {\n", modelName(t.Name), modelName(t.Name))
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "  %s: {\n    type: %s,\n", c.Name, relationalType(c.Type))
		if c.Primary {
			b.WriteString("    primaryKey: true,\n")
			if c.Type == schema.TypeUUID {
				b.WriteString("    defaultValue: DataTypes.UUIDV4,\n")
			}
		}
		if c.AutoIncrement {
			b.WriteString("    autoIncrement: true,\n")
		}
		if c.Unique {
			b.WriteString("    unique: true,\n")
		}
		if !c.Nullable && !c.Primary {
			b.WriteString("    allowNull: false,\n")
		}
		if c.Default == "now" {
			b.WriteString("    defaultValue: DataTypes.NOW,\n")
		} else if c.Default != "" {
			fmt.Fprintf(&b, "    defaultValue: %q,\n", c.Default)
		}
		b.WriteString("  },\n")
	}
	b.WriteString("}, {\n  tableName: '" + t.Name + "',\n  underscored: true,\n")
	if len(t.Indexes) > 0 {
		b.WriteString("  indexes: [\n")
		for _, idx := range t.Indexes {
			cols := make([]string, 0, len(idx.Columns))
			for _, col := range idx.Columns {
				cols = append(cols, "'"+col+"'")
			}
			fmt.Fprintf(&b, "    { name: '%s', fields: [%s], unique: %t },\n", idx.Name, strings.Join(cols, ", "), idx.Unique)
		}
		b.WriteString("  ],\n")
	}
	b.WriteString("})\n\nmodule.exports = " + modelName(t.Name) + "\n")
	return b.String()
}

// expressRoutes emits one route file for an endpoint group. Every endpoint
// becomes a fixed CRUD skeleton keyed by method and the presence of an :id
// path parameter.
func expressRoutes(group endpointGroup, p BackendProject) string {
	model := modelName(group.segment)
	var b strings.Builder
	b.WriteString("const express = require('express')\nconst router = express.Router()\n")
	fmt.Fprintf(&b, "const %s = require('../models/%s')\n", model, group.segment)
	if groupNeedsAuth(group) && p.Authentication {
		b.WriteString("const authenticate = require('../middleware/auth')\n")
	}
	b.WriteString("\n")

	finder := "findByPk"
	if p.Database.Document() {
		finder = "findById"
	}

	for _, e := range group.endpoints {
		sub := subPath(e.Path, group.segment)
		guard := ""
		if e.Authentication && p.Authentication {
			guard = "authenticate, "
		}
		hasID := strings.Contains(e.Path, ":id")
		switch {
		case e.Method == schema.GET && hasID:
			fmt.Fprintf(&b, `router.get('%s', %sasync (req, res, next) => {
  try {
    const record = await %s.%s(req.params.id)
    if (!record) return res.status(404).json({ error: '%s not found' })
    res.json(record)
  } catch (err) {
    next(err)
  }
})

`, sub, guard, model, finder, model)
		case e.Method == schema.GET:
			fmt.Fprintf(&b, `router.get('%s', %sasync (req, res, next) => {
  try {
    const records = await %s.%s()
    res.json(records)
  } catch (err) {
    next(err)
  }
})

`, sub, guard, model, listCall(p.Database))
		case e.Method == schema.POST:
			fmt.Fprintf(&b, `router.post('%s', %sasync (req, res, next) => {
  try {
    const record = await %s.create(req.body)
    res.status(201).json(record)
  } catch (err) {
    next(err)
  }
})

`, sub, guard, model)
		case e.Method == schema.PUT || e.Method == schema.PATCH:
			fmt.Fprintf(&b, `router.%s('%s', %sasync (req, res, next) => {
  try {
    const record = await %s.%s(req.params.id)
    if (!record) return res.status(404).json({ error: '%s not found' })
    await record.%s(req.body)
    res.json(record)
  } catch (err) {
    next(err)
  }
})

`, strings.ToLower(string(e.Method)), sub, guard, model, finder, model, updateCall(p.Database))
		case e.Method == schema.DELETE:
			fmt.Fprintf(&b, `router.delete('%s', %sasync (req, res, next) => {
  try {
    const record = await %s.%s(req.params.id)
    if (!record) return res.status(404).json({ error: '%s not found' })
    await record.%s()
    res.status(204).end()
  } catch (err) {
    next(err)
  }
})

`, sub, guard, model, finder, model, deleteCall(p.Database))
		}
	}
	b.WriteString("module.exports = router\n")
	return b.String()
}

func groupNeedsAuth(group endpointGroup) bool {
	for _, e := range group.endpoints {
		if e.Authentication {
			return true
		}
	}
	return false
}

func listCall(d spec.Database) string {
	if d.Document() {
		return "find"
	}
	return "findAll"
}

func updateCall(d spec.Database) string {
	if d.Document() {
		return "updateOne"
	}
	return "update"
}

func deleteCall(d spec.Database) string {
	if d.Document() {
		return "deleteOne"
	}
	return "destroy"
}

// subPath strips the mount prefix from an endpoint path: the group router is
// mounted at /api/<segment>, so "/posts/:id" becomes "/:id".
func subPath(path, segment string) string {
	path = strings.TrimPrefix(path, "/api")
	path = strings.TrimPrefix(path, "/"+segment)
	if path == "" {
		return "/"
	}
	return path
}

const expressAuthMiddleware = `const jwt = require('jsonwebtoken')

module.exports = function authenticate(req, res, next) {
  const header = req.headers.authorization || ''
  const token = header.startsWith('Bearer ') ? header.slice(7) : null
  if (!token) {
    return res.status(401).json({ error: 'missing bearer token' })
  }
  try {
    req.user = jwt.verify(token, process.env.JWT_SECRET)
    next()
  } catch (err) {
    res.status(401).json({ error: 'invalid token' })
  }
}
`

const expressErrorHandler = `module.exports = function errorHandler(err, req, res, next) {
  if (err.name === 'ValidationError' || err.name === 'SequelizeValidationError') {
    return res.status(400).json({ error: err.message })
  }
  if (err.name === 'UnauthorizedError') {
    return res.status(401).json({ error: err.message })
  }
  const body = { error: 'internal server error' }
  if (process.env.NODE_ENV === 'development') {
    body.stack = err.stack
  }
  res.status(500).json(body)
}
`

func expressEnvExample(p BackendProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PORT=%d\nNODE_ENV=development\n", p.Port)
	if p.Database.Document() {
		b.WriteString("\nMONGODB_URI=mongodb://localhost:27017/app\n")
	} else {
		b.WriteString("\nDB_HOST=localhost\nDB_PORT=5432\nDB_NAME=app\nDB_USER=postgres\nDB_PASSWORD=\n")
	}
	if p.Authentication {
		b.WriteString("\nJWT_SECRET=change-me\n")
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
