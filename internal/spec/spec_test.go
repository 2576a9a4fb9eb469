package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized_Defaults(t *testing.T) {
	s := AppSpec{Name: "bare", Type: TypeBlog}.Normalized()

	assert.Equal(t, NoDB, s.Database)
	assert.Equal(t, Tailwind, s.UI)
	assert.Equal(t, NoDeploy, s.Deployment)
	assert.Equal(t, Fullstack, s.Mode)
}

func TestNormalized_FrontendModeDropsBackendAxes(t *testing.T) {
	s := AppSpec{
		Name:     "site",
		Type:     TypePortfolio,
		Database: Postgres,
		Auth:     true,
		Mode:     FrontendOnly,
	}.Normalized()

	assert.Equal(t, NoDB, s.Database)
	assert.False(t, s.Auth)
	assert.False(t, s.HasBackend())
}

func TestNormalized_BackendOnlyModeDropsFrontendAxes(t *testing.T) {
	s := AppSpec{
		Name:     "api",
		Type:     TypeSaaS,
		Database: Postgres,
		Pages:    []string{"Home", "Dashboard"},
		Features: []string{"Billing"},
		Mode:     BackendOnly,
	}.Normalized()

	assert.Empty(t, s.Pages)
	assert.Empty(t, s.Features)
	assert.True(t, s.HasBackend())
}

func TestNormalized_PreservesExplicitChoices(t *testing.T) {
	s := AppSpec{
		Name:       "shop",
		Type:       TypeEcommerce,
		Database:   MySQL,
		UI:         Shadcn,
		Deployment: Netlify,
		Mode:       Fullstack,
	}.Normalized()

	assert.Equal(t, MySQL, s.Database)
	assert.Equal(t, Shadcn, s.UI)
	assert.Equal(t, Netlify, s.Deployment)
}

func TestValidate(t *testing.T) {
	valid := AppSpec{Name: "app", Type: TypeBlog}.Normalized()
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		spec AppSpec
	}{
		{"missing name", AppSpec{Type: TypeBlog}.Normalized()},
		{"unknown type", AppSpec{Name: "x", Type: "spreadsheet"}.Normalized()},
		{"unknown database", AppSpec{Name: "x", Type: TypeBlog, Database: "oracle"}.Normalized()},
		{"unknown ui kit", AppSpec{Name: "x", Type: TypeBlog, UI: "bootstrap"}.Normalized()},
		{"unknown deployment", AppSpec{Name: "x", Type: TypeBlog, Deployment: "heroku"}.Normalized()},
		{"unknown mode", AppSpec{Name: "x", Type: TypeBlog, Mode: "hybrid"}.Normalized()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.spec.Validate())
		})
	}
}

func TestAppTypes_AllValid(t *testing.T) {
	types := AppTypes()
	require.Len(t, types, 10)
	for _, at := range types {
		assert.True(t, at.Valid(), "type %q", at)
	}
	assert.False(t, AppType("spreadsheet").Valid())
}

func TestDatabase_Dialect(t *testing.T) {
	assert.Equal(t, "postgres", Postgres.Dialect())
	assert.Equal(t, "mysql", MySQL.Dialect())
	assert.Equal(t, "sqlite", SQLite.Dialect())
}

func TestDatabase_Document(t *testing.T) {
	assert.True(t, MongoDB.Document())
	assert.False(t, Postgres.Document())
	assert.False(t, Supabase.Document())
}

func TestHasBackend(t *testing.T) {
	assert.True(t, AppSpec{Database: Postgres}.HasBackend())
	assert.False(t, AppSpec{Database: NoDB}.HasBackend())
}
