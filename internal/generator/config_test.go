package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/appforge/internal/spec"
)

func TestGenerateConfig_FullstackShape(t *testing.T) {
	s := blogSpec()
	cfg := GenerateConfig(s)

	assert.NotEmpty(t, cfg.PackageManifest)
	assert.NotEmpty(t, cfg.Readme)
	assert.NotEmpty(t, cfg.Dockerfile)
	assert.Contains(t, cfg.EnvExample, "DB_HOST=localhost")

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(cfg.PackageManifest), &manifest))
	assert.Equal(t, "my-blog", manifest["name"])

	deps := manifest["dependencies"].(map[string]any)
	assert.Contains(t, deps, "react")
	assert.Contains(t, deps, "pg")
	assert.NotContains(t, deps, "@supabase/supabase-js")

	scripts := manifest["scripts"].(map[string]any)
	assert.Equal(t, "node server/server.js", scripts["server"])
}

func TestGenerateConfig_FrontendOnlyShape(t *testing.T) {
	s := spec.AppSpec{
		Name: "folio",
		Type: spec.TypePortfolio,
		Mode: spec.FrontendOnly,
	}.Normalized()
	cfg := GenerateConfig(s)

	assert.Empty(t, cfg.Dockerfile)
	assert.Empty(t, cfg.EnvExample)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(cfg.PackageManifest), &manifest))
	scripts := manifest["scripts"].(map[string]any)
	assert.NotContains(t, scripts, "server")
	deps := manifest["dependencies"].(map[string]any)
	assert.NotContains(t, deps, "pg")
}

func TestGenerateConfig_ConditionalDeps(t *testing.T) {
	s := blogSpec()
	s.Auth = true
	s.UI = spec.Shadcn
	cfg := GenerateConfig(s)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(cfg.PackageManifest), &manifest))
	deps := manifest["dependencies"].(map[string]any)
	assert.Contains(t, deps, "@supabase/supabase-js")
	assert.Contains(t, deps, "tailwindcss-animate")

	assert.Contains(t, cfg.EnvExample, "JWT_SECRET=change-me")
}

func TestGenerateConfig_Readme(t *testing.T) {
	s := blogSpec()
	s.Features = []string{"Markdown posts", "RSS feed"}
	cfg := GenerateConfig(s)

	assert.Contains(t, cfg.Readme, "# my-blog")
	assert.Contains(t, cfg.Readme, "- Markdown posts")
	assert.Contains(t, cfg.Readme, "Backend: Node.js + Express + postgresql")
	assert.Contains(t, cfg.Readme, "npm run server")

	s.Mode = spec.FrontendOnly
	cfg = GenerateConfig(s.Normalized())
	assert.NotContains(t, cfg.Readme, "Backend:")
	assert.NotContains(t, cfg.Readme, "npm run server")
}

func TestGenerateConfig_Deterministic(t *testing.T) {
	s := blogSpec()
	assert.Equal(t, GenerateConfig(s), GenerateConfig(s))
}

func TestGenerateDeployment(t *testing.T) {
	s := blogSpec()

	s.Deployment = spec.Vercel
	out := GenerateDeployment(s)
	require.Contains(t, out, "vercel")
	assert.Contains(t, out["vercel"], "vercel.json")
	assert.Contains(t, out["vercel"], ".vercelignore")

	s.Deployment = spec.Netlify
	out = GenerateDeployment(s)
	require.Contains(t, out, "netlify")
	assert.Contains(t, out["netlify"]["netlify.toml"], `publish = "dist"`)

	s.Deployment = spec.NoDeploy
	assert.Empty(t, GenerateDeployment(s))

	// no descriptors exist for these targets yet
	s.Deployment = spec.Railway
	assert.Empty(t, GenerateDeployment(s))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "my-cool-app", packageName("My Cool App"))
	assert.Equal(t, "generated-app", packageName(""))
}
