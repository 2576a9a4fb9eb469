package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matthewbaird/appforge/internal/spec"
)

// Config holds the packaging artifacts for a generated app. Dockerfile is
// empty when the spec has no backend to containerize.
type Config struct {
	PackageManifest string `json:"package_manifest"`
	EnvExample      string `json:"env_example"`
	Readme          string `json:"readme"`
	Dockerfile      string `json:"dockerfile,omitempty"`
}

// GenerateConfig assembles the package manifest, environment template, README,
// and (for backend specs) Dockerfile.
func GenerateConfig(s spec.AppSpec) Config {
	cfg := Config{
		PackageManifest: packageManifest(s),
		EnvExample:      envExample(s),
		Readme:          readme(s),
	}
	if s.HasBackend() {
		cfg.Dockerfile = dockerfile()
	}
	return cfg
}

func packageManifest(s spec.AppSpec) string {
	scripts := map[string]string{
		"dev":     "vite",
		"build":   "vite build",
		"lint":    "eslint .",
		"preview": "vite preview",
	}
	deps := map[string]string{
		"react":            "^18.2.0",
		"react-dom":        "^18.2.0",
		"react-router-dom": "^6.20.0",
		"clsx":             "^2.0.0",
		"tailwind-merge":   "^2.1.0",
	}
	devDeps := map[string]string{
		"vite":                 "^5.0.0",
		"@vitejs/plugin-react": "^4.2.0",
		"tailwindcss":          "^3.3.5",
		"postcss":              "^8.4.31",
		"autoprefixer":         "^10.4.16",
		"eslint":               "^8.53.0",
	}

	if s.HasBackend() {
		scripts["server"] = "node server/server.js"
		name, version := relationalDriver(s.Database)
		if s.Database.Document() {
			name, version = "mongoose", "^8.0.0"
		}
		deps[name] = version
	}
	if s.Auth {
		deps["@supabase/supabase-js"] = "^2.38.0"
	}
	if s.UI == spec.Shadcn {
		deps["tailwindcss-animate"] = "^1.0.7"
	}

	manifest := map[string]any{
		"name":    packageName(s.Name),
		"private": true,
		"version": "0.1.0",
		"type":    "module",
		"scripts": scripts,
		"dependencies":    deps,
		"devDependencies": devDeps,
	}
	// MarshalIndent sorts keys, so the manifest is byte-stable across runs.
	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		// All inputs are plain maps of strings; this cannot fail.
		panic(err)
	}
	return string(out) + "\n"
}

func packageName(name string) string {
	n := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if n == "" {
		return "generated-app"
	}
	return n
}

// envExample composes the template from three optional blocks, each included
// only when its governing condition holds.
func envExample(s spec.AppSpec) string {
	var blocks []string
	if s.HasBackend() {
		blocks = append(blocks, "PORT=3001\nNODE_ENV=development")
		if s.Database.Document() {
			blocks = append(blocks, "MONGODB_URI=mongodb://localhost:27017/app")
		} else {
			blocks = append(blocks, "DB_HOST=localhost\nDB_PORT=5432\nDB_NAME=app\nDB_USER=postgres\nDB_PASSWORD=")
		}
	}
	if s.Auth {
		blocks = append(blocks, "JWT_SECRET=change-me")
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func readme(s spec.AppSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", s.Name, s.Description)

	if len(s.Features) > 0 {
		b.WriteString("## Features\n\n")
		for _, f := range s.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Tech stack\n\n- Frontend: React + Vite")
	switch s.UI {
	case spec.Shadcn:
		b.WriteString(" + shadcn/ui")
	default:
		b.WriteString(" + Tailwind CSS")
	}
	b.WriteString("\n")
	if s.HasBackend() {
		fmt.Fprintf(&b, "- Backend: Node.js + Express + %s\n", s.Database)
	}
	b.WriteString(`
## Getting started

1. Install dependencies: ` + "`npm install`" + `
2. Copy ` + "`.env.example`" + ` to ` + "`.env`" + ` and fill in values
3. Start the dev server: ` + "`npm run dev`" + `
`)
	if s.HasBackend() {
		b.WriteString("4. Start the API server: `npm run server`\n")
	}
	return b.String()
}

func dockerfile() string {
	return `FROM node:20-alpine AS deps
WORKDIR /app
COPY server/package.json ./
RUN npm install --omit=dev

FROM node:20-alpine
WORKDIR /app
COPY --from=deps /app/node_modules ./node_modules
COPY server/ ./
EXPOSE 3001
CMD ["node", "server.js"]
`
}

// GenerateDeployment produces provider-specific descriptors. Providers the
// spec does not target get no entry at all.
func GenerateDeployment(s spec.AppSpec) map[string]map[string]string {
	out := make(map[string]map[string]string)
	switch s.Deployment {
	case spec.Vercel:
		out["vercel"] = map[string]string{
			"vercel.json": `{
  "buildCommand": "npm run build",
  "outputDirectory": "dist",
  "framework": "vite",
  "rewrites": [{ "source": "/(.*)", "destination": "/index.html" }]
}
`,
			".vercelignore": "node_modules\nserver\n.env\n",
		}
	case spec.Netlify:
		out["netlify"] = map[string]string{
			"netlify.toml": `[build]
  command = "npm run build"
  publish = "dist"

[[redirects]]
  from = "/*"
  to = "/index.html"
  status = 200
`,
		}
	}
	return out
}
