package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/appforge/internal/spec"
)

func blogSpec() spec.AppSpec {
	return spec.AppSpec{
		Name:        "my-blog",
		Type:        spec.TypeBlog,
		Description: "A place for words.",
		Pages:       []string{"Home", "Blog", "Post Detail"},
		Database:    spec.Postgres,
		UI:          spec.Tailwind,
		Mode:        spec.Fullstack,
	}.Normalized()
}

func TestGenerateFrontend_FileSet(t *testing.T) {
	files := GenerateFrontend(blogSpec())

	fixed := []string{
		"index.html", "src/main.jsx", "src/App.jsx", "src/index.css",
		"src/lib/utils.js", "vite.config.js", "tailwind.config.js",
	}
	for _, p := range fixed {
		assert.Contains(t, files, p)
	}
	assert.Contains(t, files, "src/pages/Home.jsx")
	assert.Contains(t, files, "src/pages/Blog.jsx")
	assert.Contains(t, files, "src/pages/PostDetail.jsx")
	assert.Len(t, files, len(fixed)+3)

	// no auth, so no auth surface
	assert.NotContains(t, files, "src/pages/Login.jsx")
	assert.NotContains(t, files, "src/context/AuthContext.jsx")
}

func TestGenerateFrontend_Routes(t *testing.T) {
	files := GenerateFrontend(blogSpec())
	app := files["src/App.jsx"]

	// first page mounts at the root, the rest at their slugs
	assert.Contains(t, app, `<Route path="/" element={<Home />} />`)
	assert.Contains(t, app, `<Route path="/blog" element={<Blog />} />`)
	assert.Contains(t, app, `<Route path="/post-detail" element={<PostDetail />} />`)
	assert.Contains(t, app, "import PostDetail from './pages/PostDetail.jsx'")
	assert.NotContains(t, app, "AuthProvider")
}

func TestGenerateFrontend_AuthSurface(t *testing.T) {
	s := blogSpec()
	s.Auth = true
	files := GenerateFrontend(s)

	assert.Contains(t, files, "src/context/AuthContext.jsx")
	assert.Contains(t, files, "src/pages/Login.jsx")
	assert.Contains(t, files, "src/pages/Register.jsx")

	app := files["src/App.jsx"]
	assert.Contains(t, app, "<AuthProvider>")
	assert.Contains(t, app, `<Route path="/login" element={<Login />} />`)
	assert.Contains(t, app, `<Route path="/register" element={<Register />} />`)
}

func TestGenerateFrontend_BackendOnlySkipsAuthSurface(t *testing.T) {
	s := spec.AppSpec{
		Name:     "api",
		Type:     spec.TypeSaaS,
		Database: spec.Postgres,
		Auth:     true,
		Mode:     spec.BackendOnly,
	}.Normalized()
	files := GenerateFrontend(s)

	assert.NotContains(t, files, "src/context/AuthContext.jsx")
	assert.NotContains(t, files, "src/pages/Login.jsx")
	assert.NotContains(t, files, "src/pages/Register.jsx")
	assert.NotContains(t, files["src/App.jsx"], "AuthProvider")
}

func TestGenerateFrontend_DashboardShell(t *testing.T) {
	s := spec.AppSpec{
		Name:  "panel",
		Type:  spec.TypeDashboard,
		Pages: []string{"Dashboard", "Reports"},
	}.Normalized()

	files := GenerateFrontend(s)
	require.Contains(t, files, "src/components/DashboardLayout.jsx")
	assert.Contains(t, files["src/components/DashboardLayout.jsx"], `<a href="/"`)

	blog := GenerateFrontend(blogSpec())
	assert.NotContains(t, blog, "src/components/DashboardLayout.jsx")
}

func TestGenerateFrontend_StylesheetVariants(t *testing.T) {
	s := blogSpec()
	files := GenerateFrontend(s)
	assert.Contains(t, files["src/index.css"], "@tailwind base")
	assert.Contains(t, files["tailwind.config.js"], "plugins: []")

	s.UI = spec.Shadcn
	files = GenerateFrontend(s)
	assert.Contains(t, files["src/index.css"], "--background")
	assert.Contains(t, files["tailwind.config.js"], "tailwindcss-animate")
}

func TestGenerateFrontend_PageTemplates(t *testing.T) {
	s := spec.AppSpec{
		Name:        "launchpad",
		Type:        spec.TypeLanding,
		Description: "Ship faster.",
		Features:    []string{"Fast builds"},
		Pages:       []string{"Landing", "Dashboard", "Contact"},
	}.Normalized()
	files := GenerateFrontend(s)

	// Landing gets the marketing hero with the app name and features
	landing := files["src/pages/Landing.jsx"]
	assert.Contains(t, landing, "launchpad")
	assert.Contains(t, landing, "Fast builds")

	// Dashboard gets the metrics template
	assert.Contains(t, files["src/pages/Dashboard.jsx"], "Recent activity")

	// anything else gets the placeholder
	assert.Contains(t, files["src/pages/Contact.jsx"], "scaffolded for you")
}

func TestPageComponent(t *testing.T) {
	assert.Equal(t, "PostDetail", pageComponent("Post Detail"))
	assert.Equal(t, "Home", pageComponent("Home"))
	assert.Equal(t, "About", pageComponent("about"))
}

func TestPageRoute(t *testing.T) {
	assert.Equal(t, "/post-detail", pageRoute("Post Detail"))
	assert.Equal(t, "/about", pageRoute("About"))
}
