// Package generator synthesizes complete application source trees from an
// AppSpec: a frontend file map, an optional backend file map, packaging and
// deployment artifacts, and the orchestration that composes them. Every entry
// point is a pure function of its inputs — no shared mutable state, so
// concurrent generations need no coordination.
package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matthewbaird/appforge/internal/spec"
)

// GenerateFrontend produces the single-page-application shell for a spec:
// entry HTML, bootstrap module, root component with one route per page, a
// stylesheet variant chosen by UI kit, a class-merge utility, and build
// configuration. Auth pages and the dashboard shell are emitted conditionally.
func GenerateFrontend(s spec.AppSpec) map[string]string {
	if s.Mode == spec.BackendOnly {
		// Auth still shapes the backend; the frontend shell stays bare.
		s.Auth = false
	}

	files := make(map[string]string)

	files["index.html"] = frontendIndexHTML(s)
	files["src/main.jsx"] = frontendMain
	files["src/App.jsx"] = frontendApp(s)
	files["src/index.css"] = frontendStylesheet(s.UI)
	files["src/lib/utils.js"] = frontendUtils
	files["vite.config.js"] = frontendViteConfig
	files["tailwind.config.js"] = frontendTailwindConfig(s.UI)

	for _, page := range s.Pages {
		files["src/pages/"+pageComponent(page)+".jsx"] = pageFile(s, page)
	}

	if s.Auth {
		files["src/context/AuthContext.jsx"] = frontendAuthContext
		files["src/pages/Login.jsx"] = frontendLoginPage
		files["src/pages/Register.jsx"] = frontendRegisterPage
	}

	if s.Type == spec.TypeDashboard || s.Type == spec.TypeCRM {
		files["src/components/DashboardLayout.jsx"] = frontendDashboardLayout(s)
	}

	return files
}

// pageComponent converts a page display name into a component/file name:
// "Post Detail" -> "PostDetail".
func pageComponent(page string) string {
	parts := strings.Fields(page)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// pageRoute converts a page display name into a route path. The first page of
// a spec is mounted at "/" by the root component, so this only handles the
// generic slug form: "Post Detail" -> "/post-detail".
func pageRoute(page string) string {
	return "/" + strings.ToLower(strings.Join(strings.Fields(page), "-"))
}

func frontendIndexHTML(s spec.AppSpec) string {
	return `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>` + s.Name + `</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`
}

const frontendMain = `import React from 'react'
import ReactDOM from 'react-dom/client'
import App from './App.jsx'
import './index.css'

ReactDOM.createRoot(document.getElementById('root')).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>,
)
`

func frontendApp(s spec.AppSpec) string {
	var b strings.Builder
	b.WriteString("import { BrowserRouter, Routes, Route } from 'react-router-dom'\n")
	for _, page := range s.Pages {
		name := pageComponent(page)
		fmt.Fprintf(&b, "import %s from './pages/%s.jsx'\n", name, name)
	}
	if s.Auth {
		b.WriteString("import Login from './pages/Login.jsx'\n")
		b.WriteString("import Register from './pages/Register.jsx'\n")
		b.WriteString("import { AuthProvider } from './context/AuthContext.jsx'\n")
	}
	b.WriteString("\nexport default function App() {\n  return (\n")
	indent := "    "
	if s.Auth {
		b.WriteString("    <AuthProvider>\n")
		indent = "      "
	}
	b.WriteString(indent + "<BrowserRouter>\n" + indent + "  <Routes>\n")
	for i, page := range s.Pages {
		name := pageComponent(page)
		route := pageRoute(page)
		if i == 0 {
			route = "/"
		}
		fmt.Fprintf(&b, "%s    <Route path=\"%s\" element={<%s />} />\n", indent, route, name)
	}
	if s.Auth {
		fmt.Fprintf(&b, "%s    <Route path=\"/login\" element={<Login />} />\n", indent)
		fmt.Fprintf(&b, "%s    <Route path=\"/register\" element={<Register />} />\n", indent)
	}
	b.WriteString(indent + "  </Routes>\n" + indent + "</BrowserRouter>\n")
	if s.Auth {
		b.WriteString("    </AuthProvider>\n")
	}
	b.WriteString("  )\n}\n")
	return b.String()
}

// frontendStylesheet picks between the two stylesheet variants: shadcn gets
// CSS-custom-property design tokens; every other kit gets the utility-first
// sheet.
func frontendStylesheet(ui spec.UIKit) string {
	if ui == spec.Shadcn {
		return shadcnStylesheet
	}
	return tailwindStylesheet
}

const tailwindStylesheet = `@tailwind base;
@tailwind components;
@tailwind utilities;

body {
  @apply bg-gray-50 text-gray-900 antialiased;
}

.btn {
  @apply inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium;
}

.btn-primary {
  @apply bg-indigo-600 text-white hover:bg-indigo-500;
}

.card {
  @apply rounded-lg border border-gray-200 bg-white p-6 shadow-sm;
}
`

const shadcnStylesheet = `@tailwind base;
@tailwind components;
@tailwind utilities;

@layer base {
  :root {
    --background: 0 0% 100%;
    --foreground: 222.2 84% 4.9%;
    --primary: 222.2 47.4% 11.2%;
    --primary-foreground: 210 40% 98%;
    --muted: 210 40% 96.1%;
    --muted-foreground: 215.4 16.3% 46.9%;
    --border: 214.3 31.8% 91.4%;
    --radius: 0.5rem;
  }

  .dark {
    --background: 222.2 84% 4.9%;
    --foreground: 210 40% 98%;
    --primary: 210 40% 98%;
    --primary-foreground: 222.2 47.4% 11.2%;
    --muted: 217.2 32.6% 17.5%;
    --muted-foreground: 215 20.2% 65.1%;
    --border: 217.2 32.6% 17.5%;
  }
}

@layer base {
  * {
    border-color: hsl(var(--border));
  }
  body {
    background-color: hsl(var(--background));
    color: hsl(var(--foreground));
  }
}
`

const frontendUtils = `import { clsx } from 'clsx'
import { twMerge } from 'tailwind-merge'

export function cn(...inputs) {
  return twMerge(clsx(inputs))
}
`

const frontendViteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
  server: {
    proxy: {
      '/api': 'http://localhost:3001',
    },
  },
})
`

func frontendTailwindConfig(ui spec.UIKit) string {
	plugins := "[]"
	if ui == spec.Shadcn {
		plugins = `[require('tailwindcss-animate')]`
	}
	return `/** @type {import('tailwindcss').Config} */
export default {
  content: ['./index.html', './src/**/*.{js,jsx}'],
  theme: {
    extend: {},
  },
  plugins: ` + plugins + `,
}
`
}

// pageFile selects the page template. Selection is by exact, case-sensitive
// match against two literals — a deliberate simplification, not a classifier:
// Landing/Home get the marketing template, Dashboard/Admin the metrics one,
// everything else the placeholder.
func pageFile(s spec.AppSpec, page string) string {
	switch page {
	case "Landing", "Home":
		return landingPage(s, page)
	case "Dashboard", "Admin":
		return metricsPage(s, page)
	default:
		return placeholderPage(page)
	}
}

func landingPage(s spec.AppSpec, page string) string {
	var features strings.Builder
	for _, f := range s.Features {
		fmt.Fprintf(&features, `        <div className="card">
          <h3 className="text-lg font-semibold">%s</h3>
          <p className="mt-2 text-sm text-gray-600">Everything you need, out of the box.</p>
        </div>
`, f)
	}
	return fmt.Sprintf(`export default function %s() {
  return (
    <div className="min-h-screen">
      <section className="mx-auto max-w-5xl px-6 py-24 text-center">
        <h1 className="text-5xl font-bold tracking-tight">%s</h1>
        <p className="mx-auto mt-6 max-w-2xl text-lg text-gray-600">%s</p>
        <a href="#get-started" className="btn btn-primary mt-10">Get started</a>
      </section>
      <section className="mx-auto grid max-w-5xl gap-6 px-6 pb-24 sm:grid-cols-2 lg:grid-cols-3">
%s      </section>
    </div>
  )
}
`, pageComponent(page), s.Name, s.Description, features.String())
}

func metricsPage(s spec.AppSpec, page string) string {
	return fmt.Sprintf(`const stats = [
  { label: 'Total users', value: '1,284' },
  { label: 'Active today', value: '312' },
  { label: 'Revenue', value: '$8,420' },
  { label: 'Open issues', value: '7' },
]

const activity = [
  { id: 1, text: 'New signup', when: '2m ago' },
  { id: 2, text: 'Payment received', when: '1h ago' },
  { id: 3, text: 'Report exported', when: '3h ago' },
]

export default function %s() {
  return (
    <div className="p-8">
      <h1 className="text-2xl font-bold">%s</h1>
      <div className="mt-6 grid gap-4 sm:grid-cols-2 lg:grid-cols-4">
        {stats.map((s) => (
          <div key={s.label} className="card">
            <p className="text-sm text-gray-500">{s.label}</p>
            <p className="mt-1 text-2xl font-semibold">{s.value}</p>
          </div>
        ))}
      </div>
      <div className="card mt-8">
        <h2 className="text-lg font-semibold">Recent activity</h2>
        <ul className="mt-4 divide-y">
          {activity.map((a) => (
            <li key={a.id} className="flex justify-between py-3 text-sm">
              <span>{a.text}</span>
              <span className="text-gray-400">{a.when}</span>
            </li>
          ))}
        </ul>
      </div>
    </div>
  )
}
`, pageComponent(page), page)
}

func placeholderPage(page string) string {
	return fmt.Sprintf(`export default function %s() {
  return (
    <div className="mx-auto max-w-4xl px-6 py-16">
      <h1 className="text-3xl font-bold">%s</h1>
      <p className="mt-4 text-gray-600">This page was scaffolded for you. Build it out.</p>
    </div>
  )
}
`, pageComponent(page), page)
}

const frontendAuthContext = `import { createContext, useContext, useEffect, useState } from 'react'

const AuthContext = createContext(null)

export function AuthProvider({ children }) {
  const [user, setUser] = useState(null)
  const [loading, setLoading] = useState(true)

  useEffect(() => {
    fetch('/api/auth/me', { credentials: 'include' })
      .then((res) => (res.ok ? res.json() : null))
      .then((data) => setUser(data))
      .finally(() => setLoading(false))
  }, [])

  async function login(email, password) {
    const res = await fetch('/api/auth/login', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ email, password }),
    })
    if (!res.ok) throw new Error('login failed')
    const data = await res.json()
    setUser(data.user)
    return data.user
  }

  async function register(email, password, name) {
    const res = await fetch('/api/auth/register', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ email, password, name }),
    })
    if (!res.ok) throw new Error('registration failed')
    const data = await res.json()
    setUser(data.user)
    return data.user
  }

  function logout() {
    setUser(null)
  }

  return (
    <AuthContext.Provider value={{ user, loading, login, register, logout }}>
      {children}
    </AuthContext.Provider>
  )
}

export function useAuth() {
  return useContext(AuthContext)
}
`

const frontendLoginPage = `import { useState } from 'react'
import { useAuth } from '../context/AuthContext.jsx'

export default function Login() {
  const { login } = useAuth()
  const [email, setEmail] = useState('')
  const [password, setPassword] = useState('')
  const [error, setError] = useState(null)

  async function onSubmit(e) {
    e.preventDefault()
    try {
      await login(email, password)
      window.location.href = '/'
    } catch (err) {
      setError('Invalid email or password')
    }
  }

  return (
    <div className="mx-auto max-w-sm px-6 py-24">
      <h1 className="text-2xl font-bold">Sign in</h1>
      <form onSubmit={onSubmit} className="mt-8 space-y-4">
        <input
          type="email"
          value={email}
          onChange={(e) => setEmail(e.target.value)}
          placeholder="Email"
          className="w-full rounded-md border px-3 py-2"
        />
        <input
          type="password"
          value={password}
          onChange={(e) => setPassword(e.target.value)}
          placeholder="Password"
          className="w-full rounded-md border px-3 py-2"
        />
        {error && <p className="text-sm text-red-600">{error}</p>}
        <button type="submit" className="btn btn-primary w-full">Sign in</button>
      </form>
      <p className="mt-4 text-sm text-gray-600">
        No account? <a href="/register" className="underline">Register</a>
      </p>
    </div>
  )
}
`

const frontendRegisterPage = `import { useState } from 'react'
import { useAuth } from '../context/AuthContext.jsx'

export default function Register() {
  const { register } = useAuth()
  const [name, setName] = useState('')
  const [email, setEmail] = useState('')
  const [password, setPassword] = useState('')
  const [error, setError] = useState(null)

  async function onSubmit(e) {
    e.preventDefault()
    try {
      await register(email, password, name)
      window.location.href = '/'
    } catch (err) {
      setError('Registration failed')
    }
  }

  return (
    <div className="mx-auto max-w-sm px-6 py-24">
      <h1 className="text-2xl font-bold">Create an account</h1>
      <form onSubmit={onSubmit} className="mt-8 space-y-4">
        <input
          value={name}
          onChange={(e) => setName(e.target.value)}
          placeholder="Name"
          className="w-full rounded-md border px-3 py-2"
        />
        <input
          type="email"
          value={email}
          onChange={(e) => setEmail(e.target.value)}
          placeholder="Email"
          className="w-full rounded-md border px-3 py-2"
        />
        <input
          type="password"
          value={password}
          onChange={(e) => setPassword(e.target.value)}
          placeholder="Password"
          className="w-full rounded-md border px-3 py-2"
        />
        {error && <p className="text-sm text-red-600">{error}</p>}
        <button type="submit" className="btn btn-primary w-full">Register</button>
      </form>
    </div>
  )
}
`

func frontendDashboardLayout(s spec.AppSpec) string {
	var links strings.Builder
	for i, page := range s.Pages {
		route := pageRoute(page)
		if i == 0 {
			route = "/"
		}
		fmt.Fprintf(&links, "          <a href=\"%s\" className=\"block rounded-md px-3 py-2 text-sm hover:bg-gray-100\">%s</a>\n", route, page)
	}
	return fmt.Sprintf(`export default function DashboardLayout({ children }) {
  return (
    <div className="flex min-h-screen">
      <aside className="w-60 border-r bg-white p-4">
        <div className="px-3 py-2 text-lg font-bold">%s</div>
        <nav className="mt-4 space-y-1">
%s        </nav>
      </aside>
      <div className="flex-1">
        <header className="flex h-14 items-center justify-between border-b bg-white px-6">
          <span className="text-sm text-gray-500">Dashboard</span>
        </header>
        <main>{children}</main>
      </div>
    </div>
  )
}
`, s.Name, links.String())
}

// sortedPaths returns the keys of a file map in stable order. Generators
// return maps; anything that needs deterministic iteration sorts first.
func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
