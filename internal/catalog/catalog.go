// Package catalog holds the fixed archetype table: one canonical AppSpec per
// supported application type. Pure data — a malformed entry is a programming
// error caught by tests, not a runtime condition.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matthewbaird/appforge/internal/spec"
)

// ErrUnknownArchetype is returned by Lookup for types with no catalog entry.
var ErrUnknownArchetype = errors.New("unknown archetype")

var templates = map[spec.AppType]spec.AppSpec{
	spec.TypeSaaS: {
		Name:        "saas-starter",
		Type:        spec.TypeSaaS,
		Description: "A subscription SaaS starter with workspaces, billing hooks, and a member dashboard.",
		Features:    []string{"Team workspaces", "Subscription billing", "Usage analytics", "Email invites"},
		Pages:       []string{"Landing", "Pricing", "Dashboard", "Settings"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Shadcn,
		Deployment:  spec.Vercel,
		Mode:        spec.Fullstack,
	},
	spec.TypeBlog: {
		Name:        "blog-starter",
		Type:        spec.TypeBlog,
		Description: "A content blog with posts, categories, and an author area.",
		Features:    []string{"Markdown posts", "Categories", "Comments", "RSS feed"},
		Pages:       []string{"Home", "Blog", "Post Detail", "About"},
		Database:    spec.Postgres,
		Auth:        false,
		UI:          spec.Tailwind,
		Deployment:  spec.Netlify,
		Mode:        spec.Fullstack,
	},
	spec.TypeEcommerce: {
		Name:        "shop-starter",
		Type:        spec.TypeEcommerce,
		Description: "An online store with a product catalog, cart, and order tracking.",
		Features:    []string{"Product catalog", "Shopping cart", "Checkout", "Order history"},
		Pages:       []string{"Home", "Products", "Product Detail", "Cart", "Checkout"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Tailwind,
		Deployment:  spec.Vercel,
		Mode:        spec.Fullstack,
	},
	spec.TypeDashboard: {
		Name:        "dashboard-starter",
		Type:        spec.TypeDashboard,
		Description: "An internal analytics dashboard with stat cards and activity feeds.",
		Features:    []string{"Stat cards", "Charts", "Activity feed", "CSV export"},
		Pages:       []string{"Dashboard", "Reports", "Settings"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Shadcn,
		Deployment:  spec.Railway,
		Mode:        spec.Fullstack,
	},
	spec.TypePortfolio: {
		Name:        "portfolio-starter",
		Type:        spec.TypePortfolio,
		Description: "A personal portfolio with project showcases and a contact form.",
		Features:    []string{"Project gallery", "About section", "Contact form"},
		Pages:       []string{"Home", "Projects", "About", "Contact"},
		Database:    spec.NoDB,
		Auth:        false,
		UI:          spec.Tailwind,
		Deployment:  spec.Netlify,
		Mode:        spec.FrontendOnly,
	},
	spec.TypeCRM: {
		Name:        "crm-starter",
		Type:        spec.TypeCRM,
		Description: "A lightweight CRM with contacts, deals, and a pipeline board.",
		Features:    []string{"Contact management", "Deal pipeline", "Notes", "Reminders"},
		Pages:       []string{"Dashboard", "Contacts", "Deals", "Settings"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Shadcn,
		Deployment:  spec.Render,
		Mode:        spec.Fullstack,
	},
	spec.TypeChat: {
		Name:        "chat-starter",
		Type:        spec.TypeChat,
		Description: "A real-time chat app with rooms and message history.",
		Features:    []string{"Chat rooms", "Direct messages", "Message history", "Presence"},
		Pages:       []string{"Home", "Chat", "Settings"},
		Database:    spec.MongoDB,
		Auth:        true,
		UI:          spec.Tailwind,
		Deployment:  spec.Railway,
		Mode:        spec.Fullstack,
	},
	spec.TypeCMS: {
		Name:        "cms-starter",
		Type:        spec.TypeCMS,
		Description: "A headless-style CMS with collections, entries, and an editor area.",
		Features:    []string{"Collections", "Rich text editor", "Media library", "Draft workflow"},
		Pages:       []string{"Home", "Content", "Media", "Settings"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Tailwind,
		Deployment:  spec.Render,
		Mode:        spec.Fullstack,
	},
	spec.TypeLanding: {
		Name:        "landing-starter",
		Type:        spec.TypeLanding,
		Description: "A single-page marketing site with a hero, feature grid, and waitlist form.",
		Features:    []string{"Hero section", "Feature grid", "Testimonials", "Waitlist signup"},
		Pages:       []string{"Landing"},
		Database:    spec.NoDB,
		Auth:        false,
		UI:          spec.Tailwind,
		Deployment:  spec.Vercel,
		Mode:        spec.FrontendOnly,
	},
	spec.TypeAdmin: {
		Name:        "admin-starter",
		Type:        spec.TypeAdmin,
		Description: "An admin panel with user management and audit views.",
		Features:    []string{"User management", "Role permissions", "Audit log", "Search"},
		Pages:       []string{"Admin", "Users", "Settings"},
		Database:    spec.Postgres,
		Auth:        true,
		UI:          spec.Shadcn,
		Deployment:  spec.Railway,
		Mode:        spec.Fullstack,
	},
}

// Lookup returns the canonical AppSpec for an archetype, normalized. The slice
// fields are cloned so callers cannot mutate the catalog through the copy.
// Unknown types yield ErrUnknownArchetype and callers must not proceed to
// generation.
func Lookup(t spec.AppType) (spec.AppSpec, error) {
	tpl, ok := templates[t]
	if !ok {
		return spec.AppSpec{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, t)
	}
	tpl.Features = slices.Clone(tpl.Features)
	tpl.Pages = slices.Clone(tpl.Pages)
	return tpl.Normalized(), nil
}

// Types returns every archetype with a catalog entry, in display order.
func Types() []spec.AppType {
	out := make([]spec.AppType, 0, len(templates))
	for _, t := range spec.AppTypes() {
		if _, ok := templates[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
