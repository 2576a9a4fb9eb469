// Package spec defines AppSpec, the declarative description of a desired
// application that drives every generator. Each configuration axis is a closed
// string-typed variant with an exhaustive Valid check, so adding a variant is a
// localized, compiler-visible change rather than a grep-and-patch exercise.
package spec

import "fmt"

// AppType names an application archetype.
type AppType string

const (
	TypeSaaS      AppType = "saas"
	TypeBlog      AppType = "blog"
	TypeEcommerce AppType = "ecommerce"
	TypeDashboard AppType = "dashboard"
	TypePortfolio AppType = "portfolio"
	TypeCRM       AppType = "crm"
	TypeChat      AppType = "chat"
	TypeCMS       AppType = "cms"
	TypeLanding   AppType = "landing"
	TypeAdmin     AppType = "admin"
)

// AppTypes lists every supported archetype in display order.
func AppTypes() []AppType {
	return []AppType{
		TypeSaaS, TypeBlog, TypeEcommerce, TypeDashboard, TypePortfolio,
		TypeCRM, TypeChat, TypeCMS, TypeLanding, TypeAdmin,
	}
}

// Valid reports whether t is a known archetype.
func (t AppType) Valid() bool {
	switch t {
	case TypeSaaS, TypeBlog, TypeEcommerce, TypeDashboard, TypePortfolio,
		TypeCRM, TypeChat, TypeCMS, TypeLanding, TypeAdmin:
		return true
	}
	return false
}

// Database selects the persistence target, or none for a frontend-only app.
type Database string

const (
	Postgres Database = "postgresql"
	MySQL    Database = "mysql"
	MongoDB  Database = "mongodb"
	Supabase Database = "supabase"
	SQLite   Database = "sqlite"
	NoDB     Database = "none"
)

// Valid reports whether d is a known database choice.
func (d Database) Valid() bool {
	switch d {
	case Postgres, MySQL, MongoDB, Supabase, SQLite, NoDB:
		return true
	}
	return false
}

// Document reports whether d is a document store rather than a relational one.
func (d Database) Document() bool { return d == MongoDB }

// Dialect is the relational dialect string handed to the generated ORM config.
func (d Database) Dialect() string {
	if d == Postgres {
		return "postgres"
	}
	return string(d)
}

// UIKit selects the styling system for the generated frontend.
type UIKit string

const (
	Tailwind UIKit = "tailwind"
	Shadcn   UIKit = "shadcn"
	Material UIKit = "material"
	Chakra   UIKit = "chakra"
	DaisyUI  UIKit = "daisyui"
)

// Valid reports whether u is a known UI kit.
func (u UIKit) Valid() bool {
	switch u {
	case Tailwind, Shadcn, Material, Chakra, DaisyUI:
		return true
	}
	return false
}

// Deployment selects the hosting provider descriptors to emit.
type Deployment string

const (
	Vercel   Deployment = "vercel"
	Netlify  Deployment = "netlify"
	Railway  Deployment = "railway"
	Render   Deployment = "render"
	NoDeploy Deployment = "none"
)

// Valid reports whether d is a known deployment target.
func (d Deployment) Valid() bool {
	switch d {
	case Vercel, Netlify, Railway, Render, NoDeploy:
		return true
	}
	return false
}

// Mode selects which halves of the application are generated.
type Mode string

const (
	Fullstack    Mode = "fullstack"
	FrontendOnly Mode = "frontend"
	BackendOnly  Mode = "backend-only"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Fullstack, FrontendOnly, BackendOnly:
		return true
	}
	return false
}

// Framework selects the backend framework family. Only Express has a dedicated
// strategy; the others delegate to it explicitly (see generator.StrategyFor).
type Framework string

const (
	Express Framework = "express"
	Fastify Framework = "fastify"
	NestJS  Framework = "nestjs"
	Koa     Framework = "koa"
)

// Valid reports whether f is a known framework tag.
func (f Framework) Valid() bool {
	switch f {
	case Express, Fastify, NestJS, Koa:
		return true
	}
	return false
}

// AppSpec is the declarative description of a desired application. It is
// constructed once per generation request, normalized, and treated as
// immutable by everything downstream.
type AppSpec struct {
	Name        string     `json:"name"`
	Type        AppType    `json:"type"`
	Description string     `json:"description"`
	Features    []string   `json:"features"`
	Pages       []string   `json:"pages"`
	Database    Database   `json:"database"`
	Auth        bool       `json:"auth"`
	UI          UIKit      `json:"ui"`
	Deployment  Deployment `json:"deployment"`
	Mode        Mode       `json:"mode"`
}

// Normalized returns a copy with empty axes defaulted and the mode invariants
// applied: frontend mode forces database none and auth off; backend-only mode
// forces pages and features empty.
func (s AppSpec) Normalized() AppSpec {
	if s.Database == "" {
		s.Database = NoDB
	}
	if s.UI == "" {
		s.UI = Tailwind
	}
	if s.Deployment == "" {
		s.Deployment = NoDeploy
	}
	if s.Mode == "" {
		s.Mode = Fullstack
	}
	switch s.Mode {
	case FrontendOnly:
		s.Database = NoDB
		s.Auth = false
	case BackendOnly:
		s.Pages = nil
		s.Features = nil
	}
	return s
}

// Validate checks that every enumerated axis holds a known variant and the
// spec carries a name. Callers should validate after Normalized.
func (s AppSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("spec: name is required")
	}
	if !s.Type.Valid() {
		return fmt.Errorf("spec %s: unknown app type %q", s.Name, s.Type)
	}
	if !s.Database.Valid() {
		return fmt.Errorf("spec %s: unknown database %q", s.Name, s.Database)
	}
	if !s.UI.Valid() {
		return fmt.Errorf("spec %s: unknown ui kit %q", s.Name, s.UI)
	}
	if !s.Deployment.Valid() {
		return fmt.Errorf("spec %s: unknown deployment target %q", s.Name, s.Deployment)
	}
	if !s.Mode.Valid() {
		return fmt.Errorf("spec %s: unknown mode %q", s.Name, s.Mode)
	}
	return nil
}

// HasBackend reports whether a backend tree should be generated for s.
func (s AppSpec) HasBackend() bool {
	return s.Database != NoDB
}
