package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// appSpecSchema constrains spec documents before they reach the generators.
// Axes with a sensible default carry one so hand-written specs stay short.
const appSpecSchema = `
#AppSpec: {
	name:        string & !=""
	type:        "saas" | "blog" | "ecommerce" | "dashboard" | "portfolio" | "crm" | "chat" | "cms" | "landing" | "admin"
	description: string | *""
	features: *[] | [...string]
	pages: *[] | [...string]
	database:   *"none" | "postgresql" | "mysql" | "mongodb" | "supabase" | "sqlite"
	auth:       bool | *false
	ui:         *"tailwind" | "shadcn" | "material" | "chakra" | "daisyui"
	deployment: *"none" | "vercel" | "netlify" | "railway" | "render"
	mode:       *"fullstack" | "frontend" | "backend-only"
}
`

// Load reads an AppSpec from a CUE or JSON file, validates it against the
// embedded #AppSpec schema, and returns the normalized spec. Malformed
// documents surface as errors unmodified; no semantic repair is attempted.
func Load(path string) (AppSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppSpec{}, fmt.Errorf("reading spec: %w", err)
	}
	return Parse(path, data)
}

// Parse validates raw spec bytes (CUE or JSON, chosen by file extension) and
// decodes them into a normalized AppSpec.
func Parse(filename string, data []byte) (AppSpec, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(appSpecSchema)
	if err := schema.Err(); err != nil {
		return AppSpec{}, fmt.Errorf("compiling spec schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#AppSpec"))

	var doc cue.Value
	switch filepath.Ext(filename) {
	case ".cue":
		doc = ctx.CompileBytes(data, cue.Filename(filename))
	default:
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			return AppSpec{}, fmt.Errorf("parsing spec json: %w", err)
		}
		doc = ctx.BuildExpr(expr)
	}
	if err := doc.Err(); err != nil {
		return AppSpec{}, fmt.Errorf("parsing spec: %w", err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return AppSpec{}, fmt.Errorf("invalid spec %s: %w", filename, err)
	}

	var s AppSpec
	if err := unified.Decode(&s); err != nil {
		return AppSpec{}, fmt.Errorf("decoding spec: %w", err)
	}

	s = s.Normalized()
	if err := s.Validate(); err != nil {
		return AppSpec{}, err
	}
	return s, nil
}
