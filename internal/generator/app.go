package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/matthewbaird/appforge/internal/progress"
	"github.com/matthewbaird/appforge/internal/spec"
)

// GeneratedApp aggregates everything generated for one AppSpec. It is owned by
// the GenerateApp call that produced it and consumed read-only downstream.
type GeneratedApp struct {
	Frontend   map[string]string            `json:"frontend"`
	Backend    map[string]string            `json:"backend"`
	Config     Config                       `json:"config"`
	Deployment map[string]map[string]string `json:"deployment"`
}

// GenerateApp composes the sub-generators for one spec: frontend always,
// backend only when a database is selected, config and deployment always.
// Each call builds fresh maps; no state is shared between generations. The
// sink receives stage events and may be nil.
func GenerateApp(ctx context.Context, s spec.AppSpec, sink progress.Sink) (GeneratedApp, error) {
	if sink == nil {
		sink = progress.Discard
	}
	s = s.Normalized()
	if err := s.Validate(); err != nil {
		return GeneratedApp{}, err
	}

	app := GeneratedApp{
		Backend:    map[string]string{},
		Deployment: map[string]map[string]string{},
	}

	app.Frontend = GenerateFrontend(s)
	sink.Publish(progress.Event{Stage: progress.StageFrontend, Message: "frontend generated", Files: len(app.Frontend)})
	if err := ctx.Err(); err != nil {
		return GeneratedApp{}, err
	}

	if s.HasBackend() {
		tables := tablesFor(s)
		project := BackendProject{
			Name:           s.Name,
			Framework:      spec.Express,
			Database:       s.Database,
			Tables:         tables,
			Endpoints:      endpointsFor(tables, s.Auth),
			Authentication: s.Auth,
			Port:           3001,
		}
		out, delegated := GenerateBackend(project)
		if delegated {
			log.Printf("generator: framework %q delegates to the express strategy", project.Framework)
		}
		app.Backend = out.Files
		app.Backend["package.json"] = backendManifest(s.Name, out)
		sink.Publish(progress.Event{Stage: progress.StageBackend, Message: "backend generated", Files: len(app.Backend)})
		if err := ctx.Err(); err != nil {
			return GeneratedApp{}, err
		}
	}

	app.Config = GenerateConfig(s)
	sink.Publish(progress.Event{Stage: progress.StageConfig, Message: "config generated"})

	app.Deployment = GenerateDeployment(s)
	sink.Publish(progress.Event{Stage: progress.StageDeployment, Message: "deployment descriptors generated", Files: len(app.Deployment)})

	sink.Publish(progress.Event{Stage: progress.StageDone, Message: "generation complete", Files: app.FileCount()})
	return app, nil
}

// FileCount returns the total number of generated files across all maps, the
// config artifacts included. Empty optional artifacts are not counted, matching
// what the archive actually materializes.
func (a GeneratedApp) FileCount() int {
	n := len(a.Frontend) + len(a.Backend)
	n += 2 // manifest, readme
	if a.Config.EnvExample != "" {
		n++
	}
	if a.Config.Dockerfile != "" {
		n++
	}
	for _, files := range a.Deployment {
		n += len(files)
	}
	return n
}

// backendManifest renders the backend package.json from the strategy's
// dependency and script sets.
func backendManifest(name string, out BackendOutput) string {
	manifest := map[string]any{
		"name":            packageName(name) + "-server",
		"private":         true,
		"version":         "0.1.0",
		"scripts":         out.Scripts,
		"dependencies":    out.Dependencies,
		"devDependencies": out.DevDependencies,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshaling backend manifest: %v", err))
	}
	return string(data) + "\n"
}
