// Package archive flattens a GeneratedApp into a single path→content map and
// serializes it — to a zip stream for download, or onto a billy.Filesystem
// for on-disk export.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/matthewbaird/appforge/internal/generator"
)

// Flatten merges the four GeneratedApp maps under the fixed namespacing
// convention: frontend paths unprefixed, backend paths under server/, config
// artifacts at the root, each deployment provider under .{provider}/. Maps are
// applied in that order; colliding paths resolve last-write-wins (a known
// simplification, not silent repair).
func Flatten(app generator.GeneratedApp) map[string]string {
	out := make(map[string]string, len(app.Frontend)+len(app.Backend)+8)
	for p, content := range app.Frontend {
		out[p] = content
	}
	for p, content := range app.Backend {
		out["server/"+p] = content
	}
	out["package.json"] = app.Config.PackageManifest
	if app.Config.EnvExample != "" {
		out[".env.example"] = app.Config.EnvExample
	}
	out["README.md"] = app.Config.Readme
	if app.Config.Dockerfile != "" {
		out["Dockerfile"] = app.Config.Dockerfile
	}
	for provider, files := range app.Deployment {
		for p, content := range files {
			out["."+provider+"/"+p] = content
		}
	}
	return out
}

// WriteZip serializes the flattened app as a zip archive to w. Entries are
// written in sorted path order so the byte stream is deterministic.
func WriteZip(w io.Writer, app generator.GeneratedApp) error {
	files := Flatten(app)
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	zw := zip.NewWriter(w)
	for _, p := range paths {
		f, err := zw.Create(p)
		if err != nil {
			return fmt.Errorf("creating zip entry %s: %w", p, err)
		}
		if _, err := f.Write([]byte(files[p])); err != nil {
			return fmt.Errorf("writing zip entry %s: %w", p, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}
	return nil
}

// Zip returns the archive bytes for an app.
func Zip(app generator.GeneratedApp) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, app); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo materializes the flattened app onto a filesystem, creating parent
// directories as needed. Callers pass osfs for real export or memfs in tests.
func WriteTo(fs billy.Filesystem, app generator.GeneratedApp) error {
	files := Flatten(app)
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if dir := path.Dir(p); dir != "." {
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := util.WriteFile(fs, p, []byte(files[p]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", p, err)
		}
	}
	return nil
}
