// Command appforge drives the scaffolding engine from the terminal: list
// archetypes, generate an app from an archetype or a spec file, run schema
// inference against a corpus database, or start the HTTP boundary service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matthewbaird/appforge/internal/archive"
	"github.com/matthewbaird/appforge/internal/catalog"
	"github.com/matthewbaird/appforge/internal/corpus"
	"github.com/matthewbaird/appforge/internal/generator"
	"github.com/matthewbaird/appforge/internal/infer"
	"github.com/matthewbaird/appforge/internal/progress"
	"github.com/matthewbaird/appforge/internal/server"
	"github.com/matthewbaird/appforge/internal/spec"
)

var (
	archetype string
	specFile  string
	outZip    string
	outDir    string
	corpusDB  string
	tenant    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "appforge",
	Short: "Generate complete application scaffolds from declarative specs",
	Long: `appforge synthesizes a full project tree (frontend, optional backend,
packaging and deployment descriptors) from an AppSpec, and packages it as a
zip archive or writes it to a directory.`,
}

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List the built-in application archetypes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range catalog.Types() {
			tpl, err := catalog.Lookup(t)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %s\n", t, tpl.Description)
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an app from an archetype or a spec file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (archetype == "") == (specFile == "") {
			return fmt.Errorf("exactly one of --archetype or --spec must be given")
		}
		if outZip == "" && outDir == "" {
			return fmt.Errorf("one of --zip or --out must be given")
		}

		var sp spec.AppSpec
		var err error
		if archetype != "" {
			sp, err = catalog.Lookup(spec.AppType(archetype))
		} else {
			sp, err = spec.Load(specFile)
		}
		if err != nil {
			return err
		}

		var sink progress.Sink
		if verbose {
			sink = progress.SinkFunc(func(e progress.Event) {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Stage, e.Message)
			})
		}

		app, err := generator.GenerateApp(cmd.Context(), sp, sink)
		if err != nil {
			return fmt.Errorf("generating app: %w", err)
		}

		if outDir != "" {
			if err := archive.WriteTo(osfs.New(outDir), app); err != nil {
				return fmt.Errorf("writing %s: %w", outDir, err)
			}
			fmt.Printf("wrote %d files to %s\n", app.FileCount(), outDir)
		}
		if outZip != "" {
			f, err := os.Create(outZip)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outZip, err)
			}
			defer f.Close()
			if err := archive.WriteZip(f, app); err != nil {
				return fmt.Errorf("writing archive: %w", err)
			}
			fmt.Printf("wrote %s (%d files)\n", outZip, app.FileCount())
		}
		return nil
	},
}

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Infer database tables from a tenant's project corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		if corpusDB == "" || tenant == "" {
			return fmt.Errorf("--corpus and --tenant are required")
		}
		store, err := corpus.Open(corpusDB)
		if err != nil {
			return err
		}
		defer store.Close()

		tables := infer.InferFromStore(cmd.Context(), store, tenant)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tables)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP boundary service",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine; environment variables still apply.
		_ = godotenv.Load()

		port := 8080
		if p := os.Getenv("PORT"); p != "" {
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}

		var store corpus.Store
		if path := os.Getenv("CORPUS_DB"); path != "" {
			s, err := corpus.Open(path)
			if err != nil {
				return err
			}
			defer s.Close()
			store = s
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, server.Config{Port: port, Corpus: store})
	},
}

func init() {
	generateCmd.Flags().StringVarP(&archetype, "archetype", "a", "", "archetype to generate (see `appforge archetypes`)")
	generateCmd.Flags().StringVarP(&specFile, "spec", "s", "", "path to an AppSpec file (.json or .cue)")
	generateCmd.Flags().StringVarP(&outZip, "zip", "z", "", "write the generated app as a zip archive")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "", "write the generated app into a directory")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log generation progress")

	inferCmd.Flags().StringVar(&corpusDB, "corpus", "", "path to the corpus SQLite database")
	inferCmd.Flags().StringVar(&tenant, "tenant", "", "tenant whose projects to scan")

	rootCmd.AddCommand(archetypesCmd, generateCmd, inferCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
