package main

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"deepgraph/declare"
	"deepgraph/internal/analyze"
)

type scanOptions struct {
	output string
	dir    string
	dump   bool
	types  bool
	strict bool
}

func newScanCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan <packages>...",
		Short: "scan packages for //deepgraph: directives and immutable types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, logger(cmd), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "path of the manifest to write (default stdout)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory packages are resolved from")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump the manifest structure instead of YAML")
	cmd.Flags().BoolVar(&opts.types, "types", false, "list the scanned types and their fields")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on warnings too")

	return cmd
}

func runScan(cmd *cobra.Command, logger *slog.Logger, opts scanOptions, patterns []string) error {
	analyzer := analyze.NewAnalyzer(analyze.WithDir(opts.dir), analyze.WithLogger(logger))

	report, err := analyzer.Scan(patterns...)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	for _, d := range report.Diagnostics.All() {
		fmt.Fprintf(stderr, "%s: %s\n", d.Severity, d)
	}
	if err := report.Diagnostics.Error(); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if opts.strict && len(report.Diagnostics.Warnings) > 0 {
		return fmt.Errorf("scan failed: %d warnings", len(report.Diagnostics.Warnings))
	}

	out := cmd.OutOrStdout()
	if opts.types {
		listTypes(out, report.Graph)
	}

	switch {
	case opts.dump:
		spew.Fdump(out, report.Manifest)
	case opts.output != "":
		if err := declare.WriteManifest(report.Manifest, opts.output); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "wrote %d entries to %s\n", len(report.Manifest.Types), opts.output)
	default:
		data, err := declare.MarshalManifest(report.Manifest)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	return nil
}

func listTypes(w io.Writer, g *analyze.TypeGraph) {
	stringer := analyze.NewTypeStringer()

	for _, path := range slices.Sorted(maps.Keys(g.Packages)) {
		for _, id := range g.Packages[path].Types {
			info := g.GetType(id)
			fmt.Fprintf(w, "%s %s\n", id, info.Kind)
			for _, f := range info.Fields {
				fmt.Fprintf(w, "\t%s %s\n", stringer.FieldPath(id.Name, f.Name), stringer.TypeString(f.Type))
			}
		}
	}
}
