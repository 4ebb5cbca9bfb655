package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/mapper"
	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/resume"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type mapResumeOptions struct {
	inputs   []string
	preset   string
	variants []string
	scheme   string
	public   bool
	out      string
}

func newMapResumeCmd(root *rootOptions) *cobra.Command {
	opts := &mapResumeOptions{}

	cmd := &cobra.Command{
		Use:   "map-resume",
		Short: "Map JSON resumes onto portfolio layouts",
		Long: `Map one or more JSON resumes onto portfolio layouts using a preset, per-section
variant choices and an optional color scheme. With a single --in the layout is
written to --out (or stdout). With several, --out names a directory that
receives one <name>.layout.json per resume.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if opts.preset == "" {
				opts.preset = cfg.DefaultPreset
			}
			return runMapResume(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.inputs, "in", "i", nil, "Path to a resume JSON file (repeatable)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Preset id (minimal, typography, brutalist)")
	cmd.Flags().StringArrayVar(&opts.variants, "variant", nil, "Section variant as section=variant-id (repeatable)")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "Color scheme id applied to every section")
	cmd.Flags().BoolVar(&opts.public, "public", false, "Mark the portfolio as public")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file, or directory when mapping several resumes")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runMapResume(cmd *cobra.Command, opts *mapResumeOptions) error {
	chosen, err := parseVariantFlags(opts.variants)
	if err != nil {
		return err
	}
	mapOpts := mapper.Options{
		Preset:      opts.preset,
		Variants:    chosen,
		ColorScheme: opts.scheme,
		IsPublic:    opts.public,
	}
	m := mapper.New(registry.Default())

	results := make([]*types.SavePortfolioData, len(opts.inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range opts.inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := resume.LoadResume(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			data, err := m.Map(doc, mapOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(results) == 1 {
		if err := writeJSONOutput(cmd.OutOrStdout(), opts.out, results[0]); err != nil {
			return err
		}
		if opts.out != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Mapped %s -> %s (%d sections)\n", opts.inputs[0], opts.out, len(results[0].Layout))
		}
		return nil
	}

	if opts.out == "" {
		return writeJSONOutput(cmd.OutOrStdout(), "", results)
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, data := range results {
		path := filepath.Join(opts.out, layoutFileName(opts.inputs[i]))
		if err := writeJSONOutput(nil, path, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Mapped %s -> %s (%d sections)\n", opts.inputs[i], path, len(data.Layout))
	}
	return nil
}

// parseVariantFlags turns section=variant-id pairs into chosen variants.
func parseVariantFlags(values []string) (mapper.ChosenVariants, error) {
	if len(values) == 0 {
		return nil, nil
	}
	chosen := make(mapper.ChosenVariants, len(values))
	for _, v := range values {
		section, id, ok := strings.Cut(v, "=")
		section, id = strings.TrimSpace(section), strings.TrimSpace(id)
		if !ok || section == "" || id == "" {
			return nil, fmt.Errorf("invalid --variant %q: expected section=variant-id", v)
		}
		st := types.SectionType(section)
		if !st.Valid() {
			return nil, fmt.Errorf("invalid --variant %q: unknown section type %q", v, section)
		}
		chosen[st] = id
	}
	return chosen, nil
}

// layoutFileName derives the output name for a resume path: resumes/ada.json -> ada.layout.json
func layoutFileName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".layout.json"
}
