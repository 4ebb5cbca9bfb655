package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
)

type listVariantsOptions struct {
	section string
	search  string
	popular bool
	json    bool
}

func newListVariantsCmd() *cobra.Command {
	opts := &listVariantsOptions{}

	cmd := &cobra.Command{
		Use:   "list-variants",
		Short: "List component variants of the static catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants, err := selectVariants(registry.Default(), opts)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSONOutput(cmd.OutOrStdout(), "", variants)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tID\tNAME\tCATEGORY\tTAGS\tPOPULAR")
			for _, v := range variants {
				popular := ""
				if v.IsPopular {
					popular = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					v.Section, v.ID, v.Name, v.Category, strings.Join(v.Tags, ","), popular)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&opts.section, "section", "", "Only list variants of this section type")
	cmd.Flags().StringVar(&opts.search, "search", "", "Case-insensitive match on name, description and tags")
	cmd.Flags().BoolVar(&opts.popular, "popular", false, "Only list popular variants")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON instead of a table")
	return cmd
}

// selectVariants applies the section, search and popular filters in that order.
func selectVariants(reg *registry.Registry, opts *listVariantsOptions) ([]types.ComponentVariant, error) {
	var components []registry.HybridComponent
	if opts.section != "" {
		section := types.SectionType(opts.section)
		if !section.Valid() {
			return nil, fmt.Errorf("unknown section type %q", opts.section)
		}
		components = registry.GetHybridComponentsForSection(reg, section, nil)
	} else {
		for _, v := range reg.AllVariants() {
			components = append(components, v)
		}
	}

	if q := strings.TrimSpace(opts.search); q != "" {
		components = registry.SearchHybridComponents(components, q)
	}
	if opts.popular {
		components = registry.GetPopularHybridComponents(components)
	}

	out := make([]types.ComponentVariant, 0, len(components))
	for _, c := range components {
		out = append(out, c.Descriptor())
	}
	return out, nil
}
