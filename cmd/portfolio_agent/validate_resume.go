package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/resume"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/spf13/cobra"
)

func newValidateResumeCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "validate-resume",
		Short: "Validate resume JSON files against the resume schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			invalid := 0
			for _, path := range inputs {
				doc, err := resume.LoadResume(path)
				if err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
					var schemaErr *schemas.ValidationError
					if errors.As(err, &schemaErr) {
						for _, msg := range schemaErr.Messages() {
							fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", msg)
						}
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", err)
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d skills, %d work entries, %d projects)\n",
					path, len(doc.Skills), len(doc.Work), len(doc.Projects))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d resumes failed validation", invalid, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&inputs, "in", "i", nil, "Path to a resume JSON file (repeatable)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
