package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/export"
	"github.com/locvowork/employee_directory/internal/service"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	Output     string
	Search     string
	Department string
	Sorts      []string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export -o <file.xlsx>",
		Short: "Write the visible employees to an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.Output) == "" {
				return errors.New("--output is required")
			}

			ctx := cmd.Context()
			cfg, err := bootstrap.Setup(ctx)
			if err != nil {
				return err
			}

			svc, closeSrc, err := bootstrap.LoadService(ctx, cfg)
			if err != nil {
				return err
			}
			defer bootstrap.Release(ctx, closeSrc)

			view, err := svc.Apply(ctx, service.Events{
				Search:     opts.Search,
				Department: opts.Department,
				Sorts:      opts.Sorts,
			})
			if err != nil {
				return err
			}

			f, err := os.Create(opts.Output)
			if err != nil {
				return fmt.Errorf("create %s: %w", opts.Output, err)
			}
			if err := export.Write(ctx, f, view, svc.Currency()); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", opts.Output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", len(view.Employees), opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "destination .xlsx file")
	cmd.Flags().StringVar(&opts.Search, "search", "", "search text applied before export")
	cmd.Flags().StringVar(&opts.Department, "department", "", "department filter (default all)")
	cmd.Flags().StringArrayVar(&opts.Sorts, "sort", nil, "sort toggle; repeat to flip direction (age, location, salary, department)")
	return cmd
}
