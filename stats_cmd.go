package main

import (
	"fmt"
	"strings"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print directory statistics and departments",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			stats := svc.Statistics(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total employees: %d\n", stats.TotalEmployees)
			fmt.Fprintf(out, "Average salary:  %s\n", domain.FormatAverage(stats.AverageSalary, svc.Currency()))
			fmt.Fprintf(out, "Average age:     %d\n", stats.AverageAge)
			fmt.Fprintf(out, "Locations:       %d\n", stats.Locations)
			fmt.Fprintf(out, "Departments:     %s\n", strings.Join(svc.Departments(ctx), ", "))
			return nil
		},
	}
}
