package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the directory in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap.Setup(ctx)
			if err != nil {
				return err
			}

			ctrl, closeSrc, err := bootstrap.LoadController(ctx, cfg)
			if err != nil {
				return err
			}
			defer bootstrap.Release(ctx, closeSrc)

			p := tea.NewProgram(tui.NewModel(ctrl, cfg.CURRENCY), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}
