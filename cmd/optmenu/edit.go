package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEditCmd(v *viper.Viper) *cobra.Command {
	var altScreen bool
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit options interactively; changes are saved on exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx, loadSettings(v))
			if err != nil {
				return err
			}

			programOptions := []tea.ProgramOption{
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			}
			if altScreen {
				programOptions = append(programOptions, tea.WithAltScreen())
			}
			_, runErr := tea.NewProgram(newEditModel(ctx, ws), programOptions...).Run()

			if err := ws.controller.Close(ctx); err != nil {
				return oops.In("optmenu").With("path", ws.store.Location()).Wrapf(err, "save options")
			}
			if runErr != nil {
				return oops.In("optmenu").Wrapf(runErr, "run editor")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "use the terminal alternate screen")
	return cmd
}
