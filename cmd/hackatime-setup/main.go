package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hackclub/hackatime-setup/internal/editors"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hackatime-setup",
		Short:         "Install the WakaTime plugin into your code editors",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	cmd.AddCommand(newListCmd(), newInstallCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported editors and whether they are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := editors.NewManager()
			if err != nil {
				return err
			}

			for _, p := range mgr.Plugins() {
				if p.IsInstalled(cmd.Context()) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("●"), p.Name())
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mutedStyle.Render("○"), mutedStyle.Render(p.Name()))
				}
			}
			return nil
		},
	}
}

func newInstallCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the WakaTime plugin into every detected editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := editors.NewManager()
			if err != nil {
				return err
			}
			if len(only) > 0 {
				mgr = mgr.Filter(only...)
			}

			results := mgr.InstallAll(cmd.Context())
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No supported editors detected."))
				return nil
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n",
						failureStyle.Render("✗"), r.Plugin.Name(), failureStyle.Render(r.Err.Error()))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
						successStyle.Render("✓"), r.Plugin.Name())
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d installs failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "restrict the install to the given editor ids")
	return cmd
}
