package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bursar-app/bursar/internal/cli"
)

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and apply budget presets",
		Long: `List and apply named budget presets from configuration. Applying a
preset replaces all category amounts wholesale and redefines the budget
baseline; the transaction log and reimbursement requests are untouched.`,
	}

	cmd.AddCommand(presetsListCmd())
	cmd.AddCommand(presetsApplyCmd())

	return cmd
}

func presetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			presets := engine.Presets()
			if len(presets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No presets configured."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Name"), cli.HeaderStyle.Render("Budgets"))
			for _, preset := range presets {
				parts := make([]string, 0, len(preset.Budgets))
				for category, amount := range preset.Budgets {
					parts = append(parts, fmt.Sprintf("%s: $%.2f", category, amount))
				}
				sort.Strings(parts)
				fmt.Fprintf(w, "%s\t%s\n", preset.Name, strings.Join(parts, ", "))
			}
			return nil
		},
	}
}

func presetsApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <name>",
		Short: "Replace all budgets with a preset's amounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := engine.ApplyPreset(args[0])
			if err != nil {
				return err
			}
			if err := persistBudgets(ctx, store, engine); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Applied preset %q", args[0])))
			renderBudgets(snap)
			return nil
		},
	}
}
