package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bursar-app/bursar/internal/cli"
	"github.com/bursar-app/bursar/internal/ledger"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "View and adjust category budgets",
	}

	cmd.AddCommand(budgetShowCmd())
	cmd.AddCommand(budgetAdjustCmd())

	return cmd
}

func budgetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current budgets per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			renderBudgets(engine.Budgets())
			return nil
		},
	}
}

func budgetAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <category> <delta>",
		Short: "Adjust a category budget by a signed amount",
		Long: `Adjust a category budget by a signed amount. Budgets never go below
zero: an adjustment that would cross zero is clamped, and the applied
delta is reported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category := args[0]

			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			applied, err := engine.AdjustBudget(category, delta)
			if err != nil {
				return err
			}
			if err := persistBudgets(ctx, store, engine); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Adjusted %q by %s", category, cli.FormatAmount(applied))))
			if math.Abs(applied-delta) > 1e-9 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
					"Requested %.2f but budget floors at zero; applied %.2f", delta, applied)))
			}
			renderBudgets(engine.Budgets())
			return nil
		},
	}
}

func renderBudgets(snap ledger.BudgetSnapshot) {
	fmt.Println(cli.FormatTitle("Budgets"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Category"), cli.HeaderStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 20), strings.Repeat("-", 12))
	for _, c := range snap.Categories {
		fmt.Fprintf(w, "%s\t%s\n", c.Name, cli.FormatAmount(c.Amount))
	}
	fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Total"), cli.FormatAmount(snap.Total))
}
