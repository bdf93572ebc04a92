package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bursar-app/bursar/internal/cli"
	"github.com/bursar-app/bursar/internal/ledger"
	"github.com/bursar-app/bursar/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record, list, and delete ledger transactions",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txRemoveCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record a transaction (negative amount for spending)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := args[0]

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			tx, err := engine.RecordTransaction(description, amount, category)
			if err != nil {
				return err
			}
			if err := store.SaveTransaction(ctx, tx); err != nil {
				return err
			}
			if err := persistBudgets(ctx, store, engine); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Recorded transaction %d: %s %s on %q", tx.ID, tx.Description, cli.FormatAmount(tx.Amount), tx.Category)))
			fmt.Printf("  %s now at %s\n", tx.Category,
				cli.FormatAmount(categoryAmount(engine.Budgets().Categories, tx.Category)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "budget category (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func txListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			transactions := engine.Transactions(category)
			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found."))
				return nil
			}

			renderTransactions(transactions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")

	return cmd
}

func txRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction, reversing its budget effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
			}

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := engine.RemoveTransaction(id)
			if err != nil {
				return err
			}
			if err := store.DeleteTransaction(ctx, id); err != nil {
				return err
			}
			if err := persistBudgets(ctx, store, engine); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Deleted transaction %d (%s, %s on %q)", removed.ID, removed.Description,
				cli.FormatAmount(removed.Amount), removed.Category)))
			return nil
		},
	}
}

func renderTransactions(transactions []model.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Description"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4), strings.Repeat("-", 10),
		strings.Repeat("-", 30), strings.Repeat("-", 12), strings.Repeat("-", 10))

	for _, tx := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Timestamp.Format("2006-01-02"),
			tx.Description,
			tx.Category,
			cli.FormatAmount(tx.Amount))
	}
}

func categoryAmount(categories []ledger.CategoryAmount, name string) float64 {
	for _, c := range categories {
		if c.Name == name {
			return c.Amount
		}
	}
	return 0
}
