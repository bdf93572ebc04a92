package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bursar-app/bursar/internal/cli"
	"github.com/bursar-app/bursar/internal/ledger"
	"github.com/bursar-app/bursar/internal/model"
	"github.com/bursar-app/bursar/internal/storage"
)

func reimburseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reimburse",
		Short: "Submit and process reimbursement requests",
		Long: `Submit and process reimbursement requests. Requests start Pending and
move forward only: Pending→Approved, Pending→Rejected, Approved→Paid.
Approval debits the request's category through the ledger.`,
	}

	cmd.AddCommand(reimburseSubmitCmd())
	cmd.AddCommand(reimburseListCmd())
	cmd.AddCommand(reimburseStatusCmd("approve", model.ReimbursementApproved))
	cmd.AddCommand(reimburseStatusCmd("reject", model.ReimbursementRejected))
	cmd.AddCommand(reimburseStatusCmd("pay", model.ReimbursementPaid))

	return cmd
}

func reimburseSubmitCmd() *cobra.Command {
	var req ledger.SubmitReimbursement

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new reimbursement request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			created, err := engine.SubmitReimbursement(req)
			if err != nil {
				return err
			}
			if err := store.SaveReimbursement(ctx, created); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Submitted reimbursement %s for %s on %q", created.ID, cli.FormatAmount(created.Amount), created.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "requester full name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "requester email (required)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "amount in dollars (required)")
	cmd.Flags().StringVarP(&req.Category, "category", "c", "", "budget category (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "description of the expense (required)")
	cmd.Flags().StringVar(&req.ReceiptRef, "receipt", "", "reference to an uploaded receipt")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func reimburseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reimbursement requests with their legal next actions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			requests := engine.Reimbursements()
			if len(requests) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No reimbursement requests found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Requester"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Next"))

			for _, req := range requests {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(req.ID),
					req.SubmittedAt.Format("2006-01-02"),
					req.RequesterName,
					req.Category,
					cli.FormatAmount(req.Amount),
					styleStatus(req.Status),
					nextActions(req.Status))
			}
			return nil
		},
	}
}

func reimburseStatusCmd(verb string, status model.ReimbursementStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: fmt.Sprintf("Mark a reimbursement request %s", strings.ToLower(string(status))),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveReimbursementID(engine, args[0])
			if err != nil {
				return err
			}

			updated, synthetic, err := engine.SetReimbursementStatus(id, status)
			if err != nil {
				return err
			}
			if err := persistTransition(ctx, store, engine, updated, synthetic); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reimbursement %s is now %s", shortID(updated.ID), updated.Status)))
			if synthetic != nil {
				fmt.Printf("  Recorded transaction %d: %s on %q\n",
					synthetic.ID, cli.FormatAmount(synthetic.Amount), synthetic.Category)
				fmt.Printf("  %s now at %s\n", synthetic.Category,
					cli.FormatAmount(categoryAmount(engine.Budgets().Categories, synthetic.Category)))
			}
			return nil
		},
	}
}

func persistTransition(ctx context.Context, store *storage.SQLiteStorage, engine *ledger.Engine, updated model.Reimbursement, synthetic *model.Transaction) error {
	if err := store.UpdateReimbursementStatus(ctx, updated.ID, updated.Status); err != nil {
		return err
	}
	if synthetic != nil {
		if err := store.SaveTransaction(ctx, *synthetic); err != nil {
			return err
		}
		if err := persistBudgets(ctx, store, engine); err != nil {
			return err
		}
	}
	return nil
}

// resolveReimbursementID accepts either a full request id or an unambiguous
// prefix of one, since the listed ids are truncated for readability.
func resolveReimbursementID(engine *ledger.Engine, arg string) (string, error) {
	var match string
	for _, req := range engine.Reimbursements() {
		if req.ID == arg {
			return req.ID, nil
		}
		if strings.HasPrefix(req.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", arg)
			}
			match = req.ID
		}
	}
	if match == "" {
		// Let the engine produce its canonical not-found error.
		return arg, nil
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func styleStatus(status model.ReimbursementStatus) string {
	switch status {
	case model.ReimbursementApproved, model.ReimbursementPaid:
		return cli.SuccessStyle.Render(string(status))
	case model.ReimbursementRejected:
		return cli.ErrorStyle.Render(string(status))
	default:
		return cli.WarningStyle.Render(string(status))
	}
}

func nextActions(status model.ReimbursementStatus) string {
	next := status.NextStatuses()
	if len(next) == 0 {
		return cli.SubtleStyle.Render("(terminal)")
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
