package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bursar-app/bursar/internal/cli"
	"github.com/bursar-app/bursar/internal/ledger"
)

// seedTransactions are sample entries spread across whatever categories are
// configured; entries for unconfigured categories are skipped.
var seedTransactions = []struct {
	description string
	category    string
	amount      float64
}{
	{"Spring fundraiser proceeds", "Events", 850},
	{"Venue deposit", "Events", -150},
	{"Catering for kickoff", "Events", -220.50},
	{"Printer ink and paper", "Ops", -63.25},
	{"Annual software licenses", "Ops", -120},
	{"Sponsor contribution", "Ops", 300},
}

var seedReimbursements = []ledger.SubmitReimbursement{
	{Name: "Dana Lee", Email: "dana@example.org", Amount: 42.10, Category: "Ops",
		Description: "Office supplies run", ReceiptRef: "receipts/supplies.pdf"},
	{Name: "Sam Ortiz", Email: "sam@example.org", Amount: 95, Category: "Events",
		Description: "Decorations for kickoff"},
}

func seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the ledger with sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(engine.Transactions("")) > 0 && !force {
				return fmt.Errorf("ledger already has transactions; use --force to seed anyway")
			}

			bar := progressbar.NewOptions(len(seedTransactions)+len(seedReimbursements),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Seeding sample data..."),
			)

			var seeded int
			for _, seed := range seedTransactions {
				_ = bar.Add(1)
				tx, err := engine.RecordTransaction(seed.description, seed.amount, seed.category)
				if err != nil {
					continue // category not configured
				}
				if err := store.SaveTransaction(ctx, tx); err != nil {
					return err
				}
				seeded++
			}

			for _, seed := range seedReimbursements {
				_ = bar.Add(1)
				req, err := engine.SubmitReimbursement(seed)
				if err != nil {
					continue
				}
				if err := store.SaveReimbursement(ctx, req); err != nil {
					return err
				}
				seeded++
			}

			if err := persistBudgets(ctx, store, engine); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d sample records", seeded)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even if the ledger already has transactions")

	return cmd
}
