package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/buildbidz/buildbidz-go/internal/api"
)

func tendersCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "tenders",
		Short: "Browse tenders and their bids",
	}

	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tenders",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tenders, err := app.client.TenderList(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(tenders)
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one tender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tender, err := app.client.TenderGet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(tender)
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "analyze <id>",
		Short: "Run the award analysis on a tender's bids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			decision, err := app.client.TenderAnalyze(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(decision)
		},
	})

	var (
		contractor string
		amount     float64
	)
	submit := &cobra.Command{
		Use:   "bid <tender-id>",
		Short: "Submit a bid on a tender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			bid, err := app.client.BidSubmit(cmd.Context(), id, api.SubmitBidRequest{
				ContractorName: contractor,
				Amount:         amount,
			})
			if err != nil {
				return err
			}
			return printJSON(bid)
		},
	}
	submit.Flags().StringVar(&contractor, "contractor", "", "Contractor name")
	submit.Flags().Float64Var(&amount, "amount", 0, "Bid amount")
	submit.MarkFlagRequired("contractor")
	submit.MarkFlagRequired("amount")
	command.AddCommand(submit)

	return command
}
