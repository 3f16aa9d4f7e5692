package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildbidz/buildbidz-go/internal/api"
)

func compareCmd() *cobra.Command {
	var (
		requirement string
		scoreOnly   bool
	)

	command := &cobra.Command{
		Use:   "compare <bids.json>",
		Short: "Compare candidate bids and recommend an award",
		Long: `Compare reads a JSON array of bids (id, supplier_name, price,
delivery_days, reputation_score) and asks the award engine for a ranked
recommendation. With --score-only, only the ranking is returned.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var bids []api.AwardBid
			if err := json.Unmarshal(data, &bids); err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if scoreOnly {
				ranked, err := app.client.AwardScoreOnly(cmd.Context(), requirement, bids, api.AwardCriteria{})
				if err != nil {
					return err
				}
				return printJSON(ranked)
			}

			decision, err := app.client.AwardCompare(cmd.Context(), requirement, bids, api.AwardCriteria{})
			if err != nil {
				return err
			}
			return printJSON(decision)
		},
	}

	command.Flags().StringVar(&requirement, "requirement", "", "What is being procured")
	command.Flags().BoolVar(&scoreOnly, "score-only", false, "Rank bids without a recommendation")
	command.MarkFlagRequired("requirement")

	return command
}

func forecastCmd() *cobra.Command {
	var (
		material string
		region   string
		quantity float64
		margin   float64
	)

	command := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast 30-day material prices for a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.client.ForecastAnalyze(cmd.Context(), api.ForecastRequest{
				Material:            material,
				Region:              region,
				Quantity:            quantity,
				TargetMarginPercent: margin,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	command.Flags().StringVar(&material, "material", "", "Material name, e.g. cement")
	command.Flags().StringVar(&region, "region", "", "Region, e.g. Mumbai")
	command.Flags().Float64Var(&quantity, "quantity", 0, "Quantity needed")
	command.Flags().Float64Var(&margin, "margin", 0, "Target margin percent")
	command.MarkFlagRequired("material")
	command.MarkFlagRequired("region")

	return command
}

func coordinateCmd() *cobra.Command {
	var (
		contractor string
		phone      string
		language   string
		step       string
		project    string
	)

	command := &cobra.Command{
		Use:   "coordinate",
		Short: "Send a contractor coordination message in their language",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.client.CoordinationSend(cmd.Context(), api.CoordinationRequest{
				ContractorName: contractor,
				PhoneNumber:    phone,
				Language:       language,
				Step:           step,
				ProjectName:    project,
				Details:        map[string]interface{}{},
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	command.Flags().StringVar(&contractor, "contractor", "", "Contractor name")
	command.Flags().StringVar(&phone, "phone", "", "Contractor phone number")
	command.Flags().StringVar(&language, "language", "hi", "Message language code")
	command.Flags().StringVar(&step, "step", "award_notification", "Workflow step")
	command.Flags().StringVar(&project, "project", "", "Project name")
	command.MarkFlagRequired("contractor")

	return command
}
