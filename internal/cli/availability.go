package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	getAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_availability"
	"github.com/m04kA/SMC-TableBooking/internal/app"
	getAvailabilityUC "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
)

func newAvailabilityCmd(configPath *string) *cobra.Command {
	var date, slot string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Print bookable times for a date and slot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			application, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.GetAvailability.Execute(cmd.Context(), &getAvailabilityUC.Request{Date: date, Slot: slot})
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(getAvailabilityHandler.FromUseCaseResponse(result))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD")
	cmd.Flags().StringVar(&slot, "slot", "", "lunch, dinner or aperitif")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}
