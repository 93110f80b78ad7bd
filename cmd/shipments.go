package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/shipctl/filter"
	"github.com/s0up4200/shipctl/shipengine"
)

var shipmentStatus string

var shipmentsCmd = &cobra.Command{
	Use:   "shipments",
	Short: "List shipments",
}

var shipmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shipments matching the filter criteria",
	RunE:  runShipmentsList,
}

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "Inspect connected carriers",
}

var carriersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List carriers connected to the account",
	RunE:  runCarriersList,
}

var trackCmd = &cobra.Command{
	Use:   "track <carrier_code> <tracking_number>",
	Short: "Show tracking information for a package",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrack,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Look up quoted rates",
}

var ratesGetCmd = &cobra.Command{
	Use:   "get <rate_id>",
	Short: "Show a previously quoted rate",
	Args:  cobra.ExactArgs(1),
	RunE:  runRatesGet,
}

func init() {
	rootCmd.AddCommand(shipmentsCmd, carriersCmd, trackCmd, ratesCmd)
	shipmentsCmd.AddCommand(shipmentsListCmd)
	carriersCmd.AddCommand(carriersListCmd)
	ratesCmd.AddCommand(ratesGetCmd)

	shipmentsListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "fetch every page")
	shipmentsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	shipmentsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	shipmentsListCmd.Flags().StringVar(&shipmentStatus, "status", "", "server side shipment_status filter")
}

func runShipmentsList(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(compiler, cfg.Filter, filterExpr, preset)
	if err != nil {
		return err
	}

	params := shipengine.Params{}
	if shipmentStatus != "" {
		params["shipment_status"] = shipmentStatus
	}

	seq := client.Shipments.ListAll(cmd.Context(), params)
	if !listAll {
		seq = firstPage(cmd.Context(), client.Shipments.Pages(), params)
	}

	return printSeq(cmd, filter.Select(seq, f), shipmentColumns)
}

func runCarriersList(cmd *cobra.Command, args []string) error {
	body, err := client.Carriers.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list carriers: %w", err)
	}

	w := newItemWriter(cmd.OutOrStdout(), cfg.Output.Format, carrierColumns)
	for _, carrier := range bodies(body["carriers"]) {
		if err := w.write(carrier); err != nil {
			return err
		}
	}
	return w.flush()
}

func runTrack(cmd *cobra.Command, args []string) error {
	info, err := client.Tracking.Track(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to track %s: %w", args[1], err)
	}

	if cfg.Output.Format == "json" {
		return writeBody(cmd.OutOrStdout(), "json", info, nil)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tracking %s (%s)\n", args[1], args[0])
	fmt.Fprintf(out, "Status: %s\n", field(info, "status_description"))
	fmt.Fprintf(out, "Estimated delivery: %s\n", field(info, "estimated_delivery_date"))

	events := bodies(info["events"])
	if len(events) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nEvents:")
	for _, e := range events {
		fmt.Fprintf(out, "  %s  %s  %s\n", field(e, "occurred_at"), field(e, "city_locality"), field(e, "description"))
	}
	return nil
}

func runRatesGet(cmd *cobra.Command, args []string) error {
	rate, err := client.Rates.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get rate %s: %w", args[0], err)
	}

	return writeBody(cmd.OutOrStdout(), cfg.Output.Format, rate, []column{
		{"RATE ID", "rate_id"},
		{"CARRIER", "carrier_code"},
		{"SERVICE", "service_type"},
		{"AMOUNT", "shipping_amount.amount"},
		{"CURRENCY", "shipping_amount.currency"},
		{"DAYS", "delivery_days"},
	})
}
