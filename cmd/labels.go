package cmd

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/shipctl/filter"
	"github.com/s0up4200/shipctl/shipengine"
)

var (
	listAll        bool
	labelStatus    string
	idempotencyKey string
)

// labelsCmd groups label commands
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List, inspect and void shipping labels",
}

var labelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List labels matching the filter criteria",
	Long: `List labels from ShipEngine. Without --all only the first page is fetched.
With --all every page is fetched lazily while results are printed.

Filters are expr expressions evaluated against each label, for example:
  shipctl labels list --all --filter 'carrier_code == "ups" and daysSince(created_at) > 30'`,
	RunE: runLabelsList,
}

var labelsGetCmd = &cobra.Command{
	Use:   "get <label_id>...",
	Short: "Show one or more labels",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLabelsGet,
}

var labelsVoidCmd = &cobra.Command{
	Use:   "void <label_id>",
	Short: "Void a label",
	Long: `Void a label. Pass --idempotency-key auto to generate a key, which is
printed so the request can be safely repeated.`,
	Args: cobra.ExactArgs(1),
	RunE: runLabelsVoid,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.AddCommand(labelsListCmd, labelsGetCmd, labelsVoidCmd)

	labelsListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "fetch every page")
	labelsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	labelsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	labelsListCmd.Flags().StringVar(&labelStatus, "status", "", "server side label_status filter (processing, completed, error, voided)")

	labelsVoidCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key, or 'auto' to generate one")
}

func runLabelsList(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(compiler, cfg.Filter, filterExpr, preset)
	if err != nil {
		return err
	}

	params := shipengine.Params{}
	if labelStatus != "" {
		params["label_status"] = labelStatus
	}

	logger.Debug().
		Bool("all", listAll).
		Str("filter", expressionOf(f)).
		Msg("Listing labels")

	seq := client.Labels.ListAll(cmd.Context(), params)
	if !listAll {
		seq = firstPage(cmd.Context(), client.Labels.Pages(), params)
	}

	return printSeq(cmd, filter.Select(seq, f), labelColumns)
}

func runLabelsGet(cmd *cobra.Command, args []string) error {
	labels, err := fetchLabels(cmd.Context(), client.Labels, args, cfg.Concurrency.MaxParallel)
	if err != nil {
		return err
	}

	w := newItemWriter(cmd.OutOrStdout(), cfg.Output.Format, labelColumns)
	for _, label := range labels {
		if err := w.write(label); err != nil {
			return err
		}
	}
	return w.flush()
}

// labelGetter is the part of the labels service used by fetchLabels
type labelGetter interface {
	Get(ctx context.Context, labelID string, opts ...shipengine.RequestOption) (shipengine.Body, error)
}

// fetchLabels fetches ids with at most parallel requests in flight.
// Results keep the order of ids; the first failure cancels the rest.
func fetchLabels(ctx context.Context, labels labelGetter, ids []string, parallel int) ([]shipengine.Body, error) {
	results := make([]shipengine.Body, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	for i, id := range ids {
		g.Go(func() error {
			label, err := labels.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("label %s: %w", id, err)
			}
			results[i] = label
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runLabelsVoid(cmd *cobra.Command, args []string) error {
	key := resolveIdempotencyKey(idempotencyKey)

	var opts []shipengine.RequestOption
	if key != "" {
		opts = append(opts, shipengine.WithIdempotencyKey(key))
		logger.Info().Str("idempotency_key", key).Msg("Using idempotency key")
	}

	result, err := client.Labels.Void(cmd.Context(), args[0], opts...)
	if err != nil {
		return fmt.Errorf("failed to void label %s: %w", args[0], err)
	}

	if cfg.Output.Format == "json" {
		return writeBody(cmd.OutOrStdout(), "json", result, nil)
	}

	if approved, _ := result["approved"].(bool); approved {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Label %s voided: %s\n", args[0], field(result, "message"))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✗ Void request for %s was not approved: %s\n", args[0], field(result, "message"))
	return nil
}

// resolveIdempotencyKey turns "auto" into a fresh UUID.
func resolveIdempotencyKey(flag string) string {
	if strings.EqualFold(flag, "auto") {
		return uuid.NewString()
	}
	return flag
}

// firstPage yields only the items of the first page.
func firstPage(ctx context.Context, list shipengine.ListFunc[shipengine.Body], params shipengine.Params) iter.Seq2[shipengine.Body, error] {
	return func(yield func(shipengine.Body, error) bool) {
		page, err := list(ctx, params.With("page", 1))
		if err != nil {
			yield(nil, err)
			return
		}
		for _, item := range page.Items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// printSeq streams seq to the command output.
func printSeq(cmd *cobra.Command, seq iter.Seq2[shipengine.Body, error], columns []column) error {
	w := newItemWriter(cmd.OutOrStdout(), cfg.Output.Format, columns)
	for item, err := range seq {
		if err != nil {
			w.flush()
			return err
		}
		if err := w.write(item); err != nil {
			return err
		}
	}
	return w.flush()
}

func expressionOf(f *filter.Filter) string {
	if f == nil {
		return ""
	}
	return f.Expression()
}
