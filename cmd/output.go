package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/s0up4200/shipctl/shipengine"
)

// column maps a table header to a dotted field path
type column struct {
	header string
	path   string
}

var (
	labelColumns = []column{
		{"LABEL ID", "label_id"},
		{"STATUS", "status"},
		{"CARRIER", "carrier_code"},
		{"SERVICE", "service_code"},
		{"TRACKING", "tracking_number"},
		{"COST", "shipment_cost.amount"},
		{"CREATED", "created_at"},
	}
	shipmentColumns = []column{
		{"SHIPMENT ID", "shipment_id"},
		{"STATUS", "shipment_status"},
		{"CARRIER", "carrier_id"},
		{"SERVICE", "service_code"},
		{"SHIP TO", "ship_to.city_locality"},
		{"CREATED", "created_at"},
	}
	carrierColumns = []column{
		{"CARRIER ID", "carrier_id"},
		{"CODE", "carrier_code"},
		{"NAME", "friendly_name"},
		{"PRIMARY", "primary"},
	}
)

// itemWriter prints items one at a time so long listings stream.
type itemWriter struct {
	format  string
	columns []column

	out   io.Writer
	tw    *tabwriter.Writer
	enc   *json.Encoder
	count int
}

func newItemWriter(out io.Writer, format string, columns []column) *itemWriter {
	w := &itemWriter{format: format, columns: columns, out: out}
	if format == "json" {
		w.enc = json.NewEncoder(out)
		w.enc.SetIndent("", "  ")
		return w
	}

	w.tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.header
	}
	fmt.Fprintln(w.tw, strings.Join(headers, "\t"))
	return w
}

func (w *itemWriter) write(item shipengine.Body) error {
	w.count++
	if w.enc != nil {
		return w.enc.Encode(item)
	}

	cells := make([]string, len(w.columns))
	for i, c := range w.columns {
		cells[i] = field(item, c.path)
	}
	_, err := fmt.Fprintln(w.tw, strings.Join(cells, "\t"))
	return err
}

// flush finishes the table. Empty tables print a notice instead.
func (w *itemWriter) flush() error {
	if w.tw == nil {
		return nil
	}
	if w.count == 0 {
		_, err := fmt.Fprintln(w.out, "No results.")
		return err
	}
	return w.tw.Flush()
}

// writeBody prints a single response body.
func writeBody(out io.Writer, format string, body shipengine.Body, columns []column) error {
	w := newItemWriter(out, format, columns)
	if err := w.write(body); err != nil {
		return err
	}
	return w.flush()
}

// field resolves a dotted path in b and formats it for a table cell.
func field(b map[string]any, path string) string {
	var cur any = b
	for part := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "-"
		}
		cur = m[part]
	}

	switch v := cur.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// bodies converts a decoded JSON array into bodies, skipping non-objects.
func bodies(v any) []shipengine.Body {
	list, _ := v.([]any)
	out := make([]shipengine.Body, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
