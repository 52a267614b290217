package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mini-kep/series-gateway/pkg/pathquery"
)

var (
	decodeLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Width(14)
	decodeValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	decodeDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type decodeOptions struct {
	asJSON bool
}

func newDecodeCmd() *cobra.Command {
	opts := decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode <path>",
		Short: "Decompose a series query path without running the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the decomposition as json")
	return cmd
}

func runDecode(out io.Writer, path string, opts decodeOptions) error {
	q, err := pathquery.Decompose(path)
	if err != nil {
		return err
	}
	if opts.asJSON {
		return printDecodeJSON(out, q)
	}
	printDecodePretty(out, q)
	return nil
}

func printDecodeJSON(out io.Writer, q pathquery.PathQuery) error {
	doc := map[string]any{
		"domain":         q.Domain,
		"varname":        q.VarName,
		"freq":           q.Freq,
		"unit":           q.Unit,
		"rate":           q.Rate,
		"agg":            q.Agg,
		"fin":            q.Fin,
		"start_date":     q.StartDate,
		"end_date":       q.EndDate,
		"lookup_params":  q.LookupParams().Encode(),
		"canonical_path": q.CanonicalPath(),
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func printDecodePretty(out io.Writer, q pathquery.PathQuery) {
	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			fmt.Fprintln(out, decodeLabelStyle.Render(label)+decodeDimStyle.Render("-"))
			return
		}
		fmt.Fprintln(out, decodeLabelStyle.Render(label)+decodeValueStyle.Render(value))
	}
	row("domain", q.Domain)
	row("varname", q.VarName)
	row("freq", q.Freq)
	row("unit", q.Unit)
	row("rate", q.Rate)
	row("agg", q.Agg)
	row("fin", q.Fin)
	row("start_date", q.StartDate)
	row("end_date", q.EndDate)
	row("lookup", q.LookupParams().Encode())
	row("canonical", q.CanonicalPath())
}
