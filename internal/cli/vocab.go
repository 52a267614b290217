package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mini-kep/series-gateway/pkg/domains"
	"github.com/mini-kep/series-gateway/pkg/pathquery"
)

var vocabHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

func newVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List tokens recognised in series query paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(cmd.OutOrStdout())
		},
	}
}

func runVocab(out io.Writer) error {
	section := func(name string, vals []string) {
		fmt.Fprintln(out, vocabHeaderStyle.Render(name))
		fmt.Fprintln(out, "  "+strings.Join(vals, " "))
	}
	section("builtin domains", domains.Builtin)
	section("frequencies", pathquery.Frequencies())
	section("rates", pathquery.Rates())
	section("aggregators", pathquery.Aggregators())
	section("finalisers", pathquery.Finalisers())
	return nil
}
