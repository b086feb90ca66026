package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/parser"
)

func newBanksCommand(o *rootOptions) *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "banks",
		Short: "List the configured banks",
		Long: `List the configured banks and whether statements from each can be extracted.

--export writes the current definitions as YAML; edit the file and pass it
back with --banks to change a layout without rebuilding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" {
				if err := config.SaveBanks(export, o.registry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bank definition(s) to %s\n", len(o.registry.Banks()), export)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCURRENCY\tSUPPORTED\tFOLDER")
			for _, b := range o.registry.Banks() {
				supported := "yes"
				if _, err := parser.New(b, o.log); err != nil {
					supported = "no"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.DisplayName, b.Currency, supported, b.Folder)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the bank definitions to this YAML file")

	return cmd
}
