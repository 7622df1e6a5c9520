package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kolah/paydoc/internal/domains"
	"github.com/spf13/cobra"
)

func ProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List domain providers, their feature toggle and API versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tFEATURE\tVERSIONS")
			for _, p := range domains.All() {
				feature := string(p.Feature)
				if feature == "" {
					feature = "-"
				}
				var versions []string
				for _, v := range p.Versions() {
					versions = append(versions, string(v))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, feature, strings.Join(versions, ","))
			}
			return w.Flush()
		},
	}
}
