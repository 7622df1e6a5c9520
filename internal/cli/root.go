package cli

import (
	"github.com/kolah/paydoc/internal/config"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paydoc",
		Short:         "Assemble the payments API OpenAPI document",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)
	root.AddCommand(
		GenerateCommand(),
		CheckCommand(),
		ProvidersCommand(),
	)

	return root
}
