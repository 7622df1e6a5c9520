package cli

import (
	"github.com/kolah/paydoc/internal/config"
	"github.com/kolah/paydoc/internal/openapi"
	"github.com/kolah/paydoc/internal/verify"
	"github.com/spf13/cobra"
)

func CheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run every consistency and emission check without writing anything",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	res, err := assembleDocument(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}
	doc := res.Document

	spec, err := openapi.Build(doc)
	if err != nil {
		return err
	}
	data, err := spec.EncodeJSON()
	if err != nil {
		return err
	}
	if err := verify.New().Verify(cmd.Context(), data, doc); err != nil {
		return err
	}

	cmd.Printf("%s %s (OpenAPI %s)\n", doc.Info.Title, doc.Version, doc.OpenAPI)
	cmd.Printf("  Providers: %d selected, %d skipped\n", len(res.Selected), len(res.Skipped))
	for _, s := range res.Skipped {
		cmd.Printf("    %s: %s\n", s.Name, s.Reason)
	}
	cmd.Printf("  Schemas: %d (%d pruned)\n", len(doc.Schemas), len(doc.Pruned))
	cmd.Printf("  Operations: %d\n", len(doc.Operations))
	for _, g := range doc.Groups {
		cmd.Printf("    %s: %d\n", g.Name, len(g.Operations))
	}
	cmd.Println("OK")
	return nil
}
