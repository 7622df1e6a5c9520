package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kolah/paydoc/internal/codegen"
	"github.com/kolah/paydoc/internal/config"
	"github.com/spf13/cobra"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble, verify and write the OpenAPI document",
		RunE:  runGenerate,
	}

	config.BindOutputFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	res, err := assembleDocument(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	doc := res.Document

	gen, err := codegen.New(cfg)
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}
	out, err := gen.Generate(cmd.Context(), doc)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out.Content)
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, out.Filename)
	if err := writeAtomic(path, []byte(out.Content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmd.PrintErrf("Assembled %s %s: %d schemas, %d operations\n", doc.Info.Title, doc.Version, len(doc.Schemas), len(doc.Operations))
	cmd.PrintErrf("Written: %s\n", path)
	return nil
}

// writeAtomic writes data to a temporary file next to path and renames it into
// place, so readers never observe a partial document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
