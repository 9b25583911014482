// ABOUTME: Ingest command chunking a document and uploading it
// ABOUTME: Targets one assistant's knowledge base collection
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpardo/assistant-backend/internal/loader"
	"github.com/mpardo/assistant-backend/internal/models"
)

var ingestAssistant string

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Chunk a document and upload it to an assistant's collection",
		Long: `Chunk a document and upload it to an assistant's collection

Supported formats: txt, pdf, docx, pptx. The document is split into
overlapping token chunks, embedded, and upserted into the assistant's
vector collection in batches.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
		Example: `  assistant ingest handbook.docx --assistant acme
  assistant ingest notes.txt`,
	}

	cmd.Flags().StringVar(&ingestAssistant, "assistant", "", "Assistant id (defaults to ASSISTANT_DEFAULT_ID)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	assistantID := ingestAssistant
	if assistantID == "" {
		assistantID = p.cfg.DefaultAssistant
	}

	path := args[0]
	properties := map[string]string{
		models.DocumentNameKey: filepath.Base(path),
	}

	chunks, err := p.loader.Load(path, loader.FileType(path), properties)
	if err != nil {
		return fmt.Errorf("chunking %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Chunked %s into %d chunks\n", path, len(chunks))
	}

	if err := p.ingestor.Upload(cmd.Context(), assistantID, chunks); err != nil {
		return fmt.Errorf("uploading chunks: %w", err)
	}

	if !quiet {
		color.Green("✓ Ingested %d chunks from %s into %s", len(chunks), filepath.Base(path), assistantID)
	}
	return nil
}
