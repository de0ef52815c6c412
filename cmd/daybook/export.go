package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	internalstrings "github.com/amonks/daybook/internal/strings"
	"github.com/amonks/daybook/internal/validation"
	"github.com/amonks/daybook/todo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every todo and note as JSON or YAML",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
)

type snapshotFormat string

const (
	formatJSON snapshotFormat = "json"
	formatYAML snapshotFormat = "yaml"
)

var (
	snapshotFormats = []snapshotFormat{formatJSON, formatYAML}

	errUnknownExportFormat = errors.New("unknown export format")
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(formatJSON), "Output format ("+validation.FormatValidValues(snapshotFormats)+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return writeSnapshot(out, store.Snapshot(), exportFormat)
}

func writeSnapshot(w io.Writer, snapshot todo.Snapshot, format string) error {
	if snapshot.Todos == nil {
		snapshot.Todos = []todo.Todo{}
	}
	if snapshot.Notes == nil {
		snapshot.Notes = []todo.Note{}
	}

	switch snapshotFormat(internalstrings.NormalizeLowerTrimSpace(format)) {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return validation.FormatInvalidValueError(errUnknownExportFormat, snapshotFormat(format), snapshotFormats)
	}
}
