package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/spf13/cobra"
)

type importOptions struct {
	File        string
	Mappings    []string
	Commit      bool
	SkipInvalid bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate an attendance spreadsheet and optionally write it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(commandContext(cmd))
			if err != nil {
				return err
			}
			defer a.close()
			return runImport(commandContext(cmd), cmd.OutOrStdout(), a.imports, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "CSV or XLSX file to import")
	cmd.Flags().StringArrayVar(&opts.Mappings, "map", nil, "bind a field to a column as field=column, by index or header name (repeatable)")
	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "write the valid rows after preview")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "commit even when some rows have errors")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, w io.Writer, svc importer.ImportService, opts importOptions) error {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.File, err)
	}

	sess, err := svc.Upload(ctx, importer.UploadRequest{
		FileName: filepath.Base(opts.File),
		Data:     data,
	})
	if err != nil {
		return err
	}
	sessionID := sess.ID
	defer func() { _ = svc.Discard(context.WithoutCancel(ctx), sessionID) }()

	if len(opts.Mappings) > 0 {
		bindings, err := parseMappings(opts.Mappings, sess.Headers)
		if err != nil {
			return err
		}
		if sess, err = svc.UpdateMapping(ctx, sessionID, importer.UpdateMappingRequest{Bindings: bindings}); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(w, "%s %s (%d rows)\n\n", Silent("File:"), Primary(sess.FileName), sess.TotalRows)
	printMapping(w, sess)
	if len(sess.MissingFields) > 0 {
		names := make([]string, 0, len(sess.MissingFields))
		for _, f := range sess.MissingFields {
			names = append(names, string(f))
		}
		return fmt.Errorf("%w: unmapped %s; bind with --map field=column", importer.ErrMappingIncomplete, strings.Join(names, ", "))
	}

	sess, err = svc.Preview(ctx, sessionID)
	if err != nil {
		return err
	}
	printPreview(w, sess.Preview)

	if !opts.Commit {
		_, _ = fmt.Fprintln(w, Silent("Dry run; pass --commit to write the valid rows."))
		return nil
	}

	sess, err = svc.Commit(ctx, sessionID, importer.CommitRequest{SkipInvalid: opts.SkipInvalid})
	if err != nil {
		if errors.Is(err, importer.ErrUnresolvedRows) {
			return fmt.Errorf("%w; pass --skip-invalid to write only the valid rows", err)
		}
		return err
	}
	printResult(w, sess.Result)
	return nil
}

// parseMappings turns field=column flags into bindings. A column is a 0-based
// index, a header name (case-insensitive) or "-" to unbind the field.
func parseMappings(specs []string, headers []string) (map[string]int, error) {
	bindings := make(map[string]int, len(specs))
	for _, spec := range specs {
		field, column, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --map %q: want field=column", spec)
		}
		field = strings.TrimSpace(field)
		column = strings.TrimSpace(column)

		if !importer.Field(field).IsValid() {
			return nil, fmt.Errorf("%w: %s", importer.ErrUnknownField, field)
		}

		col, err := resolveColumn(column, headers)
		if err != nil {
			return nil, fmt.Errorf("invalid --map %q: %w", spec, err)
		}
		bindings[field] = col
	}
	return bindings, nil
}

func resolveColumn(column string, headers []string) (int, error) {
	if column == "" || column == "-" {
		return -1, nil
	}
	if idx, err := strconv.Atoi(column); err == nil {
		return idx, nil
	}
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column named %q", column)
}

func printMapping(w io.Writer, sess importer.SessionResponse) {
	bound := make(map[importer.Field]importer.FieldBinding, len(sess.Mapping))
	for _, b := range sess.Mapping {
		bound[b.Field] = b
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FIELD\tCOLUMN\tHEADER")
	for _, field := range importer.Fields {
		b, ok := bound[field]
		if !ok {
			_, _ = fmt.Fprintf(tw, "%s\t-\t%s\n", field, Warning("unmapped"))
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", field, b.Column, b.Header)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
}

func printPreview(w io.Writer, preview *importer.PreviewSummary) {
	if preview == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s %d  %s %s  %s %s\n",
		Silent("Rows:"), preview.TotalRows,
		Silent("valid:"), Success(strconv.Itoa(preview.ValidRows)),
		Silent("invalid:"), Error(strconv.Itoa(preview.InvalidRows)),
	)

	kinds := make([]string, 0, len(preview.IssueCounts))
	for kind := range preview.IssueCounts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		_, _ = fmt.Fprintf(w, "  %s %d\n", Silent(kind+":"), preview.IssueCounts[importer.IssueKind(kind)])
	}

	if preview.InvalidRows == 0 {
		_, _ = fmt.Fprintln(w)
		return
	}

	_, _ = fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROW\tEMPLOYEE\tDATE\tISSUE")
	for _, row := range preview.Rows {
		if row.Valid {
			continue
		}
		date := row.Date
		if date == "" {
			date = row.RawDate
		}
		for i, issue := range row.Issues {
			if i == 0 {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Row, row.EmployeeRef, date, issue.Message)
				continue
			}
			_, _ = fmt.Fprintf(tw, "\t\t\t%s\n", issue.Message)
		}
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
}

func printResult(w io.Writer, result *importer.CommitResult) {
	if result == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s  %s %s\n",
		Silent("Imported:"), Success(strconv.Itoa(result.SuccessCount)),
		Silent("Failed:"), Error(strconv.Itoa(result.FailedCount)),
	)
	for _, f := range result.Failures {
		_, _ = fmt.Fprintf(w, "  row %d: %s\n", f.Row, f.Message)
	}
}
