package cli

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion is called from main with the build version.
func SetVersion(v string) {
	version = v
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "attendancectl",
		Short:        "Operate the attendance calendar and bulk import from the terminal",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("lang", "", "locale for labels and validation messages (en, id)")

	root.AddCommand(newImportCmd())
	root.AddCommand(newLanesCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// commandContext returns the command's context carrying the --lang locale.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		ctx = i18n.WithLocale(ctx, lang)
	}
	return ctx
}
