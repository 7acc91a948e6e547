package version

import (
	"fmt"

	"github.com/je4/kidoctor/cmd/kidoctor/internal"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kidoctor %s\n", internal.FormatVersion())
			build, goVer := internal.FormatBuildInfo()
			if build != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Build: %s\n", build)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Go: %s\n", goVer)
		},
	}
}
