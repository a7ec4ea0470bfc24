package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	httpDelivery "github.com/skillmatch/backend/internal/delivery/http"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skillmatch %s\n", httpDelivery.Version)
		},
	}
}
