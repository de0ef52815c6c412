// Package listflags holds flags shared by daybook's listing commands.
package listflags

import "github.com/spf13/cobra"

// AddJSONFlag adds a shared --json flag to listing commands.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}

// AddMonthFlag adds a shared --month/-m filter to listing commands.
func AddMonthFlag(cmd *cobra.Command, target *string, noun string) {
	usage := "Only " + noun + " in this month (name, number or YYYY-MM)"
	if target == nil {
		cmd.Flags().StringP("month", "m", "", usage)
		return
	}

	cmd.Flags().StringVarP(target, "month", "m", "", usage)
}
