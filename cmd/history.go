package cmd

import (
	"encoding/json"

	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/query"
	"github.com/iridum-cli/iridum/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the search history",
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches in the order they were first made",
	Run: func(cmd *cobra.Command, args []string) {
		queries, err := query.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(queries))
			return
		}

		if len(queries) == 0 {
			cmd.Println(style.Faint("no searches yet"))
			return
		}

		for _, q := range queries {
			cmd.Println(q)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [query]",
	Short: "Remove a search from the history",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		queries, _ := query.List()
		return queries, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(query.Remove(args[0]))
		cmd.Printf("%s removed %s\n", icon.Get(icon.Trash), args[0])
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every search from the history",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(query.Clear())
		cmd.Printf("%s search history cleared\n", icon.Get(icon.Success))
	},
}
