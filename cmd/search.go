package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/library"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/query"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	searchCmd.Flags().IntP("limit", "l", 0, "Show at most this many results, 0 for all")
	searchCmd.Flags().IntP("add", "a", 0, "Bookmark the result with this number")
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search titles by name",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()
		q := strings.Join(args, " ")

		erase := util.PrintErasable(fmt.Sprintf("%s Searching %s...", icon.Get(icon.Search), style.Fg(color.Yellow)(q)))
		entries, err := newSite(settings).Search(cmd.Context(), q)
		erase()
		handleErr(err)

		if viper.GetBool(key.HistorySaveQueries) {
			if err := query.Remember(q); err != nil {
				log.Warnf("remember query: %v", err)
			}
		}

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Printf("%s nothing found for %s\n", icon.Get(icon.Fail), style.Fg(color.Yellow)(q))
			if suggestion, ok := query.Suggest(q).Get(); ok && suggestion != strings.ToLower(q) {
				cmd.Printf("did you mean %s?\n", style.Fg(color.Purple)(suggestion))
			}
			return
		}

		printEntries(cmd, entries, settings.BaseDomain)

		if n := lo.Must(cmd.Flags().GetInt("add")); n > 0 {
			if n > len(entries) {
				handleErr(fmt.Errorf("no result number %d", n))
			}
			item, err := library.Add(library.FromEntry(entries[n-1], settings.BaseDomain))
			handleErr(err)
			cmd.Printf("\n%s added %s\n", icon.Get(icon.Bookmark), style.Bold(item.Title))
		}
	},
}

func printEntries(cmd *cobra.Command, entries []source.CatalogEntry, domain string) {
	for i, entry := range entries {
		cmd.Printf("%s %s\n   %s\n",
			style.Faint(fmt.Sprintf("%2d.", i+1)),
			style.Bold(entry.Name),
			style.Fg(color.Blue)(entry.Href(domain)),
		)
	}
}
