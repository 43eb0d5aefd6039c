package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/library"
	"github.com/iridum-cli/iridum/site"
	"github.com/iridum-cli/iridum/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(libraryCmd)
}

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage bookmarked titles",
}

func init() {
	libraryCmd.AddCommand(libraryAddCmd)
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [href or id-slug]",
	Short: "Bookmark a title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()
		href := site.TitleHref(args[0], settings.BaseDomain)

		detail, err := newSite(settings).Title(cmd.Context(), href)
		handleErr(err)

		item, err := library.Add(library.Item{
			Title:    detail.Name,
			ImageURL: detail.ImageURL(settings.BaseDomain),
			Href:     href,
		})
		handleErr(err)

		cmd.Printf("%s added %s\n", icon.Get(icon.Bookmark), style.Bold(item.Title))
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked titles, favorites first",
	Run: func(cmd *cobra.Command, args []string) {
		items, err := library.List()
		handleErr(err)

		partitions := library.Partition(items)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(partitions))
			return
		}

		if len(items) == 0 {
			cmd.Println(style.Faint("library is empty"))
			return
		}

		sections := []lo.Tuple3[string, icon.Icon, []library.Item]{
			{A: "Favorites", B: icon.Favorite, C: partitions.Favorite},
			{A: "Finished", B: icon.Finished, C: partitions.Finished},
			{A: "Other", B: icon.Bookmark, C: partitions.Other},
		}

		first := true
		for _, section := range sections {
			if len(section.C) == 0 {
				continue
			}
			if !first {
				cmd.Println()
			}
			first = false

			cmd.Println(style.New().Bold(true).Foreground(color.HiPurple).Render(section.A))
			for _, item := range section.C {
				cmd.Printf("%s %s\n  %s\n", icon.Get(section.B), style.Bold(item.Title), style.Fg(color.Blue)(item.Href))
			}
		}
	},
}

func libraryHrefArgs(use, short string, run func(cmd *cobra.Command, href string)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [href or id-slug]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			items, err := library.List()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return lo.Map(items, func(i library.Item, _ int) string { return i.Href }), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			run(cmd, site.TitleHref(args[0], config.Current().BaseDomain))
		},
	}
}

func init() {
	libraryCmd.AddCommand(libraryHrefArgs("remove", "Remove a bookmark", func(cmd *cobra.Command, href string) {
		removed, err := library.Remove(href)
		handleErr(err)
		if !removed {
			handleErr(&library.NotFoundError{Href: href})
		}
		cmd.Printf("%s removed %s\n", icon.Get(icon.Trash), href)
	}))

	libraryCmd.AddCommand(libraryHrefArgs("favorite", "Toggle the favorite flag of a bookmark", func(cmd *cobra.Command, href string) {
		item, err := library.ToggleFavorite(href)
		handleErr(err)
		cmd.Printf("%s %s %s\n", icon.Get(icon.Favorite), style.Bold(item.Title), flagState(item.IsFavorite, "favorite"))
	}))

	libraryCmd.AddCommand(libraryHrefArgs("finish", "Toggle the finished flag of a bookmark", func(cmd *cobra.Command, href string) {
		item, err := library.ToggleFinished(href)
		handleErr(err)
		cmd.Printf("%s %s %s\n", icon.Get(icon.Finished), style.Bold(item.Title), flagState(item.IsFinished, "finished"))
	}))
}

func flagState(on bool, name string) string {
	if on {
		return style.Fg(color.Green)("marked " + name)
	}
	return style.Fg(color.Red)(fmt.Sprintf("no longer %s", name))
}
