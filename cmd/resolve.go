package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/resolver"
	"github.com/iridum-cli/iridum/site"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	resolveCmd.Flags().BoolP("headers", "H", false, "Print the headers the player must send")
	resolveCmd.Flags().BoolP("verbose", "V", false, "Print every resolution step")
	resolveCmd.Flags().IntP("season", "s", 1, "Season of the episode")
	resolveCmd.Flags().IntP("episode", "e", 0, "Episode number to resolve instead of the whole title")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [href, id-slug or play URL]",
	Short: "Resolve a title or episode to an authorized stream URL",
	Long: `Resolve a title or episode to an authorized stream URL.

A title page is followed to its play page, then to the embedded player and its playlist.
Play URLs (https://domain/iframe/...) skip the first step.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()

		var opts []resolver.Option
		if lo.Must(cmd.Flags().GetBool("verbose")) {
			opts = append(opts, resolver.WithObserver(printHop))
		}
		chain := newChain(settings, opts...)

		resolution, err := resolveArg(cmd, chain, settings, args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				source.StreamResolution
				Headers map[string]string `json:"headers"`
			}{resolution, resolution.Headers()}))
			return
		}

		cmd.Println(resolution.FinalURL)
		if lo.Must(cmd.Flags().GetBool("headers")) {
			headers := resolution.Headers()
			names := lo.Keys(headers)
			sort.Strings(names)
			for _, name := range names {
				cmd.Printf("%s: %s\n", name, headers[name])
			}
		}
	},
}

func resolveArg(cmd *cobra.Command, chain *resolver.Chain, settings config.Settings, arg string) (source.StreamResolution, error) {
	ctx := cmd.Context()

	if strings.Contains(arg, "/iframe/") {
		return chain.Resolve(ctx, arg)
	}

	href := site.TitleHref(arg, settings.BaseDomain)

	if number := lo.Must(cmd.Flags().GetInt("episode")); number > 0 {
		season := lo.Must(cmd.Flags().GetInt("season"))

		erase := util.PrintErasable(fmt.Sprintf("%s Loading season %d...", icon.Get(icon.Progress), season))
		episodes, err := newSite(settings).Season(ctx, href, season)
		erase()
		if err != nil {
			return source.StreamResolution{}, err
		}

		episode, err := episodeOf(episodes, number)
		if err != nil {
			return source.StreamResolution{}, err
		}
		return chain.Resolve(ctx, episode.PlayURL(settings.BaseDomain))
	}

	fallback := ""
	if id, ok := site.TitleID(href).Get(); ok {
		fallback = source.MoviePlayURL(settings.BaseDomain, id)
	}
	return chain.ResolveDetail(ctx, href, fallback)
}
