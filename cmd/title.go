package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/progress"
	"github.com/iridum-cli/iridum/site"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(titleCmd)
	titleCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	titleCmd.Flags().IntP("season", "s", 1, "Season to list episodes of")
}

type titleOutput struct {
	Href     string             `json:"href"`
	Detail   source.TitleDetail `json:"detail"`
	Season   int                `json:"season,omitempty"`
	Episodes []episodeOutput    `json:"episodes,omitempty"`
	Progress float64            `json:"progress"`
}

type episodeOutput struct {
	source.Episode
	PlayURL  string  `json:"play_url"`
	Progress float64 `json:"progress"`
}

var titleCmd = &cobra.Command{
	Use:   "title [href or id-slug]",
	Short: "Show the details of a title and its episodes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()
		client := newSite(settings)
		href := site.TitleHref(args[0], settings.BaseDomain)

		erase := util.PrintErasable(fmt.Sprintf("%s Loading %s...", icon.Get(icon.Progress), href))
		detail, err := client.Title(cmd.Context(), href)
		if err != nil {
			erase()
			handleErr(err)
		}

		out := titleOutput{Href: href, Detail: detail}

		tracker, err := openTracker(settings)
		if err != nil {
			erase()
			handleErr(err)
		}

		if detail.IsSeries() {
			out.Season = lo.Must(cmd.Flags().GetInt("season"))
			episodes, err := client.Season(cmd.Context(), href, out.Season)
			erase()
			handleErr(err)

			out.Episodes = lo.Map(episodes, func(e source.Episode, _ int) episodeOutput {
				playURL := e.PlayURL(settings.BaseDomain)
				return episodeOutput{
					Episode:  e,
					PlayURL:  playURL,
					Progress: fractionOf(tracker, playURL),
				}
			})
			out.Progress = tracker.Overall(lo.Map(out.Episodes, func(e episodeOutput, _ int) string { return e.PlayURL })...)
		} else {
			erase()
			out.Progress = fractionOf(tracker, detail.PlayURL)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(out))
			return
		}

		printTitle(cmd, out, settings)
	},
}

func fractionOf(tracker *progress.Tracker, key string) float64 {
	return tracker.Get(key).OrEmpty().Fraction()
}

func percent(fraction float64) string {
	return fmt.Sprintf("%3.0f%%", fraction*100)
}

func printTitle(cmd *cobra.Command, out titleOutput, settings config.Settings) {
	d := out.Detail
	label := style.Faint

	cmd.Println(style.Title(d.Name))
	if settings.ShowOriginalTitle && d.OriginalName != "" && d.OriginalName != d.Name {
		cmd.Println(style.Italic(d.OriginalName))
	}
	cmd.Println()

	facts := lo.Filter([]string{
		d.ReleaseDate,
		lo.Ternary(d.Runtime > 0, fmt.Sprintf("%d min", d.Runtime), ""),
		d.AgeRating,
		d.Quality,
		lo.Ternary(d.Score != "", "★ "+d.Score, ""),
		lo.Ternary(d.IsSeries(), util.Quantify(d.SeasonsCount, "season", "seasons"), ""),
	}, func(s string, _ int) bool { return s != "" })
	if len(facts) > 0 {
		cmd.Println(strings.Join(facts, style.Faint(" · ")))
	}

	if len(d.Genres) > 0 {
		cmd.Println(label("Genres:"), strings.Join(d.Genres, ", "))
	}
	if settings.ShowCast && len(d.MainActors) > 0 {
		cmd.Println(label("Cast:"), strings.Join(d.MainActors, ", "))
	}
	if settings.ShowDirector && len(d.Directors) > 0 {
		cmd.Println(label("Directed by:"), strings.Join(d.Directors, ", "))
	}
	if d.Plot != "" {
		cmd.Println()
		cmd.Println(d.Plot)
	}

	cmd.Println()
	if poster := d.ImageURL(settings.BaseDomain); poster != "" {
		cmd.Println(label("Poster:"), style.Fg(color.Blue)(poster))
	}

	if !d.IsSeries() {
		cmd.Println(label("Play:"), style.Fg(color.Blue)(d.PlayURL), style.Faint(percent(out.Progress)))
		return
	}

	cmd.Printf("%s %s\n\n", style.Bold(fmt.Sprintf("Season %d", out.Season)), style.Faint(percent(out.Progress)+" watched"))
	for _, e := range out.Episodes {
		mark := lo.Ternary(e.Progress >= 0.9, icon.Get(icon.Finished), " ")
		cmd.Printf("%s %s %s %s\n", mark, style.Faint(fmt.Sprintf("%2d.", e.Number)), e.Name, style.Faint(percent(e.Progress)))
	}
}
