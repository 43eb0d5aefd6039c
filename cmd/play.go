package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/player"
	"github.com/iridum-cli/iridum/site"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/watch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("season", "s", 1, "Season of the episode")
	playCmd.Flags().IntP("episode", "e", 0, "Episode number, required for series")
	playCmd.Flags().StringP("player", "p", "", "Player to use")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, playCmd.Flags().Lookup("player")))

	playCmd.Flags().Float64("hold-speed", 0, "Playback speed toggled with Enter")
	lo.Must0(viper.BindPFlag(key.PlayerHoldSpeed, playCmd.Flags().Lookup("hold-speed")))

	playCmd.Flags().BoolP("fullscreen", "f", false, "Open the player fullscreen")
	lo.Must0(viper.BindPFlag(key.PlayerForceLandscape, playCmd.Flags().Lookup("fullscreen")))
}

var playCmd = &cobra.Command{
	Use:   "play [href or id-slug]",
	Short: "Play a title or episode, resuming where it was left",
	Long: `Play a title or episode, resuming where it was left.

While playing, press Enter to toggle the hold speed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()
		name := viper.GetString(key.Player)
		if name == "mpv" {
			CheckDependency(name)
		}

		p, err := player.New(name)
		handleErr(err)

		target, err := playTarget(cmd, settings, args[0])
		handleErr(err)

		tracker, err := openTracker(settings)
		handleErr(err)

		session := watch.New(p, newChain(settings), tracker, settings, watch.WithObserver(func(u watch.Update) {
			log.Debugf("%s at %.0f/%.0f", u.Key, u.Entry.Position, u.Entry.Duration)
		}))

		go toggleSpeedOnEnter(cmd, session)

		cmd.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(target.Title))
		if start, ok := tracker.LastPosition(target.PlayURL).Get(); ok {
			cmd.Printf("%s resuming at %s\n", icon.Get(icon.Resume), style.Fg(color.Cyan)(clock(start)))
		}

		handleErr(session.Run(cmd.Context(), target))

		if entry, ok := tracker.Get(target.PlayURL).Get(); ok {
			cmd.Printf("%s stopped at %s of %s\n", icon.Get(icon.Success), clock(entry.Position), clock(entry.Duration))
		}
	},
}

func playTarget(cmd *cobra.Command, settings config.Settings, arg string) (watch.Target, error) {
	client := newSite(settings)
	href := site.TitleHref(arg, settings.BaseDomain)

	detail, err := client.Title(cmd.Context(), href)
	if err != nil {
		return watch.Target{}, err
	}

	if !detail.IsSeries() {
		return watch.Target{Title: detail.Name, PlayURL: detail.PlayURL}, nil
	}

	number := lo.Must(cmd.Flags().GetInt("episode"))
	if number < 1 {
		return watch.Target{}, fmt.Errorf("%s is a series, pick an episode with --episode", detail.Name)
	}

	season := lo.Must(cmd.Flags().GetInt("season"))
	episodes, err := client.Season(cmd.Context(), href, season)
	if err != nil {
		return watch.Target{}, err
	}

	episode, err := episodeOf(episodes, number)
	if err != nil {
		return watch.Target{}, err
	}

	playURL := episode.PlayURL(settings.BaseDomain)
	siblings := lo.Without(lo.Map(episodes, func(e source.Episode, _ int) string {
		return e.PlayURL(settings.BaseDomain)
	}), playURL)

	return watch.Target{
		Title:    fmt.Sprintf("%s S%dE%d %s", detail.Name, season, episode.Number, episode.Name),
		PlayURL:  playURL,
		Siblings: siblings,
	}, nil
}

func toggleSpeedOnEnter(cmd *cobra.Command, session *watch.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := session.ToggleSpeed(); err != nil {
			log.Warnf("toggle speed: %v", err)
			continue
		}
		cmd.Printf("%s speed toggled\n", icon.Get(icon.Progress))
	}
}

func clock(seconds float64) string {
	s := int(seconds)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
