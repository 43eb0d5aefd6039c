package cmd

import (
	"encoding/json"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/progress"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/util"
	"github.com/iridum-cli/iridum/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Manage saved playback progress",
}

func openProgress() *progress.Tracker {
	tracker, err := progress.Open(where.Progress())
	handleErr(err)
	return tracker
}

func init() {
	progressCmd.AddCommand(progressListCmd)
	progressListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved positions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		records := openProgress().All()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		for _, r := range records {
			cmd.Printf("%s %s/%s %s\n",
				style.Fg(color.Cyan)(percent(r.Fraction())),
				clock(r.Position),
				clock(r.Duration),
				style.Faint(r.Key),
			)
		}
	},
}

func init() {
	progressCmd.AddCommand(progressClearCmd)
}

var progressClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved position",
	Run: func(cmd *cobra.Command, args []string) {
		tracker := openProgress()
		tracker.Clear()
		handleErr(tracker.Sync())
		cmd.Printf("%s progress cleared\n", icon.Get(icon.Success))
	},
}

func init() {
	progressCmd.AddCommand(progressPruneCmd)
	progressPruneCmd.Flags().IntP("keep", "k", 0, "Number of most recent positions to keep")
	lo.Must0(viper.BindPFlag(key.ProgressMaxEntries, progressPruneCmd.Flags().Lookup("keep")))
}

var progressPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop the oldest saved positions",
	Run: func(cmd *cobra.Command, args []string) {
		keep := viper.GetInt(key.ProgressMaxEntries)
		if keep <= 0 {
			cmd.Println(style.Faint("no limit set, nothing pruned"))
			return
		}

		tracker := openProgress()
		removed := tracker.Prune(keep)
		handleErr(tracker.Sync())
		cmd.Printf("%s pruned %s\n", icon.Get(icon.Success), util.Quantify(removed, "position", "positions"))
	},
}
