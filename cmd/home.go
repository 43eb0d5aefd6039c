package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(homeCmd)
	homeCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	homeCmd.Flags().StringP("slider", "s", "", "Show only the slider with this name")
	homeCmd.Flags().BoolP("flat", "f", false, "List every title once, without sliders")
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the titles featured on the home page",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()

		erase := util.PrintErasable(fmt.Sprintf("%s Loading home page...", icon.Get(icon.Progress)))
		sliders, err := newSite(settings).Home(cmd.Context())
		erase()
		handleErr(err)

		if name := lo.Must(cmd.Flags().GetString("slider")); name != "" {
			sliders = lo.Filter(sliders, func(s source.Slider, _ int) bool { return s.Name == name })
		}

		asJson := lo.Must(cmd.Flags().GetBool("json"))

		if lo.Must(cmd.Flags().GetBool("flat")) {
			entries := lo.UniqBy(lo.FlatMap(sliders, func(s source.Slider, _ int) []source.CatalogEntry {
				return s.Titles
			}), func(e source.CatalogEntry) int { return e.ID })

			if asJson {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
				return
			}
			printEntries(cmd, entries, settings.BaseDomain)
			return
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(sliders))
			return
		}

		for i, slider := range sliders {
			label := lo.Ternary(slider.Label != "", slider.Label, slider.Name)
			cmd.Println(style.New().Bold(true).Foreground(color.HiPurple).Render(label))
			printEntries(cmd, slider.Titles, settings.BaseDomain)

			if i < len(sliders)-1 {
				cmd.Println()
			}
		}
	},
}
