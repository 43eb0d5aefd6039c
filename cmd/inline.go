package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/inline"
	"github.com/iridum-cli/iridum/query"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "search query")
	inlineCmd.Flags().StringP("title", "t", "", "title selector")
	inlineCmd.Flags().StringP("episodes", "e", "", "episode selector")
	inlineCmd.Flags().IntP("season", "s", 1, "season to list for series")
	inlineCmd.Flags().BoolP("json", "j", false, "print JSON")
	inlineCmd.Flags().BoolP("streams", "S", false, "resolve stream URLs of the selected items")
	inlineCmd.Flags().StringP("output", "o", "", "write the output to a file")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = inlineCmd.RegisterFlagCompletionFunc("title", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last", "exact"}, cobra.ShellCompDirectiveNoFileComp
	})
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search and resolve without prompts",
	Long: `Search, select and resolve in one non-interactive run.

Title selectors:
  first - first result
  last - last result
  exact - the result named exactly like the query
  [number] - result by index, starting from 0

Episode selectors:
  first, last, all
  [number] - episode by index, starting from 0
  [from]-[to] - range of indexes
  @[substring]@ - episodes whose name contains substring

With --json the title selector may be omitted to keep every result.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("title"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Current()
		q := lo.Must(cmd.Flags().GetString("query"))

		var out io.Writer = os.Stdout
		if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer file.Close()
			out = file
		}

		options := &inline.Options{
			Out:            out,
			Query:          q,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Season:         lo.Must(cmd.Flags().GetInt("season")),
			Streams:        lo.Must(cmd.Flags().GetBool("streams")),
			TitlePicker:    mo.None[inline.TitlePicker](),
			EpisodesFilter: mo.None[inline.EpisodesFilter](),
		}

		if selector := lo.Must(cmd.Flags().GetString("title")); selector != "" {
			picker, err := inline.ParseTitlePicker(selector, q)
			handleErr(err)
			options.TitlePicker = mo.Some(picker)
		}

		if selector := lo.Must(cmd.Flags().GetString("episodes")); selector != "" {
			filter, err := inline.ParseEpisodesFilter(selector)
			handleErr(err)
			options.EpisodesFilter = mo.Some(filter)
		}

		handleErr(inline.Run(cmd.Context(), newSite(settings), newChain(settings), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "title", "episode", "stream", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
