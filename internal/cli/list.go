package cli

import (
	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	listPlainFlag     bool
	listChangelogFlag string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the version sections of the changelog",
	Long: `List every version section of the changelog, newest first, with its
release date, body size and heading line number.`,
	Example: `  relnotes list
  relnotes list --plain | head -1`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.GroupID = GroupInfo
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listPlainFlag, "plain", false, "Plain output without colors")
	listCmd.Flags().StringVar(&listChangelogFlag, "changelog", "", "Changelog file (default: CHANGELOG.md in the project root)")
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd, listChangelogFlag, "")
	if err != nil {
		return err
	}

	doc, err := p.extractor().Document()
	if err != nil {
		return p.classifyExtractError(err)
	}

	return changelog.FormatList(doc, cmd.OutOrStdout(), changelog.FormatOptions{Plain: listPlainFlag})
}
