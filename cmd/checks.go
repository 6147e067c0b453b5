package cmd

import (
	"fmt"

	"passcheq/internal/app"
	"passcheq/internal/catalog"
	"passcheq/internal/password/domain"
	"passcheq/models"

	"github.com/spf13/cobra"
)

var checksView = catalogView[models.CheckHistoryEntry]{
	noun:    "check",
	pick:    func(a *app.App) *catalog.Catalog[models.CheckHistoryEntry] { return a.Checks },
	columns: "ID\tPASSWORD\tSCORE\tDATE",
	row: func(e models.CheckHistoryEntry) string {
		return fmt.Sprintf("%d\t%s\t%d/%d\t%s", e.ID, e.MaskedPassword, e.Score, domain.MaxScore, e.Date)
	},
}

// ChecksCmd groups the check history subcommands.
var ChecksCmd = &cobra.Command{
	Use:   "checks",
	Short: "browse past strength checks",
}

func init() {
	RootCmd.AddCommand(ChecksCmd)

	ChecksCmd.AddCommand(newCatalogCommands(checksView, string(catalog.SortByScore))...)
}
