package cmd

import (
	"fmt"

	"passcheq/internal/app"
	"passcheq/internal/catalog"
	"passcheq/internal/password/domain"
	"passcheq/models"

	"github.com/spf13/cobra"
)

var historyView = catalogView[models.HistoryEntry]{
	noun:    "password",
	pick:    func(a *app.App) *catalog.Catalog[models.HistoryEntry] { return a.History },
	columns: "ID\tPASSWORD\tSTRENGTH\tDATE",
	row: func(e models.HistoryEntry) string {
		return fmt.Sprintf("%d\t%s\t%d/%d\t%s", e.ID, e.Password, e.Strength, domain.MaxScore, e.Date)
	},
}

// HistoryCmd groups the generation history subcommands.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "browse generated passwords",
}

var HistoryCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "copy a generated password to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := getApp()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		entry, ok := appInstance.History.Get(cmd.Context(), id)
		if !ok {
			return fmt.Errorf("no entry with id %d", id)
		}
		if err := writeClipboard(entry.Password); err != nil {
			return fmt.Errorf("clipboard unavailable: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password copied to clipboard!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(HistoryCmd)

	HistoryCmd.AddCommand(newCatalogCommands(historyView, string(catalog.SortByStrength))...)
	HistoryCmd.AddCommand(HistoryCopyCmd)
}
