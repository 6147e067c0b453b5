package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"passcheq/internal/app"
	"passcheq/internal/catalog"
	"passcheq/internal/export"
	"passcheq/internal/password/domain"
	"passcheq/pkg/utils"

	"github.com/spf13/cobra"
)

// catalogView describes how one catalog is reached and printed.
type catalogView[E catalog.Entry[E]] struct {
	noun    string // "password" or "check"
	pick    func(*app.App) *catalog.Catalog[E]
	columns string
	row     func(E) string
}

type listFlags struct {
	search    string
	sortField string
	ascending bool
}

func (f *listFlags) register(cmd *cobra.Command, scoreField string) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "only show entries whose password contains this text (case-insensitive)")
	cmd.Flags().StringVar(&f.sortField, "sort", string(catalog.SortByDate), "sort by password, "+scoreField+" or date")
	cmd.Flags().BoolVar(&f.ascending, "asc", false, "sort ascending (default is descending)")
}

func (f *listFlags) query() (catalog.Query, error) {
	field, err := catalog.ParseSortField(f.sortField)
	if err != nil {
		return catalog.Query{}, err
	}
	q := catalog.Query{Search: f.search, SortField: field, Direction: catalog.Descending}
	if f.ascending {
		q.Direction = catalog.Ascending
	}
	return q, nil
}

func (v catalogView[E]) list(cmd *cobra.Command, flags *listFlags) error {
	appInstance, err := getApp()
	if err != nil {
		return err
	}
	q, err := flags.query()
	if err != nil {
		return err
	}

	c := v.pick(appInstance)
	all := c.Load(cmd.Context())
	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintf(out, "No %s history yet.\n", v.noun)
		return nil
	}

	matches := c.Apply(all, q)
	if len(matches) > 0 {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, v.columns)
		for _, e := range matches {
			fmt.Fprintln(tw, v.row(e))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%d %s%s found\n", len(matches), v.noun, utils.Plural(len(matches)))
	return nil
}

func (v catalogView[E]) delete(cmd *cobra.Command, arg string) error {
	appInstance, err := getApp()
	if err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	removed, err := v.pick(appInstance).Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No entry with id %d\n", id)
	}
	return nil
}

func (v catalogView[E]) clear(cmd *cobra.Command, yes bool) error {
	appInstance, err := getApp()
	if err != nil {
		return err
	}

	if !yes {
		ok, err := utils.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Are you sure you want to clear all %s history?", v.noun))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := v.pick(appInstance).Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s history.\n", v.noun)
	return nil
}

func (v catalogView[E]) stats(cmd *cobra.Command) error {
	appInstance, err := getApp()
	if err != nil {
		return err
	}

	s := catalog.Summarize(v.pick(appInstance).Load(cmd.Context()))
	printSummary(cmd.OutOrStdout(), v.noun, s)
	return nil
}

func printSummary(out io.Writer, noun string, s catalog.Summary) {
	fmt.Fprintf(out, "=== %s history ===\n", noun)
	fmt.Fprintf(out, "Total entries: %d\n", s.Count)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(out, "Average score: %.2f\n", s.Average)
	fmt.Fprintf(out, "Minimum score: %d\n", s.Min)
	fmt.Fprintf(out, "Maximum score: %d\n", s.Max)
	for score, n := range s.Distribution {
		fmt.Fprintf(out, "  %d/%d %-12s %d\n", score, domain.MaxScore, domain.StrengthLabel(score), n)
	}
}

func (v catalogView[E]) export(cmd *cobra.Command, output, publicKey string) error {
	appInstance, err := getApp()
	if err != nil {
		return err
	}

	var enc export.Encryptor
	if publicKey != "" {
		pgp, err := export.NewPGPEncryptor(publicKey)
		if err != nil {
			return err
		}
		enc = pgp
	}

	entries := v.pick(appInstance).Load(cmd.Context())
	if err := export.WriteFile(entries, output, enc); err != nil {
		return err
	}
	log.Infof("exported %d entries to %s", len(entries), output)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s%s to %s\n", len(entries), v.noun, utils.Plural(len(entries)), output)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", s)
	}
	return id, nil
}

// newCatalogCommands builds the subcommands shared by history and checks.
func newCatalogCommands[E catalog.Entry[E]](v catalogView[E], scoreField string) []*cobra.Command {
	flags := &listFlags{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list " + v.noun + " history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.list(cmd, flags)
		},
	}
	flags.register(listCmd, scoreField)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.delete(cmd, args[0])
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.clear(cmd, yes)
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "show score statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.stats(cmd)
		},
	}

	var output, publicKey string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the history as JSON",
		Long:  `Write the history to a JSON file. With --public-key the file is OpenPGP-encrypted and ASCII armored.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.export(cmd, output, publicKey)
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (required)")
	exportCmd.Flags().StringVar(&publicKey, "public-key", "", "armored OpenPGP public key to encrypt the export to")
	utils.CheckErr(exportCmd.MarkFlagRequired("output"), "failed to mark output flag required")

	return []*cobra.Command{listCmd, deleteCmd, clearCmd, statsCmd, exportCmd}
}
