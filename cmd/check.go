package cmd

import (
	"fmt"

	"passcheq/internal/password/domain"
	"passcheq/pkg/utils"

	"github.com/spf13/cobra"
)

var checkNoSave bool

var CheckCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "check the strength of a password",
	Long: `Send a password to the service for strength and breach assessment. Without an
argument the password is read from the terminal without echo. Only a masked form
(first and last character) is kept in the check history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := getApp()
		if err != nil {
			return err
		}

		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			password, err = utils.PromptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		ctx := cmd.Context()
		res, err := appInstance.PasswordService.Check(ctx, password)
		if err != nil {
			return err
		}

		printCheckResult(cmd, res)

		if !checkNoSave {
			if _, err := appInstance.PasswordService.RecordCheck(ctx, password, res); err != nil {
				return fmt.Errorf("failed to save check to history: %w", err)
			}
		}
		return nil
	},
}

func printCheckResult(cmd *cobra.Command, res *domain.CheckResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Score: %d/%d (%s)\n", res.Score, domain.MaxScore, domain.StrengthLabel(res.Score))
	if res.TimeToCrack != "" {
		fmt.Fprintf(out, "Time to crack: %s\n", res.TimeToCrack)
	}
	if res.HasBeenBreached {
		fmt.Fprintln(out, "Breached: yes, this password appeared in a known data breach")
	} else {
		fmt.Fprintln(out, "Breached: no")
	}
	if res.Feedback.Warning != "" {
		fmt.Fprintf(out, "Warning: %s\n", res.Feedback.Warning)
	}
	if len(res.Feedback.Suggestions) > 0 {
		fmt.Fprintln(out, "Suggestions:")
		for _, s := range res.Feedback.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
}

func init() {
	RootCmd.AddCommand(CheckCmd)

	CheckCmd.Flags().BoolVar(&checkNoSave, "no-save", false, "do not add the check to the history")
}
