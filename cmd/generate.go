package cmd

import (
	"fmt"

	"passcheq/internal/password/domain"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// writeClipboard is a test seam for clipboard.WriteAll.
var writeClipboard = clipboard.WriteAll

var (
	genLength    int
	genDigits    bool
	genUppercase bool
	genLowercase bool
	genSpecial   bool
	genCopy      bool
	genNoSave    bool
)

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate a password",
	Long: `Ask the password service for a new password. The length is clamped to 4..30 and at
least one character class must be selected. The result is added to the generation history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := getApp()
		if err != nil {
			return err
		}

		cfg := domain.GenerationConfig{
			Length:              genLength,
			IncludeDigits:       genDigits,
			IncludeUppercase:    genUppercase,
			IncludeLowercase:    genLowercase,
			IncludeSpecialChars: genSpecial,
		}

		ctx := cmd.Context()
		res, err := appInstance.PasswordService.Generate(ctx, cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Password: %s\n", res.Password)
		fmt.Fprintf(out, "Strength: %d/%d (%s)\n", res.StrengthScore, domain.MaxScore, domain.StrengthLabel(res.StrengthScore))

		if !genNoSave {
			if _, err := appInstance.PasswordService.RecordHistory(ctx, res); err != nil {
				return fmt.Errorf("failed to save password to history: %w", err)
			}
		}

		if genCopy {
			if err := writeClipboard(res.Password); err != nil {
				log.Warnf("clipboard unavailable: %v", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Clipboard unavailable, password not copied.")
			} else {
				fmt.Fprintln(out, "Password copied to clipboard!")
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(GenerateCmd)

	def := domain.DefaultGenerationConfig()
	GenerateCmd.Flags().IntVarP(&genLength, "length", "l", def.Length, "password length (4-30)")
	GenerateCmd.Flags().BoolVarP(&genDigits, "digits", "d", def.IncludeDigits, "include digits")
	GenerateCmd.Flags().BoolVarP(&genUppercase, "uppercase", "u", def.IncludeUppercase, "include uppercase letters")
	GenerateCmd.Flags().BoolVarP(&genLowercase, "lowercase", "w", def.IncludeLowercase, "include lowercase letters")
	GenerateCmd.Flags().BoolVarP(&genSpecial, "special", "s", def.IncludeSpecialChars, "include special characters")
	GenerateCmd.Flags().BoolVarP(&genCopy, "copy", "c", false, "copy the password to the clipboard")
	GenerateCmd.Flags().BoolVar(&genNoSave, "no-save", false, "do not add the password to the history")
}
