package cmd

import (
	"errors"
	"fmt"
	"os"

	"passcheq/internal/app"
	"passcheq/internal/config"
	"passcheq/internal/logger"
	"passcheq/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	log     *logger.Logger
)

var RootCmd = &cobra.Command{
	Use:   "passcheq",
	Short: "passcheq generates and checks passwords and keeps a local history",
	Long: `passcheq asks a remote password service to generate passwords under configurable
constraints or to assess the strength of an existing password. Results are kept in
two local history catalogs that can be searched, sorted, exported and cleared.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := app.NewApp(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		log = appInstance.Logger
		log.Debugf("using config file: %s", cfgFile)
		viper.Set("app", appInstance)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appInstance, err := getApp(); err == nil {
			if err := appInstance.Close(); err != nil {
				log.Warnf("failed to close storage: %v", err)
			}
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.json or $HOME/.config/passcheq/config.json)")

	utils.CheckErr(viper.BindPFlag("config", RootCmd.PersistentFlags().Lookup("config")), "failed to bind config flag")

	var err error
	log, err = logger.InitLogger(&config.LoggingConfig{LogLevel: "warn"})
	utils.CheckErr(err, "failed to init logger")
}

// initConfig loads a .env file from the working directory when present so
// PASSCHEQ_* overrides can live next to the project.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env: %v", err)
	}
}

func getApp() (*app.App, error) {
	appInstance, ok := viper.Get("app").(*app.App)
	if !ok {
		return nil, errors.New("failed to get app instance")
	}
	return appInstance, nil
}
