package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "nbasync",
	Short: "NBA milestones dataset migrator",
	Long: `
  _   _ ____    _    ______   ___   _  ____
 | \ | | __ )  / \  / ___\ \ / / \ | |/ ___|
 |  \| |  _ \ / _ \ \___ \\ V /|  \| | |
 | |\  | |_) / ___ \ ___) || | | |\  | |___
 |_| \_|____/_/   \_\____/ |_| |_| \_|\____|

NBA SYNC 🏀 - milestone dataset migrator & exporter
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nbasync.yaml)")
	RootCmd.PersistentFlags().String("source", "", "path to the local milestones SQLite database")

	viper.BindPFlag("source.path", RootCmd.PersistentFlags().Lookup("source"))
	viper.SetDefault("source.path", "./milestones.db")
	viper.SetDefault("ledger.path", "./nbasync-run.json")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("nbasync")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NBASYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
