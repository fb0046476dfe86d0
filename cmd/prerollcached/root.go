// Package main is the prerollcached CLI: a small command tree for driving
// and inspecting the pre-roll cache worker outside the editor it was built
// for, grounded in tagTonic's cmd/ package (cobra root + viper config
// loading).
package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "prerollcached",
	Short: "Drive and inspect the pre-roll cache worker",
	Long: `prerollcached exercises the pre-roll cache worker against an
in-memory mock reader, useful for demoing and probing its behavior without
a real video editor attached.

Examples:
  prerollcached demo --speed 1 --duration 5s
  prerollcached probe --width 1920 --height 1080 --max-bytes 1073741824
  prerollcached version`,
	Version: "0.1.0",
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.prerollcached.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".prerollcached")
	}

	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
