/*
Copyright © 2021 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	devConfig "github.com/Daskott/rolodex/dev/config"
	"github.com/Daskott/rolodex/server"
	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a rolodex server",
	Long:  `The rolodex server exposes user, contact & address management over HTTP under /api`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := serverConfig(serverConfigFile, isDevEnv)
		if err != nil {
			log.Panic(err)
		}

		server.Start(config, isDevEnv)
	},
}

var serverConfigFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")
}

// serverConfig loads the server config file. Any key can be overridden
// with a ROLODEX_ prefixed env var e.g. ROLODEX_DATABASE_DRIVER.
func serverConfig(configFile string, devMode bool) (*viper.Viper, error) {
	config := viper.New()
	config.SetDefault("rolodex.listener.port", 3000)
	config.SetDefault("database.driver", shared.SQLITE_DRIVER)

	if devMode {
		path, err := devConfigFilePath()
		if err != nil {
			return nil, err
		}
		configFile = path
	}

	if configFile == "" {
		return nil, fmt.Errorf("a server config file is required, use --sconfig")
	}

	config.SetConfigFile(configFile)
	config.SetEnvPrefix("ROLODEX")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv() // read in environment variables that match

	if err := config.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading server config file: %v", err)
	}

	return config, nil
}

// devConfigFilePath returns dev/config/server.yml, creating it with
// the default dev settings when missing.
func devConfigFilePath() (string, error) {
	configDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	path := filepath.Join(configDir, "dev", "config", "server.yml")
	if utils.FileExist(path) {
		return path, nil
	}

	err = utils.CreateDirIfNotExist(filepath.Dir(path))
	if err != nil {
		return "", err
	}

	return path, os.WriteFile(path, []byte(devConfig.SERVER_YML), 0600)
}
