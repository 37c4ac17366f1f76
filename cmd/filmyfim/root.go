package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filmyfim/filmyfim/internal/config"
	"github.com/filmyfim/filmyfim/internal/constants"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Movie recommendation service backed by TMDB and a language model",
		Long: `filmyfim suggests movies similar to a seed title and samples featured movies
from a fixed set of genres. Descriptions are translated into the configured
target language.

Configuration is read from .env, an optional YAML file and the environment.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configPath != "" {
				_ = os.Setenv(config.ConfigPathEnvVar, configPath)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRecommendCmd())
	cmd.AddCommand(newFeaturedCmd())

	return cmd
}
