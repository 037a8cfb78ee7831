package main

import (
	"github.com/spf13/cobra"

	"mannequin/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mannequin",
		Short: "Digital mannequin: dress a model photo with a garment photo",
		Long: `Digital mannequin composites a garment photo onto a photo of a person
using a Gemini image model.

Available subcommands:
  serve    - Run the web app
  generate - Run one try-on from the command line
  encode   - Print image files as data URLs`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newEncodeCmd())
	return root
}
