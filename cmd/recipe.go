package cmd

import (
	"fmt"

	"scaling-bench/internal/logging"
	"scaling-bench/internal/recipe"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRecipeCommand() *cobra.Command {
	var file string

	recipeCmd := &cobra.Command{
		Use:   "recipe",
		Short: "Print the build recipe of the allocator library",
		Long:  "Print the package descriptor (source, versions, dependencies, build flags) consumed by the external build orchestrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			pkg := recipe.DefaultPackage()
			if file != "" {
				var err error
				if pkg, err = recipe.LoadPackage(file); err != nil {
					return err
				}
			}

			src, err := pkg.Source()
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"package": pkg.Name,
				"source":  src,
				"args":    pkg.BuildArgs(),
			}).Debug("Resolved package descriptor")

			out, err := yaml.Marshal(pkg)
			if err != nil {
				return fmt.Errorf("failed to render package descriptor: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	recipeCmd.Flags().StringVarP(&file, "file", "f", "", "Package descriptor file (default: built-in sicm-low)")
	return recipeCmd
}
