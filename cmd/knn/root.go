package main

import (
	"github.com/spf13/cobra"

	"github.com/go-sod/knn/internal/buildinfo"
)

var rootCmd = &cobra.Command{
	Use:   "knn",
	Short: "k-nearest-neighbor classification and regression with cross-validation",
	Long: `knn evaluates k-nearest-neighbor classifiers and regressors over ARFF data
sets with k-fold cross-validation. Experiments are described in a TOML file;
defaults come from KNN_* environment variables.`,
	Version:       buildinfo.Info.Tag(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
}
