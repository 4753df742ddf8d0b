package cmd

import (
	"fmt"

	"github.com/KaramelBytes/plotease-cli/internal/logger"
	"github.com/KaramelBytes/plotease-cli/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Compare model metric files (YAML or JSON)",
	Example: `  plotease models show results.yaml
  plotease models best results.yaml --metric R2
  plotease models best results.yaml --metric R2 --rank
  plotease models compare baseline.yaml tuned.yaml`,
}

func loadComparator(path string) (*models.Comparator, error) {
	c, err := models.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("metrics loaded", zap.String("path", path), zap.Int("models", c.Len()), zap.Strings("metrics", c.Metrics()))
	return c, nil
}

var modelsShowFormat string

var modelsShowCmd = &cobra.Command{
	Use:   "show <metrics-file>",
	Short: "Show the metric table, best value per metric marked with *",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadComparator(args[0])
		if err != nil {
			return err
		}
		format, err := resolveFormat(modelsShowFormat)
		if err != nil {
			return err
		}
		if format == "markdown" {
			fmt.Fprint(cmd.OutOrStdout(), c.Markdown())
			return nil
		}
		recs := make([]models.Record, 0, c.Len())
		for _, name := range c.Names() {
			r, _ := c.Record(name)
			recs = append(recs, r)
		}
		return emit(cmd, recordList(recs), format, "", "models")
	},
}

// recordList lets a plain record slice go through emit.
type recordList []models.Record

func (l recordList) Markdown() string {
	c, err := models.FromRecords(l)
	if err != nil {
		return err.Error()
	}
	return c.Markdown()
}

var (
	bestMetric string
	bestRank   bool
)

var modelsBestCmd = &cobra.Command{
	Use:   "best <metrics-file>",
	Short: "Print the model with the highest value for a metric",
	Long: `Print the model with the highest value for --metric. Higher is always taken as
better: pick a metric such as R2 or accuracy, not an error metric such as MAE.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bestMetric == "" {
			return fmt.Errorf("--metric is required")
		}
		c, err := loadComparator(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if bestRank {
			ranked, err := c.Rank(bestMetric)
			if err != nil {
				return err
			}
			for i, r := range ranked {
				fmt.Fprintf(out, "%d. %s: %.4g\n", i+1, r.Name, r.Value)
			}
			return nil
		}
		best, err := c.BestModel(bestMetric)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, best)
		return nil
	},
}

var modelsCompareCmd = &cobra.Command{
	Use:   "compare <metrics-a> <metrics-b>",
	Short: "Order two metric files by the mean of all their metric values",
	Long: `Order two metric files by their score, the mean of every metric value of every
model. The score ignores metric scale and direction, so only compare files
whose metrics are all on the same scale and higher-is-better.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadComparator(args[0])
		if err != nil {
			return err
		}
		b, err := loadComparator(args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, c := range []*models.Comparator{a, b} {
			if s, ok := c.Score(); ok {
				fmt.Fprintf(out, "%s: score %.4g (%d models)\n", args[i], s, c.Len())
			} else {
				fmt.Fprintf(out, "%s: no score (%d models)\n", args[i], c.Len())
			}
		}
		if models.Equals(a, b) {
			fmt.Fprintln(out, "identical: same models and metric values")
		}
		fmt.Fprintf(out, "%s vs %s: %s\n", args[0], args[1], models.Compare(a, b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsBestCmd)
	modelsCmd.AddCommand(modelsCompareCmd)
	modelsShowCmd.Flags().StringVarP(&modelsShowFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	modelsBestCmd.Flags().StringVarP(&bestMetric, "metric", "m", "", "metric to maximize")
	modelsBestCmd.Flags().BoolVar(&bestRank, "rank", false, "list every model defining the metric, best first")
}
