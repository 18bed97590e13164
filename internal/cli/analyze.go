package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/app"
	"github.com/raysh454/repopulse/internal/controller"
	"github.com/raysh454/repopulse/internal/series"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type analyzeOptions struct {
	output  string
	locale  string
	timeout time.Duration
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze owner/repo",
		Short: "Analyze one repository and print its health report",
		Example: "  repopulse analyze tiangolo/fastapi\n" +
			"  repopulse analyze facebook/react --output json --locale en-GB",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != OutputText && opts.output != OutputJSON {
				return NewExitError(ExitUsage, fmt.Sprintf("unknown output format %q (want text or json)", opts.output))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return WrapExitError(ExitFailure, "loading config", err)
			}
			if cmd.Flags().Changed("locale") {
				cfg.Locale = opts.locale
			}
			if cmd.Flags().Changed("timeout") {
				cfg.WebClient.Timeout = opts.timeout
			}

			logger := newLogger(cmd, "warn")
			a, err := app.NewApplication(cfg, logger, nil)
			if err != nil {
				return WrapExitError(ExitFailure, "starting", err)
			}
			defer func() { _ = a.Shutdown(cmd.Context()) }()

			st := a.Controller.Analyze(cmd.Context(), args[0])
			return report(cmd, opts.output, a.Controller, st)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", OutputText, "output format: text or json")
	cmd.Flags().StringVar(&opts.locale, "locale", "en-US", "locale for chart date labels")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout for the analysis request")
	return cmd
}

// Report is the JSON rendering of a successful analysis.
type Report struct {
	Repo          string               `json:"repo"`
	HealthScore   float64              `json:"health_score"`
	Band          series.ScoreBand     `json:"band"`
	CommitsStored int                  `json:"commits_stored"`
	Summary       series.Summary       `json:"summary"`
	Points        []series.ChartPoint  `json:"points"`
	Churn         []series.ChurnPoint  `json:"churn"`
	Impact        []series.ImpactPoint `json:"impact"`
}

// FailureReport is the JSON rendering of a failed analysis.
type FailureReport struct {
	Error     string             `json:"error"`
	ErrorKind analysis.ErrorKind `json:"error_kind"`
}

func report(cmd *cobra.Command, output string, ctrl *controller.Controller, st controller.State) error {
	out := cmd.OutOrStdout()

	switch s := st.(type) {
	case controller.Success:
		points := ctrl.Series()
		r := Report{
			Repo:          s.Request.Slug(),
			HealthScore:   s.Result.HealthScore,
			Band:          series.Band(s.Result.HealthScore),
			CommitsStored: s.Result.CommitsStored,
			Summary:       ctrl.Summary(),
			Points:        points,
			Churn:         series.ChurnSeries(points),
			Impact:        series.ImpactSeries(points),
		}
		if output == OutputJSON {
			return writeIndentedJSON(out, r)
		}
		return renderText(out, r)

	case controller.Failure:
		if output == OutputJSON {
			if err := writeIndentedJSON(out, FailureReport{Error: s.Message, ErrorKind: s.Kind}); err != nil {
				return err
			}
		}
		code := ExitFailure
		if s.Kind == analysis.InvalidFormat {
			code = ExitUsage
		}
		return NewExitError(code, s.Message)

	default:
		// A newer request superseded this one; only possible with concurrent callers.
		return NewExitError(ExitFailure, fmt.Sprintf("analysis ended in %s state", st.Phase()))
	}
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
