package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/intelligence"
	"github.com/scoutline/leadscout/internal/model"
)

var searchNoSave bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for leads matching a free-text recruiter query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		if err := cfg.Validate("search"); err != nil {
			return err
		}

		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		engine := intelligence.NewEngine()
		intel := engine.Process(query)

		zap.L().Info("query profiled",
			zap.String("intent", intel.Intent),
			zap.String("role", intel.Role),
			zap.String("location", intel.Location),
			zap.String("seniority", intel.Seniority),
		)

		result, err := orch.Orchestrate(ctx, query, intel)
		if err != nil {
			return eris.Wrap(err, "search")
		}

		run := &model.Run{
			Query:        query,
			Intelligence: intel,
			Leads:        result.Leads,
			TotalCount:   result.TotalCount,
			Report:       *result.Report,
			CreatedAt:    time.Now().UTC(),
		}

		if !searchNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			if err := st.SaveRun(ctx, run); err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchNoSave, "no-save", false, "skip persisting the run")
	rootCmd.AddCommand(searchCmd)
}
