package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/chainlaunch/editcore/pkg/editcore/project"
	"github.com/chainlaunch/editcore/pkg/history"
	"github.com/chainlaunch/editcore/pkg/httpapi"
)

func newServeCmd() *cobra.Command {
	var projectRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the edit-block engine and markdown renderer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Server.HistoryDBPath)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			var stager project.GitStager
			if cfg.GitStaging {
				ctx, err := project.NewLocalContext(projectRoot)
				if err != nil {
					return fmt.Errorf("open project root: %w", err)
				}
				stager = project.NewGoGitStager(ctx)
			}

			handler := httpapi.NewHandler(log, store, stager)
			router := httpapi.NewRouter(handler)

			log.Infof("editpilot serving on %s", cfg.Server.Addr)
			return http.ListenAndServe(cfg.Server.Addr, router)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project", ".", "project root directory used for git staging, if enabled")

	return cmd
}
