package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chainlaunch/editcore/pkg/editcore/apply"
	"github.com/chainlaunch/editcore/pkg/editcore/block"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
)

func newApplyCmd() *cobra.Command {
	var (
		projectRoot  string
		responseFile string
		gitStage     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Parse a model response and apply its SEARCH/REPLACE blocks to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			sink := newConsoleSink(cmd.OutOrStdout(), cmd.ErrOrStderr(), log)

			text, err := readResponse(responseFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			parsed := block.Parse(text)
			if parsed.ParseError != "" {
				sink.SystemOutput("parse warning: %s", parsed.ParseError)
			}

			ctx, err := project.NewLocalContext(projectRoot)
			if err != nil {
				return fmt.Errorf("open project root: %w", err)
			}

			var stager project.GitStager
			if gitStage || cfg.GitStaging {
				stager = project.NewGoGitStager(ctx)
			}

			result := apply.Run(apply.Options{
				Context:       ctx,
				Stager:        stager,
				ShellObserver: sink,
				Sink:          sink,
				Log:           log,
				BatchID:       uuid.NewString(),
			}, parsed.Blocks)

			for key, file := range result.Files {
				if result.RolledBackKeys[key] {
					sink.ToolError("rolled back: %s", file.RelativePath())
					continue
				}
				sink.ToolOutput("updated: %s", file.RelativePath())
			}
			for _, fb := range result.FailedBlocks {
				sink.ToolError("failed block (%s): %s", fb.Reason, fb.Block.Filename)
			}
			for _, w := range result.Warnings {
				sink.SystemOutput("%s", w)
			}

			if len(result.FailedBlocks) > 0 {
				return fmt.Errorf("%d block(s) failed to apply", len(result.FailedBlocks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project", ".", "project root directory")
	cmd.Flags().StringVar(&responseFile, "response", "", "path to a file containing the model response (default: stdin)")
	cmd.Flags().BoolVar(&gitStage, "git", false, "stage newly created files with git after a successful apply")

	return cmd
}

func readResponse(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read response file: %w", err)
	}
	return string(data), nil
}
