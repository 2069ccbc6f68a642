package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chainlaunch/editcore/pkg/render/component"
	"github.com/chainlaunch/editcore/pkg/render/ids"
	"github.com/chainlaunch/editcore/pkg/render/markdown"
	"github.com/chainlaunch/editcore/pkg/render/reconcile"
)

func newRenderCmd() *cobra.Command {
	var sourceFile string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a markdown document incrementally and print each reconcile tick's operations",
		Long: `render simulates a streaming model response: it replays the input
line by line as successively longer prefixes, parsing and reconciling each
prefix against the last, and prints the resulting CREATE/UPDATE/REMOVE/NO-OP
operations as they would be pushed to a live viewer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := loadConfig()
			if err != nil {
				return err
			}

			var src io.Reader = cmd.InOrStdin()
			if sourceFile != "" {
				f, err := os.Open(sourceFile)
				if err != nil {
					return fmt.Errorf("open source file: %w", err)
				}
				defer f.Close()
				src = f
			}

			md := markdown.New()
			counter := ids.NewCounter()
			reconciler := reconcile.New()
			enc := json.NewEncoder(cmd.OutOrStdout())

			scanner := bufio.NewScanner(src)
			scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			var prefix strings.Builder
			for scanner.Scan() {
				prefix.WriteString(scanner.Text())
				prefix.WriteString("\n")

				elements, err := md.ParseElements([]byte(prefix.String()))
				if err != nil {
					log.Warnf("markdown parse degraded, skipping tick: %v", err)
					continue
				}
				descriptors := component.Parse(elements, counter)
				ops := reconciler.Diff(descriptors)
				for _, op := range ops {
					if err := enc.Encode(op); err != nil {
						return fmt.Errorf("encode op: %w", err)
					}
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&sourceFile, "source", "", "path to a markdown file to replay (default: stdin)")

	return cmd
}
