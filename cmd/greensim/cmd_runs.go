package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived simulation runs",
		Long: `List runs archived in the output directory's database, newest
first. Runs are archived by "greensim run --save".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.Output.Dir)
			if err != nil {
				return err
			}
			defer st.Close()

			metas, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				if metas == nil {
					metas = []store.RunMeta{}
				}
				return json.NewEncoder(os.Stdout).Encode(metas)
			}

			if len(metas) == 0 {
				fmt.Println("No archived runs.")
				return nil
			}
			fmt.Printf("%-6s %-20s %s\n", "ID", "Created", "Label")
			for _, m := range metas {
				fmt.Printf("%-6d %-20s %s\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Label)
			}
			return nil
		},
	}

	return cmd
}
