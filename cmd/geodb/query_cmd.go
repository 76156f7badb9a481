package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/query"
)

func newQueryCmd() *cobra.Command {
	var dbPath, key string
	var limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Look up a key against a geodb database and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := query.Lookup(cmd.Context(), d, key, limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to a geodb database (required)")
	cmd.Flags().StringVar(&key, "key", "", "key to look up (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum candidates to return (0 = unlimited)")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("key")

	return cmd
}
