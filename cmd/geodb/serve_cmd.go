package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/httpapi"
)

func newServeCmd() *cobra.Command {
	var dbPath, bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a geodb database over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer d.Close()

			srv := &http.Server{
				Addr:    bind,
				Handler: httpapi.NewHandler(d),
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to a geodb database (required)")
	cmd.Flags().StringVar(&bind, "bind", ":8080", "address to listen on")
	cmd.MarkFlagRequired("db")

	return cmd
}
