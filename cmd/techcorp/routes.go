package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/vango-dev/techcorp/pkg/inbox"
	"github.com/vango-dev/techcorp/pkg/server"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes",
		Long:  `List every route the server would register with the current configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			srv, err := server.New(loaded.Config, server.WithSink(inbox.NewMemorySink()))
			if err != nil {
				return err
			}
			defer srv.Close()

			type route struct{ method, pattern string }
			var found []route
			err = chi.Walk(srv.Router(), func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				found = append(found, route{method, strings.Replace(pattern, "/*/", "/", -1)})
				return nil
			})
			if err != nil {
				return err
			}
			sort.Slice(found, func(i, j int) bool {
				if found[i].pattern != found[j].pattern {
					return found[i].pattern < found[j].pattern
				}
				return found[i].method < found[j].method
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, r := range found {
				fmt.Fprintf(w, "%s\t%s\n", r.method, r.pattern)
			}
			return w.Flush()
		},
	}
}
