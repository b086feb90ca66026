package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-extractor/internal/api"
	"github.com/insightdelivered/card-statement-extractor/internal/extractor"
)

func newServeCommand(o *rootOptions) *cobra.Command {
	var listen string
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = o.settings.Listen
			}

			h := &api.Handler{
				Registry:  o.registry,
				Reader:    extractor.NewReader(o.log),
				Log:       o.log,
				Version:   o.version,
				StaticDir: staticDir,
			}
			app := h.NewApp()

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				o.log.Info("shutting down")
				_ = app.Shutdown()
			}()

			o.log.Info("listening", "addr", listen, "banks", len(o.registry.Banks()))
			return app.Listen(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to listen on")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory with the web UI to serve")

	return cmd
}
