package cli

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/escola-api/pkg/config"
)

// RootOptions holds state shared by every subcommand.
type RootOptions struct {
	Verbose bool

	loadConfig func() (*config.Config, error)
}

// NewRootCommand creates the escola command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{loadConfig: config.Load})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escola",
		Short: "Escola school management API",
		Long:  "HTTP API for professores, alunos, cursos, turmas and matrículas.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))

	return cmd
}

func (o *RootOptions) config() (*config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
