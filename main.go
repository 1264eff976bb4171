package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geochecker/analyzer"
	"github.com/seo-optimizer/geochecker/config"
	"github.com/seo-optimizer/geochecker/fetcher"
	"github.com/seo-optimizer/geochecker/logging"
	"github.com/seo-optimizer/geochecker/nlp"
)

const serviceName = "geochecker"

// app carries what every command needs once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     logging.Logger
}

func (a *app) setup() error {
	config.LoadEnv()

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development || cfg.DevMode,
	})
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) newAnalyzer(opts ...analyzer.Option) *analyzer.Analyzer {
	f := fetcher.New(fetcher.Options{
		Timeout:      a.cfg.Fetch.Timeout,
		MaxBodyBytes: a.cfg.Fetch.MaxBodyBytes,
		UserAgent:    a.cfg.Fetch.UserAgent,
	}, a.log)
	opts = append([]analyzer.Option{analyzer.WithLogger(a.log)}, opts...)
	return analyzer.New(f, nlp.New(), opts...)
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "SEO and generative-engine readiness checker",
		Long:          `Scores a web page for traditional SEO and for how well AI answer engines can read and cite it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")

	root.AddCommand(newServeCommand(a), newAnalyzeCommand(a))
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
