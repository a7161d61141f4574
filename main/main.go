// Command takebench exercises every takeref variant in a loop so the cost of
// owned versus borrowed arguments can be profiled and scraped.
package main

import (
	"errors"
	"io"
	"net/http"
	httppprof "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		iterations int
		sliceLen   int
		pprofAddr  string
		profile    string
		hold       time.Duration
	)
	cmd := &cobra.Command{
		Use:           "takebench",
		Short:         "Run owned and borrowed takeref scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("iterations") {
				cfg.Iterations = iterations
			}
			if flags.Changed("slice-len") {
				cfg.SliceLen = sliceLen
			}
			if flags.Changed("pprof-addr") {
				cfg.PprofAddr = pprofAddr
			}
			if flags.Changed("profile") {
				cfg.Profile = profile
			}
			if flags.Changed("hold") {
				cfg.Hold = hold
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())
			if err := run(cfg, log); err != nil {
				log.WithError(err).Error("takebench failed")
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	f.IntVarP(&iterations, "iterations", "n", 0, "iterations per scenario")
	f.IntVar(&sliceLen, "slice-len", 0, "elements in the sequence scenarios")
	f.StringVar(&pprofAddr, "pprof-addr", "", "serve pprof and /metrics on this address")
	f.StringVar(&profile, "profile", "", "write a heap profile to this file")
	f.DurationVar(&hold, "hold", 0, "keep serving after the run for this long")
	return cmd
}

func newLogger(cfg Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	// cfg has passed Validate, so the level parses.
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(level)
	}
	return log
}

// newMux mounts /metrics for reg and the pprof handlers on a private mux.
func newMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/debug/pprof/", httppprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", httppprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", httppprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", httppprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", httppprof.Trace)
	return mux
}

func run(cfg Config, log *logrus.Logger) error {
	reg := prometheus.NewRegistry()
	if cfg.PprofAddr != "" {
		srv := &http.Server{Addr: cfg.PprofAddr, Handler: newMux(reg)}
		defer srv.Close()
		go func() {
			log.WithField("addr", cfg.PprofAddr).Info("serving pprof and metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Warn("pprof server stopped")
			}
		}()
	}
	if cfg.Profile != "" {
		runtime.MemProfileRate = 1
	}

	results, err := NewRunner(cfg, log, reg).Run()
	if err != nil {
		return err
	}
	log.WithField("scenarios", len(results)).Info("run complete")

	if cfg.Profile != "" {
		f, err := os.Create(cfg.Profile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
		log.WithField("file", cfg.Profile).Info("heap profile written")
	}
	if cfg.Hold > 0 {
		time.Sleep(cfg.Hold)
	}
	return nil
}
