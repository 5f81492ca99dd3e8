// Package cli implements the ebbinghaus CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/ebbinghaus/internal/config"
	"github.com/rcliao/ebbinghaus/internal/kv"
	"github.com/rcliao/ebbinghaus/internal/logging"
	"github.com/rcliao/ebbinghaus/internal/store"
)

var (
	cfgFile    string
	formatFlag string
	v          = config.New()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ebbinghaus",
	Short: "Spaced-repetition review for short knowledge points",
	Long: "A local spaced-repetition study aid. Add knowledge points, then review what is due " +
		"each day; intervals follow a fixed forgetting-curve table per mastery level.",
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ~/.ebbinghaus/config.yaml)")
	pf.StringP("db", "d", "", "Storage path (default: $EBBINGHAUS_DB or ~/.ebbinghaus/ebbinghaus.db)")
	pf.String("backend", "", "Storage backend: sqlite or file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")

	_ = v.BindPFlag("storage.path", pf.Lookup("db"))
	_ = v.BindPFlag("storage.backend", pf.Lookup("backend"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
}

// app bundles what a command needs for one invocation.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	sub   kv.Substrate
	store *store.Store
}

func openApp() (*app, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	var sub kv.Substrate
	switch cfg.Storage.Backend {
	case config.BackendFile:
		sub, err = kv.NewFile(afero.NewOsFs(), cfg.Storage.Path)
	default:
		sub, err = kv.NewSQLite(cfg.Storage.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	sub = kv.WithQuota(sub, cfg.Storage.QuotaBytes)

	return &app{
		cfg:   cfg,
		log:   log,
		sub:   sub,
		store: store.New(sub, store.WithLogger(log)),
	}, nil
}

func (a *app) Close() {
	a.sub.Close()
	_ = a.log.Sync()
}

// printResult writes v as indented JSON, or text() when --format text.
func printResult(w io.Writer, v any, text func() string) {
	if formatFlag == "text" && text != nil {
		fmt.Fprintln(w, text())
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
