// Command schedcheck validates a schedule variant from the persisted store and
// prints its diagnostics. It exits non-zero when any diagnostic is found, so
// it can gate automation on a conflict-free schedule.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schedcore/internal/blob"
	"schedcore/internal/core"
	"schedcore/internal/exchange"
	"schedcore/pkg/domain"
)

var (
	flagSchedule  string
	flagCapacity  bool
	flagJSON      bool
	flagName      string
	flagOverwrite bool
)

var rootCmd = &cobra.Command{
	Use:           "schedcheck",
	Short:         "Validate a schedule variant and report conflicts",
	Long:          "Loads the persisted scheduling store, runs the conflict validator over one schedule variant, and prints every advisory diagnostic.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one schedule variant as a versioned export document",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge an export document into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.Flags().StringVar(&flagSchedule, "schedule", "", "schedule variant to validate (default: current)")
	rootCmd.Flags().BoolVar(&flagCapacity, "capacity", false, "also report over-capacity cells")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit diagnostics as JSON")
	exportCmd.Flags().StringVar(&flagSchedule, "schedule", "", "schedule variant to export (default: current)")
	importCmd.Flags().StringVar(&flagName, "name", "", "schedule name to import under (default: name in the document)")
	importCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "replace an existing schedule of the same name")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func openStore(logger *zap.Logger) (domain.PersistentStore, error) {
	cfg, err := core.LoadStorageConfig()
	if err != nil {
		return nil, err
	}
	return core.OpenPersistentStore(cfg, core.NewDefaultRulesEngine(), logger)
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(logger)
	if err != nil {
		return err
	}
	blobCfg, err := blob.LoadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	bs, err := blob.Open(ctx, blobCfg)
	if err != nil {
		return err
	}
	info, doc, err := exchange.Export(ctx, store, bs, flagSchedule, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %q (version %s) to %s\n", doc.ScheduleName, doc.Version, info.Key)
	if info.URL != "" {
		fmt.Fprintln(cmd.OutOrStdout(), info.URL)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(logger)
	if err != nil {
		return err
	}
	doc, err := exchange.Import(cmd.Context(), store, raw, exchange.ImportOptions{
		TargetName: flagName,
		Overwrite:  flagOverwrite,
	})
	if err != nil {
		return err
	}
	name := flagName
	if name == "" {
		name = doc.ScheduleName
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %q (document version %s)\n", name, doc.Version)
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service := core.NewService(store)
	res, err := service.Validate(ctx, flagSchedule)
	if err != nil {
		return err
	}

	findings := len(res.Diagnostics)
	var capacityCells []string
	if flagCapacity {
		name := flagSchedule
		if name == "" {
			_, name, err = service.ScheduleNames(ctx)
			if err != nil {
				return err
			}
		}
		var variant *domain.ScheduleVariant
		if err := service.View(ctx, func(view domain.StoreView) error {
			v, ok := view.Variant(name)
			if !ok {
				return domain.NotFoundError{Entity: "schedule", ID: name}
			}
			variant = v
			return nil
		}); err != nil {
			return err
		}
		for day, slots := range core.CapacityFlags(variant) {
			for slot := range slots {
				capacityCells = append(capacityCells, fmt.Sprintf("%s %s", day, slot))
			}
		}
		sort.Strings(capacityCells)
		findings += len(capacityCells)
	}

	if flagJSON {
		out := struct {
			Diagnostics []domain.Diagnostic `json:"diagnostics"`
			OverCap     []string            `json:"overCapacity,omitempty"`
		}{Diagnostics: res.Diagnostics, OverCap: capacityCells}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", d.Severity, d.Rule, d.Message)
		}
		for _, cell := range capacityCells {
			fmt.Fprintf(cmd.OutOrStdout(), "[warn] over_capacity: more than one in-person room at %s\n", cell)
		}
		if findings == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no conflicts found")
		}
	}

	if findings > 0 {
		return fmt.Errorf("%d finding(s)", findings)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
