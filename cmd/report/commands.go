package main

import (
	"fmt"

	"loadtest-report/internal/app"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Build load test reports from timer logs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newGenerateCmd(), newRulesCmd())
	return rootCmd
}

type generateFlags struct {
	configPath   string
	inputDir     string
	outputDir    string
	rulesFile    string
	overwrite    bool
	showProgress bool
	from         int64
	to           int64
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Read a results directory and write its summary report",
		Example: `  report generate --input ./results/20261016-1200 --rules ./configs/merge-rules.yml
  report generate --config ./configs/configs.yml --input ./results --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to the YAML config file (defaults apply when empty)")
	cmd.Flags().StringVarP(&flags.inputDir, "input", "i", "", "results directory laid out as <agent>/<testcase>/<user>/")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "report directory, overrides report.output_dir")
	cmd.Flags().StringVarP(&flags.rulesFile, "rules", "r", "", "request merge rule file, overrides rules.file")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "replace an existing report of the same run")
	cmd.Flags().BoolVar(&flags.showProgress, "progress", false, "show a progress bar on stderr")
	cmd.Flags().Int64Var(&flags.from, "from", 0, "ignore records before this epoch millisecond")
	cmd.Flags().Int64Var(&flags.to, "to", 0, "ignore records after this epoch millisecond")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := app.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.outputDir != "" {
		cfg.Report.OutputDir = flags.outputDir
	}
	if flags.rulesFile != "" {
		cfg.Rules.File = flags.rulesFile
	}
	if flags.overwrite {
		cfg.Report.Overwrite = true
	}
	if cmd.Flags().Changed("from") {
		cfg.Ingestion.From = flags.from
	}
	if cmd.Flags().Changed("to") {
		cfg.Ingestion.To = flags.to
	}

	application, err := app.New(cfg, flags.inputDir)
	if err != nil {
		return err
	}

	var result *app.RunResult
	run := func() error {
		var runErr error
		result, runErr = application.Run(cmd.Context())
		return runErr
	}
	if flags.showProgress {
		err = runWithProgress(cmd.Context(), cmd.ErrOrStderr(), application, run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.ReportPath)
	return nil
}

func newRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect request merge rule files",
	}
	rulesCmd.AddCommand(&cobra.Command{
		Use:   "check <rule-file>",
		Short: "Validate a rule file and print the resulting rule table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.LoadRuleTable(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rule := range table.Rules() {
				fmt.Fprintln(out, rule.String())
			}
			fmt.Fprintf(out, "%d rules OK\n", table.Len())
			return nil
		},
	})
	return rulesCmd
}
