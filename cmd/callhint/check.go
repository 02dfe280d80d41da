package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/callhint/callhint/hint"
	"github.com/callhint/callhint/internal/cli/config"
	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/sig"
	"github.com/callhint/callhint/typeref"
)

var (
	checkPattern string
	checkCall    string
)

var checkCmd = &cobra.Command{
	Use:   "check --pattern <pattern> --call <call>",
	Short: "Check a call descriptor against a signature pattern",
	Long: `Check whether a call descriptor matches a signature pattern.
Exits 0 on a match and 1 on a mismatch.

Examples:
  callhint check --pattern 'f(x::Int; z::String)' --call 'f(Int; z=String)'
  callhint check --pattern 'f(args...; kwargs...)' --call 'f(Int, Float64; y=2.0)'`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		u := typeref.NewTypes()

		s, err := sig.Parse(checkPattern, u)
		if err != nil {
			fail(err, cfg.NoColor)
		}

		// Mint an identity for the pattern's function so a descriptor
		// naming the same function resolves to it
		u.EnsureFunc(s.FuncName())

		inv, err := hint.ParseCall(checkCall, u)
		if err != nil {
			fail(err, cfg.NoColor)
		}

		if hint.Matches(s, inv, hint.StrategyByName(cfg.Strategy)) {
			ok := render.Options{Color: "green", Bold: true, NoColor: cfg.NoColor}
			fmt.Println(render.Style("match", ok))
			return
		}

		no := render.Options{Color: "red", Bold: true, NoColor: cfg.NoColor}
		fmt.Println(render.Style("no match", no))
		os.Exit(1)
	},
}

// fail prints a styled error and exits
func fail(err error, noColor bool) {
	opts := render.Options{Color: "red", Bold: true, NoColor: noColor}
	fmt.Fprintln(os.Stderr, render.Style(err.Error(), opts))
	os.Exit(1)
}

func init() {
	checkCmd.Flags().StringVar(&checkPattern, "pattern", "", "signature pattern (required)")
	checkCmd.Flags().StringVar(&checkCall, "call", "", "call descriptor (required)")
	_ = checkCmd.MarkFlagRequired("pattern")
	_ = checkCmd.MarkFlagRequired("call")
}
