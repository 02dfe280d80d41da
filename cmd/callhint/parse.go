package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/callhint/callhint/internal/cli/config"
	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/sig"
	"github.com/callhint/callhint/typeref"
)

var parseCmd = &cobra.Command{
	Use:   "parse <pattern>",
	Short: "Parse a signature pattern and print its shape",
	Long: `Parse a signature pattern and print its compiled shape.

Examples:
  callhint parse 'f(x::Int, y; z::String)'
  callhint parse 'f(args...; kwargs...)'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		s, err := sig.Parse(args[0], typeref.NewTypes())
		if err != nil {
			errOpts := render.Options{Color: "red", Bold: true, NoColor: cfg.NoColor}
			fmt.Fprintln(os.Stderr, render.Style(err.Error(), errOpts))
			os.Exit(1)
		}

		printSignature(s, cfg.NoColor)
	},
}

// printSignature prints the compiled shape of a signature
func printSignature(s *sig.Signature, noColor bool) {
	head := render.Options{Color: "cyan", Bold: true, NoColor: noColor}
	fmt.Println(render.Style(s.Pattern(), head))
	fmt.Printf("  function: %s\n", s.FuncName())

	for i, p := range s.Positionals() {
		constraint := "Any"
		if !p.Constraint.IsAny() {
			constraint = p.Constraint.Name()
		}
		name := p.Name
		if name == "" {
			name = "_"
		}
		fmt.Printf("  positional %d: %s :: %s\n", i+1, name, constraint)
	}

	if v := s.Variadic(); v != nil {
		constraint := "Any"
		if !v.ElementConstraint.IsAny() {
			constraint = v.ElementConstraint.Name()
		}
		fmt.Printf("  variadic: %s :: %s...\n", v.Name, constraint)
	}

	for _, kw := range s.Keywords() {
		constraint := "Any"
		if !kw.Constraint.IsAny() {
			constraint = kw.Constraint.Name()
		}
		status := "optional"
		if kw.Required {
			status = "required"
		}
		fmt.Printf("  keyword: %s :: %s (%s)\n", kw.Name, constraint, status)
	}

	if s.VariadicKeywords() {
		fmt.Println("  keyword: ... (any name tolerated)")
	}
}
