// Package main provides the augrewrite CLI.
//
// augrewrite reads a tree dump and prints an equivalent script of set
// commands in which every sibling position has been replaced by a
// content-based path expression, so the script keeps working when the
// file's line order changes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"augrewrite/internal/config"
	"augrewrite/internal/suggest"
	"augrewrite/internal/tree"
)

var (
	flagLens    string
	flagTarget  string
	flagSource  string
	flagLenses  string
	flagPretty  bool
	flagRegexp  int
	flagNoSeq   bool
	flagSeq     bool
	flagVerbose bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "augrewrite [flags] <dump-file>",
	Short: "Rewrite positional tree paths into position-free set commands",
	Long: `augrewrite reads a tree dump (augtool print style, or "-" for stdin)
and prints one set command per leaf. Position markers like [2] or /3 are
replaced with path expressions predicated on the values of child nodes,
so the commands address entries by content instead of by line number.

Examples:
  augrewrite hosts.dump
  augtool print /files/etc/hosts | augrewrite --target=/etc/hosts --source=/etc/hosts -
  augrewrite --pretty --regexp=12 squid.dump`,
	Args:          cobra.ExactArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagLens, "lens", "l", "", "lens to name in the transform header")
	f.StringVarP(&flagTarget, "target", "t", "", "absolute path the rewritten file will live at")
	f.StringVar(&flagSource, "source", "", "absolute path the dump was taken from")
	f.StringVar(&flagLenses, "lenses", "", "YAML lens registry replacing the builtin table")
	f.BoolVarP(&flagPretty, "pretty", "p", false, "align predicate values and blank-line between groups")
	f.IntVarP(&flagRegexp, "regexp", "r", 0, "match values by regular expression with at least N literal characters")
	f.Lookup("regexp").NoOptDefVal = fmt.Sprint(config.DefaultRegexpLen)
	f.BoolVarP(&flagNoSeq, "noseq", "s", false, `emit "*" instead of "seq::*", for augeas before 1.13.0`)
	f.BoolVarP(&flagSeq, "seq", "S", false, `emit "seq::*" (overrides --noseq)`)
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "echo each input leaf as a comment")
	f.BoolVarP(&flagDebug, "debug", "d", false, "enable debug tracing on stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "augrewrite: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := config.Run{
		Pretty:    flagPretty,
		RegexpLen: flagRegexp,
		NoSeq:     flagNoSeq && !flagSeq,
		Verbose:   flagVerbose,
		Debug:     flagDebug,
	}

	if flagDebug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		cfg.Log = logger.Sugar()
	}

	if flagTarget != "" && !strings.HasPrefix(flagTarget, "/") {
		return fmt.Errorf("target %q must be an absolute path", flagTarget)
	}

	if flagTarget != "" && flagSource == "" {
		return errors.New("--target requires --source")
	}

	leaves, err := readDump(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if err := printTransform(out, cmd.ErrOrStderr(), args[0], cfg.Verbose); err != nil {
		return err
	}

	if flagTarget != "" {
		leaves = tree.Reroot(leaves, flagSource, flagTarget)
	}

	diags, err := suggest.Run(cfg, leaves, out)
	if err != nil {
		return err
	}

	for _, w := range diags.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	return diags.Error()
}

// printTransform writes the transform header naming the lens for the file.
// An explicit lens is always announced; a lens inferred from --target is
// only announced in verbose mode, since the caller already knows it.
func printTransform(out, errw io.Writer, input string, verbose bool) error {
	if flagLens != "" {
		if flagTarget != "" {
			if verbose {
				fmt.Fprintf(out, "transform %s incl %s\n", flagLens, flagTarget)
			}

			return nil
		}

		file := flagSource
		if file == "" {
			file = input
		}

		fmt.Fprintf(out, "transform %s incl %s\n", flagLens, file)

		return nil
	}

	if flagTarget == "" {
		return nil
	}

	reg := tree.DefaultRegistry()

	if flagLenses != "" {
		var err error
		if reg, err = tree.LoadRegistry(flagLenses); err != nil {
			return err
		}
	}

	lens, applying, err := reg.Infer(flagTarget)
	if err != nil {
		return err
	}

	if len(applying) > 1 {
		fmt.Fprintf(errw, "warning: multiple lenses apply to %s, using %s (candidates: %s)\n",
			flagTarget, lens, strings.Join(applying, ", "))
	}

	if verbose {
		fmt.Fprintf(out, "transform %s incl %s\n", lens, flagTarget)
	}

	return nil
}

func readDump(path string) ([]tree.Leaf, error) {
	if path == "-" {
		leaves, err := tree.ParseDump(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}

		return leaves, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	leaves, err := tree.ParseDump(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return leaves, nil
}
