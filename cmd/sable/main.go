package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/sable-lang/sable/sable-go/sableast"
	"github.com/sable-lang/sable/sable-go/sableparser"
	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/sable-lang/sable/sable-golib/errors"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

func checkError(e error) {
	if e != nil {
		log.Output(2, e.Error())
		os.Exit(1)
	}
}

func readSource(path string) []byte {
	buf, err := ioutil.ReadFile(path)
	checkError(errors.WrapfOrNil(err, "reading %s", path))
	return buf
}

// scanOptions builds the lexer options for a run: the defaults, with the
// YAML config file overlaid when one was given.
func scanOptions() sablescanner.Options {
	opts := sablescanner.DefaultOptions()
	if configPath == "" {
		return opts
	}
	buf, err := ioutil.ReadFile(configPath)
	checkError(errors.WrapfOrNil(err, "reading config %s", configPath))
	checkError(errors.WrapfOrNil(yaml.Unmarshal(buf, &opts), "parsing config %s", configPath))
	return opts
}

var (
	verbose     bool
	lineNumbers bool
	colorize    bool
	configPath  string
)

func init() {
	lexCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show positions and decoded payloads")
	lexCmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "number output rows")
	lexCmd.Flags().BoolVar(&colorize, "color", false, "colorize tokens by class")
	lexCmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding lexer options")
	parseCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print node positions")
	parseCmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding lexer options")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a source snippet under each diagnostic")
	checkCmd.Flags().BoolVar(&colorize, "color", false, "colorize source snippets")
	checkCmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding lexer options")
}

var lexCmd = cobra.Command{
	Use:   "lex FILE",
	Short: "print the token stream for a source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := readSource(args[0])
		opts := scanOptions()
		opts.ScanComments = true
		words, err := sablescanner.Lex(src, opts)
		for i, w := range words {
			if lineNumbers {
				fmt.Printf("%4d  ", i)
			}
			printWord(w)
		}
		fmt.Printf("%s words\n", humanize.Comma(int64(len(words))))
		if err != nil {
			printDiagnostics(src, err)
			os.Exit(1)
		}
	},
}

var parseCmd = cobra.Command{
	Use:   "parse FILE",
	Short: "parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := readSource(args[0])
		opts := sableparser.DefaultOptions()
		opts.ScanOptions = scanOptions()
		mod, err := sableparser.Parse(src, opts)
		if mod != nil {
			if verbose {
				sableast.PrintPositions(mod, os.Stdout, "  ")
			} else {
				sableast.Print(mod, os.Stdout, "  ")
			}
			fmt.Printf("%s top-level statements\n", humanize.Comma(int64(len(mod.Body))))
		}
		if err != nil {
			printDiagnostics(src, err)
			os.Exit(1)
		}
	},
}

var checkCmd = cobra.Command{
	Use:   "check FILE",
	Short: "report every diagnostic for a source file",
	Long: `Check lexes and parses a source file with recovery enabled and prints
every diagnostic found, warnings included. The exit code is 1 when any
error was reported and 0 otherwise.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := readSource(args[0])
		opts := sableparser.DefaultOptions()
		opts.ScanOptions = scanOptions()
		var warnings []sableparser.Warning
		opts.WarningHandler = func(w sableparser.Warning) {
			warnings = append(warnings, w)
		}
		_, err := sableparser.Parse(src, opts)
		for _, w := range warnings {
			fmt.Println(w.String())
			if verbose {
				printSnippet(src, w.Line, w.Column)
			}
		}
		if err == nil {
			fmt.Println("ok")
			return
		}
		printDiagnostics(src, err)
		os.Exit(1)
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "sable"}
	rootCmd.AddCommand(&lexCmd)
	rootCmd.AddCommand(&parseCmd)
	rootCmd.AddCommand(&checkCmd)

	rootCmd.Execute()
}
