package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/markurti/lfdc/ll/grammarfile"
	"github.com/markurti/lfdc/ll/parsetree"
	"github.com/markurti/lfdc/ll/predictive"
	"github.com/markurti/lfdc/unitlang"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	flag "github.com/spf13/pflag"
)

// main() starts an interactive CLI ("U.REPL"), where users may enter programs
// of the unit conversion language, one per line. Programs given as arguments
// are parsed before going into interactive mode.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.StringP("trace", "t", "Info", "Trace level [Debug|Info|Error]")
	grammarFile := flag.StringP("grammar", "g", "", "YAML grammar file over unit language tokens")
	showTable := flag.Bool("table", false, "Print the predictive parsing table")
	htmlFile := flag.String("html", "", "Write the parsing table as HTML to this file")
	initf := flag.String("init", "", "Initial load")
	steps := flag.Bool("steps", false, "Trace every step of the parser")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to U.REPL")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	lang, err := loadLanguage(*grammarFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	lang.Grammar().Dump() // only visible in debug mode
	if *showTable {
		printTable(lang.Table())
	}
	if *htmlFile != "" {
		if err := writeTable(lang.Table(), *htmlFile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		pterm.Info.Printf("Parsing table written to %s\n", *htmlFile)
	}
	repl, err := readline.New("urepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{lang: lang, repl: repl, steps: *steps}
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		if err := intp.Eval(input); err != nil {
			os.Exit(2)
		}
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadLanguage(filename string) (*unitlang.Language, error) {
	if filename == "" {
		return unitlang.Default()
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open grammar file: %w", err)
	}
	defer f.Close()
	g, err := grammarfile.ReadYAML(f, unitlang.Resolve)
	if err != nil {
		return nil, err
	}
	return unitlang.NewLanguage(g)
}

func writeTable(table *ll.ParsingTable, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = table.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printTable(table *ll.ParsingTable) {
	data := pterm.TableData{{"Non-terminal", "Lookahead", "Rule"}}
	for _, e := range table.Entries() {
		data = append(data, []string{e.NonTerminal.Name, e.Lookahead.Name, e.Rule.String()})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	pterm.Println(out)
}

// Intp is our interpreter object
type Intp struct {
	lang  *unitlang.Language
	repl  *readline.Instance
	steps bool
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.Eval(line)
	}
	println("Good bye!")
}

// Eval scans and parses a line of input and prints the results.
func (intp *Intp) Eval(line string) error {
	tracer().Infof("---------------------------- PIF ---------------------------------")
	tokens, err := intp.lang.Scan(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	printPIF(tokens)
	tracer().Infof("------------------------ Derivation ------------------------------")
	parser := intp.lang.Parser()
	parser.TraceSteps = intp.steps
	tree, derivation, err := parser.Parse(tokens)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	printDerivation(derivation)
	tracer().Infof("------------------------ Parse Tree ------------------------------")
	if err = printTree(tree); err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func printPIF(tokens []lfdc.Token) {
	data := pterm.TableData{{"Token", "Lexeme", "Offset"}}
	for _, tok := range tokens {
		data = append(data, []string{unitlang.TokenName(tok.Type), tok.Lexeme, fmt.Sprint(tok.Offset)})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	pterm.Println(out)
}

func printDerivation(d predictive.Derivation) {
	for i, r := range d {
		pterm.Printf("%3d  %s\n", i+1, r)
	}
}

func printTree(tree *parsetree.Tree) error {
	out, err := parsetree.Render(tree)
	if err != nil {
		return err
	}
	pterm.Println(out)
	if out, err = parsetree.RenderTable(tree); err != nil {
		return err
	}
	pterm.Println(out)
	return nil
}
