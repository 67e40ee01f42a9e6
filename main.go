package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/jasondoong/formiko/internal/config"
	"github.com/jasondoong/formiko/internal/errors"
	"github.com/jasondoong/formiko/internal/jsonpath"
	"github.com/jasondoong/formiko/internal/models"
	"github.com/jasondoong/formiko/internal/parser"
	"github.com/jasondoong/formiko/internal/preview"
	"github.com/jasondoong/formiko/internal/watcher"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output        string `help:"Path to output HTML file. If not specified, writes to stdout." short:"o" type:"path"`
	Filter        string `help:"JSONPath expression: matched nodes are highlighted and only their branches stay open." short:"f"`
	Prune         bool   `help:"Emit filtered JSON instead of an HTML preview (requires --filter)." short:"p"`
	TabWidth      int    `help:"Indentation width used for the collapse decision." default:"2"`
	CollapseLines int    `help:"Line-count threshold above which the preview starts collapsed." default:"100"`
	Watch         bool   `help:"Re-render whenever the input file changes (requires -i and -o)." short:"w"`
	Config        string `help:"Path to config file. Defaults to the nearest .formiko.yml." type:"path"`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("formiko-json"),
		kong.Description("Render a JSON document as a collapsible, filterable HTML preview"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage was already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("formiko-json version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: formiko-json --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: file values first, then
// CLI flags that differ from their defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load config from '%s'", path), err)
		}
		cfg = loaded
	}

	// Flags left at their defaults defer to the config file.
	if CLI.TabWidth != 2 {
		cfg.TabWidth = CLI.TabWidth
	}
	if CLI.CollapseLines != 100 {
		cfg.CollapseLines = CLI.CollapseLines
	}
	if CLI.Filter != "" {
		cfg.Filter = CLI.Filter
	}
	if cfg.TabWidth < 0 {
		return nil, errors.NewConfigError("tab width must be >= 0", nil)
	}
	if cfg.CollapseLines <= 0 {
		return nil, errors.NewConfigError("collapse line threshold must be > 0", nil)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if CLI.Watch {
		return runWatch(ctx)
	}

	text, err := readInput()
	if err != nil {
		return err
	}

	if CLI.Prune {
		out, err := pruneDocument(text, ctx.Config)
		if err != nil {
			return err
		}
		return writeOutput(out)
	}

	html, err := renderPreview(text, ctx)
	if err != nil {
		return err
	}
	return writeOutput(html)
}

// renderPreview runs a one-shot engine session: load the document, apply
// the configured filter, and assemble the final page.
func renderPreview(text string, ctx *Context) (string, error) {
	surface := &preview.PageSurface{}

	var queryErrMsg string
	engine := preview.NewEngine(preview.Options{
		TabWidth:      ctx.Config.TabWidth,
		CollapseLines: ctx.Config.CollapseLines,
		Surface:       surface,
		OnQueryError:  func(msg string) { queryErrMsg = msg },
		OnResult: func(expr string, count int) {
			if ctx.Debug {
				fmt.Fprintf(os.Stderr, "filter %q matched %d node(s)\n", expr, count)
			}
		},
	})
	defer engine.Close()

	if _, err := engine.LoadDocument(text); err != nil {
		return "", err
	}

	if strings.TrimSpace(ctx.Config.Filter) != "" {
		engine.ApplyFilter(ctx.Config.Filter)
		// One-shot flow: wait for the evaluation before reading the page.
		engine.Close()
		if queryErrMsg != "" {
			return "", errors.NewQueryError(queryErrMsg, nil)
		}
	}

	return surface.HTML(), nil
}

// pruneDocument parses the input and emits only the branches matched by the
// filter expression, as JSON text.
func pruneDocument(text string, cfg *config.Config) (string, error) {
	expression := strings.TrimSpace(cfg.Filter)
	if expression == "" {
		return "", errors.NewInputError("--prune requires a --filter expression", nil)
	}

	doc, err := parser.ParseString(text)
	if err != nil {
		return "", err
	}

	expr, err := jsonpath.Compile(expression)
	if err != nil {
		return "", errors.NewQueryError(err.Error(), err)
	}

	pruned := jsonpath.Prune(doc, expr.Find(doc))
	return models.Encode(pruned, models.EncodeOptions{Indent: cfg.TabWidth}), nil
}

// runWatch renders once, then re-renders on every change to the input file
// until interrupted.
func runWatch(ctx *Context) error {
	if CLI.Input == "" {
		return errors.NewInputError("--watch requires an input file (-i)", nil)
	}
	if CLI.Output == "" {
		return errors.NewOutputError("--watch requires an output file (-o)", nil)
	}
	if CLI.Prune {
		return errors.NewInputError("--watch and --prune cannot be combined", nil)
	}

	renderOnce := func() error {
		text, err := readInput()
		if err != nil {
			return err
		}
		html, err := renderPreview(text, ctx)
		if err != nil {
			return err
		}
		return writeOutput(html)
	}

	if err := renderOnce(); err != nil {
		return err
	}

	w, err := watcher.New(CLI.Input, func() {
		if err := renderOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
			return
		}
		if ctx.Debug {
			fmt.Fprintf(os.Stderr, "re-rendered %s\n", CLI.Output)
		}
	})
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to watch '%s'", CLI.Input), err)
	}
	defer func() { _ = w.Close() }()

	fmt.Fprintf(os.Stderr, "Watching %s, writing %s (Ctrl+C to stop)\n", CLI.Input, CLI.Output)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	return nil
}

// readInput reads JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive and nothing was piped in.
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	reader := bufio.NewReader(os.Stdin)
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes the rendered document to file or stdout
func writeOutput(content string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(content), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		return nil
	}

	_, err := fmt.Println(content)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
