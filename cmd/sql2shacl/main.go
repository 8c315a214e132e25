package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

var version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config   string
	LogLevel string
	LogFile  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config   string           `help:"Configuration file path" default:"sql2shacl.yaml"`
	LogLevel string           `help:"Log level: debug, info, warn or error" name:"loglevel"`
	LogFile  string           `help:"Append logs to this file instead of stderr" name:"log-file" type:"path"`
	Version  kong.VersionFlag `help:"Show version information"`

	Rewrite RewriteCmd `cmd:"" default:"withargs" help:"Rewrite SQL table definitions into SHACL shapes"`
	Formats FormatsCmd `cmd:"" help:"List output formats"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("sql2shacl"),
		kong.Description("Rewrite SQL DDL into SHACL shapes."),
		kong.Vars{"version": "sql2shacl " + version},
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func run(args []string, appCtx *Context, options ...kong.Option) error {
	var cli CLI

	parser, err := newParser(&cli, options...)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	appCtx.Config = cli.Config
	appCtx.LogLevel = cli.LogLevel
	appCtx.LogFile = cli.LogFile

	return ctx.Run(appCtx)
}

func main() {
	appCtx := &Context{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := run(os.Args[1:], appCtx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// FormatsCmd represents the formats command
type FormatsCmd struct{}

// Run lists the registered output formats
func (cmd *FormatsCmd) Run(ctx *Context) error {
	for _, info := range formatInfos() {
		fmt.Fprintf(ctx.Stdout, "%-9s %-6s %-22s %s\n", info.Name, info.Extension, info.MIMEType, info.Description)
	}
	return nil
}
