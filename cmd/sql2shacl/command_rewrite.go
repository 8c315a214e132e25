package main

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/fatih/color"

	"github.com/sql2shacl/sql2shacl"
	"github.com/sql2shacl/sql2shacl/shacl"
)

// RewriteCmd represents the rewrite command
type RewriteCmd struct {
	File    string `arg:"" optional:"" default:"-" help:"SQL script, Markdown document (.md) or tbls schema.json; - reads stdin"`
	BaseIRI string `help:"Base IRI of generated shapes" name:"base-iri"`
	Mode    string `help:"IRI policy: w3c, sequeda or thapa" short:"m"`
	Output  string `help:"Output file, parent directories are created (default stdout)" short:"o" type:"path"`
	Format  string `help:"Output format: turtle, ntriples, rdfxml or jsonld (default from the output extension)" short:"f"`
	DumpDDL bool   `help:"Print the parsed table definitions to stderr" name:"dump-ddl"`
}

// Run executes the rewrite command
func (cmd *RewriteCmd) Run(ctx *Context) error {
	config, err := sql2shacl.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cmd.applyConfig(ctx, config)
	if err := config.Validate(); err != nil {
		return err
	}

	format, err := cmd.outputFormat(config)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(ctx, config)
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := sql2shacl.RewriteFile(cmd.File, ctx.Stdin, sql2shacl.Options{
		BaseIRI: config.BaseIRI,
		Mode:    config.Mode,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if cmd.DumpDDL {
		color.New(color.FgCyan).Fprint(ctx.Stderr, result.DumpDDL())
	}

	if err := cmd.write(ctx, result, format); err != nil {
		return err
	}

	if n := len(result.Diagnostics); n > 0 {
		color.New(color.FgYellow).Fprintf(ctx.Stderr, "%d warning(s) while rewriting %s\n", n, cmd.File)
	}

	if cmd.Output != "" {
		color.New(color.FgGreen).Fprintf(ctx.Stderr, "Generated: %s\n", cmd.Output)
	}
	return nil
}

// applyConfig lets command-line flags override the config file.
func (cmd *RewriteCmd) applyConfig(ctx *Context, config *sql2shacl.Config) {
	if cmd.BaseIRI != "" {
		config.BaseIRI = cmd.BaseIRI
	}
	if cmd.Mode != "" {
		config.Mode = cmd.Mode
	}
	if ctx.LogLevel != "" {
		config.LogLevel = ctx.LogLevel
	}
	if ctx.LogFile != "" {
		config.LogFile = ctx.LogFile
	}
}

// outputFormat picks --format, then the output extension, then the config.
func (cmd *RewriteCmd) outputFormat(config *sql2shacl.Config) (shacl.Format, error) {
	if cmd.Format != "" {
		return shacl.ParseFormat(cmd.Format)
	}
	if cmd.Output != "" {
		if format, ok := shacl.FormatFromExtension(cmd.Output); ok {
			return format, nil
		}
	}
	return shacl.ParseFormat(config.Format)
}

func (cmd *RewriteCmd) write(ctx *Context, result *sql2shacl.Result, format shacl.Format) error {
	if cmd.Output == "" {
		return result.Write(ctx.Stdout, format)
	}

	if dir := filepath.Dir(cmd.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(filepath.Clean(cmd.Output))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := result.Write(f, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write shapes: %w", err)
	}
	return f.Close()
}

func newLogger(ctx *Context, config *sql2shacl.Config) (*slog.Logger, func(), error) {
	var w io.Writer = ctx.Stderr
	closeLog := func() {}

	if config.LogFile != "" {
		f, err := sql2shacl.OpenLogFile(config.LogFile)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger, err := sql2shacl.NewLogger(w, config.LogLevel)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return logger, closeLog, nil
}

func formatInfos() []shacl.FormatInfo {
	infos := make([]shacl.FormatInfo, 0, len(shacl.FormatRegistry))
	for _, info := range shacl.FormatRegistry {
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b shacl.FormatInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return infos
}
