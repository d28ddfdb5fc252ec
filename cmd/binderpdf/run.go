package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	binderpdf "github.com/DerFlash/go-binderpdf"
	"github.com/DerFlash/go-binderpdf/internal/strtab"
)

// run wires config, document, and service together and generates one PDF.
func run(flags *cliFlags) error {
	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flags.cacheDir != "" {
		cfg.CacheDir = flags.cacheDir
	}

	doc, err := binderpdf.LoadDocument(flags.input, flags.lang)
	if err != nil {
		return err
	}

	opts := []binderpdf.Option{
		binderpdf.WithCacheDir(cfg.CacheDir),
		binderpdf.WithLogoDir(cfg.LogoDir),
		binderpdf.WithFontDirs(cfg.FontDirs...),
	}
	if cfg.CacheBound > 0 {
		opts = append(opts, binderpdf.WithCacheBound(cfg.CacheBound))
	}
	if cfg.StringsFile != "" {
		table, err := strtab.Load(cfg.StringsFile)
		if err != nil {
			return err
		}
		opts = append(opts, binderpdf.WithTranslator(table))
	}
	if flags.verbose {
		opts = append(opts, binderpdf.WithProgress(progressWriter()))
	}

	outPath := resolveOutputPath(flags, cfg, doc)
	svc := binderpdf.New(opts...)
	if err := svc.Generate(context.Background(), doc, outPath); err != nil {
		return err
	}

	if !flags.quiet {
		color.New(color.FgGreen).Fprintf(os.Stdout, "Created %s\n", outPath)
	}
	return nil
}

// resolveOutputPath applies the deterministic naming scheme when no explicit
// output path is given: binder_<scope>_<lang>.pdf in the configured output
// directory.
func resolveOutputPath(flags *cliFlags, cfg *Config, doc *binderpdf.Document) string {
	if flags.output != "" {
		return flags.output
	}
	scope := flags.scope
	if scope == "" {
		scope = doc.Name
	}
	if scope == "" {
		scope = strings.TrimSuffix(filepath.Base(flags.input), filepath.Ext(flags.input))
	}
	return filepath.Join(cfg.OutputDir, binderpdf.OutputName(scope, flags.lang))
}

// progressWriter colors per-section progress lines on stderr.
func progressWriter() io.Writer {
	return &colorWriter{c: color.New(color.FgCyan)}
}

type colorWriter struct {
	c *color.Color
}

func (w *colorWriter) Write(p []byte) (int, error) {
	w.c.Fprint(os.Stderr, string(p))
	return len(p), nil
}
