package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/tsawler/zonal"
	"github.com/tsawler/zonal/validate"
)

func cmdRender(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", "", "site config file (zonal.yaml)")
	geometryPath := fs.String("geometry", "", "geometry document")
	stylePath := fs.String("style", "", "style map file")
	objectsDir := fs.String("objects", "", "content object directory")
	pageID := fs.String("page", "", "page to render (default: the only page)")
	outPath := fs.String("out", "", "write markup to this file instead of stdout")
	fragment := fs.Bool("fragment", false, "emit only the zone markup, no document wrapper")
	debug := fs.Bool("debug", false, "append a debug panel with store statistics")
	fs.Parse(args)

	cfg, err := siteSettings(*configPath, *geometryPath, *stylePath, *objectsDir, *pageID)
	if err != nil {
		fatal("render: %v", err)
	}
	p := cfg.pipeline()

	page, err := resolvePage(p, cfg.Page)
	if err != nil {
		fatal("render: %v", err)
	}
	logger.Debug("rendering", "geometry", cfg.Geometry, "page", page)

	markup, warnings, err := p.HTML(page)
	for _, w := range warnings {
		logger.Warn("validation warning", "page", w.Page, "message", w.Message)
	}

	var doc string
	exitCode := 0
	switch {
	case err == nil:
		if *fragment {
			doc = markup
		} else {
			doc = wrapDocument(page, markup)
		}
		if *debug {
			doc = appendDebugPanel(doc, p, logger)
		}

	case isValidationError(err):
		// Fail closed: an invalid page never produces partial markup. The
		// error page carries the full report instead.
		logger.Error("page failed validation", "page", page, "error", err)
		report, rerr := p.ValidationReport(page)
		if rerr != nil {
			fatal("render: %v", rerr)
		}
		doc = errorDocument(page, report)
		exitCode = 1

	default:
		fatal("render: %v", err)
	}

	if *outPath == "" {
		fmt.Print(doc)
	} else {
		if err := atomic.WriteFile(*outPath, strings.NewReader(doc)); err != nil {
			fatal("render: writing %s: %v", *outPath, err)
		}
		logger.Info("wrote page", "page", page, "out", *outPath, "bytes", len(doc))
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func cmdValidate(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "site config file (zonal.yaml)")
	geometryPath := fs.String("geometry", "", "geometry document")
	objectsDir := fs.String("objects", "", "content object directory")
	pageID := fs.String("page", "", "page to validate (default: every page)")
	fs.Parse(args)

	cfg, err := siteSettings(*configPath, *geometryPath, "", *objectsDir, *pageID)
	if err != nil {
		fatal("validate: %v", err)
	}
	p := cfg.pipeline()

	pages := []string{cfg.Page}
	if cfg.Page == "" {
		all, err := p.PageIDs()
		if err != nil {
			fatal("validate: %v", err)
		}
		pages = all
	}

	failed := false
	for _, page := range pages {
		report, err := p.ValidationReport(page)
		if err != nil {
			fatal("validate: page %s: %v", page, err)
		}
		fmt.Printf("--- %s ---\n%s\n", page, report)
		if !strings.Contains(report, "Status: VALID") {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	logger.Debug("all pages valid", "count", len(pages))
}

func cmdPages(args []string) {
	fs := flag.NewFlagSet("pages", flag.ExitOnError)
	configPath := fs.String("config", "", "site config file (zonal.yaml)")
	geometryPath := fs.String("geometry", "", "geometry document")
	fs.Parse(args)

	cfg, err := siteSettings(*configPath, *geometryPath, "", "", "")
	if err != nil {
		fatal("pages: %v", err)
	}
	p := cfg.pipeline()

	ids, err := p.PageIDs()
	if err != nil {
		fatal("pages: %v", err)
	}
	for _, id := range ids {
		info, err := p.PageInfo(id)
		if err != nil {
			fatal("pages: %v", err)
		}
		fmt.Printf("%s\t%s\t%s\n", id, info.Name, info.Description)
	}
}

func cmdObjects(args []string) {
	fs := flag.NewFlagSet("objects", flag.ExitOnError)
	configPath := fs.String("config", "", "site config file (zonal.yaml)")
	geometryPath := fs.String("geometry", "", "geometry document")
	objectsDir := fs.String("objects", "", "content object directory")
	fs.Parse(args)

	cfg, err := siteSettings(*configPath, *geometryPath, "", *objectsDir, "")
	if err != nil {
		fatal("objects: %v", err)
	}
	ids, err := cfg.pipeline().ListObjects()
	if err != nil {
		fatal("objects: %v", err)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

// resolvePage picks the page to operate on: the explicit flag when given,
// otherwise the geometry's single page. Multi-page geometries require the
// flag.
func resolvePage(p *zonal.Pipeline, pageID string) (string, error) {
	if pageID != "" {
		return pageID, nil
	}
	ids, err := p.PageIDs()
	if err != nil {
		return "", err
	}
	if len(ids) != 1 {
		return "", fmt.Errorf("geometry defines %d pages, pick one with -page", len(ids))
	}
	return ids[0], nil
}

func isValidationError(err error) bool {
	var perr *validate.PageError
	var ferr *validate.FatalError
	return errors.As(err, &perr) || errors.As(err, &ferr)
}
