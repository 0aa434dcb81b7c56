package main

import (
	"flag"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register decoders for the asset formats a site typically ships.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/net/html"

	"github.com/tsawler/zonal"
)

// appendDebugPanel attaches store statistics to the rendered document so
// authors can see cache behavior and source timings per object.
func appendDebugPanel(doc string, p *zonal.Pipeline, logger *slog.Logger) string {
	stats, err := p.Stats()
	if err != nil {
		logger.Warn("debug panel unavailable", "error", err)
		return doc
	}

	var b strings.Builder
	b.WriteString("<!-- debug panel -->\n<aside class=\"debug-panel\">\n")
	fmt.Fprintf(&b, "  <p>store: %d hits, %d misses, total load %s</p>\n",
		stats.Hits, stats.Misses, stats.TotalLoadTime())

	ids := make([]string, 0, len(stats.Timings))
	for id := range stats.Timings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		b.WriteString("  <ul>\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "    <li>%s: %s</li>\n", html.EscapeString(id), stats.Timings[id])
		}
		b.WriteString("  </ul>\n")
	}
	b.WriteString("</aside>\n")

	idx := strings.LastIndex(doc, "</body>")
	if idx < 0 {
		return doc + b.String()
	}
	return doc[:idx] + b.String() + doc[idx:]
}

// assetInfo describes one decodable image under the asset directory.
type assetInfo struct {
	path   string
	format string
	width  int
	height int
}

// cmdAssets inspects image assets and prints their dimensions. Authors
// writing geometry properties like fixed zone heights use this to keep
// assets and structure in agreement.
func cmdAssets(args []string) {
	fs := flag.NewFlagSet("assets", flag.ExitOnError)
	dir := fs.String("dir", "", "asset directory to inspect (required)")
	fs.Parse(args)

	if *dir == "" {
		fatal("assets: -dir is required")
	}

	infos, err := inspectAssets(*dir)
	if err != nil {
		fatal("assets: %v", err)
	}
	if len(infos) == 0 {
		fmt.Println("no decodable images found")
		return
	}
	for _, info := range infos {
		fmt.Printf("%s\t%s\t%dx%d\n", info.path, info.format, info.width, info.height)
	}
}

// inspectAssets walks a directory and decodes the header of every image it
// recognizes. Files that fail to decode are skipped silently; the command
// reports what it can read, not what it cannot.
func inspectAssets(dir string) ([]assetInfo, error) {
	var infos []assetInfo
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		cfg, format, derr := image.DecodeConfig(f)
		f.Close()
		if derr != nil {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			rel = path
		}
		infos = append(infos, assetInfo{
			path:   rel,
			format: format,
			width:  cfg.Width,
			height: cfg.Height,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].path < infos[j].path })
	return infos, nil
}
