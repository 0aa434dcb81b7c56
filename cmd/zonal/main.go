// zonal - render pages from a declarative site geometry
//
// Usage:
//
//	zonal render   -geometry file [-style file] [-objects dir] [-page id] [-out file] [-fragment] [-debug]
//	zonal validate -geometry file [-objects dir] [-page id]
//	zonal pages    -geometry file
//	zonal objects  -geometry file [-objects dir]
//	zonal assets   -dir directory
//	zonal version
//
// render produces a complete HTML document by default; -fragment emits only
// the zone markup. When -out is omitted, markup goes to stdout. A page that
// fails validation renders an error page instead of partial output.
//
// render, validate, pages and objects also accept -config pointing at a
// site file (zonal.yaml) supplying the paths and default page; explicit
// flags override the file.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if os.Getenv("ZONAL_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	switch os.Args[1] {
	case "render":
		cmdRender(logger, os.Args[2:])
	case "validate":
		cmdValidate(logger, os.Args[2:])
	case "pages":
		cmdPages(os.Args[2:])
	case "objects":
		cmdObjects(os.Args[2:])
	case "assets":
		cmdAssets(os.Args[2:])
	case "version":
		fmt.Println("zonal", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "zonal: unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `zonal - render pages from a declarative site geometry

Usage:
  zonal render   -geometry file [-style file] [-objects dir] [-page id] [-out file] [-fragment] [-debug]
  zonal validate -geometry file [-objects dir] [-page id]
  zonal pages    -geometry file
  zonal objects  -geometry file [-objects dir]
  zonal assets   -dir directory
  zonal version

Each command except assets also accepts -config file (zonal.yaml).
`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "zonal: "+format+"\n", args...)
	os.Exit(1)
}
