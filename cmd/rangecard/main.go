package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/ballistics/internal/fsutil"
	"github.com/banshee-data/ballistics/internal/httputil"
	"github.com/banshee-data/ballistics/internal/timeutil"
	"github.com/banshee-data/ballistics/internal/version"
)

// env carries the process's outside world so commands can be tested.
type env struct {
	stdout io.Writer
	fsys   fsutil.FileSystem
	client httputil.HTTPClient
	clock  timeutil.Clock
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := env{
		stdout: os.Stdout,
		fsys:   fsutil.OSFileSystem{},
		client: httputil.NewStandardClient(&http.Client{Timeout: 2 * time.Minute}),
		clock:  timeutil.RealClock{},
	}
	if err := dispatch(ctx, e, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rangecard: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, e env, command string, args []string) error {
	switch command {
	case "card":
		return handleCard(ctx, e, args)
	case "zero":
		return handleZero(ctx, e, args)
	case "tables":
		return handleTables(e, args)
	case "migrate":
		return handleMigrate(e, args)
	case "version":
		fmt.Fprintf(e.stdout, "rangecard %s\n", version.String())
		return nil
	case "help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'rangecard help')", command)
	}
}

func printUsage() {
	fmt.Println(`rangecard - zero a rifle and print its range card

Usage: rangecard <command> [options]

Commands:
  card       Zero the configured shot and print its range card
  zero       Solve the zero and any alternate zeros only
  tables     List the built-in drag tables or inspect a CSV table
  migrate    Manage the run store schema (up, down, version, force N)
  version    Show rangecard version
  help       Show this help message

Card Flags:
  --config <file>    Shot config (default: config/shot.defaults.json)
  --units <system>   Override output units: imperial or metric
  --out <dir>        Also write <label>.txt, .png and .html into dir
  --db <file>        Record the run into this sqlite run store
  --server <url>     Compute on a ballistics server instead of locally
  --workers <n>      Concurrent zeroing runs (default: GOMAXPROCS)

Examples:
  rangecard card --config loads/65cm.json --units metric
  rangecard card --out cards --db runs.db
  rangecard zero --config loads/308.json
  rangecard migrate --db runs.db version`)
}
