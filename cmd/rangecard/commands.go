package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/ballistics/internal/config"
	"github.com/banshee-data/ballistics/internal/db"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/fsutil"
	"github.com/banshee-data/ballistics/internal/httputil"
	"github.com/banshee-data/ballistics/internal/monitoring"
	"github.com/banshee-data/ballistics/internal/rangecard"
	"github.com/banshee-data/ballistics/internal/report"
	"github.com/banshee-data/ballistics/internal/security"
	"github.com/banshee-data/ballistics/internal/units"
)

const defaultDBPath = "ballistics.db"

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, e env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stdout)
	return fs
}

// loadShot reads the config and resolves the output unit system.
func loadShot(path, unitsName string) (*config.ShotConfig, units.System, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	system := cfg.GetUnits()
	if unitsName != "" {
		if system, err = units.ParseSystem(unitsName); err != nil {
			return nil, "", err
		}
	}
	return cfg, system, nil
}

func handleCard(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("card", e)
	configPath := fs.String("config", config.DefaultConfigPath, "Shot config file")
	unitsName := fs.String("units", "", "Output units: imperial or metric (default from config)")
	outDir := fs.String("out", "", "Directory to write text, PNG and HTML cards into")
	dbPath := fs.String("db", "", "Record the run into this sqlite run store")
	server := fs.String("server", "", "Ballistics server URL to compute on")
	workers := fs.Int("workers", 0, "Concurrent zeroing runs (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, system, err := loadShot(*configPath, *unitsName)
	if err != nil {
		return err
	}

	start := e.clock.Now()
	var res *rangecard.Result
	if *server != "" {
		res, err = remoteCard(e.client, *server, cfg, system)
	} else {
		var reg *drag.Registry
		if reg, err = drag.DefaultRegistry(); err != nil {
			return err
		}
		res, err = rangecard.Compute(ctx, cfg, reg, rangecard.Options{Workers: *workers, System: system})
	}
	if err != nil {
		return err
	}
	monitoring.Logf("computed %q in %v", res.Label, e.clock.Since(start))

	printZeros(e.stdout, res, system)
	fmt.Fprintln(e.stdout)
	if err := res.Card.WriteTable(e.stdout); err != nil {
		return err
	}

	if *outDir != "" {
		paths, err := writeCard(e.fsys, *outDir, res.Card)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(e.stdout, "wrote %s\n", p)
		}
	}

	if *dbPath != "" {
		store, err := db.NewDB(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := res.Record(store, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "recorded run %s\n", run.ID)
	}
	return nil
}

func handleZero(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("zero", e)
	configPath := fs.String("config", config.DefaultConfigPath, "Shot config file")
	unitsName := fs.String("units", "", "Output units: imperial or metric (default from config)")
	workers := fs.Int("workers", 0, "Concurrent zeroing runs (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, system, err := loadShot(*configPath, *unitsName)
	if err != nil {
		return err
	}
	reg, err := drag.DefaultRegistry()
	if err != nil {
		return err
	}
	res, err := rangecard.Solve(ctx, cfg, reg, rangecard.Options{Workers: *workers})
	if err != nil {
		return err
	}
	printZeros(e.stdout, res, system)
	return nil
}

// remoteCard posts cfg to a ballistics server's trajectory route.
func remoteCard(client httputil.HTTPClient, server string, cfg *config.ShotConfig, system units.System) (*rangecard.Result, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	target := strings.TrimRight(server, "/") + "/api/trajectory?" + url.Values{"units": {string(system)}}.Encode()

	var res rangecard.Result
	if err := httputil.PostJSON(client, target, body, &res); err != nil {
		return nil, err
	}
	if res.Card == nil {
		return nil, errors.New("server returned no range card")
	}
	return &res, nil
}

func printZeros(w io.Writer, res *rangecard.Result, system units.System) {
	du := system.Display()
	line := func(kind string, z rangecard.Zero) {
		fmt.Fprintf(w, "%s %.0f %s: ", kind, units.ConvertDistance(z.Distance, du.Range), du.Range)
		if z.Error != "" {
			fmt.Fprintf(w, "failed: %s\n", z.Error)
			return
		}
		fmt.Fprintf(w, "elevation %.2f %s, windage %.2f %s (%d iterations)\n",
			units.ConvertAngle(z.Pitch, du.Angle), du.Angle,
			units.ConvertAngle(z.Yaw, du.Angle), du.Angle, z.Iterations)
	}
	line("zero", res.Zero)
	for _, z := range res.Alternates {
		line("alternate", z)
	}
}

// writeCard writes the card as text, PNG and HTML named after its title.
func writeCard(fsys fsutil.FileSystem, dir string, card *report.Card) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	base := filepath.Join(dir, security.SanitizeFilename(card.Title))

	outputs := []struct {
		ext   string
		write func(io.Writer) error
	}{
		{".txt", card.WriteTable},
		{".png", card.WritePlot},
		{".html", card.RenderChart},
	}
	var paths []string
	for _, o := range outputs {
		path := base + o.ext
		f, err := fsys.Create(path)
		if err != nil {
			return paths, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := o.write(f); err != nil {
			f.Close()
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("failed to close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func handleTables(e env, args []string) error {
	fs := newFlagSet("tables", e)
	file := fs.String("file", "", "Inspect a Mach,Cd CSV drag table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file != "" {
		t, err := drag.LoadFile(*file)
		if err != nil {
			return err
		}
		lo, hi := t.Domain()
		fmt.Fprintf(e.stdout, "%s: %d points, Mach %.2f to %.2f\n", *file, t.Len(), lo, hi)
		return nil
	}

	reg, err := drag.DefaultRegistry()
	if err != nil {
		return err
	}
	for _, k := range reg.Kinds() {
		t, err := reg.Table(k)
		if err != nil {
			return err
		}
		lo, hi := t.Domain()
		fmt.Fprintf(e.stdout, "%s: %d points, Mach %.2f to %.2f\n", k, t.Len(), lo, hi)
	}
	return nil
}

func handleMigrate(e env, args []string) error {
	fs := newFlagSet("migrate", e)
	dbPath := fs.String("db", defaultDBPath, "Path to the sqlite run store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("migrate needs an action: up, down, version or force N")
	}

	store, err := db.OpenDB(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	migrations := db.MigrationsFS()

	switch action := fs.Arg(0); action {
	case "up":
		err = store.MigrateUp(migrations)
	case "down":
		err = store.MigrateDown(migrations)
	case "force":
		if fs.NArg() < 2 {
			return errors.New("migrate force needs a version")
		}
		v, convErr := strconv.Atoi(fs.Arg(1))
		if convErr != nil {
			return fmt.Errorf("invalid version %q: %w", fs.Arg(1), convErr)
		}
		err = store.MigrateForce(migrations, v)
	case "version":
	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}
	if err != nil {
		return err
	}

	v, dirty, err := store.MigrateVersion(migrations)
	if err != nil {
		return err
	}
	suffix := ""
	if dirty {
		suffix = " (dirty)"
	}
	fmt.Fprintf(e.stdout, "schema version %d%s\n", v, suffix)
	return nil
}
