// Command lattice-dump prints the cell layout of a lattice configuration and
// optionally writes wireframe overlays of it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/banshee-data/lattice/internal/config"
	"github.com/banshee-data/lattice/internal/lattice"
	"github.com/banshee-data/lattice/internal/lattice/overlay"
	"github.com/banshee-data/lattice/internal/version"
)

// Config holds the command line options.
type Config struct {
	ConfigFile string
	JSON       bool
	PlotFile   string
	Plane      string
	HTMLFile   string
	Verbose    bool

	ShowVersion bool
}

// CellRecord is one row of the dump.
type CellRecord struct {
	Index int        `json:"index"`
	Coord [3]int     `json:"coord"`
	World [3]float64 `json:"world"`
}

func main() {
	cfg := parseFlags()

	if cfg.Verbose {
		lattice.SetLogWriters(os.Stderr, os.Stderr, nil)
	} else {
		lattice.SetLogWriters(os.Stderr, nil, nil)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("lattice-dump: %v", err)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.ConfigFile, "config", "", "lattice config (.json, .yaml); defaults to "+config.DefaultConfigPath)
	flag.BoolVar(&cfg.JSON, "json", false, "print cells as JSON instead of a table")
	flag.StringVar(&cfg.PlotFile, "plot", "", "write a projected wireframe plot (.png, .svg, .pdf)")
	flag.StringVar(&cfg.Plane, "plane", "xz", "projection plane for -plot: xz, xy or zy")
	flag.StringVar(&cfg.HTMLFile, "html", "", "write an interactive 3-D wireframe page")
	flag.BoolVar(&cfg.Verbose, "v", false, "log auto-scale and configuration diagnostics")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "print the version and exit")
	flag.Parse()
	return cfg
}

func loadConfig(path string) (*config.LatticeConfig, error) {
	if path == "" {
		return config.MustLoadDefaultConfig(), nil
	}
	return config.LoadLatticeConfig(path)
}

func run(cfg Config, out io.Writer) error {
	if cfg.ShowVersion {
		_, err := fmt.Fprintf(out, "lattice-dump %s\n", version.String())
		return err
	}

	latticeCfg, err := loadConfig(cfg.ConfigFile)
	if err != nil {
		return err
	}
	grid, err := lattice.GridFromConfig(latticeCfg)
	if err != nil {
		return err
	}

	records, err := collect(grid)
	if err != nil {
		return err
	}
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode cells: %w", err)
		}
	} else if err := writeTable(out, grid, records); err != nil {
		return err
	}

	if cfg.PlotFile != "" {
		plane, err := parsePlane(cfg.Plane)
		if err != nil {
			return err
		}
		pr := overlay.NewPlotRenderer(filepath.Base(cfg.PlotFile), plane)
		if _, err := overlay.Draw(grid, pr); err != nil {
			return err
		}
		if err := pr.Save(cfg.PlotFile); err != nil {
			return err
		}
		log.Printf("wrote %d boxes to %s", pr.Len(), cfg.PlotFile)
	}

	if cfg.HTMLFile != "" {
		er := overlay.NewEChartsRenderer(filepath.Base(cfg.HTMLFile))
		if _, err := overlay.Draw(grid, er); err != nil {
			return err
		}
		if err := writeHTML(cfg.HTMLFile, er); err != nil {
			return err
		}
		log.Printf("wrote %d boxes to %s", er.Len(), cfg.HTMLFile)
	}
	return nil
}

func writeHTML(path string, er *overlay.EChartsRenderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html file: %w", err)
	}
	if err := er.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close html file: %w", err)
	}
	return nil
}

func collect(grid *lattice.Grid) ([]CellRecord, error) {
	records := make([]CellRecord, 0, grid.Capacity())
	for i, c := range grid.Cells() {
		world, err := grid.CellPositionInWorld(i)
		if err != nil {
			return nil, err
		}
		records = append(records, CellRecord{
			Index: i,
			Coord: [3]int{c.X, c.Y, c.Z},
			World: [3]float64{world.X, world.Y, world.Z},
		})
	}
	return records, nil
}

func writeTable(out io.Writer, grid *lattice.Grid, records []CellRecord) error {
	size, world, scale := grid.Size(), grid.WorldSize(), grid.Scale()
	fmt.Fprintf(out, "size=%v capacity=%d world=(%.4g, %.4g, %.4g) scale=(%.4g, %.4g, %.4g) auto_scale=%t\n",
		size, grid.Capacity(), world.X, world.Y, world.Z, scale.X, scale.Y, scale.Z, grid.AutoScale())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tX\tY\tZ\tWORLD X\tWORLD Y\tWORLD Z")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			r.Index, r.Coord[0], r.Coord[1], r.Coord[2], r.World[0], r.World[1], r.World[2])
	}
	return tw.Flush()
}

func parsePlane(s string) (overlay.Plane, error) {
	switch s {
	case "xz", "":
		return overlay.PlaneXZ, nil
	case "xy":
		return overlay.PlaneXY, nil
	case "zy":
		return overlay.PlaneZY, nil
	default:
		return 0, fmt.Errorf("unknown plane %q (want xz, xy or zy)", s)
	}
}
