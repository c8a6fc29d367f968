// Command brushinfo lists the tips of a brush file and optionally writes
// one dab per tip as PNG.
//
// Usage:
//
//	brushinfo [-png dir] [-scale s] [-rotation deg] [-v] file.abr|file.gbr|file.gih|image
//	brushinfo -preset round.yaml [-png dir]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/brush"
)

func main() {
	var (
		presetFile = flag.String("preset", "", "YAML procedural preset to render instead of a brush file")
		outDir     = flag.String("png", "", "directory to write one dab PNG per tip")
		scale      = flag.Float64("scale", 1, "dab scale")
		rotation   = flag.Float64("rotation", 0, "dab rotation in degrees")
		noSmooth   = flag.Bool("no-smoothing", false, "skip the 2x pyramid level")
		verbose    = flag.Bool("v", false, "log skipped records and pyramid builds")
	)
	flag.Parse()

	if *verbose {
		brush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	opts := []brush.Option{brush.WithSmoothing(!*noSmooth)}

	tips, err := load(*presetFile, flag.Args(), opts)
	if err != nil {
		pterm.Error.Println(err)
		if len(tips) == 0 {
			os.Exit(1)
		}
	}

	angle := *rotation * math.Pi / 180
	printTips(tips, *scale, angle)

	if *outDir != "" {
		if err := writeDabs(*outDir, tips, *scale, angle); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}
}

// load returns the tips of the preset or of the single file argument.
// On a partial decode both tips and an error are returned.
func load(presetFile string, args []string, opts []brush.Option) ([]*brush.Tip, error) {
	if presetFile != "" {
		data, err := os.ReadFile(presetFile)
		if err != nil {
			return nil, err
		}
		pr, p, err := parsePreset(data)
		if err != nil {
			return nil, err
		}
		return []*brush.Tip{pr.tip(p, opts...)}, nil
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("expected one brush file, got %d arguments", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	coll, err := brush.Decode(data, filepath.Base(args[0]), opts...)
	if coll == nil {
		return nil, err
	}
	for _, w := range coll.Warnings {
		pterm.Warning.Println(w)
	}
	pterm.Info.Printf("%s: %d tips\n", coll.Name(), coll.Len())
	return coll.Tips(), err
}

func printTips(tips []*brush.Tip, scale, angle float64) {
	data := [][]string{
		{"Name", "Kind", "Size", "Spacing", "Colour", "Dab"},
	}
	for _, t := range tips {
		w, h := t.MaskSize(scale, angle, 0, 0, brush.PaintSample{})
		data = append(data, []string{
			t.Name(),
			describeKind(t),
			fmt.Sprintf("%dx%d", t.Width(), t.Height()),
			fmt.Sprintf("%.2f", t.Spacing()),
			fmt.Sprintf("%v", t.HasColor()),
			fmt.Sprintf("%dx%d", w, h),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func describeKind(t *brush.Tip) string {
	if p, ok := t.Parasite(); ok {
		return fmt.Sprintf("pipe(%d) %s", len(t.Children()), p.String())
	}
	if p, ok := t.MaskParams(); ok {
		return fmt.Sprintf("procedural %s/%s", p.Shape, p.Type)
	}
	return t.Kind().String()
}

func writeDabs(dir string, tips []*brush.Tip, scale, angle float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, t := range tips {
		d := t.ProduceDab(scale, angle, 0, 0, brush.PaintSample{}, nil)
		name := filepath.Join(dir, fmt.Sprintf("%03d_%s.png", i, sanitize(t.Name())))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := d.EncodePNG(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		pterm.Success.Printf("wrote %s (%dx%d)\n", name, d.Width(), d.Height())
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
