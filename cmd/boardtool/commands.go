package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/scene"
	"github.com/Faultbox/gridcast/internal/view"
	"github.com/Faultbox/gridcast/pkg/formats"
	"github.com/Faultbox/gridcast/pkg/raycast"
)

var errUsage = errors.New("usage")

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: boardtool info <board>", errUsage)
	}

	b, err := formats.LoadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Board:   %s\n", b.Name)
	fmt.Fprintf(w, "Version: %s\n", b.Version)
	fmt.Fprintf(w, "Size:    %dx%d tiles, cell %.1f\n", b.Width, b.Height, b.CellSize)
	fmt.Fprintf(w, "Spawn:   (%.2f, %.2f) facing %.1f°\n", b.Spawn.X, b.Spawn.Y, float64(b.Spawn.Angle)*180/math.Pi)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tiles by code:")

	counts := b.CountByCode()
	codes := make([]uint32, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	for _, code := range codes {
		label := "wall"
		if code == 0 {
			label = "open"
		}
		fmt.Fprintf(w, "  %-4d %-5s %d\n", code, label, counts[code])
	}
	return nil
}

func cmdValidate(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: boardtool validate <board>...", errUsage)
	}

	pal := palette.Default()
	failed := 0
	for _, path := range args {
		if err := validateBoard(path, pal); err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d boards failed", failed, len(args))
	}
	return nil
}

func validateBoard(path string, pal palette.Palette) error {
	b, err := formats.LoadFile(path)
	if err != nil {
		return err
	}
	g, err := b.Grid()
	if err != nil {
		return err
	}
	if err := pal.Validate(b.Tiles); err != nil {
		return err
	}
	if wall, err := g.IsWall(b.SpawnPoint()); err != nil || wall {
		return fmt.Errorf("spawn %s is blocked", b.SpawnPoint())
	}
	return nil
}

func cmdConvert(w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: boardtool convert <in> <out>", errUsage)
	}
	in, out := args[0], args[1]

	b, err := formats.LoadFile(in)
	if err != nil {
		return err
	}

	var data []byte
	if formats.IsLayoutPath(out) {
		data, err = b.MarshalLayout()
	} else {
		data, err = b.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(w, "Converted %s -> %s (%d bytes)\n", in, out, len(data))
	return nil
}

func cmdProbe(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(w)
	x := fs.Float64("x", math.NaN(), "Origin x in tiles (default: spawn)")
	y := fs.Float64("y", math.NaN(), "Origin y in tiles (default: spawn)")
	angle := fs.Float64("angle", math.NaN(), "Facing in degrees (default: spawn)")
	rays := fs.Int("rays", 1, "Number of rays in the fan")
	fov := fs.Float64("fov", 90, "Field of view in degrees")
	k := fs.Float64("k", raycast.DefaultProjection, "Projection constant")
	verbose := fs.Bool("v", false, "Print every crossing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("%w: boardtool probe [flags] <board>", errUsage)
	}

	b, err := formats.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	g, err := b.Grid()
	if err != nil {
		return err
	}

	origin := b.SpawnPoint()
	if !math.IsNaN(*x) {
		origin.X = *x
	}
	if !math.IsNaN(*y) {
		origin.Y = *y
	}
	facing := float64(b.Spawn.Angle)
	if !math.IsNaN(*angle) {
		facing = *angle * math.Pi / 180
	}

	v := raycast.NewViewer(raycast.ViewerConfig{
		Position:   origin,
		Facing:     facing,
		FOV:        *fov * math.Pi / 180,
		Rays:       *rays,
		Projection: *k,
	})
	v.Update(g)

	fmt.Fprintf(w, "Origin %s on %s\n", origin, b.Name)
	for i := range v.Rays {
		r := &v.Rays[i]
		fmt.Fprintf(w, "ray %d: %.2f°", i, r.Angle*180/math.Pi)
		if index, ok := r.Tile(); ok {
			code, _ := g.TileCode(index)
			fmt.Fprintf(w, " hit tile %d (code %d) %s at %v, distance %.3f, height %s\n",
				index, code, r.Hit.Kind, r.Hit.Point, r.Distance, heightString(r.ProjectedHeight))
		} else {
			fmt.Fprintln(w, " no wall")
		}

		if *verbose {
			printCrossings(w, "horizontal", r.HorizontalCrossings)
			printCrossings(w, "vertical", r.VerticalCrossings)
		}
	}

	sum := v.Summary()
	fmt.Fprintf(w, "horizontal %d, vertical %d, open %d\n", sum.Horizontal, sum.Vertical, sum.Open)
	return nil
}

func heightString(h float64) string {
	if h == raycast.MaxProjectedHeight {
		return "max"
	}
	return fmt.Sprintf("%.3f", h)
}

func printCrossings(w io.Writer, family string, crossings []raycast.Intercept) {
	for _, c := range crossings {
		index, _ := c.Tile()
		mark := ""
		if c.Wall {
			mark = " wall"
		}
		fmt.Fprintf(w, "    %-10s %v tile %d%s\n", family, c.Point, index, mark)
	}
}

func cmdMap(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: boardtool map <board>", errUsage)
	}

	b, err := formats.LoadFile(args[0])
	if err != nil {
		return err
	}

	var sb strings.Builder
	for y := 0; y < int(b.Height); y++ {
		for x := 0; x < int(b.Width); x++ {
			code, _ := b.GetTile(x, y)
			switch {
			case int(b.Spawn.X) == x && int(b.Spawn.Y) == y:
				sb.WriteByte('@')
			case code == 0:
				sb.WriteByte('.')
			case code < 10:
				sb.WriteByte(byte('0' + code))
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func cmdSnapshot(w io.Writer, args []string) error {
	defaults := config.Default()

	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(w)
	width := fs.Int("w", 320, "Frame width in pixels")
	height := fs.Int("h", 200, "Frame height in pixels")
	scale := fs.Int("scale", 1, "Integer upscale factor")
	rays := fs.Int("rays", 0, "Number of rays (default: frame width)")
	fov := fs.Float64("fov", defaults.Viewer.FOVDegrees, "Field of view in degrees")
	caption := fs.Bool("caption", true, "Print board name and position on the image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("%w: boardtool snapshot [flags] <board> <out.png>", errUsage)
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", *width, *height)
	}

	b, err := formats.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	vc := defaults.Viewer
	vc.FOVDegrees = *fov
	vc.Rays = *rays
	if vc.Rays <= 0 {
		vc.Rays = *width
	}

	s, err := scene.New(b, vc, palette.Default())
	if err != nil {
		return err
	}

	var f view.Frame
	if err := s.Compose(&f, *width, *height); err != nil {
		return err
	}

	img := view.Scale(f.Image(), *scale)
	if *caption {
		view.Caption(img, fmt.Sprintf("%s %s", b.Name, s.Viewer.Position))
	}

	out := fs.Arg(1)
	if err := view.SavePNG(img, out); err != nil {
		return err
	}

	sum := s.Viewer.Summary()
	fmt.Fprintf(w, "Wrote %s (%dx%d, %d rays, %d open)\n", out, img.Bounds().Dx(), img.Bounds().Dy(), vc.Rays, sum.Open)
	return nil
}
