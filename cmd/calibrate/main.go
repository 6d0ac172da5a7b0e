// Calibrate prints solved frustum bounds for a sweep of viewer
// positions so a setup can be sanity-checked without a camera.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/portalbox/go-portal/pkg/parallax"
	"github.com/portalbox/go-portal/pkg/portal"
)

func main() {
	preset := flag.String("preset", portal.PresetDefault, "Window preset: default, steady, responsive")
	strength := flag.Float64("strength", 0, "Parallax strength override (0 keeps the preset value)")
	steps := flag.Int("steps", 5, "Sweep positions per axis")
	flag.Parse()

	cfg := portal.WindowPreset(*preset)
	if *strength > 0 {
		cfg.Projection.Strength = *strength
	}
	if err := cfg.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("screen %.3f x %.3f  distance %.2f  near %.2f  strength %.2f\n\n",
		cfg.Screen.HalfWidth*2, cfg.Screen.HalfHeight*2,
		cfg.Projection.EyeDistance, cfg.Projection.NearClip,
		cfg.Projection.Strength)
	fmt.Printf("%8s %8s  %10s %10s %10s %10s  %8s %8s\n",
		"pos.x", "pos.y", "left", "right", "bottom", "top", "eye.x", "eye.y")

	n := *steps
	if n < 2 {
		n = 2
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pos := parallax.Position{
				X: -1 + 2*float64(i)/float64(n-1),
				Y: -1 + 2*float64(j)/float64(n-1),
			}
			f, eye := parallax.Solve(pos, cfg.Screen, cfg.Projection)
			fmt.Printf("%8.2f %8.2f  %10.5f %10.5f %10.5f %10.5f  %8.4f %8.4f\n",
				pos.X, pos.Y, f.Left, f.Right, f.Bottom, f.Top, eye.X, eye.Y)
		}
	}
}
