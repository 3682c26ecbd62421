package compositor_test

import (
	"fmt"
	"image"

	"github.com/matzehuels/podium/pkg/geometry"
	"github.com/matzehuels/podium/pkg/render/compositor"
)

func ExamplePlanFor() {
	// A beamer page with notes on the right, shown on a 1080p projector.
	page := geometry.Size{W: 2048, H: 768}
	target := compositor.Target{Size: image.Pt(1920, 1080), Scale: 1}

	plan, _ := compositor.PlanFor(0, page, target, true)
	fmt.Println("visible", plan.Visible)
	fmt.Println("raster", plan.Raster)
	// Output:
	// visible (1440,1080)
	// raster (2880,1080)
}
