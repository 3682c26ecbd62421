package compositor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// fakeDoc paints the left half of every page red and the right half blue.
type fakeDoc struct {
	status  document.Status
	sizes   []geometry.Size
	calls   []image.Point
	failing bool
}

func (d *fakeDoc) Status() document.Status { return d.status }
func (d *fakeDoc) PageCount() int          { return len(d.sizes) }

func (d *fakeDoc) PageSize(page int) (geometry.Size, error) {
	return d.sizes[page], nil
}

func (d *fakeDoc) Render(_ context.Context, page int, px image.Point) (*image.RGBA, error) {
	if d.failing {
		return nil, errors.New("renderer crashed")
	}
	d.calls = append(d.calls, px)
	img := image.NewRGBA(image.Rect(0, 0, px.X, px.Y))
	for y := 0; y < px.Y; y++ {
		for x := 0; x < px.X; x++ {
			if x < px.X/2 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}
	return img, nil
}

func newFakeDoc(n int, size geometry.Size) *fakeDoc {
	d := &fakeDoc{status: document.StatusReady}
	for i := 0; i < n; i++ {
		d.sizes = append(d.sizes, size)
	}
	return d
}

func TestSplitCropOddWidth(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 201, 10))
	left, right := SplitCrop(img)
	if left.Bounds().Dx() != 100 || right.Bounds().Dx() != 101 {
		t.Errorf("widths = %d, %d; want 100, 101", left.Bounds().Dx(), right.Bounds().Dx())
	}
	if left.Bounds().Dx()+right.Bounds().Dx() != 201 {
		t.Error("halves do not add up to the original width")
	}
	if left.Bounds().Dy() != 10 || right.Bounds().Dy() != 10 {
		t.Error("crop changed the height")
	}
}

func TestSplitCropCopies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	left, _ := SplitCrop(img)
	left.SetRGBA(0, 0, red)
	if img.RGBAAt(0, 0) == red {
		t.Error("SplitCrop result aliases the source image")
	}
}

func TestPlanForAspect(t *testing.T) {
	pages := []geometry.Size{{W: 1024, H: 768}, {W: 2048, H: 768}, {W: 595, H: 842}}
	targets := []Target{
		{Size: image.Pt(1920, 1080), Scale: 1},
		{Size: image.Pt(800, 600), Scale: 2},
		{Size: image.Pt(333, 777), Scale: 1.25},
	}
	for _, page := range pages {
		for _, tgt := range targets {
			for _, split := range []bool{false, true} {
				plan, err := PlanFor(0, page, tgt, split)
				if err != nil {
					t.Fatal(err)
				}
				eff := page
				if split {
					eff = page.HalfWidth()
				}
				// Visible height from the width must match within a pixel.
				wantH := float64(plan.Visible.X) * eff.H / eff.W
				if math.Abs(wantH-float64(plan.Visible.Y)) > 1 {
					t.Errorf("page %v target %v split %v: visible %v breaks aspect", page, tgt, split, plan.Visible)
				}
				phys := tgt.Physical()
				if plan.Visible.X > phys.X || plan.Visible.Y > phys.Y {
					t.Errorf("visible %v overflows %v", plan.Visible, phys)
				}
				if split && plan.Raster.X != 2*plan.Visible.X {
					t.Errorf("split raster %v is not twice visible %v", plan.Raster, plan.Visible)
				}
				if !split && plan.Raster != plan.Visible {
					t.Errorf("raster %v != visible %v", plan.Raster, plan.Visible)
				}
			}
		}
	}
}

func TestPlanForEmptyTargetUsesSafeSize(t *testing.T) {
	plan, err := PlanFor(0, geometry.Size{W: 100, H: 100}, Target{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Visible != SafeSize {
		t.Errorf("Visible = %v, want %v", plan.Visible, SafeSize)
	}
}

func TestPlanForZeroSize(t *testing.T) {
	_, err := PlanFor(0, geometry.Size{W: 0, H: 100}, Target{Size: image.Pt(10, 10)}, false)
	if !errors.Is(err, ErrZeroSize) {
		t.Errorf("error = %v, want ErrZeroSize", err)
	}
}

func TestRenderSplit(t *testing.T) {
	doc := newFakeDoc(3, geometry.Size{W: 2048, H: 768})
	c := New(doc, nil)
	c.Audience.Resize(Target{Size: image.Pt(1920, 1080), Scale: 1})
	c.Console.Resize(Target{Size: image.Pt(801, 600), Scale: 1})

	res, err := c.Render(context.Background(), Request{Page: 0, Split: true})
	if err != nil {
		t.Fatal(err)
	}

	aud := res.Audience.Image.Bounds().Size()
	if math.Abs(float64(aud.X)*768/1024-float64(aud.Y)) > 1 {
		t.Errorf("audience %v is not 4:3", aud)
	}
	if res.Audience.Image.RGBAAt(0, 0) != red || res.Audience.Image.RGBAAt(aud.X-1, aud.Y-1) != red {
		t.Error("audience image contains notes pixels")
	}
	if res.Notes == nil {
		t.Fatal("split render produced no notes image")
	}
	nb := res.Notes.Image.Bounds()
	if res.Notes.Image.RGBAAt(0, 0) != blue || res.Notes.Image.RGBAAt(nb.Dx()-1, 0) != blue {
		t.Error("notes image contains slide pixels")
	}
	if res.Console.Image.Bounds().Dx()+nb.Dx() != doc.calls[1].X {
		t.Error("console and notes halves do not cover the raster")
	}
}

func TestRenderReusesUnchangedSurfaces(t *testing.T) {
	doc := newFakeDoc(3, geometry.Size{W: 1024, H: 768})
	c := New(doc, nil)
	ctx := context.Background()

	first, err := c.Render(ctx, Request{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.calls) != 3 {
		t.Fatalf("first render made %d rasterizer calls, want 3", len(doc.calls))
	}

	second, err := c.Render(ctx, Request{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.calls) != 3 {
		t.Errorf("unchanged render made %d calls", len(doc.calls)-3)
	}
	if second.Audience != first.Audience {
		t.Error("audience slide was replaced without a change")
	}

	c.Console.Resize(Target{Size: image.Pt(640, 480), Scale: 1})
	third, err := c.Render(ctx, Request{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.calls) != 4 {
		t.Errorf("console resize made %d calls, want 1", len(doc.calls)-3)
	}
	if third.Console == first.Console {
		t.Error("console slide not replaced after resize")
	}
	if first.Console.Image.Bounds().Size() == third.Console.Image.Bounds().Size() {
		t.Error("old slide was mutated or new slide has the old size")
	}

	c.Console.Invalidate()
	if _, err := c.Render(ctx, Request{Page: 1}); err != nil {
		t.Fatal(err)
	}
	if len(doc.calls) != 5 {
		t.Errorf("Invalidate did not force a render")
	}
}

func TestRenderNotReadyKeepsPrevious(t *testing.T) {
	doc := newFakeDoc(2, geometry.Size{W: 4, H: 3})
	c := New(doc, nil)
	ctx := context.Background()

	prev, err := c.Render(ctx, Request{Page: 0})
	if err != nil {
		t.Fatal(err)
	}
	calls := len(doc.calls)

	doc.status = document.StatusLoading
	got, err := c.Render(ctx, Request{Page: 1})
	if err != nil {
		t.Fatalf("Render while loading = %v, want nil", err)
	}
	if got.Audience != prev.Audience || len(doc.calls) != calls {
		t.Error("Render while loading changed surfaces")
	}
}

func TestRenderLastPageHasNoNext(t *testing.T) {
	doc := newFakeDoc(2, geometry.Size{W: 4, H: 3})
	c := New(doc, nil)

	res, err := c.Render(context.Background(), Request{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !res.NextEnd || res.Next != nil {
		t.Errorf("last page: NextEnd=%v Next=%v", res.NextEnd, res.Next)
	}

	res, _ = c.Render(context.Background(), Request{Page: 0})
	if res.NextEnd || res.Next == nil || res.Next.Page != 1 {
		t.Errorf("first page next preview = %+v", res.Next)
	}
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()

	c := New(newFakeDoc(1, geometry.Size{}), nil)
	if _, err := c.Render(ctx, Request{Page: 0}); !errors.Is(err, ErrZeroSize) {
		t.Errorf("zero size page error = %v", err)
	}

	c = New(newFakeDoc(1, geometry.Size{W: 4, H: 3}), nil)
	if _, err := c.Render(ctx, Request{Page: 5}); !perrors.Is(err, perrors.ErrCodeInvalidPage) {
		t.Errorf("out of range error = %v", err)
	}

	doc := newFakeDoc(1, geometry.Size{W: 4, H: 3})
	c = New(doc, nil)
	prev, _ := c.Render(ctx, Request{Page: 0})
	doc.failing = true
	c.Audience.Resize(Target{Size: image.Pt(50, 50), Scale: 1})
	got, err := c.Render(ctx, Request{Page: 0})
	if err == nil {
		t.Fatal("rasterizer failure not reported")
	}
	if got.Audience != prev.Audience {
		t.Error("failed render did not keep the previous slide")
	}
}

func TestSetDocumentDropsSlides(t *testing.T) {
	c := New(newFakeDoc(1, geometry.Size{W: 4, H: 3}), nil)
	if _, err := c.Render(context.Background(), Request{Page: 0}); err != nil {
		t.Fatal(err)
	}
	c.SetDocument(newFakeDoc(1, geometry.Size{W: 3, H: 4}))
	if c.Audience.Slide() != nil || c.Last().Audience != nil {
		t.Error("SetDocument kept stale slides")
	}
}

func TestSlideLogicalSize(t *testing.T) {
	s := &Slide{Image: image.NewRGBA(image.Rect(0, 0, 200, 100)), Scale: 2}
	if got := s.LogicalSize(); got != image.Pt(100, 50) {
		t.Errorf("LogicalSize() = %v", got)
	}
	var empty *Slide
	if got := empty.LogicalSize(); got != (image.Point{}) {
		t.Errorf("nil LogicalSize() = %v", got)
	}
}

func TestLetterbox(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 1920, 1080))

	r := Letterbox(dst, src)
	if r != image.Rect(240, 0, 1680, 1080) {
		t.Errorf("Letterbox rect = %v", r)
	}
	if c := dst.RGBAAt(10, 540); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("bar pixel = %v, want black", c)
	}
	if c := dst.RGBAAt(960, 540); c.R < 250 {
		t.Errorf("slide pixel = %v, want white", c)
	}

	if r := Letterbox(dst, nil); !r.Empty() {
		t.Errorf("Letterbox(nil) = %v", r)
	}
}
