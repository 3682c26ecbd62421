package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	perrors "github.com/matzehuels/podium/pkg/errors"
)

// DefaultRenderer is the Poppler tool used to rasterize PDF pages.
const DefaultRenderer = "pdftoppm"

// poppler shells out to pdftoppm for one page at a time.
type poppler struct {
	bin string
}

func newPoppler(bin string) (*poppler, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeRasterizerUnavailable, err,
			"PDF rendering requires poppler. Install with:\n  macOS:  brew install poppler\n  Linux:  apt install poppler-utils")
	}
	return &poppler{bin: path}, nil
}

// render writes page (0-based) of the PDF at path as a PNG scaled to px and
// returns the encoded bytes.
func (p *poppler) render(ctx context.Context, path string, page int, px image.Point) ([]byte, error) {
	dir, err := os.MkdirTemp("", "podium-page-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	n := strconv.Itoa(page + 1)
	root := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, p.bin,
		"-f", n, "-l", n,
		"-png", "-singlefile",
		"-scale-to-x", strconv.Itoa(px.X),
		"-scale-to-y", strconv.Itoa(px.Y),
		path, root)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("pdftoppm: %v: %s", err, bytes.TrimSpace(errBuf.Bytes()))
	}
	return os.ReadFile(root + ".png")
}

func decodePNG(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
