// Package imageview loads page images and renders them as terminal cells.
//
// Images are decoded with the standard decoders plus BMP and WebP from
// golang.org/x/image, scaled with x/image/draw and drawn with upper half
// block characters so one cell carries two vertically stacked pixels.
package imageview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/vanderheijden86/ptour/pkg/metrics"
)

// Common errors.
var (
	ErrUnsupportedScheme = errors.New("unsupported image uri scheme")
	ErrNoResources       = errors.New("no resource filesystem configured")
	ErrEmptyURI          = errors.New("empty image uri")
)

// ResourceScheme addresses images inside the Loader's resource filesystem.
const ResourceScheme = "resource"

// Image is a decoded page image.
type Image struct {
	URI    string
	Format string
	img    image.Image
}

// Bounds returns the pixel bounds of the decoded image.
func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Loader resolves image URIs. Relative paths are resolved against BaseDir.
type Loader struct {
	BaseDir   string
	Resources fs.FS
}

// Load opens and decodes the image addressed by uri. Supported forms are
// file:// URIs, plain filesystem paths and resource:// names.
func (l Loader) Load(uri string) (*Image, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrEmptyURI
	}

	rc, err := l.open(uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	defer metrics.Timer(metrics.ImageDecode)()

	img, format, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", uri, err)
	}
	return &Image{URI: uri, Format: format, img: img}, nil
}

func (l Loader) open(uri string) (io.ReadCloser, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (single letter schemes are Windows drive letters)
		return os.Open(l.resolve(uri))
	}

	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case ResourceScheme:
		if l.Resources == nil {
			return nil, ErrNoResources
		}
		name := strings.TrimPrefix(u.Host+u.Path, "/")
		return l.Resources.Open(name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (l Loader) resolve(path string) string {
	if filepath.IsAbs(path) || l.BaseDir == "" {
		return path
	}
	return filepath.Join(l.BaseDir, path)
}

// Decode decodes any registered image format.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Render draws the image into at most cols x rows terminal cells, keeping
// the aspect ratio. Fully transparent cells are left blank.
func (i *Image) Render(cols, rows int, r *lipgloss.Renderer) string {
	if i == nil || i.img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	w, h := fitSize(i.img.Bounds(), cols, rows*2)
	if w == 0 || h == 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), i.img, i.img.Bounds(), xdraw.Over, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := dst.RGBAAt(x, y)
			bottom := color.RGBA{}
			if y+1 < h {
				bottom = dst.RGBAAt(x, y+1)
			}
			b.WriteString(cell(r, top, bottom))
		}
	}
	return b.String()
}

// fitSize scales bounds to fit inside maxW x maxH pixels.
func fitSize(bounds image.Rectangle, maxW, maxH int) (int, int) {
	bw, bh := bounds.Dx(), bounds.Dy()
	if bw <= 0 || bh <= 0 {
		return 0, 0
	}
	w, h := maxW, bh*maxW/bw
	if h > maxH {
		h = maxH
		w = bw * maxH / bh
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

const opaque = 0x80

func cell(r *lipgloss.Renderer, top, bottom color.RGBA) string {
	topVisible := top.A >= opaque
	bottomVisible := bottom.A >= opaque

	switch {
	case topVisible && bottomVisible:
		return r.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render("▀")
	case topVisible:
		return r.NewStyle().Foreground(hex(top)).Render("▀")
	case bottomVisible:
		return r.NewStyle().Foreground(hex(bottom)).Render("▄")
	default:
		return " "
	}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
