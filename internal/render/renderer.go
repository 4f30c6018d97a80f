package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	realfpdi "github.com/phpdave11/gofpdi"

	"github.com/certavo/certavo-backend/internal/apperrors"
)

// Params describes a single certificate render: the stored base asset, the
// text to overlay, its top-left-origin position in points (y increases
// downward), and the resolved font file.
type Params struct {
	AssetPath string
	Text      string
	X         float64
	Y         float64
	FontSize  float64
	FontPath  string
}

// Renderer produces a single-page PDF from a raster or vector base asset
// with the text overlaid in black at the requested position.
type Renderer struct{}

// Render dispatches on the asset extension. Raster images are painted
// full-bleed onto a page of identical point size; existing PDFs have the
// overlay composited on top of their first page.
func (Renderer) Render(p Params) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(p.AssetPath))
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return renderRaster(p)
	case ".pdf":
		return renderVector(p)
	default:
		return nil, apperrors.NewUnsupportedFormat(ext)
	}
}

// Baseline converts a top-left-origin y coordinate into the text baseline
// used on the canvas. Callers position the top of the text; gofpdf draws
// from the baseline, one font size below. On a bottom-left-origin canvas
// the same point is page_height - y - font_size; both paths share this
// helper so raster and vector output place text identically.
func Baseline(y, fontSize float64) float64 {
	return y + fontSize
}

func renderRaster(p Params) ([]byte, error) {
	f, err := os.Open(p.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("open certificate asset: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode certificate image: %w", err)
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	pdf := newPage(w, h)
	pdf.ImageOptions(p.AssetPath, 0, 0, w, h, false, gofpdf.ImageOptions{}, 0, "")
	drawText(pdf, p)
	return output(pdf)
}

func renderVector(p Params) (out []byte, err error) {
	// gofpdi signals parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import certificate pdf %s: %v", p.AssetPath, r)
		}
	}()

	w, h, err := pdfPageSize(p.AssetPath)
	if err != nil {
		return nil, err
	}

	pdf := newPage(w, h)
	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(pdf, p.AssetPath, 1, "/MediaBox")
	imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	// Drawn after the imported page, so the text sits on top of the base.
	drawText(pdf, p)
	return output(pdf)
}

// pdfPageSize reads the /MediaBox dimensions of the first page, in points.
func pdfPageSize(path string) (w, h float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf page size of %s: %v", path, r)
		}
	}()

	imp := realfpdi.NewImporter()
	imp.SetSourceFile(path)
	imp.ImportPage(1, "/MediaBox")
	box, ok := imp.GetPageSizes()[1]["/MediaBox"]
	if !ok {
		return 0, 0, fmt.Errorf("pdf %s has no /MediaBox on page 1", path)
	}
	return box["w"], box["h"], nil
}

func newPage(w, h float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

func drawText(pdf *gofpdf.Fpdf, p Params) {
	family := strings.TrimSuffix(filepath.Base(p.FontPath), filepath.Ext(p.FontPath))
	pdf.AddUTF8Font(family, "", p.FontPath)
	pdf.SetFont(family, "", p.FontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(p.X, Baseline(p.Y, p.FontSize), p.Text)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
