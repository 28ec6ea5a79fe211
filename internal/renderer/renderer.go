// Package renderer draws single-page certificate PDFs.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/sunthewhat/certificate-automation/type/shared"
)

const (
	defaultTitle  = "Certificate of Completion"
	defaultIssuer = "Certificate Automation"
	qrImageName   = "verify-qr"
	qrSizeMM      = 32.0
	utf8Family    = "certificate-utf8"
)

type Certificate struct {
	ID     string
	Name   string
	Course string
	// Date is already formatted for display and may be empty.
	Date string
}

type Renderer struct {
	title     string
	issuer    string
	verifyURL string
	signer    *Signer
	// font is a TrueType font used for every style when set.
	font []byte
}

func New(cfg shared.RendererConfig, signer *Signer) *Renderer {
	r := &Renderer{
		title:     cfg.Title,
		issuer:    cfg.Issuer,
		verifyURL: cfg.VerifyURL,
		signer:    signer,
	}
	if r.title == "" {
		r.title = defaultTitle
	}
	if r.issuer == "" {
		r.issuer = defaultIssuer
	}
	return r
}

// LoadFont reads a TrueType font and renders all text with it, so names
// outside the cp1252 range (Thai, CJK, ...) keep their glyphs.
func (r *Renderer) LoadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file: %w", err)
	}
	if !isTrueType(data) {
		return fmt.Errorf("font file %s is not a TrueType font", path)
	}
	r.font = data
	return nil
}

func isTrueType(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	magic := string(data[:4])
	return magic == "\x00\x01\x00\x00" || magic == "true"
}

// unsupportedRunes lists the runes of text that tr cannot map to the
// single-byte code page of the core fonts.
func unsupportedRunes(tr func(string) string, text string) []rune {
	var out []rune
	for _, ch := range text {
		if ch < 0x80 {
			continue
		}
		if tr(string(ch)) == "." {
			out = append(out, ch)
		}
	}
	return out
}

func (r *Renderer) Render(ctx context.Context, cert Certificate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")

	tr := func(s string) string { return s }
	family := func(core string) string { return utf8Family }
	if r.font != nil {
		for _, style := range []string{"", "B", "I", "BI"} {
			pdf.AddUTF8FontFromBytes(utf8Family, style, r.font)
		}
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
		family = func(core string) string { return core }
		for _, field := range []string{cert.Name, cert.Course, r.title, r.issuer} {
			if bad := unsupportedRunes(tr, field); len(bad) > 0 {
				slog.Warn("Renderer text has characters outside cp1252, configure renderer.font_file",
					"cert_id", cert.ID, "text", field, "unsupported", string(bad))
			}
		}
	}

	pdf.SetTitle(tr(r.title), false)
	pdf.SetAuthor(tr(r.issuer), false)
	pdf.SetSubject(cert.ID, false)
	pdf.SetCreator("certificate-automation", false)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetDrawColor(70, 70, 70)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageWidth-20, pageHeight-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(14, 14, pageWidth-28, pageHeight-28, "D")

	centered := func(core string, style string, size float64, height float64, text string) {
		pdf.SetFont(family(core), style, size)
		pdf.CellFormat(pageWidth, height, tr(text), "", 1, "C", false, 0, "")
	}

	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(0, 38)
	centered("Helvetica", "B", 34, 18, r.title)
	pdf.Ln(6)
	centered("Helvetica", "", 16, 10, "This certifies that")
	pdf.Ln(2)
	centered("Times", "BI", 32, 16, cert.Name)
	pdf.Ln(2)
	centered("Helvetica", "", 16, 10, "has successfully completed")
	pdf.Ln(2)
	centered("Helvetica", "B", 22, 12, cert.Course)
	if cert.Date != "" {
		pdf.Ln(2)
		centered("Helvetica", "", 14, 10, "on "+cert.Date)
	}

	pdf.SetXY(24, pageHeight-40)
	pdf.SetFont(family("Helvetica"), "I", 12)
	pdf.CellFormat(120, 8, tr(r.issuer), "T", 1, "L", false, 0, "")
	pdf.SetX(24)
	pdf.SetFont(family("Helvetica"), "", 8)
	pdf.CellFormat(120, 5, "Certificate ID: "+cert.ID, "", 1, "L", false, 0, "")

	if r.verifyURL != "" {
		png, err := qrcode.Encode(r.verifyURL+cert.ID, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
		pdf.ImageOptions(qrImageName, pageWidth-24-qrSizeMM, pageHeight-24-qrSizeMM, qrSizeMM, qrSizeMM, false, opts, 0, "")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to render certificate: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	if !r.signer.IsEnabled() {
		return buf.Bytes(), nil
	}
	return r.signer.SignPDF(buf.Bytes(), cert.ID)
}
