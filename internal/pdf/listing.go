package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/unicode/norm"

	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/translations"
)

// ListingData contains all data needed to generate listing.pdf
type ListingData struct {
	SourceName string
	Source     string
	Words      []uint32
	Checksum   string // checksum of Source
	Version    string
	Created    time.Time
	Language   string // UI language (e.g. "en", "es"); defaults to "en"
}

// Font sizes
const (
	titleSize   = 18.0
	headingSize = 12.0
	bodySize    = 10.0
	monoSize    = 8.0
	smallMono   = 7.0
)

// QR code size in mm on the PDF page.
const qrSizeMM = 50.0

// MaxQRWords is the largest program whose words are put in the QR code.
const MaxQRWords = 128

// QRContent returns the string encoded in the QR code: the words as
// space-separated 8-digit uppercase hex. Empty if the program is empty or
// longer than MaxQRWords.
func (d ListingData) QRContent() string {
	if len(d.Words) == 0 || len(d.Words) > MaxQRWords {
		return ""
	}
	hex := make([]string, len(d.Words))
	for i, w := range d.Words {
		hex[i] = fmt.Sprintf("%08X", w)
	}
	return strings.Join(hex, " ")
}

// GenerateListing creates the listing.pdf content: the source text, the
// machine code listing in the editor's output format, and a QR code of the
// words.
func GenerateListing(data ListingData) ([]byte, error) {
	lang := data.Language
	if lang == "" {
		lang = "en"
	}
	t := func(key string, args ...any) string {
		return translations.T("listing", lang, key, args...)
	}

	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(20, 20, 20)
	p.SetAutoPageBreak(true, 20)
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.SetFooterFunc(func() {
		p.SetY(-15)
		p.SetFont(fontSans, "", 7)
		p.SetTextColor(180, 180, 180)
		p.CellFormat(0, 10, fmt.Sprintf("%d", p.PageNo()), "", 0, "C", false, 0, "")
		p.SetTextColor(46, 42, 38)
	})

	p.AddPage()
	pageWidth, _ := p.GetPageSize()
	leftMargin, _, rightMargin, _ := p.GetMargins()
	contentWidth := pageWidth - leftMargin - rightMargin

	// Title
	p.SetFont(fontSans, "B", titleSize)
	p.CellFormat(0, 10, tr(t("title")), "", 1, "L", false, 0, "")
	p.SetFont(fontSans, "", bodySize)
	p.CellFormat(0, 5, tr(data.SourceName), "", 1, "L", false, 0, "")
	p.SetTextColor(120, 120, 120)
	p.CellFormat(0, 5, tr(t("generated", data.Created.Format("2006-01-02"))), "", 1, "L", false, 0, "")
	if data.Checksum != "" {
		p.CellFormat(0, 5, tr(t("checksum")+": "+data.Checksum), "", 1, "L", false, 0, "")
	}
	p.SetTextColor(46, 42, 38)
	p.Ln(4)

	// Source
	addSection(p, tr(t("source")))
	p.SetFont(fontMono, "", monoSize)
	p.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(strings.ReplaceAll(data.Source, "\r\n", "\n"), "\n") {
		line = strings.ReplaceAll(norm.NFC.String(line), "\t", "    ")
		p.CellFormat(0, 3.8, tr(line), "", 1, "L", true, 0, "")
	}
	p.Ln(5)

	// Machine code
	addSection(p, tr(t("machine_code")+" - "+t("words", len(data.Words))))
	p.SetFont(fontMono, "", monoSize)
	for i, w := range data.Words {
		p.CellFormat(0, 4, strings.TrimSuffix(editor.FormatWord(i, w), "\n"), "", 1, "L", false, 0, "")
	}
	p.Ln(5)

	// QR code of the words
	if content := data.QRContent(); content != "" {
		qrPNG, err := generateQRPNG(content)
		if err != nil {
			return nil, fmt.Errorf("generating QR code: %w", err)
		}

		_, pageHeight := p.GetPageSize()
		_, _, _, bottomMargin := p.GetMargins()
		if p.GetY()+qrSizeMM+12 > pageHeight-bottomMargin {
			p.AddPage()
		}

		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		p.RegisterImageOptionsReader("qrcode", opts, bytes.NewReader(qrPNG))
		qrX := leftMargin + (contentWidth-qrSizeMM)/2
		p.ImageOptions("qrcode", qrX, p.GetY(), qrSizeMM, qrSizeMM, false, opts, 0, "")
		p.SetY(p.GetY() + qrSizeMM + 3)

		p.SetFont(fontSans, "I", bodySize)
		p.CellFormat(0, 5, tr(t("qr_caption")), "", 1, "C", false, 0, "")
		p.Ln(5)
	}

	// Footer: Metadata
	p.SetFont(fontSans, "B", smallMono)
	p.CellFormat(0, 5, "METADATA", "", 1, "L", false, 0, "")
	p.SetFont(fontMono, "", smallMono)
	p.SetFillColor(245, 245, 245)
	addMeta(p, "riscpad-version", data.Version)
	addMeta(p, "created", data.Created.Format(time.RFC3339))
	addMeta(p, "source", tr(data.SourceName))
	addMeta(p, "words", fmt.Sprintf("%d", len(data.Words)))
	addMeta(p, "checksum-source", data.Checksum)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func addSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(fontSans, "B", headingSize)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, " "+title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func addMeta(pdf *fpdf.Fpdf, key, value string) {
	pdf.CellFormat(0, 4, fmt.Sprintf("%s: %s", key, value), "", 1, "L", true, 0, "")
}

// generateQRPNG creates a QR code PNG image for the given content string.
func generateQRPNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 512)
}
