package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// PDFFilename is the download name of the exported menu
const PDFFilename = "menu.pdf"

// Layout constants, in millimetres on an A4 portrait page
const (
	pageMargin       = 20.0
	pageTop          = 20.0
	titleAdvance     = 15.0
	bottomReserve    = 20.0 // no content baseline below pageHeight-bottomReserve
	headerAdvance    = 8.0
	ruleAdvance      = 10.0
	nameAdvance      = 6.0
	descLineAdvance  = 5.0
	dietaryAdvance   = 5.0
	itemSpacing      = 8.0
	categorySpacing  = 5.0
	footerFromBottom = 10.0
	fontFamily       = "Helvetica"
	nbPagesAlias     = "{nb}"
)

type rgb struct{ r, g, b int }

var (
	colorBlack   = rgb{0, 0, 0}
	colorSaffron = rgb{200, 90, 84}
	colorMuted   = rgb{100, 100, 100}
	colorDietary = rgb{40, 167, 69}
	colorFooter  = rgb{150, 150, 150}
)

// Document is a rendered menu PDF
type Document struct {
	Pages   int
	Footers []string
	Bytes   []byte
}

// PDFRenderer lays out a menu view as a printable, paginated PDF
type PDFRenderer struct {
	// Title is printed centered on the first page
	Title string
	// Currency prefixes every price
	Currency string
	// Compress toggles stream compression; disabled output is easier to inspect
	Compress bool
}

// NewPDFRenderer returns a renderer with the default title and currency
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Title: "Menu", Currency: "AED", Compress: true}
}

// Render lays the view out page by page and stamps every page with a "Page i of N" footer.
// Every block is measured before it is drawn and moved to a new page when it would cross the
// bottom reserve, so an item is split only when it is taller than a whole page. A category
// header is kept together with its first item. An empty view fails with ErrEmptyMenu before any
// document is created.
func (r *PDFRenderer) Render(view menu.View) (*Document, error) {
	if view.Empty() {
		return nil, ErrEmptyMenu
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pageMargin, pageTop, pageMargin)
	pdf.AliasNbPages(nbPagesAlias)

	pageWidth, pageHeight := pdf.GetPageSize()
	l := &layout{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  pageWidth,
		bottom: pageHeight - bottomReserve,
	}

	// The total page count is only known once layout is done; the alias is
	// substituted into every footer when the document is written out.
	pdf.SetFooterFunc(func() {
		setStyle(pdf, "", 8, colorFooter)
		footer := fmt.Sprintf("Page %d of %s", pdf.PageNo(), nbPagesAlias)
		pdf.Text((pageWidth-pdf.GetStringWidth(footer))/2, pageHeight-footerFromBottom, footer)
	})

	l.newPage()

	setStyle(pdf, "B", 24, colorBlack)
	title := l.tr(r.Title)
	pdf.Text((pageWidth-pdf.GetStringWidth(title))/2, l.y, title)
	l.y += titleAdvance

	for _, section := range view.Sections {
		blocks := make([]itemBlock, 0, len(section.Items))
		for _, item := range section.Items {
			blocks = append(blocks, l.measure(item))
		}

		l.reserve(headerAdvance + ruleAdvance + blocks[0].height)

		setStyle(pdf, "B", 16, colorSaffron)
		pdf.Text(pageMargin, l.y, l.tr(string(section.Category)))
		l.y += headerAdvance

		pdf.SetDrawColor(colorSaffron.r, colorSaffron.g, colorSaffron.b)
		pdf.SetLineWidth(0.5)
		pdf.Line(pageMargin, l.y, pageWidth-pageMargin, l.y)
		l.y += ruleAdvance

		for _, block := range blocks {
			l.reserve(block.height)
			r.renderItem(l, block)
		}

		l.y += categorySpacing
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: layout: %w", ErrRenderFailed, err)
	}

	pages := pdf.PageCount()
	footers := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		footers = append(footers, fmt.Sprintf("Page %d of %d", i, pages))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: write: %w", ErrRenderFailed, err)
	}

	log.WithFields(logrus.Fields{
		"sections": len(view.Sections),
		"items":    view.Len(),
		"pages":    pages,
		"bytes":    buf.Len(),
	}).Debug("Rendered menu pdf")

	return &Document{Pages: pages, Footers: footers, Bytes: buf.Bytes()}, nil
}

// layout tracks the baseline of the next line on the current page
type layout struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	y      float64
	width  float64
	bottom float64
}

func (l *layout) newPage() {
	l.pdf.AddPage()
	l.y = pageTop
}

// reserve starts a new page unless a block of height fits below y.
// A block taller than a page is started at the top of the current page when already there.
func (l *layout) reserve(height float64) {
	if l.y+height > l.bottom && l.y > pageTop {
		l.newPage()
	}
}

// line moves to a new page when the baseline y would cross the bottom reserve
func (l *layout) line() {
	if l.y > l.bottom {
		l.newPage()
	}
}

// itemBlock is a dish with its description already wrapped to the page width
type itemBlock struct {
	item   models.MenuItem
	desc   []string
	tags   string
	height float64
}

func (l *layout) measure(item models.MenuItem) itemBlock {
	block := itemBlock{item: item, height: nameAdvance}
	if item.Description != "" {
		setStyle(l.pdf, "", 10, colorMuted)
		block.desc = l.pdf.SplitText(l.tr(item.Description), l.width-2*pageMargin)
		block.height += float64(len(block.desc)) * descLineAdvance
	}
	if len(item.DietaryInfo) > 0 {
		tags := make([]string, 0, len(item.DietaryInfo))
		for _, tag := range item.DietaryInfo {
			tags = append(tags, string(tag))
		}
		block.tags = l.tr(strings.Join(tags, ", "))
		block.height += dietaryAdvance
	}
	return block
}

// renderItem draws one measured dish starting at the current baseline
func (r *PDFRenderer) renderItem(l *layout, block itemBlock) {
	pdf := l.pdf

	setStyle(pdf, "B", 12, colorBlack)
	pdf.Text(pageMargin, l.y, l.tr(block.item.Name))
	if price := r.formatPrice(block.item); price != "" {
		pdf.Text(l.width-pageMargin-pdf.GetStringWidth(price), l.y, price)
	}
	l.y += nameAdvance

	for _, text := range block.desc {
		l.line()
		setStyle(pdf, "", 10, colorMuted)
		pdf.Text(pageMargin, l.y, text)
		l.y += descLineAdvance
	}

	if block.tags != "" {
		l.line()
		setStyle(pdf, "I", 8, colorDietary)
		pdf.Text(pageMargin, l.y, block.tags)
		l.y += dietaryAdvance
	}

	l.y += itemSpacing
}

func (r *PDFRenderer) formatPrice(item models.MenuItem) string {
	if !item.Price.Valid {
		return ""
	}
	return r.Currency + " " + item.Price.Decimal.StringFixed(2)
}

func setStyle(pdf *fpdf.Fpdf, style string, size float64, c rgb) {
	pdf.SetFont(fontFamily, style, size)
	pdf.SetTextColor(c.r, c.g, c.b)
}
