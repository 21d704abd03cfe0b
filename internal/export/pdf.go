// Package export renders acknowledgment submissions as downloadable PDFs.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// ContentTypePDF is the media type of rendered documents.
const ContentTypePDF = "application/pdf"

// DefaultHeaderTitle heads every exported document unless overridden.
const DefaultHeaderTitle = "YSOD Digital Acknowledgment Form Hub"

const (
	coreFont    = "Helvetica"
	unicodeFont = "AckUnicode"

	marginX       = 20.0
	bottomMargin  = 20.0
	topAfterBreak = 20.0
	fieldStep     = 15.0
	lineHeight    = 8.0
	ruleGap       = 5.0
	sectionGap    = 30.0
	generatedFmt  = "1/2/2006, 3:04:05 PM"
)

// Document is a rendered export.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Options configures a PDFRenderer.
type Options struct {
	HeaderTitle string
	// FontPath points to a TrueType font used for all text. When empty the
	// core Helvetica font is used and text is translated to cp1252.
	FontPath           string
	DisableCompression bool
	Now                func() time.Time
}

// PDFRenderer lays out one submission per document.
type PDFRenderer struct {
	headerTitle string
	fontPath    string
	compress    bool
	now         func() time.Time
}

// NewPDFRenderer validates opts and builds a renderer.
func NewPDFRenderer(opts Options) (*PDFRenderer, error) {
	if opts.FontPath != "" {
		if _, err := os.Stat(opts.FontPath); err != nil {
			return nil, fmt.Errorf("export font: %w", err)
		}
	}
	title := strings.TrimSpace(opts.HeaderTitle)
	if title == "" {
		title = DefaultHeaderTitle
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &PDFRenderer{
		headerTitle: title,
		fontPath:    opts.FontPath,
		compress:    !opts.DisableCompression,
		now:         now,
	}, nil
}

// Filename derives the download name from a request number.
func Filename(requestNumber string) string {
	var b strings.Builder
	for _, r := range requestNumber {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "submission"
	}
	return "acknowledgment_" + name + ".pdf"
}

// Render produces the PDF for sub. ackType may be nil when the type has been
// removed from the catalog since submission.
func (r *PDFRenderer) Render(sub domain.Submission, ackType *domain.AcknowledgmentType) (*Document, error) {
	generatedAt := r.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(r.headerTitle, true)
	pdf.SetAutoPageBreak(false, bottomMargin)

	p := &page{pdf: pdf, family: coreFont, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.fontPath != "" {
		pdf.AddUTF8Font(unicodeFont, "", r.fontPath)
		pdf.AddUTF8Font(unicodeFont, "B", r.fontPath)
		pdf.AddUTF8Font(unicodeFont, "I", r.fontPath)
		p.family = unicodeFont
		p.utf8 = true
		p.tr = func(s string) string { return s }
	}

	pdf.AddPage()
	p.width, p.height = pdf.GetPageSize()

	p.font("B", 20)
	p.centered(30, r.headerTitle)
	p.font("B", 16)
	p.centered(50, "Acknowledgment Submission")

	p.font("", 12)
	p.y = 80
	status := "Not Acknowledged"
	if sub.Acknowledged {
		status = "Acknowledged"
	}
	fields := []string{
		"Type: " + sub.TypeTitle,
		"Request No: " + sub.RequestNumber,
		"Employee Name: " + sub.EmployeeName,
		"Date: " + sub.SubmittedAtDate,
		"Status: " + status,
	}
	for i, field := range fields {
		if i > 0 {
			p.advance(fieldStep)
		}
		p.line(field)
	}

	if ackType != nil && ackType.Content != nil {
		r.renderContent(p, ackType.Content)
	}

	p.advance(sectionGap)
	p.font("I", 10)
	p.line("Generated on: " + generatedAt.Format(generatedFmt))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &Document{
		Filename:    Filename(sub.RequestNumber),
		ContentType: ContentTypePDF,
		Body:        buf.Bytes(),
	}, nil
}

// OmittedTextNote replaces Arabic paragraphs when only the core font is available.
const OmittedTextNote = "Arabic text omitted: no Unicode export font configured."

func (r *PDFRenderer) renderContent(p *page, content *domain.TypeContent) {
	omitted := false
	keep := func(text string) bool {
		if text == "" {
			return false
		}
		if !p.utf8 && containsArabic(text) {
			omitted = true
			return false
		}
		return true
	}

	var paragraphs []string
	if keep(content.PrimaryStatement) {
		paragraphs = append(paragraphs, content.PrimaryStatement)
	}
	if content.Subtitle != nil && keep(*content.Subtitle) {
		paragraphs = append(paragraphs, *content.Subtitle)
	}
	if content.BodyText != nil && keep(*content.BodyText) {
		paragraphs = append(paragraphs, *content.BodyText)
	}
	var rules []string
	for i, rule := range content.NumberedRules {
		if keep(rule) {
			rules = append(rules, strconv.Itoa(i+1)+". "+rule)
		}
	}
	if len(paragraphs) == 0 && len(rules) == 0 && !omitted {
		return
	}

	p.advance(sectionGap)
	p.font("B", 12)
	p.line("Content:")
	p.advance(fieldStep)
	p.font("", 12)
	for _, text := range paragraphs {
		p.block(text)
	}

	if len(rules) > 0 {
		p.advance(10)
		p.font("B", 12)
		p.line("Rules/Sections:")
		p.advance(fieldStep)
		p.font("", 12)
		for _, rule := range rules {
			p.block(rule)
			p.advance(ruleGap)
		}
	}

	if omitted {
		p.font("I", 10)
		p.block(OmittedTextNote)
	}
}

// page tracks the write cursor of a document.
type page struct {
	pdf    *fpdf.Fpdf
	family string
	utf8   bool
	tr     func(string) string
	width  float64
	height float64
	y      float64
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont(p.family, style, size)
}

func (p *page) centered(y float64, text string) {
	text = p.tr(text)
	x := (p.width - p.pdf.GetStringWidth(text)) / 2
	p.pdf.Text(x, y, text)
}

func (p *page) advance(dy float64) {
	p.y += dy
	if p.y > p.height-bottomMargin {
		p.pdf.AddPage()
		p.y = topAfterBreak
	}
}

// line writes a single line at the cursor without moving it.
func (p *page) line(text string) {
	if p.utf8 && containsArabic(text) {
		p.pdf.RTL()
		p.pdf.Text(p.width-marginX, p.y, text)
		p.pdf.LTR()
		return
	}
	p.pdf.Text(marginX, p.y, p.tr(text))
}

// block writes wrapped text and leaves the cursor below it.
func (p *page) block(text string) {
	lines := p.wrap(text, p.width-2*marginX)
	for i, l := range lines {
		if i > 0 {
			p.advance(lineHeight)
		}
		p.line(l)
	}
	p.advance(lineHeight)
}

// wrap breaks text into lines no wider than maxWidth, keeping explicit
// newlines. A single word wider than maxWidth gets its own line.
func (p *page) wrap(text string, maxWidth float64) []string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if p.pdf.GetStringWidth(p.tr(candidate)) > maxWidth {
				out = append(out, current)
				current = word
				continue
			}
			current = candidate
		}
		out = append(out, current)
	}
	return out
}

func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
