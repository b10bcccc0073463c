package rasterizer

import (
	"image"
	"labreport-service/internal/app/models"
	"strings"

	"github.com/fogleman/gg"
)

// Page footprint in points, before scaling.
const (
	PageWidth  = 700
	PageHeight = 950

	pagePadding    = 30
	contentWidth   = PageWidth - 2*pagePadding
	qrCodeSize     = 80
	footerTop      = 838
	bodyBottom     = footerTop - 8
	tableRowHeight = 18
)

const (
	colorText       = "#1a1a1a"
	colorDepartment = "#b30000"
	colorRule       = "#000000"
	colorSoftRule   = "#888888"
	colorHeaderRow  = "#f5f5f5"
)

// scaffold is the off-screen surface pages are drawn on. All coordinates
// passed to its helpers are in points; scale converts them to pixels.
type scaffold struct {
	dc    *gg.Context
	scale float64
	fonts *fontSet
}

func newScaffold(scale float64) (*scaffold, error) {
	fonts, err := newFontSet()
	if err != nil {
		return nil, err
	}
	return &scaffold{
		dc:    gg.NewContext(int(PageWidth*scale), int(PageHeight*scale)),
		scale: scale,
		fonts: fonts,
	}, nil
}

func (s *scaffold) release() {
	s.fonts.close()
	s.dc = nil
}

// render draws page and returns the scaffold's backing image. The image is
// overwritten by the next render.
// render reports overflow when part of the body did not fit above the footer.
func (s *scaffold) render(page models.ReportPage, qrCode image.Image) (rendered image.Image, overflow bool) {
	s.dc.SetHexColor("#ffffff")
	s.dc.Clear()

	y := s.drawHeader(page.Header, qrCode)
	overflow = s.drawBody(page.Body, y)
	s.drawFooter(page.Footer)

	return s.dc.Image(), overflow
}

func (s *scaffold) drawHeader(header models.ReportHeader, qrCode image.Image) float64 {
	if qrCode != nil {
		s.dc.DrawImage(qrCode, s.px(PageWidth-pagePadding-qrCodeSize), s.px(pagePadding))
	}

	center := float64(PageWidth) / 2
	y := float64(pagePadding)

	y += 18
	s.text(header.Institution, center, y, styleBold, 18, colorText, 0.5)
	y += 5 + 13
	s.text(strings.ToUpper(header.Department), center, y, styleBold, 13, colorDepartment, 0.5)
	y += 5 + 9
	s.text(header.Motto, center, y, styleItalic, 9, colorText, 0.5)

	y = maxFloat(y+8, pagePadding+qrCodeSize+4)
	s.rule(pagePadding, y, PageWidth-pagePadding, 2, colorRule)

	y += 8
	columnWidth := float64(contentWidth) / 2
	for i, item := range header.Demographics {
		x := float64(pagePadding) + float64(i%2)*columnWidth
		if i%2 == 0 {
			y += 15
		}
		s.labeledText(item.Label+": ", item.Value, x, y, 9, columnWidth-8)
	}

	y += 8
	s.rule(pagePadding, y, PageWidth-pagePadding, 1, colorRule)
	return y + 12
}

// drawBody is clipped to the area above bodyBottom, so sections that run
// long are cut instead of drawn over the footer.
func (s *scaffold) drawBody(sections []models.ReportSection, y float64) (overflow bool) {
	s.dc.DrawRectangle(0, 0, s.pxf(PageWidth), s.pxf(bodyBottom))
	s.dc.Clip()
	defer s.dc.ResetClip()

	for _, section := range sections {
		if y >= bodyBottom {
			return true
		}
		switch section.Kind {
		case models.SectionKindTable:
			y = s.drawTable(section, y)
		case models.SectionKindList:
			y = s.drawList(section, y)
		default:
			y = s.drawResult(section, y)
		}
	}
	return y > bodyBottom
}

func (s *scaffold) drawTable(section models.ReportSection, y float64) float64 {
	titleSize := 11.0
	if len(section.Rows) > 1 {
		titleSize = 12
	}
	y = s.title(section.Title, y, titleSize)
	y += 6

	columns := len(section.Columns)
	if columns == 0 {
		return y
	}
	cellWidth := float64(contentWidth) / float64(columns)

	s.dc.SetHexColor(colorHeaderRow)
	s.dc.DrawRectangle(s.pxf(pagePadding), s.pxf(y), s.pxf(contentWidth), s.pxf(tableRowHeight))
	s.dc.Fill()
	s.tableRow(section.Columns, y, cellWidth, styleBold)
	y += tableRowHeight

	for _, row := range section.Rows {
		s.tableRow(row, y, cellWidth, styleRegular)
		y += tableRowHeight
	}
	return y + 15
}

func (s *scaffold) tableRow(cells []string, y, cellWidth float64, style fontStyle) {
	for i, cell := range cells {
		x := float64(pagePadding) + float64(i)*cellWidth
		s.dc.SetHexColor(colorRule)
		s.dc.SetLineWidth(s.pxf(1))
		s.dc.DrawRectangle(s.pxf(x), s.pxf(y), s.pxf(cellWidth), s.pxf(tableRowHeight))
		s.dc.Stroke()
		s.text(cell, x+5, y+tableRowHeight-5, style, 9, colorText, 0)
	}
}

func (s *scaffold) drawResult(section models.ReportSection, y float64) float64 {
	y = s.title(section.Title, y, 11)
	y += 16
	s.labeledText("Result: ", section.Value, pagePadding, y, 10, contentWidth)
	return y + 15
}

func (s *scaffold) drawList(section models.ReportSection, y float64) float64 {
	y += 5
	y = s.title(section.Title, y, 11)
	y += 4
	for _, item := range section.Items {
		y += 14
		s.text("•", pagePadding+8, y, styleRegular, 9, colorText, 0)
		s.text(item, pagePadding+20, y, styleRegular, 9, colorText, 0)
	}
	return y + 15
}

func (s *scaffold) drawFooter(footer models.ReportFooter) {
	s.rule(pagePadding, footerTop, PageWidth-pagePadding, 2, colorRule)

	if count := len(footer.Signatories); count > 0 {
		slotWidth := float64(contentWidth) / float64(count)
		for i, signatory := range footer.Signatories {
			x := float64(pagePadding) + slotWidth*(float64(i)+0.5)
			y := float64(footerTop + 16)
			s.text(signatory.Name, x, y, styleBold, 9, colorText, 0.5)
			if signatory.Credentials != "" {
				y += 12
				s.text(signatory.Credentials, x, y, styleRegular, 9, colorText, 0.5)
			}
			if signatory.Title != "" {
				y += 12
				s.text(signatory.Title, x, y, styleItalic, 9, colorText, 0.5)
			}
		}
	}

	quarter := float64(contentWidth) / 8
	s.rule(pagePadding+quarter, 890, PageWidth-pagePadding-quarter, 1, colorSoftRule)

	center := float64(PageWidth) / 2
	s.text("Tel: "+footer.Phone, center, 904, styleBold, 9, colorText, 0.5)
	s.text(footer.Address, center, 917, styleRegular, 9, colorText, 0.5)
}

// title draws an underlined heading with its baseline below y and returns the
// new baseline.
func (s *scaffold) title(value string, y, size float64) float64 {
	y += size
	s.text(value, pagePadding, y, styleBold, size, colorText, 0)
	s.dc.SetFontFace(s.fonts.face(styleBold, size*s.scale))
	width, _ := s.dc.MeasureString(value)
	s.rule(pagePadding, y+2, pagePadding+width/s.scale, 1, colorText)
	return y
}

// labeledText draws a bold label followed by a regular value, truncating the
// value to the available width.
func (s *scaffold) labeledText(label, value string, x, y, size, width float64) {
	s.text(label, x, y, styleBold, size, colorText, 0)
	s.dc.SetFontFace(s.fonts.face(styleBold, size*s.scale))
	labelWidth, _ := s.dc.MeasureString(label)
	labelWidth /= s.scale

	s.dc.SetFontFace(s.fonts.face(styleRegular, size*s.scale))
	lines := s.dc.WordWrap(value, s.pxf(width-labelWidth))
	if len(lines) > 1 {
		value = strings.TrimSpace(lines[0]) + "…"
	}
	s.text(value, x+labelWidth, y, styleRegular, size, colorText, 0)
}

// text draws value with its baseline at y. anchor 0 left-aligns at x, 0.5
// centers on x.
func (s *scaffold) text(value string, x, y float64, style fontStyle, size float64, color string, anchor float64) {
	s.dc.SetFontFace(s.fonts.face(style, size*s.scale))
	s.dc.SetHexColor(color)
	s.dc.DrawStringAnchored(value, s.pxf(x), s.pxf(y), anchor, 0)
}

func (s *scaffold) rule(x1, y, x2, width float64, color string) {
	s.dc.SetHexColor(color)
	s.dc.SetLineWidth(s.pxf(width))
	s.dc.DrawLine(s.pxf(x1), s.pxf(y), s.pxf(x2), s.pxf(y))
	s.dc.Stroke()
}

func (s *scaffold) pxf(value float64) float64 {
	return value * s.scale
}

func (s *scaffold) px(value float64) int {
	return int(value * s.scale)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
