package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

// Datas fixas nos metadados mantêm os PDFs idênticos byte a byte entre
// execuções sobre o mesmo dataset.
var pdfEpoch = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

// Substituições para glifos fora do cp1252 das fontes core.
var pdfReplacer = strings.NewReplacer("→", "->", "⁻³", "^-3")

// renderPDF desenha a figura em A4 paisagem e grava o arquivo, substituindo
// qualquer versão anterior.
func renderPDF(spec entity.FigureSpec, path string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	switch spec.Kind {
	case entity.FigureBar:
		vectorBar(pdf, tr, spec)
	case entity.FigureGroupedBar:
		vectorGroupedBar(pdf, tr, spec)
	case entity.FigureLine:
		vectorLine(pdf, tr, spec)
	case entity.FigureSchematic:
		vectorSchematic(pdf, tr, spec)
	case entity.FigureTable:
		vectorTable(pdf, tr, spec)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownFigureKind, spec.Kind)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error writing PDF file: %w", err)
	}
	return nil
}

// pdfPlot mapeia coordenadas de dados para a área de plotagem em milímetros.
type pdfPlot struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	left   float64
	top    float64
	right  float64
	bottom float64
	xMin   float64
	xMax   float64
	yMin   float64
	yMax   float64
}

func newPDFPlot(pdf *gofpdf.Fpdf, tr func(string) string, xMin, xMax, yMax float64) *pdfPlot {
	return &pdfPlot{
		pdf:    pdf,
		tr:     tr,
		left:   30,
		top:    26,
		right:  283,
		bottom: 168,
		xMin:   xMin,
		xMax:   xMax,
		yMin:   0,
		yMax:   yMax,
	}
}

func (p *pdfPlot) t(s string) string {
	return p.tr(pdfReplacer.Replace(s))
}

func (p *pdfPlot) x(v float64) float64 {
	return p.left + (v-p.xMin)/(p.xMax-p.xMin)*(p.right-p.left)
}

func (p *pdfPlot) y(v float64) float64 {
	return p.bottom - (v-p.yMin)/(p.yMax-p.yMin)*(p.bottom-p.top)
}

func (p *pdfPlot) title(text string) {
	p.pdf.SetFont("Arial", "B", 15)
	p.pdf.SetTextColor(40, 40, 40)
	w := p.pdf.GetStringWidth(p.t(text))
	p.pdf.Text((297-w)/2, 16, p.t(text))
}

func (p *pdfPlot) grid(step float64) {
	p.pdf.SetDrawColor(221, 221, 221)
	p.pdf.SetLineWidth(0.25)
	for v := p.yMin + step; v <= p.yMax+step/1e6; v += step {
		py := p.y(v)
		p.pdf.Line(p.left, py, p.right, py)
	}
}

func (p *pdfPlot) yAxis(step float64, label string) {
	p.pdf.SetDrawColor(120, 120, 120)
	p.pdf.SetLineWidth(0.4)
	p.pdf.Line(p.left, p.top, p.left, p.bottom)

	p.pdf.SetFont("Arial", "", 10)
	p.pdf.SetTextColor(40, 40, 40)
	for v := p.yMin; v <= p.yMax+step/1e6; v += step {
		py := p.y(v)
		p.pdf.Line(p.left-1.4, py, p.left, py)
		tick := formatFloatShort(v)
		w := p.pdf.GetStringWidth(tick)
		p.pdf.Text(p.left-2.8-w, py+1.3, tick)
	}

	if label != "" {
		p.pdf.SetFont("Arial", "", 11)
		w := p.pdf.GetStringWidth(p.t(label))
		mid := (p.top + p.bottom) / 2
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(90, 12, mid+w/2)
		p.pdf.Text(12, mid+w/2, p.t(label))
		p.pdf.TransformEnd()
	}
}

// xCategoryAxis desenha a linha base com um rótulo por posição inteira de x.
func (p *pdfPlot) xCategoryAxis(categories []string, label string) {
	p.pdf.SetDrawColor(120, 120, 120)
	p.pdf.SetLineWidth(0.4)
	p.pdf.Line(p.left, p.bottom, p.right, p.bottom)

	p.pdf.SetFont("Arial", "", 11)
	p.pdf.SetTextColor(40, 40, 40)
	for i, cat := range categories {
		cx := p.x(float64(i))
		p.pdf.Line(cx, p.bottom, cx, p.bottom+1.4)
		w := p.pdf.GetStringWidth(p.t(cat))
		p.pdf.Text(cx-w/2, p.bottom+6.5, p.t(cat))
	}

	if label != "" {
		p.pdf.SetFont("Arial", "", 11.5)
		w := p.pdf.GetStringWidth(p.t(label))
		p.pdf.Text((p.left+p.right)/2-w/2, p.bottom+14, p.t(label))
	}
}

func (p *pdfPlot) refLine(line entity.ReferenceLine) {
	r, g, b := hexToRGB(line.Color)
	p.pdf.SetDrawColor(r, g, b)
	p.pdf.SetLineWidth(0.55)
	p.pdf.SetDashPattern([]float64{2.4, 1.8}, 0)
	py := p.y(line.Y)
	p.pdf.Line(p.left, py, p.right, py)
	p.pdf.SetDashPattern([]float64{}, 0)

	if line.Label == "" {
		return
	}
	p.pdf.SetFont("Arial", "", 10.5)
	w := p.pdf.GetStringWidth(p.t(line.Label))
	lx := p.right - w - 6
	ly := p.top + 7
	p.pdf.SetDashPattern([]float64{2, 1.4}, 0)
	p.pdf.Line(lx-9, ly-1.3, lx-2.5, ly-1.3)
	p.pdf.SetDashPattern([]float64{}, 0)
	p.pdf.SetTextColor(40, 40, 40)
	p.pdf.Text(lx, ly, p.t(line.Label))
}

// arrow desenha uma seta entre dois pontos em milímetros.
func (p *pdfPlot) arrow(x0, y0, x1, y1 float64, r, g, b int, doubleHead bool) {
	p.pdf.SetDrawColor(r, g, b)
	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(x0, y0, x1, y1)
	theta := math.Atan2(y1-y0, x1-x0)
	p.arrowHead(x1, y1, theta, r, g, b)
	if doubleHead {
		p.arrowHead(x0, y0, theta+math.Pi, r, g, b)
	}
}

func (p *pdfPlot) arrowHead(x, y, theta float64, r, g, b int) {
	const size = 2.4
	p.pdf.SetFillColor(r, g, b)
	left := theta + math.Pi*5/6
	right := theta - math.Pi*5/6
	p.pdf.Polygon([]gofpdf.PointType{
		{X: x, Y: y},
		{X: x + size*math.Cos(left), Y: y + size*math.Sin(left)},
		{X: x + size*math.Cos(right), Y: y + size*math.Sin(right)},
	}, "F")
}

// annotations desenha os callouts da figura em coordenadas de dados.
func (p *pdfPlot) annotations(notes []entity.Annotation) {
	const lineHeight = 4.8
	for _, n := range notes {
		r, g, b := hexToRGB(n.Color)

		if n.Text == "" {
			if n.Arrow != nil {
				p.arrow(p.x(n.X), p.y(n.Y), p.x(n.Arrow.X), p.y(n.Arrow.Y), r, g, b, n.Arrow.DoubleHead)
			}
			continue
		}

		lines := strings.Split(n.Text, "\n")
		p.pdf.SetFont("Arial", "B", 11)
		maxW := 0.0
		for _, line := range lines {
			if w := p.pdf.GetStringWidth(p.t(line)); w > maxW {
				maxW = w
			}
		}
		left := p.x(n.X)
		baseline := p.y(n.Y)
		if left+maxW > p.right+6 {
			left = p.right + 6 - maxW
		}

		var box [4]float64
		if n.Boxed {
			box = [4]float64{left - 3, baseline - 4.6, maxW + 6, float64(len(lines))*lineHeight + 3.4}
			p.pdf.SetFillColor(255, 255, 255)
			p.pdf.SetDrawColor(r, g, b)
			p.pdf.SetLineWidth(0.45)
			p.pdf.RoundedRect(box[0], box[1], box[2], box[3], 1.4, "1234", "FD")
		}

		p.pdf.SetTextColor(r, g, b)
		if n.Boxed {
			p.pdf.SetTextColor(40, 40, 40)
		}
		for i, line := range lines {
			p.pdf.Text(left, baseline+float64(i)*lineHeight, p.t(line))
		}

		if n.Arrow != nil {
			tx, ty := p.x(n.Arrow.X), p.y(n.Arrow.Y)
			sx := left + maxW/2
			sy := baseline + 1.5
			if n.Boxed {
				sx, sy = calloutEdge(box, tx, ty)
			} else if ty < baseline-6 {
				sy = baseline - 5
			}
			p.arrow(sx, sy, tx, ty, r, g, b, false)
		}
	}
}

// calloutEdge escolhe o ponto da borda da caixa de onde a seta parte.
func calloutEdge(box [4]float64, tx, ty float64) (float64, float64) {
	sx := box[0] + box[2]/2
	sy := box[1] + box[3]/2
	if ty < box[1] {
		sy = box[1]
	} else if ty > box[1]+box[3] {
		sy = box[1] + box[3]
	}
	if tx < box[0] {
		sx = box[0]
	} else if tx > box[0]+box[2] {
		sx = box[0] + box[2]
	}
	return sx, sy
}

// legend desenha uma caixa de legenda no canto superior esquerdo da área de
// plotagem, com amostras de linha ou de preenchimento por série.
func (p *pdfPlot) legend(series []entity.MethodSeries, columns int, lineSamples bool) {
	if len(series) == 0 {
		return
	}
	if columns < 1 {
		columns = 1
	}
	p.pdf.SetFont("Arial", "", 10)
	colWidth := 0.0
	for _, s := range series {
		if w := p.pdf.GetStringWidth(p.t(s.Name)); w > colWidth {
			colWidth = w
		}
	}
	colWidth += 13
	rows := (len(series) + columns - 1) / columns
	boxW := float64(columns)*colWidth + 4
	boxH := float64(rows)*6.4 + 3.6
	left := p.left + 4
	top := p.top + 4

	p.pdf.SetFillColor(255, 255, 255)
	p.pdf.SetDrawColor(150, 150, 150)
	p.pdf.SetLineWidth(0.3)
	p.pdf.Rect(left, top, boxW, boxH, "FD")

	for i, s := range series {
		col := i / rows
		row := i % rows
		ex := left + 2.4 + float64(col)*colWidth
		ey := top + 4.6 + float64(row)*6.4
		r, g, b := hexToRGB(s.Color)
		if lineSamples {
			p.pdf.SetDrawColor(r, g, b)
			width := 0.7
			if s.Reference {
				width = 1.3
			}
			p.pdf.SetLineWidth(width)
			if s.Dashed {
				p.pdf.SetDashPattern([]float64{1.8, 1.2}, 0)
			}
			p.pdf.Line(ex, ey-1.2, ex+8, ey-1.2)
			p.pdf.SetDashPattern([]float64{}, 0)
		} else {
			p.pdf.SetFillColor(r, g, b)
			p.pdf.Rect(ex, ey-3.2, 6, 4, "F")
		}
		p.pdf.SetTextColor(40, 40, 40)
		p.pdf.Text(ex+10, ey, p.t(s.Name))
	}
}

// vectorBar desenha o gráfico de barras simples.
func vectorBar(pdf *gofpdf.Fpdf, tr func(string) string, spec entity.FigureSpec) {
	p := newPDFPlot(pdf, tr, -0.65, float64(len(spec.Bars)-1)+0.65, spec.YMax)
	p.title(spec.Title)
	p.grid(spec.YTick)
	p.yAxis(spec.YTick, spec.YLabel)

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.4)
	pdf.Line(p.left, p.bottom, p.right, p.bottom)

	barW := 0.8 * (p.right - p.left) / (p.xMax - p.xMin)
	for i, b := range spec.Bars {
		cx := p.x(float64(i))
		topY := p.y(b.Value)
		fr, fg, fb := hexToRGB(b.Color)
		pdf.SetFillColor(fr, fg, fb)
		if b.Reference && spec.HighlightColor != "" {
			er, eg, eb := hexToRGB(spec.HighlightColor)
			pdf.SetDrawColor(er, eg, eb)
			pdf.SetLineWidth(0.9)
		} else {
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
		}
		pdf.Rect(cx-barW/2, topY, barW, p.bottom-topY, "FD")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(40, 40, 40)
		w := pdf.GetStringWidth(b.Display)
		pdf.Text(cx-w/2, topY-2, tr(b.Display))

		pdf.SetFont("Arial", "", 11)
		w = pdf.GetStringWidth(p.t(b.Label))
		pdf.Text(cx-w/2, p.bottom+6.5, p.t(b.Label))
	}

	if spec.RefLine != nil {
		p.refLine(*spec.RefLine)
	}
	p.annotations(spec.Annotations)
}

// vectorGroupedBar desenha os clusters de barras por categoria.
func vectorGroupedBar(pdf *gofpdf.Fpdf, tr func(string) string, spec entity.FigureSpec) {
	n := float64(len(spec.Categories))
	p := newPDFPlot(pdf, tr, -0.7, n-1+0.7, spec.YMax)
	p.title(spec.Title)
	p.grid(spec.YTick)
	p.yAxis(spec.YTick, spec.YLabel)
	p.xCategoryAxis(spec.Categories, spec.XLabel)

	groupCount := float64(len(spec.Series))
	slotW := 0.75 / groupCount
	mmPerUnit := (p.right - p.left) / (p.xMax - p.xMin)
	barW := (slotW - 0.016) * mmPerUnit
	for si, s := range spec.Series {
		fr, fg, fb := hexToRGB(s.Color)
		pdf.SetFillColor(fr, fg, fb)
		style := "F"
		if s.Reference && spec.HighlightColor != "" {
			er, eg, eb := hexToRGB(spec.HighlightColor)
			pdf.SetDrawColor(er, eg, eb)
			pdf.SetLineWidth(0.6)
			style = "FD"
		}
		for ci, v := range s.Values {
			center := float64(ci) + (float64(si)-(groupCount-1)/2)*slotW
			cx := p.x(center)
			topY := p.y(v)
			pdf.Rect(cx-barW/2, topY, barW, p.bottom-topY, style)
		}
	}

	if spec.RefLine != nil {
		p.refLine(*spec.RefLine)
	}
	p.legend(spec.Series, 2, false)
	p.annotations(spec.Annotations)
}

// vectorLine desenha as curvas de escala por categoria.
func vectorLine(pdf *gofpdf.Fpdf, tr func(string) string, spec entity.FigureSpec) {
	n := float64(len(spec.Categories))
	p := newPDFPlot(pdf, tr, -0.4, n-1+0.4, spec.YMax)
	p.title(spec.Title)
	p.grid(spec.YTick)
	p.yAxis(spec.YTick, spec.YLabel)
	p.xCategoryAxis(spec.Categories, spec.XLabel)

	if spec.Band != nil {
		br, bg, bb := hexToRGB(spec.Band.Color)
		x0, x1 := p.x(spec.Band.X0), p.x(spec.Band.X1)
		y0, y1 := p.y(spec.Band.Y0), p.y(spec.Band.Y1)
		top, bottom := y1, y0
		if top > bottom {
			top, bottom = bottom, top
		}
		pdf.SetFillColor(br, bg, bb)
		pdf.SetAlpha(0.2, "Normal")
		pdf.Rect(x0, top, x1-x0, bottom-top, "F")
		pdf.SetAlpha(1, "Normal")
	}

	for _, s := range spec.Series {
		sr, sg, sb := hexToRGB(s.Color)
		pdf.SetDrawColor(sr, sg, sb)
		width := 0.7
		markerR := 1.1
		if s.Reference {
			width = 1.4
			markerR = 1.6
		}
		pdf.SetLineWidth(width)
		if s.Dashed {
			pdf.SetDashPattern([]float64{2.2, 1.5}, 0)
		}
		pdf.MoveTo(p.x(0), p.y(s.Values[0]))
		for i := 1; i < len(s.Values); i++ {
			pdf.LineTo(p.x(float64(i)), p.y(s.Values[i]))
		}
		pdf.DrawPath("D")
		pdf.SetDashPattern([]float64{}, 0)

		pdf.SetFillColor(sr, sg, sb)
		for i, v := range s.Values {
			pdf.Circle(p.x(float64(i)), p.y(v), markerR, "F")
		}
	}

	p.legend(spec.Series, 1, true)
	p.annotations(spec.Annotations)
}

// vectorSchematic desenha os painéis de arquitetura lado a lado.
func vectorSchematic(pdf *gofpdf.Fpdf, tr func(string) string, spec entity.FigureSpec) {
	panelW := 297.0 / float64(len(spec.Diagrams))
	for i, d := range spec.Diagrams {
		drawPDFDiagram(pdf, tr, d, float64(i)*panelW, panelW)
	}
}

func drawPDFDiagram(pdf *gofpdf.Fpdf, tr func(string) string, d entity.Diagram, left, width float64) {
	t := func(s string) string { return tr(pdfReplacer.Replace(s)) }
	cx := left + width/2

	tc := d.TitleColor
	r, g, b := hexToRGB(tc)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(r, g, b)
	w := pdf.GetStringWidth(t(d.Title))
	pdf.Text(cx-w/2, 18, t(d.Title))

	const (
		unitH = 14.0
		tallH = 28.0
		gap   = 9.0
	)
	boxW := width * 0.6

	y := 28.0
	prevBottom := 0.0
	for i, box := range d.Boxes {
		h := unitH
		if box.Tall {
			h = tallH
		}
		if i > 0 {
			pdf.SetDrawColor(110, 110, 110)
			pdf.SetLineWidth(0.45)
			pdf.Line(cx, prevBottom+0.8, cx, y-1.6)
			pdf.SetFillColor(110, 110, 110)
			pdf.Polygon([]gofpdf.PointType{
				{X: cx, Y: y - 0.6},
				{X: cx - 1.3, Y: y - 3},
				{X: cx + 1.3, Y: y - 3},
			}, "F")
		}

		fr, fg, fb := hexToRGB(box.Fill)
		pdf.SetFillColor(fr, fg, fb)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.35)
		pdf.RoundedRect(cx-boxW/2, y, boxW, h, 2, "1234", "FD")

		tr2, tg, tb := hexToRGB(box.TextColor)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(tr2, tg, tb)
		lw := pdf.GetStringWidth(t(box.Label))
		pdf.Text(cx-lw/2, y+h/2+1.6, t(box.Label))

		if box.Note != "" {
			nr, ng, nb := hexToRGB(box.NoteColor)
			pdf.SetFont("Arial", "B", 10.5)
			pdf.SetTextColor(nr, ng, nb)
			pdf.Text(cx+boxW/2+4, y+h/2+1.6, t(box.Note))
		}

		prevBottom = y + h
		y = prevBottom + gap
	}

	cr, cg, cb := hexToRGB(d.CaptionColor)
	pdf.SetFont("Arial", "B", 11.5)
	pdf.SetTextColor(cr, cg, cb)
	w = pdf.GetStringWidth(t(d.Caption))
	pdf.Text(cx-w/2, 200, t(d.Caption))
}

// vectorTable desenha a tabela de resultados com células preenchidas.
func vectorTable(pdf *gofpdf.Fpdf, tr func(string) string, spec entity.FigureSpec) {
	t := spec.Table

	pdf.SetY(18)
	pdf.SetFont("Arial", "B", 15)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 12, tr(pdfReplacer.Replace(spec.Title)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	const left = 20.0
	tableW := 297.0 - 2*left
	firstW := tableW * 0.24
	otherW := (tableW - firstW) / float64(len(t.Columns)-1)
	colWidth := func(ci int) float64 {
		if ci == 0 {
			return firstW
		}
		return otherW
	}

	hr, hg, hb := hexToRGB(t.HeaderFill)
	tr2, tg, tb := hexToRGB(t.HeaderText)
	pdf.SetX(left)
	pdf.SetFillColor(hr, hg, hb)
	pdf.SetTextColor(tr2, tg, tb)
	pdf.SetDrawColor(130, 130, 130)
	pdf.SetLineWidth(0.25)
	pdf.SetFont("Arial", "B", 11)
	for ci, col := range t.Columns {
		pdf.CellFormat(colWidth(ci), 11, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	lr, lg, lb := hexToRGB(t.HighlightFill)
	for ri, row := range t.Rows {
		pdf.SetX(left)
		if ri == t.HighlightRow {
			pdf.SetFillColor(lr, lg, lb)
			pdf.SetFont("Arial", "B", 10.5)
		} else {
			pdf.SetFillColor(255, 255, 255)
			pdf.SetFont("Arial", "", 10.5)
		}
		pdf.SetTextColor(40, 40, 40)
		for ci, cell := range row {
			pdf.CellFormat(colWidth(ci), 10, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}
