package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	rasterWidth  = 1000
	rasterHeight = 600
	barWidth     = 120
	barSpacing   = 40

	groupedWidth  = 1200
	groupedHeight = 700

	schematicWidth  = 1400
	schematicHeight = 800

	tableWidth  = 1200
	tableHeight = 420
)

// renderPNG rasteriza a figura e grava o arquivo, substituindo qualquer
// versão anterior.
func renderPNG(spec entity.FigureSpec, path string) error {
	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case entity.FigureBar:
		err = rasterBar(spec, &buf)
	case entity.FigureGroupedBar:
		err = rasterGroupedBar(spec, &buf)
	case entity.FigureLine:
		err = rasterLine(spec, &buf)
	case entity.FigureSchematic:
		err = rasterSchematic(spec, &buf)
	case entity.FigureTable:
		err = rasterTable(spec, &buf)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownFigureKind, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("error rendering PNG figure: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing PNG file: %w", err)
	}
	return nil
}

// rasterBar desenha um gráfico de barras simples com rótulos de valor,
// linha de referência e callouts.
func rasterBar(spec entity.FigureSpec, w io.Writer) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	bars := make([]chart.Value, 0, len(spec.Bars))
	for _, b := range spec.Bars {
		style := chart.Style{
			FillColor:   hexToColor(b.Color),
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1.2,
		}
		if b.Reference && spec.HighlightColor != "" {
			style.StrokeColor = hexToColor(spec.HighlightColor)
			style.StrokeWidth = 3
		}
		bars = append(bars, chart.Value{Value: b.Value, Label: b.Label, Style: style})
	}

	ch := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: 16},
		Width:      rasterWidth,
		Height:     rasterHeight,
		Background: chart.Style{Padding: chart.Box{Top: 56, Left: 28, Right: 24, Bottom: 20}},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{FontSize: 12},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 12},
			Range: &chart.ContinuousRange{Min: 0, Max: spec.YMax},
			Ticks: axisTicks(spec.YMax, spec.YTick),
		},
		Bars:     bars,
		Elements: []chart.Renderable{barOverlay(spec, font)},
	}
	return ch.Render(chart.PNG, w)
}

// barOverlay devolve o renderable que desenha tudo que o BarChart não tem
// nativamente: rótulos de valor, nome do eixo y, linha de referência e
// anotações em coordenadas de dados.
func barOverlay(spec entity.FigureSpec, font *truetype.Font) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, _ chart.Style) {
		width, spacing := scaledBarGeometry(len(spec.Bars), cb)
		xPx := func(x float64) int { return barCenter(x, cb, width, spacing) }
		yPx := func(y float64) int { return cb.Bottom - dataToPixels(y, spec.YMax, cb.Height()) }

		r.SetFont(font)
		r.SetFontSize(13)
		r.SetFontColor(colorText)
		for i, b := range spec.Bars {
			tb := r.MeasureText(b.Display)
			r.Text(b.Display, xPx(float64(i))-tb.Width()/2, yPx(b.Value)-7)
		}

		if spec.YLabel != "" {
			r.SetFontSize(13)
			tb := r.MeasureText(spec.YLabel)
			mid := (cb.Top + cb.Bottom) / 2
			r.TextRotation(chart.DegreesToRadians(-90))
			r.Text(spec.YLabel, 18, mid+tb.Width()/2)
			r.ClearTextRotation()
		}

		if spec.RefLine != nil {
			drawRefLine(r, font, *spec.RefLine, cb, yPx(spec.RefLine.Y))
		}

		drawAnnotations(r, font, spec.Annotations, xPx, yPx, rasterWidth-8)
	}
}

// drawRefLine desenha a linha horizontal tracejada e, se houver, a etiqueta
// estilo legenda no canto superior direito da área de plotagem.
func drawRefLine(r chart.Renderer, font *truetype.Font, line entity.ReferenceLine, cb chart.Box, py int) {
	col := hexToColor(line.Color)
	r.SetStrokeColor(col)
	r.SetStrokeWidth(2)
	r.SetStrokeDashArray([]float64{6, 4})
	r.MoveTo(cb.Left, py)
	r.LineTo(cb.Right, py)
	r.Stroke()
	r.SetStrokeDashArray(nil)

	if line.Label == "" {
		return
	}
	r.SetFont(font)
	r.SetFontSize(12)
	tb := r.MeasureText(line.Label)
	lx := cb.Right - tb.Width() - 16
	ly := cb.Top + 24
	r.SetStrokeColor(col)
	r.SetStrokeWidth(2.5)
	r.SetStrokeDashArray([]float64{5, 3})
	r.MoveTo(lx-32, ly-4)
	r.LineTo(lx-8, ly-4)
	r.Stroke()
	r.SetStrokeDashArray(nil)
	r.SetFontColor(colorText)
	r.Text(line.Label, lx, ly)
}

// rasterLine desenha o gráfico de linhas por categoria com banda sombreada e
// anotações de escala.
func rasterLine(spec entity.FigureSpec, w io.Writer) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	xs := make([]float64, len(spec.Categories))
	ticks := make([]chart.Tick, len(spec.Categories))
	for i, cat := range spec.Categories {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: cat}
	}

	gridStyle := chart.Style{StrokeColor: colorGrid, StrokeWidth: 1}
	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		style := chart.Style{
			StrokeColor: hexToColor(s.Color),
			StrokeWidth: 2.5,
			DotColor:    hexToColor(s.Color),
			DotWidth:    5,
		}
		if s.Reference {
			style.StrokeWidth = 4.5
			style.DotWidth = 7
		}
		if s.Dashed {
			style.StrokeDashArray = []float64{6, 4}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xs,
			YValues: s.Values,
		})
	}

	ch := chart.Chart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: 16},
		Width:      rasterWidth,
		Height:     rasterHeight,
		Background: chart.Style{Padding: chart.Box{Top: 56, Left: 12, Right: 24, Bottom: 8}},
		XAxis: chart.XAxis{
			Name:      spec.XLabel,
			NameStyle: chart.Style{FontSize: 13},
			Style:     chart.Style{FontSize: 12},
			Ticks:     ticks,
			Range:     &chart.ContinuousRange{Min: -0.4, Max: float64(len(spec.Categories)-1) + 0.4},
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			NameStyle:      chart.Style{FontSize: 13},
			Style:          chart.Style{FontSize: 12},
			Range:          &chart.ContinuousRange{Min: 0, Max: spec.YMax},
			Ticks:          axisTicks(spec.YMax, spec.YTick),
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch), lineOverlay(spec, font)}
	return ch.Render(chart.PNG, w)
}

// lineOverlay desenha a banda sombreada e as anotações sobre o gráfico de
// linhas, usando a mesma translação de coordenadas dos eixos.
func lineOverlay(spec entity.FigureSpec, font *truetype.Font) chart.Renderable {
	xMin := -0.4
	xMax := float64(len(spec.Categories)-1) + 0.4
	return func(r chart.Renderer, cb chart.Box, _ chart.Style) {
		span := xMax - xMin
		xPx := func(x float64) int {
			return cb.Left + int(math.Ceil((x-xMin)/span*float64(cb.Width())))
		}
		yPx := func(y float64) int { return cb.Bottom - dataToPixels(y, spec.YMax, cb.Height()) }

		if spec.Band != nil {
			x0, x1 := xPx(spec.Band.X0), xPx(spec.Band.X1)
			y0, y1 := yPx(spec.Band.Y0), yPx(spec.Band.Y1)
			top, bottom := y1, y0
			if top > bottom {
				top, bottom = bottom, top
			}
			r.SetFillColor(withAlpha(hexToColor(spec.Band.Color), 51))
			r.MoveTo(x0, top)
			r.LineTo(x1, top)
			r.LineTo(x1, bottom)
			r.LineTo(x0, bottom)
			r.Close()
			r.Fill()
		}

		drawAnnotations(r, font, spec.Annotations, xPx, yPx, rasterWidth-8)
	}
}

// rasterGroupedBar desenha clusters de barras por categoria sobre um canvas
// cru, já que o go-chart não tem um tipo de barras agrupadas.
func rasterGroupedBar(spec entity.FigureSpec, w io.Writer) error {
	r, err := chart.PNG(groupedWidth, groupedHeight)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	n := float64(len(spec.Categories))
	plot := chart.Box{Top: 70, Left: 84, Right: groupedWidth - 30, Bottom: groupedHeight - 96}
	c := newPlotCanvas(r, font, groupedWidth, groupedHeight, plot, -0.7, n-1+0.7, 0, spec.YMax)

	c.title(spec.Title, 16, colorText)
	c.grid(spec.YTick)
	c.yAxis(spec.YTick, spec.YLabel)
	c.xCategoryAxis(spec.Categories, spec.XLabel)

	groupCount := float64(len(spec.Series))
	slotW := 0.75 / groupCount
	for si, s := range spec.Series {
		fill := hexToColor(s.Color)
		edge, edgeW := fill, 0.5
		if s.Reference && spec.HighlightColor != "" {
			edge, edgeW = hexToColor(spec.HighlightColor), 2
		}
		for ci, v := range s.Values {
			center := float64(ci) + (float64(si)-(groupCount-1)/2)*slotW
			x0 := c.x(center - slotW/2 + 0.008)
			x1 := c.x(center + slotW/2 - 0.008)
			fillRect(r, x0, c.y(v), x1, c.plot.Bottom, fill, edge, edgeW)
		}
	}

	if spec.RefLine != nil {
		drawRefLine(r, font, *spec.RefLine, c.plot, c.y(spec.RefLine.Y))
	}

	entries := make([]legendEntry, 0, len(spec.Series))
	for _, s := range spec.Series {
		entries = append(entries, legendEntry{label: s.Name, color: hexToColor(s.Color)})
	}
	c.legend(entries, 2)

	drawAnnotations(r, font, spec.Annotations, c.x, c.y, groupedWidth-8)

	return r.Save(w)
}

// rasterSchematic desenha os painéis de arquitetura lado a lado.
func rasterSchematic(spec entity.FigureSpec, w io.Writer) error {
	r, err := chart.PNG(schematicWidth, schematicHeight)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	fillCanvas(r, schematicWidth, schematicHeight)

	panelW := schematicWidth / len(spec.Diagrams)
	for i, diagram := range spec.Diagrams {
		drawDiagram(r, font, diagram, i*panelW, panelW, schematicHeight)
	}
	return r.Save(w)
}

// drawDiagram desenha um fluxo vertical de caixas conectadas por setas.
func drawDiagram(r chart.Renderer, font *truetype.Font, d entity.Diagram, left, width, height int) {
	cx := left + width/2
	centeredLines(r, font, d.Title, cx, 20, 17, hexToColor(d.TitleColor))

	const (
		unitH = 52
		tallH = 104
		gap   = 34
	)
	boxW := int(float64(width) * 0.6)
	border := drawing.Color{R: 100, G: 100, B: 100, A: 255}

	y := 100
	prevBottom := 0
	for i, b := range d.Boxes {
		h := unitH
		if b.Tall {
			h = tallH
		}
		if i > 0 {
			arrowBetween(r, cx, prevBottom+3, cx, y-4, colorAxis, false)
		}
		roundedRect(r, cx-boxW/2, y, boxW, h, 10, hexToColor(b.Fill), border, 1.2)

		lines := strings.Count(b.Label, "\n") + 1
		textTop := y + (h-lines*19)/2
		centeredLines(r, font, b.Label, cx, textTop, 13, hexToColor(b.TextColor))

		if b.Note != "" {
			annotationLines(r, font, b.Note, cx+boxW/2+16, y+h/2+5, 13, hexToColor(b.NoteColor))
		}

		prevBottom = y + h
		y = prevBottom + gap
	}

	centeredLines(r, font, d.Caption, cx, height-52, 14, hexToColor(d.CaptionColor))
}

// rasterTable desenha a tabela de resultados como imagem.
func rasterTable(spec entity.FigureSpec, w io.Writer) error {
	r, err := chart.PNG(tableWidth, tableHeight)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	fillCanvas(r, tableWidth, tableHeight)
	centeredLines(r, font, spec.Title, tableWidth/2, 14, 16, colorText)

	t := spec.Table
	cols := len(t.Columns)
	left, right, top := 40, tableWidth-40, 72
	rowH := 46

	// A coluna de método é mais larga que as numéricas.
	firstW := int(float64(right-left) * 0.24)
	otherW := (right - left - firstW) / (cols - 1)
	cellLeft := func(ci int) int {
		if ci == 0 {
			return left
		}
		return left + firstW + (ci-1)*otherW
	}
	cellRight := func(ci int) int {
		if ci == cols-1 {
			return right
		}
		return cellLeft(ci + 1)
	}

	headerFill := hexToColor(t.HeaderFill)
	headerText := hexToColor(t.HeaderText)
	highlight := hexToColor(t.HighlightFill)
	border := drawing.Color{R: 160, G: 160, B: 160, A: 255}

	drawCell := func(ci, rowTop int, text string, fill, textCol drawing.Color, size float64) {
		x0, x1 := cellLeft(ci), cellRight(ci)
		fillRect(r, x0, rowTop, x1, rowTop+rowH, fill, border, 1)
		r.SetFont(font)
		r.SetFontSize(size)
		r.SetFontColor(textCol)
		tb := r.MeasureText(text)
		r.Text(text, (x0+x1)/2-tb.Width()/2, rowTop+rowH/2+tb.Height()/2-2)
	}

	for ci, name := range t.Columns {
		drawCell(ci, top, name, headerFill, headerText, 13)
	}
	for ri, row := range t.Rows {
		rowTop := top + (ri+1)*rowH
		fill := chart.ColorWhite
		size := 12.5
		if ri == t.HighlightRow {
			fill = highlight
			size = 13
		}
		for ci, cell := range row {
			drawCell(ci, rowTop, cell, fill, colorText, size)
		}
	}
	return r.Save(w)
}
