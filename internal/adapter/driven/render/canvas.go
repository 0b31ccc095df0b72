package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorAxis = drawing.Color{R: 120, G: 120, B: 120, A: 255}
	colorGrid = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	colorText = drawing.Color{R: 40, G: 40, B: 40, A: 255}
)

// plotCanvas desenha figuras que o go-chart não tem um tipo pronto para,
// mapeando coordenadas de dados para pixels sobre um renderer cru.
type plotCanvas struct {
	r      chart.Renderer
	font   *truetype.Font
	width  int
	height int
	plot   chart.Box
	xMin   float64
	xMax   float64
	yMin   float64
	yMax   float64
}

func newPlotCanvas(r chart.Renderer, font *truetype.Font, width, height int, plot chart.Box, xMin, xMax, yMin, yMax float64) *plotCanvas {
	c := &plotCanvas{
		r:      r,
		font:   font,
		width:  width,
		height: height,
		plot:   plot,
		xMin:   xMin,
		xMax:   xMax,
		yMin:   yMin,
		yMax:   yMax,
	}
	c.fillBackground()
	return c
}

func (c *plotCanvas) x(v float64) int {
	ratio := (v - c.xMin) / (c.xMax - c.xMin)
	return c.plot.Left + int(math.Round(ratio*float64(c.plot.Width())))
}

func (c *plotCanvas) y(v float64) int {
	ratio := (v - c.yMin) / (c.yMax - c.yMin)
	return c.plot.Bottom - int(math.Round(ratio*float64(c.plot.Height())))
}

func (c *plotCanvas) fillBackground() {
	fillCanvas(c.r, c.width, c.height)
}

// fillCanvas pinta o fundo branco de um renderer recém-criado.
func fillCanvas(r chart.Renderer, width, height int) {
	r.SetFillColor(chart.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()
}

// fillRect desenha um retângulo preenchido com borda.
func fillRect(r chart.Renderer, x0, y0, x1, y1 int, fill, stroke drawing.Color, strokeWidth float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(strokeWidth)
	r.SetStrokeDashArray(nil)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.FillStroke()
}

// roundedRect desenha um retângulo de cantos arredondados via curvas
// quadráticas, no estilo das caixas dos diagramas.
func roundedRect(r chart.Renderer, x, y, w, h, radius int, fill, stroke drawing.Color, strokeWidth float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(strokeWidth)
	r.SetStrokeDashArray(nil)
	r.MoveTo(x+radius, y)
	r.LineTo(x+w-radius, y)
	r.QuadCurveTo(x+w, y, x+w, y+radius)
	r.LineTo(x+w, y+h-radius)
	r.QuadCurveTo(x+w, y+h, x+w-radius, y+h)
	r.LineTo(x+radius, y+h)
	r.QuadCurveTo(x, y+h, x, y+h-radius)
	r.LineTo(x, y+radius)
	r.QuadCurveTo(x, y, x+radius, y)
	r.Close()
	r.FillStroke()
}

// title desenha o título centralizado no topo do canvas.
func (c *plotCanvas) title(text string, size float64, col drawing.Color) {
	c.r.SetFont(c.font)
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	tb := c.r.MeasureText(text)
	c.r.Text(text, c.width/2-tb.Width()/2, int(size)+14)
}

// grid desenha linhas horizontais claras em cada tick do eixo y.
func (c *plotCanvas) grid(step float64) {
	c.r.SetStrokeColor(colorGrid)
	c.r.SetStrokeWidth(1)
	c.r.SetStrokeDashArray(nil)
	for v := c.yMin + step; v <= c.yMax+step/1e6; v += step {
		py := c.y(v)
		c.r.MoveTo(c.plot.Left, py)
		c.r.LineTo(c.plot.Right, py)
		c.r.Stroke()
	}
}

// yAxis desenha o eixo vertical com ticks, rótulos e o nome rotacionado.
func (c *plotCanvas) yAxis(step float64, label string) {
	c.r.SetStrokeColor(colorAxis)
	c.r.SetStrokeWidth(1.5)
	c.r.SetStrokeDashArray(nil)
	c.r.MoveTo(c.plot.Left, c.plot.Top)
	c.r.LineTo(c.plot.Left, c.plot.Bottom)
	c.r.Stroke()

	c.r.SetFont(c.font)
	c.r.SetFontSize(11)
	c.r.SetFontColor(colorText)
	for v := c.yMin; v <= c.yMax+step/1e6; v += step {
		py := c.y(v)
		c.r.MoveTo(c.plot.Left-5, py)
		c.r.LineTo(c.plot.Left, py)
		c.r.Stroke()
		tick := formatFloatShort(v)
		tb := c.r.MeasureText(tick)
		c.r.Text(tick, c.plot.Left-10-tb.Width(), py+tb.Height()/2-2)
	}

	if label != "" {
		c.r.SetFontSize(12)
		tb := c.r.MeasureText(label)
		mid := (c.plot.Top + c.plot.Bottom) / 2
		c.r.TextRotation(chart.DegreesToRadians(-90))
		c.r.Text(label, 18, mid+tb.Width()/2)
		c.r.ClearTextRotation()
	}
}

// xCategoryAxis desenha o eixo horizontal com uma categoria por posição inteira.
func (c *plotCanvas) xCategoryAxis(categories []string, label string) {
	c.r.SetStrokeColor(colorAxis)
	c.r.SetStrokeWidth(1.5)
	c.r.SetStrokeDashArray(nil)
	c.r.MoveTo(c.plot.Left, c.plot.Bottom)
	c.r.LineTo(c.plot.Right, c.plot.Bottom)
	c.r.Stroke()

	c.r.SetFont(c.font)
	c.r.SetFontSize(11)
	c.r.SetFontColor(colorText)
	for i, cat := range categories {
		px := c.x(float64(i))
		c.r.MoveTo(px, c.plot.Bottom)
		c.r.LineTo(px, c.plot.Bottom+5)
		c.r.Stroke()
		tb := c.r.MeasureText(cat)
		c.r.Text(cat, px-tb.Width()/2, c.plot.Bottom+10+tb.Height())
	}

	if label != "" {
		c.r.SetFontSize(12)
		tb := c.r.MeasureText(label)
		c.r.Text(label, (c.plot.Left+c.plot.Right)/2-tb.Width()/2, c.plot.Bottom+48)
	}
}

type legendEntry struct {
	label  string
	color  drawing.Color
	dashed bool
}

// legend desenha uma caixa de legenda ancorada no canto superior esquerdo da
// área de plotagem, com as entradas distribuídas em colunas.
func (c *plotCanvas) legend(entries []legendEntry, columns int) {
	if len(entries) == 0 {
		return
	}
	if columns < 1 {
		columns = 1
	}
	c.r.SetFont(c.font)
	c.r.SetFontSize(11)

	colWidth := 0
	for _, e := range entries {
		if w := c.r.MeasureText(e.label).Width(); w > colWidth {
			colWidth = w
		}
	}
	colWidth += 40
	rows := (len(entries) + columns - 1) / columns
	boxW := columns*colWidth + 10
	boxH := rows*20 + 12
	left := c.plot.Left + 12
	top := c.plot.Top + 12

	c.r.SetFillColor(drawing.Color{R: 255, G: 255, B: 255, A: 235})
	c.r.SetStrokeColor(colorAxis)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(left, top)
	c.r.LineTo(left+boxW, top)
	c.r.LineTo(left+boxW, top+boxH)
	c.r.LineTo(left, top+boxH)
	c.r.Close()
	c.r.FillStroke()

	for i, e := range entries {
		col := i / rows
		row := i % rows
		ex := left + 8 + col*colWidth
		ey := top + 8 + row*20
		c.r.SetStrokeColor(e.color)
		c.r.SetStrokeWidth(3)
		if e.dashed {
			c.r.SetStrokeDashArray([]float64{4, 3})
		} else {
			c.r.SetStrokeDashArray(nil)
		}
		c.r.MoveTo(ex, ey+5)
		c.r.LineTo(ex+22, ey+5)
		c.r.Stroke()
		c.r.SetStrokeDashArray(nil)
		c.r.SetFontColor(colorText)
		c.r.Text(e.label, ex+28, ey+10)
	}
}

// annotationLines desenha texto alinhado à esquerda, uma linha por "\n",
// com a primeira linha apoiada na baseline dada. Retorna a caixa ocupada.
func annotationLines(r chart.Renderer, font *truetype.Font, text string, left, baseline int, size float64, col drawing.Color) chart.Box {
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(col)
	lines := strings.Split(text, "\n")
	lineHeight := int(size) + 6
	maxWidth := 0
	for _, line := range lines {
		if w := r.MeasureText(line).Width(); w > maxWidth {
			maxWidth = w
		}
	}
	for i, line := range lines {
		r.Text(line, left, baseline+i*lineHeight)
	}
	return chart.Box{
		Left:   left,
		Top:    baseline - int(size),
		Right:  left + maxWidth,
		Bottom: baseline + (len(lines)-1)*lineHeight + 4,
	}
}

// centeredLines desenha texto centralizado por linha a partir do topo dado.
func centeredLines(r chart.Renderer, font *truetype.Font, text string, cx, top int, size float64, col drawing.Color) chart.Box {
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(col)
	lines := strings.Split(text, "\n")
	lineHeight := int(size) + 6
	maxWidth := 0
	for _, line := range lines {
		if w := r.MeasureText(line).Width(); w > maxWidth {
			maxWidth = w
		}
	}
	for i, line := range lines {
		tb := r.MeasureText(line)
		r.Text(line, cx-tb.Width()/2, top+(i+1)*lineHeight-4)
	}
	return chart.Box{
		Left:   cx - maxWidth/2,
		Right:  cx + maxWidth/2,
		Top:    top,
		Bottom: top + len(lines)*lineHeight,
	}
}

// arrowBetween desenha uma seta reta entre dois pontos em pixels.
func arrowBetween(r chart.Renderer, x0, y0, x1, y1 int, col drawing.Color, doubleHead bool) {
	r.SetStrokeColor(col)
	r.SetStrokeWidth(2)
	r.SetStrokeDashArray(nil)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
	theta := math.Atan2(float64(y1-y0), float64(x1-x0))
	arrowHead(r, x1, y1, theta, col)
	if doubleHead {
		arrowHead(r, x0, y0, theta+math.Pi, col)
	}
}

func arrowHead(r chart.Renderer, x, y int, theta float64, col drawing.Color) {
	const size = 9.0
	left := theta + math.Pi*5/6
	right := theta - math.Pi*5/6
	r.SetFillColor(col)
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1)
	r.MoveTo(x, y)
	r.LineTo(x+int(size*math.Cos(left)), y+int(size*math.Sin(left)))
	r.LineTo(x+int(size*math.Cos(right)), y+int(size*math.Sin(right)))
	r.Close()
	r.Fill()
}

// drawAnnotations desenha os callouts de uma figura usando os tradutores de
// coordenadas do gráfico em questão. maxRight limita o texto à área visível.
func drawAnnotations(r chart.Renderer, font *truetype.Font, notes []entity.Annotation, xPx, yPx func(float64) int, maxRight int) {
	for _, n := range notes {
		col := hexToColor(n.Color)

		// Seta pura, sem texto.
		if n.Text == "" {
			if n.Arrow != nil {
				arrowBetween(r, xPx(n.X), yPx(n.Y), xPx(n.Arrow.X), yPx(n.Arrow.Y), col, n.Arrow.DoubleHead)
			}
			continue
		}

		left := xPx(n.X)
		baseline := yPx(n.Y)

		if n.Boxed {
			boxedCallout(r, font, n, left, baseline, xPx, yPx, col)
			continue
		}

		if width := measureLines(r, font, n.Text, 13); left+width > maxRight-6 {
			left = maxRight - 6 - width
		}
		box := annotationLines(r, font, n.Text, left, baseline, 13, col)
		if n.Arrow != nil {
			sx, sy := arrowStart(box, xPx(n.Arrow.X), yPx(n.Arrow.Y))
			arrowBetween(r, sx, sy, xPx(n.Arrow.X), yPx(n.Arrow.Y), col, n.Arrow.DoubleHead)
		}
	}
}

// boxedCallout desenha um texto em caixa branca com borda colorida e uma seta
// até o ponto de destino.
func boxedCallout(r chart.Renderer, font *truetype.Font, n entity.Annotation, left, baseline int, xPx, yPx func(float64) int, col drawing.Color) {
	r.SetFont(font)
	r.SetFontSize(13)
	lines := strings.Split(n.Text, "\n")
	lineHeight := 19
	maxWidth := 0
	for _, line := range lines {
		if w := r.MeasureText(line).Width(); w > maxWidth {
			maxWidth = w
		}
	}
	boxLeft := left - 10
	boxTop := baseline - 17
	boxW := maxWidth + 20
	boxH := len(lines)*lineHeight + 10

	r.SetFillColor(drawing.Color{R: 255, G: 255, B: 255, A: 245})
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1.5)
	r.MoveTo(boxLeft, boxTop)
	r.LineTo(boxLeft+boxW, boxTop)
	r.LineTo(boxLeft+boxW, boxTop+boxH)
	r.LineTo(boxLeft, boxTop+boxH)
	r.Close()
	r.FillStroke()

	r.SetFontColor(colorText)
	for i, line := range lines {
		r.Text(line, left, baseline+i*lineHeight)
	}

	if n.Arrow != nil {
		tx, ty := xPx(n.Arrow.X), yPx(n.Arrow.Y)
		box := chart.Box{Left: boxLeft, Top: boxTop, Right: boxLeft + boxW, Bottom: boxTop + boxH}
		sx, sy := arrowStart(box, tx, ty)
		arrowBetween(r, sx, sy, tx, ty, col, false)
	}
}

// arrowStart escolhe o ponto da borda da caixa de onde a seta deve partir.
func arrowStart(box chart.Box, targetX, targetY int) (int, int) {
	sx := (box.Left + box.Right) / 2
	sy := (box.Top + box.Bottom) / 2
	if targetY < box.Top {
		sy = box.Top
	} else if targetY > box.Bottom {
		sy = box.Bottom
	}
	if targetX < box.Left {
		sx = box.Left
	} else if targetX > box.Right {
		sx = box.Right
	}
	return sx, sy
}

func measureLines(r chart.Renderer, font *truetype.Font, text string, size float64) int {
	r.SetFont(font)
	r.SetFontSize(size)
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := r.MeasureText(line).Width(); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func formatFloatShort(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
