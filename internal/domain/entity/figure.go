package entity

// FigureKind identifies which drawing routine a FigureSpec is handled by.
type FigureKind string

const (
	FigureBar        FigureKind = "bar"
	FigureGroupedBar FigureKind = "grouped-bar"
	FigureLine       FigureKind = "line"
	FigureSchematic  FigureKind = "schematic"
	FigureTable      FigureKind = "table"
)

// BarValue is a single bar in a bar figure.
type BarValue struct {
	Label     string
	Value     float64
	Display   string
	Color     string
	Reference bool
}

// MethodSeries is one method's values across the category axis.
type MethodSeries struct {
	Name      string
	Color     string
	Values    []float64
	Reference bool
	Dashed    bool
}

// ReferenceLine is a dashed horizontal rule at a fixed data value.
type ReferenceLine struct {
	Y     float64
	Color string
	Label string
}

// Annotation is a text callout placed in data coordinates. An empty Text with
// an Arrow draws the arrow alone.
type Annotation struct {
	Text  string
	X     float64
	Y     float64
	Color string
	Boxed bool
	Arrow *AnnotationArrow
}

// AnnotationArrow points from an annotation to a data coordinate.
type AnnotationArrow struct {
	X          float64
	Y          float64
	DoubleHead bool
}

// Band is a shaded vertical region between two data points.
type Band struct {
	X0    float64
	X1    float64
	Y0    float64
	Y1    float64
	Color string
}

// DiagramBox is one step in a schematic flow.
type DiagramBox struct {
	Label     string
	Fill      string
	TextColor string
	Tall      bool
	Note      string
	NoteColor string
}

// Diagram is a vertical flow of connected boxes with a title and caption.
type Diagram struct {
	Title        string
	TitleColor   string
	Caption      string
	CaptionColor string
	Boxes        []DiagramBox
}

// TableSpec describes a results table rendered as an image.
type TableSpec struct {
	Columns       []string
	Rows          [][]string
	HighlightRow  int
	HeaderFill    string
	HeaderText    string
	HighlightFill string
}

// FigureSpec is a declarative description of one output figure. Exactly one
// of the kind-specific payloads is populated, according to Kind.
type FigureSpec struct {
	Kind           FigureKind
	Basename       string
	Title          string
	XLabel         string
	YLabel         string
	YMax           float64
	YTick          float64
	HighlightColor string
	Categories     []string
	Bars           []BarValue
	Series         []MethodSeries
	RefLine        *ReferenceLine
	Band           *Band
	Annotations    []Annotation
	Diagrams       []Diagram
	Table          *TableSpec
}
