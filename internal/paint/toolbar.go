package paint

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Tool identifies a toolbar action.
type Tool string

// Toolbar tool actions.
const (
	ToolClear    Tool = "clear"
	ToolIncrease Tool = "increase"
	ToolDecrease Tool = "decrease"
)

// RegionKind tags a toolbar region as a palette color or a tool.
type RegionKind int

const (
	// RegionColor marks a palette color box.
	RegionColor RegionKind = iota
	// RegionTool marks a tool box.
	RegionTool
)

// Region is a fixed axis-aligned hit-test rectangle on the live frame,
// tagged with either a palette color or a tool action.
type Region struct {
	Bounds image.Rectangle
	Kind   RegionKind
	Color  color.RGBA
	Tool   Tool
	Label  string
}

// Toolbar holds the fixed layout of color and tool boxes drawn along the
// top of the live frame. Immutable for the process lifetime.
type Toolbar struct {
	colors []Region
	tools  []Region
}

// NewToolbar returns the painter's fixed toolbar layout: five color boxes
// followed by three tool boxes, left to right along the top of the frame.
func NewToolbar() *Toolbar {
	colors := make([]Region, 0, len(paletteNames))
	x := 350
	for _, p := range paletteNames {
		colors = append(colors, Region{
			Bounds: image.Rect(x, 2, x+50, 52),
			Kind:   RegionColor,
			Color:  p.Color,
			Label:  p.Name,
		})
		x += 60
	}

	tools := []Region{
		{Bounds: image.Rect(720, 2, 770, 52), Kind: RegionTool, Color: White, Tool: ToolClear, Label: "Clear"},
		{Bounds: image.Rect(780, 2, 830, 52), Kind: RegionTool, Color: White, Tool: ToolIncrease, Label: "+"},
		{Bounds: image.Rect(840, 2, 890, 52), Kind: RegionTool, Color: White, Tool: ToolDecrease, Label: "-"},
	}

	return &Toolbar{colors: colors, tools: tools}
}

// DrawColorBoxes renders the color selection boxes onto the frame.
func (t *Toolbar) DrawColorBoxes(frame *gocv.Mat) {
	for _, r := range t.colors {
		drawBox(frame, r)
	}
}

// DrawToolBoxes renders the tool boxes onto the frame.
func (t *Toolbar) DrawToolBoxes(frame *gocv.Mat) {
	for _, r := range t.tools {
		drawBox(frame, r)
	}
}

// drawBox flood-fills a region and draws its centered label. Labels are
// white except on white boxes, which get black text for legibility.
func drawBox(frame *gocv.Mat, r Region) {
	gocv.Rectangle(frame, r.Bounds, r.Color, -1)

	textColor := White
	if r.Color == White {
		textColor = Black
	}

	size := gocv.GetTextSize(r.Label, gocv.FontHersheySimplex, labelFontScale, labelThickness)
	org := image.Pt(
		r.Bounds.Min.X+(r.Bounds.Dx()-size.X)/2,
		r.Bounds.Min.Y+(r.Bounds.Dy()+size.Y)/2,
	)
	gocv.PutText(frame, r.Label, org, gocv.FontHersheySimplex, labelFontScale, textColor, labelThickness)
}

const (
	labelFontScale = 0.5
	labelThickness = 2
)

// hit reports whether the point (x, y) selects the region. The lower x
// bound is deliberately not checked: any point left of the box's right
// edge inside its vertical band counts as a hit, and selection order
// decides which box wins.
func (r Region) hit(x, y int) bool {
	return x <= r.Bounds.Max.X && r.Bounds.Min.Y <= y && y <= r.Bounds.Max.Y
}

// SelectColor hit-tests the color boxes in declared order and returns the
// first hit's color. ok is false when no box is hit.
func (t *Toolbar) SelectColor(x, y int) (c color.RGBA, ok bool) {
	for _, r := range t.colors {
		if r.hit(x, y) {
			return r.Color, true
		}
	}
	return color.RGBA{}, false
}

// SelectTool hit-tests the tool boxes in declared order and returns the
// first hit's tool. ok is false when no box is hit.
func (t *Toolbar) SelectTool(x, y int) (tool Tool, ok bool) {
	for _, r := range t.tools {
		if r.hit(x, y) {
			return r.Tool, true
		}
	}
	return "", false
}

// Regions returns all toolbar regions, colors first, in declared order.
func (t *Toolbar) Regions() []Region {
	out := make([]Region, 0, len(t.colors)+len(t.tools))
	out = append(out, t.colors...)
	out = append(out, t.tools...)
	return out
}
