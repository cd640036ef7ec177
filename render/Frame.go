package render

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

const (
	// CellSize is the width and height of a cell in pixels
	CellSize = 64

	// TitleBarHeight is the height of the overlay above the grid
	TitleBarHeight = 50

	// DefaultAssetDir is the directory sprites are loaded from
	DefaultAssetDir = "images"
)

// Sprites are the images drawn for the agent, the goal, and obstacles
type Sprites struct {
	Agent    image.Image
	Goal     image.Image
	Obstacle image.Image
}

// LoadSprites loads agent.png, goal.png, and obstacle.png from dir
func LoadSprites(dir string) (Sprites, error) {
	var s Sprites
	for name, im := range map[string]*image.Image{
		"agent.png":    &s.Agent,
		"goal.png":     &s.Goal,
		"obstacle.png": &s.Obstacle,
	} {
		loaded, err := gg.LoadPNG(filepath.Join(dir, name))
		if err != nil {
			return Sprites{}, fmt.Errorf("loadSprites: %w", err)
		}
		*im = loaded
	}
	return s, nil
}

// Title returns the overlay text of a frame
func Title(o Options) string {
	title := fmt.Sprintf("Episode: %d", o.Episode+1)
	if o.Availability != nil && o.Accuracy != nil {
		title += fmt.Sprintf(", Availability: %.1f%%, Accuracy: %.1f%%",
			*o.Availability*100, *o.Accuracy*100)
	}
	return title
}

// DrawFrame draws the scene on a white background below a
// semi-transparent title bar
func DrawFrame(s Scene, o Options, sprites Sprites) image.Image {
	rows, cols := s.Dims()
	width := cols * CellSize
	height := rows*CellSize + TitleBarHeight

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Grid lines
	dc.SetRGB255(200, 200, 200)
	dc.SetLineWidth(1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := cellOrigin(gridworld.Position{Row: r, Col: c})
			dc.DrawRectangle(x, y, CellSize, CellSize)
		}
	}
	dc.Stroke()

	drawSprite(dc, sprites.Goal, s.Goal())
	for _, obstacle := range s.Obstacles() {
		drawSprite(dc, sprites.Obstacle, obstacle)
	}
	drawSprite(dc, sprites.Agent, s.Position())

	// Title bar
	dc.SetRGBA255(0, 0, 0, 150)
	dc.DrawRectangle(0, 0, float64(width), TitleBarHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(Title(o), 10, TitleBarHeight/2, 0, 0.5)
	if o.LearningType != "" {
		dc.DrawStringAnchored(o.LearningType, float64(width-10),
			TitleBarHeight/2, 1, 0.5)
	}

	return dc.Image()
}

// drawSprite draws im scaled to fill the cell at p
func drawSprite(dc *gg.Context, im image.Image, p gridworld.Position) {
	if im == nil {
		return
	}
	bounds := im.Bounds()
	x, y := cellOrigin(p)

	dc.Push()
	dc.Translate(x, y)
	dc.Scale(float64(CellSize)/float64(bounds.Dx()),
		float64(CellSize)/float64(bounds.Dy()))
	dc.DrawImage(im, -bounds.Min.X, -bounds.Min.Y)
	dc.Pop()
}

// cellOrigin returns the pixel coordinates of the top left corner of
// the cell at p
func cellOrigin(p gridworld.Position) (x, y float64) {
	return float64(p.Col * CellSize), float64(p.Row*CellSize + TitleBarHeight)
}
