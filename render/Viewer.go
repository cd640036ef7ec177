package render

import (
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Viewer renders a scene on every timestep of an experiment
type Viewer struct {
	renderer *Renderer
	scene    Scene
	options  Options
}

// NewViewer returns a Viewer which renders s with r. The Episode of o
// is replaced by the episode of each timestep.
func NewViewer(r *Renderer, s Scene, o Options) *Viewer {
	return &Viewer{renderer: r, scene: s, options: o}
}

// View renders the scene
func (v *Viewer) View(episode int, t ts.TimeStep) error {
	o := v.options
	o.Episode = episode
	return v.renderer.Render(v.scene, o)
}
