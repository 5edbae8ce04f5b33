package mutate

import (
	"pinboard-cli/internal/board"
	"pinboard-cli/internal/geom"
	"pinboard-cli/internal/history"
)

// ZoomBy nudges the zoom level, clamped to the legal range. Zoom changes
// are previews (History.Mutate), not commits: the viewport rides along
// with whatever edit is committed next.
func ZoomBy(delta float64) history.Recipe {
	return func(draft *board.State) *board.State {
		draft.Viewport.Zoom = geom.Clamp(draft.Viewport.Zoom+delta, board.MinZoom, board.MaxZoom)
		return draft
	}
}

// PanTo sets the viewport origin to an absolute screen offset.
func PanTo(x, y float64) history.Recipe {
	return func(draft *board.State) *board.State {
		draft.Viewport.X = x
		draft.Viewport.Y = y
		return draft
	}
}
