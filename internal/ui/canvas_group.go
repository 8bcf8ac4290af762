package ui

import (
	"math"

	"ProcMotion/internal/behaviour"
)

// CanvasGroup is the opacity and hit-testing state of a UI object. It is the
// AlphaTarget fades drive.
type CanvasGroup struct {
	behaviour.BaseComponent
	Interactable   bool
	BlocksRaycasts bool
	// AutoBlock ties Interactable and BlocksRaycasts to alpha > 0
	AutoBlock bool

	alpha float32
}

func NewCanvasGroup(alpha float32) *CanvasGroup {
	g := &CanvasGroup{Interactable: true, BlocksRaycasts: true, AutoBlock: true}
	g.SetAlpha(alpha)
	return g
}

func (g *CanvasGroup) Alpha() float32 {
	return g.alpha
}

// SetAlpha clamps to [0,1]
func (g *CanvasGroup) SetAlpha(alpha float32) {
	switch {
	case alpha < 0 || math.IsNaN(float64(alpha)):
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	g.alpha = alpha
	if g.AutoBlock {
		visible := alpha > 0
		g.Interactable = visible
		g.BlocksRaycasts = visible
	}
}

// SetInteractable sets both input flags and takes them out of AutoBlock, so
// later alpha changes leave them alone
func (g *CanvasGroup) SetInteractable(interactable bool) {
	g.AutoBlock = false
	g.Interactable = interactable
	g.BlocksRaycasts = interactable
}

// Visible reports whether anything of the group would be drawn
func (g *CanvasGroup) Visible() bool {
	return g.alpha > 0
}
