package view

import (
	"image/color"
	"sync"

	"github.com/Versifine/quiver/internal/projectile"
)

var arrowPalette = []color.RGBA{
	{R: 250, G: 210, B: 90, A: 255},
	{R: 240, G: 120, B: 80, A: 255},
	{R: 120, G: 200, B: 250, A: 255},
	{R: 170, G: 240, B: 130, A: 255},
}

// arrowVisual is the render-side handle attached to each arrow.
type arrowVisual struct {
	tint color.RGBA
}

// ArrowVisuals hands out arrow visuals and tracks how many are alive.
type ArrowVisuals struct {
	mu   sync.Mutex
	next int
	live int
}

func NewArrowVisuals() *ArrowVisuals {
	return &ArrowVisuals{}
}

func (v *ArrowVisuals) CreateProjectileVisual() projectile.Visual {
	v.mu.Lock()
	defer v.mu.Unlock()
	tint := arrowPalette[v.next%len(arrowPalette)]
	v.next++
	v.live++
	return &arrowVisual{tint: tint}
}

func (v *ArrowVisuals) Dispose(visual projectile.Visual) {
	if _, ok := visual.(*arrowVisual); !ok {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.live > 0 {
		v.live--
	}
}

func (v *ArrowVisuals) Live() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.live
}

func arrowTint(visual projectile.Visual) color.RGBA {
	if av, ok := visual.(*arrowVisual); ok {
		return av.tint
	}
	return arrowPalette[0]
}
