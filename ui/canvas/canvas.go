// Package canvas provides the keyboard layout canvas with pan, zoom, and
// key selection.
package canvas

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kbd-designer/internal/app"
	"kbd-designer/internal/keyboard"
	"kbd-designer/internal/render"
	"kbd-designer/internal/schedule"
	"kbd-designer/pkg/geometry"
)

const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.25

	// BaseUnit is the pixels-per-layout-unit at zoom 1.
	BaseUnit = 54.0

	// dragSnap is the layout-unit grid keys snap to while dragging.
	dragSnap = 0.25
)

// KeyboardCanvas displays the layout being edited and routes mouse
// interaction back into the application state. Rendering happens in the
// raster callback; anything that invalidates the frame goes through the
// scheduler so a burst of events repaints once.
type KeyboardCanvas struct {
	widget.BaseWidget

	state    *app.State
	renderer *render.Renderer
	sched    *schedule.Scheduler

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Key dragging
	draggingKeys bool
	dragRemX     float64 // pixels not yet converted into a snap step
	dragRemY     float64

	// Marquee selection
	selecting   bool
	selectStart fyne.Position
	selectEnd   fyne.Position

	// Container
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	onZoomChange func(zoom float64)
}

// New creates a keyboard canvas bound to the application state. The
// scheduler batches redraw requests from state events into single frames.
func New(state *app.State, sched *schedule.Scheduler) *KeyboardCanvas {
	kc := &KeyboardCanvas{
		state:    state,
		renderer: render.NewRenderer(render.DefaultStyle(BaseUnit)),
		sched:    sched,
		zoom:     1.0,
		imgSize:  fyne.NewSize(400, 300),
	}

	kc.raster = fynecanvas.NewRaster(kc.draw)
	kc.raster.ScaleMode = fynecanvas.ImageScalePixels
	kc.raster.SetMinSize(kc.imgSize)

	// Wrap raster in draggable content for mouse events
	kc.content = newDraggableContent(kc, kc.raster)

	// Zoomable scroll container (wheel = zoom, drag = move/select)
	kc.scroll = newZoomScroll(kc.content, kc)

	for _, ev := range []app.EventType{
		app.EventLayoutLoaded,
		app.EventKeysChanged,
		app.EventSelectionChanged,
	} {
		state.On(ev, func(interface{}) { kc.RequestRedraw() })
	}

	kc.ExtendBaseWidget(kc)
	return kc
}

// Container returns the canvas container for embedding in layouts.
func (kc *KeyboardCanvas) Container() fyne.CanvasObject {
	return kc.scroll
}

// RequestRedraw queues a repaint on the next frame. Repeated calls within
// one frame collapse.
func (kc *KeyboardCanvas) RequestRedraw() {
	kc.sched.Request("canvas", func() error {
		kc.updateContentSize()
		kc.raster.Refresh()
		return nil
	})
}

// SetZoom sets the zoom level and rescales the renderer. The shade cache is
// tied to the unit scale and resets with it.
func (kc *KeyboardCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	kc.zoom = zoom
	kc.renderer.SetUnit(BaseUnit * zoom)
	kc.updateContentSize()
	kc.raster.Refresh()

	if kc.onZoomChange != nil {
		kc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (kc *KeyboardCanvas) Zoom() float64 {
	return kc.zoom
}

// ZoomIn increases the zoom level.
func (kc *KeyboardCanvas) ZoomIn() {
	kc.SetZoom(kc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (kc *KeyboardCanvas) ZoomOut() {
	kc.SetZoom(kc.zoom / zoomStep)
}

// ZoomReset returns to 1:1.
func (kc *KeyboardCanvas) ZoomReset() {
	kc.SetZoom(1.0)
}

// OnZoomChange sets a callback for zoom changes.
func (kc *KeyboardCanvas) OnZoomChange(callback func(zoom float64)) {
	kc.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (kc *KeyboardCanvas) Refresh() {
	kc.raster.Refresh()
}

// style returns the render style at the current zoom, which is also the
// hit-test coordinate space.
func (kc *KeyboardCanvas) style() render.Style {
	return kc.renderer.Style
}

// hitAt returns the topmost key under a content-space position.
func (kc *KeyboardCanvas) hitAt(pos fyne.Position) *keyboard.Key {
	pt := geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
	return render.HitTestLayout(pt, kc.state.Layout, kc.style())
}

// tapped selects the key under the click, or clears the selection on empty
// space. Secondary taps extend the selection instead of replacing it.
func (kc *KeyboardCanvas) tapped(pos fyne.Position, additive bool) {
	hit := kc.hitAt(pos)
	if hit == nil && additive {
		return
	}
	kc.state.Select(hit, additive)
}

// dragStarted decides between moving the keys under the cursor and opening
// a marquee. Dragging an unselected key selects it first.
func (kc *KeyboardCanvas) dragStarted(pos fyne.Position) {
	if hit := kc.hitAt(pos); hit != nil {
		if !kc.state.IsSelected(hit) {
			kc.state.Select(hit, false)
		}
		kc.state.Checkpoint()
		kc.draggingKeys = true
		kc.dragRemX = 0
		kc.dragRemY = 0
		return
	}

	kc.selecting = true
	kc.selectStart = pos
	kc.selectEnd = pos
}

// dragged advances either the key move or the marquee.
func (kc *KeyboardCanvas) dragged(pos fyne.Position, dx, dy float32) {
	if kc.draggingKeys {
		kc.moveStep(float64(dx), float64(dy))
		return
	}
	if kc.selecting {
		kc.selectEnd = pos
		kc.RequestRedraw()
	}
}

// moveStep accumulates pixel motion and releases it in snap-grid steps so
// keys track the cursor but always land on quarter-unit positions.
func (kc *KeyboardCanvas) moveStep(dx, dy float64) {
	unit := kc.style().Unit
	kc.dragRemX += dx / unit
	kc.dragRemY += dy / unit

	stepX := math.Trunc(kc.dragRemX/dragSnap) * dragSnap
	stepY := math.Trunc(kc.dragRemY/dragSnap) * dragSnap
	if stepX == 0 && stepY == 0 {
		return
	}
	kc.dragRemX -= stepX
	kc.dragRemY -= stepY
	kc.state.MoveSelected(stepX, stepY)
}

// dragEnded closes the marquee and selects every key whose bounds intersect
// it.
func (kc *KeyboardCanvas) dragEnded() {
	if kc.draggingKeys {
		kc.draggingKeys = false
		return
	}
	if !kc.selecting {
		return
	}
	kc.selecting = false

	rect := normalizedRect(kc.selectStart, kc.selectEnd)
	style := kc.style()
	var hit []*keyboard.Key
	for _, k := range kc.state.Layout.Keys {
		if render.KeyBounds(k, style).Intersects(rect) {
			hit = append(hit, k)
		}
	}
	kc.state.SelectMany(hit)
}

func normalizedRect(a, b fyne.Position) geometry.Rect {
	x0, x1 := float64(a.X), float64(b.X)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := float64(a.Y), float64(b.Y)
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return geometry.NewRect(x0, y0, x1-x0, y1-y0)
}

// updateContentSize resizes the raster to the layout bounds at the current
// zoom so the scroll container knows how much there is to pan over.
func (kc *KeyboardCanvas) updateContentSize() {
	b := render.LayoutBounds(kc.state.Layout, kc.style())
	w := float32(math.Ceil(b.Right())) + 1
	h := float32(math.Ceil(b.Bottom())) + 1
	if w < 400 {
		w = 400
	}
	if h < 300 {
		h = 300
	}
	if kc.imgSize.Width == w && kc.imgSize.Height == h {
		return
	}
	kc.imgSize = fyne.NewSize(w, h)

	kc.raster.SetMinSize(kc.imgSize)
	kc.raster.Resize(kc.imgSize)
	if kc.content != nil {
		kc.content.Resize(kc.imgSize)
		kc.content.Refresh()
	}
	if kc.scroll != nil {
		kc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (kc *KeyboardCanvas) draw(w, h int) image.Image {
	img := kc.renderer.RenderSized(kc.state.Layout, w, h, kc.state.Selection())

	if kc.selecting {
		drawMarquee(img, normalizedRect(kc.selectStart, kc.selectEnd))
	}
	return img
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *KeyboardCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *KeyboardCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *KeyboardCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(kc *KeyboardCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: kc,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// contentPos maps a viewport event position to content space.
func (dc *draggableContent) contentPos(pos fyne.Position) fyne.Position {
	off := dc.canvas.scroll.Offset()
	return fyne.Position{X: pos.X + off.X, Y: pos.Y + off.Y}
}

// inBounds rejects events outside the widget, which Fyne occasionally
// delivers after focus changes.
func (dc *draggableContent) inBounds(pos fyne.Position) bool {
	size := dc.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	pos := dc.contentPos(ev.Position)
	if !dc.canvas.draggingKeys && !dc.canvas.selecting {
		dc.canvas.dragStarted(pos)
	}
	dc.canvas.dragged(pos, ev.Dragged.DX, ev.Dragged.DY)
}

func (dc *draggableContent) DragEnd() {
	dc.canvas.dragEnded()
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// Tapped handles left-click selection.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if !dc.inBounds(ev.Position) {
		return
	}
	dc.canvas.tapped(dc.contentPos(ev.Position), false)
}

// TappedSecondary extends the selection.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if !dc.inBounds(ev.Position) {
		return
	}
	dc.canvas.tapped(dc.contentPos(ev.Position), true)
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// CreateRenderer implements fyne.Widget.
func (kc *KeyboardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &keyboardCanvasRenderer{canvas: kc}
}

type keyboardCanvasRenderer struct {
	canvas *KeyboardCanvas
}

func (r *keyboardCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
}

func (r *keyboardCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *keyboardCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *keyboardCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *keyboardCanvasRenderer) Destroy() {}
