package settings

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/movement"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.NRGBA{A: 210}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Menu is the ebitenui front end over a Model.
type Menu struct {
	model *Model
	ui    *ebitenui.UI
	open  bool

	face     ebtext.Face
	btnImg   *widget.ButtonImage
	btnColor *widget.ButtonTextColor

	speed      *widget.Text
	smoothing  *widget.Text
	smoothTime *widget.Text
	constrain  *widget.Text
	bindings   map[movement.Action]*widget.Text

	keyBuf []ebiten.Key
}

func NewMenu(model *Model) *Menu {
	m := &Menu{
		model:    model,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		btnColor: &widget.ButtonTextColor{Idle: white},
		bindings: make(map[movement.Action]*widget.Text, len(movement.Actions)),
	}
	img := imageui.NewNineSliceColor(buttonColor)
	m.btnImg = &widget.ButtonImage{Idle: img, Pressed: img}
	m.ui = m.build()
	m.refresh()
	return m
}

func (m *Menu) build() *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(m.text("Movement settings"))

	m.speed = m.text("")
	panel.AddChild(m.row(m.speed,
		m.button("-", func() { m.model.AdjustSpeed(-SpeedStep) }),
		m.button("+", func() { m.model.AdjustSpeed(SpeedStep) }),
	))

	m.smoothing = m.text("")
	panel.AddChild(m.row(m.smoothing,
		m.button("Toggle", m.model.ToggleSmoothing),
	))

	m.smoothTime = m.text("")
	panel.AddChild(m.row(m.smoothTime,
		m.button("-", func() { m.model.AdjustSmoothTime(-SmoothTimeStep) }),
		m.button("+", func() { m.model.AdjustSmoothTime(SmoothTimeStep) }),
	))

	m.constrain = m.text("")
	panel.AddChild(m.row(m.constrain,
		m.button("Toggle", m.model.ToggleConstrain),
	))

	for _, action := range movement.Actions {
		action := action
		label := m.text("")
		m.bindings[action] = label
		panel.AddChild(m.row(label,
			m.button("Rebind", func() { m.model.BeginRebind(action) }),
		))
	}

	panel.AddChild(m.button("Reset to WASD", m.model.ResetKeys))
	panel.AddChild(m.button("Resume", m.Close))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (m *Menu) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &m.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 20)),
	)
}

// button runs fn and then refreshes every label.
func (m *Menu) button(label string, fn func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(m.btnImg),
		widget.ButtonOpts.Text(label, &m.face, m.btnColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(40, 22)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			fn()
			m.refresh()
		}),
	)
}

func (m *Menu) row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	for _, child := range children {
		c.AddChild(child)
	}
	return c
}

func (m *Menu) refresh() {
	m.speed.Label = m.model.SpeedLabel()
	m.smoothing.Label = m.model.SmoothingLabel()
	m.smoothTime.Label = m.model.SmoothTimeLabel()
	m.constrain.Label = m.model.ConstrainLabel()
	for action, label := range m.bindings {
		label.Label = m.model.BindingLabel(action)
	}
}

func (m *Menu) Controller() *movement.Controller { return m.model.Controller() }

func (m *Menu) IsOpen() bool { return m != nil && m.open }

func (m *Menu) Open() {
	m.open = true
	m.refresh()
}

func (m *Menu) Close() {
	m.open = false
	m.model.capturing = ""
}

func (m *Menu) Toggle() {
	if m.open {
		m.Close()
		return
	}
	m.Open()
}

// Capturing reports whether the menu is waiting for a rebind key, in which
// case Escape belongs to the menu rather than the open/close toggle.
func (m *Menu) Capturing() bool {
	_, ok := m.model.Capturing()
	return ok
}

func (m *Menu) Update() {
	if !m.open {
		return
	}
	if m.Capturing() {
		m.keyBuf = inpututil.AppendJustPressedKeys(m.keyBuf[:0])
		if len(m.keyBuf) > 0 {
			m.model.CaptureKey(m.keyBuf[0])
			m.refresh()
		}
		return
	}
	m.ui.Update()
}

func (m *Menu) Draw(screen *ebiten.Image) {
	if !m.open {
		return
	}
	m.ui.Draw(screen)
}
