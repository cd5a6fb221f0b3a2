package screens

import (
	"github.com/phanxgames/bubbo/scene"
)

const pressedScale = 0.95

// Button is a labelled rectangle centered on its view's position.
type Button struct {
	View *scene.Node

	bg      *scene.Node
	label   *scene.Node
	onPress func()
}

// NewButton creates a w by h button. onPress runs on tap.
func NewButton(name, label string, w, h float64, c scene.Color, onPress func()) *Button {
	b := &Button{
		View:    scene.NewContainer(name),
		bg:      scene.NewRect(name+"-bg", w, h, c),
		label:   scene.NewText(name+"-label", label, scene.Hex(0x1b1f45)),
		onPress: onPress,
	}
	b.bg.SetPosition(-w/2, -h/2)
	b.bg.Interactable = true
	b.bg.OnPointerDown = func(scene.PointerContext) { b.View.SetScale(pressedScale, pressedScale) }
	b.bg.OnPointerUp = func(scene.PointerContext) { b.View.SetScale(1, 1) }
	b.bg.OnPointerTap = func(scene.PointerContext) { b.Press() }

	b.label.CenterPivot()
	b.label.SetScale(2, 2)
	b.View.AddChild(b.bg, b.label)
	return b
}

// Press runs the button's action.
func (b *Button) Press() {
	if b.onPress != nil {
		b.onPress()
	}
}

// Label returns the button text.
func (b *Button) Label() string { return b.label.Text }

// SetLabel replaces the button text.
func (b *Button) SetLabel(s string) {
	b.label.Text = s
	b.label.CenterPivot()
}

// Hit returns the node that receives the button's pointer events.
func (b *Button) Hit() *scene.Node { return b.bg }

var (
	soundOnColor  = scene.Hex(0x4caf50)
	soundOffColor = scene.Hex(0x9e9e9e)
)

// AudioToggle is a button with an on/off lamp for the mute flag.
type AudioToggle struct {
	*Button

	lamp  *scene.Node
	muted bool
}

// NewAudioToggle creates a toggle that calls toggle on press and shows the
// state it returns.
func NewAudioToggle(label string, toggle func() bool) *AudioToggle {
	t := &AudioToggle{lamp: scene.NewCircle("sound-lamp", 8, soundOnColor)}
	t.Button = NewButton("sound", label, 140, 44, scene.ColorWhite, func() {
		t.ForceSwitch(toggle())
	})
	t.lamp.SetPosition(50, 0)
	t.View.AddChild(t.lamp)
	return t
}

// ForceSwitch shows muted without changing any setting.
func (t *AudioToggle) ForceSwitch(muted bool) {
	t.muted = muted
	if muted {
		t.lamp.Color = soundOffColor
	} else {
		t.lamp.Color = soundOnColor
	}
}

// Muted reports the state shown.
func (t *AudioToggle) Muted() bool { return t.muted }
