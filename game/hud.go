package game

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/scene"
)

const (
	toastRise     = 40
	toastDuration = 0.6
	helperHold    = 3
	helperFade    = 0.3
)

// HudSystemDesc registers the HudSystem.
var HudSystemDesc = Descriptor[*HudSystem]{
	ID: "hud",
	New: func() *HudSystem {
		return &HudSystem{
			View:            scene.NewContainer("hud"),
			CannonContainer: scene.NewContainer("cannon-container"),
			decorLayer:      scene.NewContainer("hud-decor"),
			gameLayer:       scene.NewContainer("hud-game"),
			shownScore:      -1,
		}
	},
}

// HudSystem draws the board frame, the score, the pause button and the
// point toasts. Its view is anchored like the game container.
type HudSystem struct {
	SystemBase

	View            *scene.Node
	CannonContainer *scene.Node

	decorLayer  *scene.Node
	gameLayer   *scene.Node
	laserLine   *scene.Node
	bottomTray  *scene.Node
	scoreText   *scene.Node
	helperText  *scene.Node
	pauseButton *scene.Node

	shownScore  int
	shownHelper bool
	toasts      []*scene.Node
}

// Init builds the HUD and adds it to the stage.
func (h *HudSystem) Init() {
	g := h.Game()
	dict := g.Dict()
	half := float64(ContentWidth) / 2

	h.View.AddChild(h.gameLayer, h.decorLayer)
	g.Stage.AddChild(h.View)

	topTray := scene.NewRect("top-tray", ContentWidth, 60, scene.Hex(0x1b1f45))
	topTray.SetPosition(-half, -ContentHeight)
	leftBorder := scene.NewRect("left-border", 12, ContentHeight, scene.Hex(0x2f3573))
	leftBorder.SetPosition(-half-12, -ContentHeight)
	rightBorder := scene.NewRect("right-border", 12, ContentHeight, scene.Hex(0x2f3573))
	rightBorder.SetPosition(half, -ContentHeight)
	h.decorLayer.AddChild(leftBorder, rightBorder, topTray)

	h.bottomTray = scene.NewRect("bottom-tray", ContentWidth, BounceLine-30, scene.Hex(0x1b1f45))
	h.bottomTray.SetPosition(-half, -(BounceLine - 30))

	h.laserLine = scene.NewRect("laser-line", ContentWidth, 3, scene.Hex(0xff3d6e))
	h.laserLine.SetPosition(-half, -BounceLine)

	h.scoreText = scene.NewText("score", dict.Number(0), scene.ColorWhite)
	h.scoreText.SetPosition(0, -ContentHeight+30)
	h.scoreText.SetScale(2, 2)

	variation := 0
	if g.Mobile() {
		variation = 1
	}
	h.helperText = scene.NewText("helper", dict.T(i18n.Helper, i18n.Params{i18n.VariationParam: variation}), scene.ColorWhite)
	h.helperText.CenterPivot()
	h.helperText.SetPosition(0, -ContentHeight+200)
	h.helperText.Visible = false

	h.pauseButton = scene.NewCircle("pause-button", 22, scene.Hex(0xffc42c))
	h.pauseButton.SetPosition(half-40, -ContentHeight+30)
	h.pauseButton.Interactable = true
	h.pauseButton.OnPointerTap = func(scene.PointerContext) {
		if pause, ok := GetSystem(g.Systems, PauseSystemDesc); ok {
			pause.Pause()
		}
	}

	h.gameLayer.AddChild(h.bottomTray, h.scoreText, h.laserLine, h.helperText, h.CannonContainer, h.pauseButton)
	h.refreshScore()
}

// Start shows the helper text the first time a game starts.
func (h *HudSystem) Start() {
	if h.shownHelper {
		return
	}
	h.shownHelper = true
	h.helperText.Visible = true
	h.helperText.Alpha = 1
	h.track(scene.NewSequence(
		scene.NewDelay(helperHold),
		scene.TweenAlpha(h.helperText, 0, helperFade, ease.Linear),
		scene.NewCall(func() { h.helperText.Visible = false }),
	))
}

// Update refreshes the score label when the score changed.
func (h *HudSystem) Update(float64) {
	h.refreshScore()
}

// Reset removes pending toasts and zeroes the label.
func (h *HudSystem) Reset() {
	for _, t := range h.toasts {
		t.Dispose()
	}
	clear(h.toasts)
	h.toasts = h.toasts[:0]
	h.refreshScore()
}

// Resize anchors the HUD at the bottom center of the viewport.
func (h *HudSystem) Resize(w, hgt float64) {
	h.View.SetPosition(w*0.5, hgt)
}

// PauseButton returns the pause button node.
func (h *HudSystem) PauseButton() *scene.Node { return h.pauseButton }

// ScoreLabel returns the text currently shown as the score.
func (h *HudSystem) ScoreLabel() string { return h.scoreText.Text }

// Toasts returns the number of point toasts on screen.
func (h *HudSystem) Toasts() int { return len(h.toasts) }

// ShowPoints floats a "+points" label up from the score and fades it out.
func (h *HudSystem) ShowPoints(points int) {
	label := h.Game().Dict().T(i18n.Points, i18n.Params{"points": points})
	toast := scene.NewText("toast", label, scene.Hex(0xffca42))
	toast.CenterPivot()
	startY := h.scoreText.Y + 40
	toast.SetPosition(0, startY)
	h.gameLayer.AddChild(toast)
	h.toasts = append(h.toasts, toast)

	h.track(scene.NewSequence(
		scene.NewParallel(
			scene.TweenY(toast, startY-toastRise, toastDuration, ease.OutQuad),
			scene.TweenAlpha(toast, 0, toastDuration, ease.InQuad),
		),
		scene.NewCall(func() { h.removeToast(toast) }),
	))
}

func (h *HudSystem) removeToast(n *scene.Node) {
	for i, t := range h.toasts {
		if t == n {
			h.toasts = append(h.toasts[:i], h.toasts[i+1:]...)
			break
		}
	}
	n.Dispose()
}

// track hands an animation to the pause system so it freezes with the game.
func (h *HudSystem) track(a scene.Animation) {
	if pause, ok := GetSystem(h.Game().Systems, PauseSystemDesc); ok {
		pause.AddTween(a)
	}
}

func (h *HudSystem) refreshScore() {
	score := h.Game().Stats.Get(StatScore)
	if score == h.shownScore {
		return
	}
	h.shownScore = score
	h.scoreText.Text = h.Game().Dict().Number(score)
	h.scoreText.SetPivot(scene.TextWidth(h.scoreText.Text)/2, 0)
}
