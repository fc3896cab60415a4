package scenes

import (
	"os"
	"sync"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/fonts"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

type MenuOption int

const (
	MenuPlay MenuOption = iota
	MenuRecords
	MenuQuit
)

var menuLabels = [...]string{"Play", "Records", "Quit"}

func (o MenuOption) String() string {
	return menuLabels[o]
}

// MenuScene displays the main menu
type MenuScene struct {
	session      *Session
	sceneChanger SceneChanger
	input        *Input
	selected     MenuOption
	once         sync.Once
}

// NewMenuScene creates a new menu scene
func NewMenuScene(sc SceneChanger, session *Session) *MenuScene {
	return &MenuScene{sceneChanger: sc, session: session}
}

func (ms *MenuScene) configure() {
	PreloadAllSFX()
	ms.input = NewInput()
}

// step moves the selection with wrap-around
func step(selected MenuOption, delta int) MenuOption {
	n := len(menuLabels)
	return MenuOption((int(selected) + delta + n) % n)
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.input.Poll()

	if ms.input.JustPressed(cfg.ActionUp) {
		ms.selected = step(ms.selected, -1)
		PlaySFX(cfg.SoundMenuNavigate)
	}
	if ms.input.JustPressed(cfg.ActionDown) {
		ms.selected = step(ms.selected, 1)
		PlaySFX(cfg.SoundMenuNavigate)
	}
	if !ms.input.JustPressed(cfg.ActionConfirm) {
		return
	}

	PlaySFX(cfg.SoundMenuSelect)
	switch ms.selected {
	case MenuPlay:
		ms.sceneChanger.ChangeScene(NewPlayScene(ms.sceneChanger, ms.session))
	case MenuRecords:
		ms.sceneChanger.ChangeScene(NewRecordsScene(ms.sceneChanger, ms.session, 0))
	case MenuQuit:
		_ = ms.session.Close()
		os.Exit(0)
	}
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.UI.BackgroundColor)

	drawCentered(screen, cfg.C.Title, fonts.Banner.Get(), int(cfg.UI.TitleY), cfg.UI.TitleColor)

	menuFont := fonts.Title.Get()
	for i, label := range menuLabels {
		y := cfg.UI.MenuStartY + float64(i)*(cfg.UI.MenuItemHeight+cfg.UI.MenuItemGap)

		textColor := cfg.UI.TextColorNormal
		if MenuOption(i) == ms.selected {
			textColor = cfg.UI.TextColorSelected
		}
		drawCentered(screen, label, menuFont, int(y+cfg.UI.MenuItemHeight), textColor)
	}

	hint := "Arrows to move, Enter to select"
	drawCentered(screen, hint, fonts.Small.Get(), screen.Bounds().Dy()-12, cfg.UI.TextColorNormal)
}
