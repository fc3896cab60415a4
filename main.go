package main

import (
	"flag"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/automoto/keyrunner/assets"
	"github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/fonts"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/records"
	"github.com/automoto/keyrunner/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(session *scenes.Session, skipMenu bool) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if skipMenu {
		g.scene = scenes.NewPlayScene(g, session)
	} else {
		g.scene = scenes.NewMenuScene(g, session)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	levelsDir := flag.String("levels", "", "directory holding levels.yaml and its maps (default: built-in levels)")
	watch := flag.Bool("watch", false, "reload levels.yaml when it changes (needs -levels)")
	name := flag.String("name", "player", "name written to the records")
	seed := flag.Int64("seed", 1, "random seed for enemies and bonuses")
	skipMenu := flag.Bool("play", false, "start playing right away")
	debug := flag.Bool("debug", false, "outline hitboxes and tile colliders")
	flag.Parse()

	config.UI.DebugHitbox = *debug

	logger.Init()
	log := logger.For("main")

	if err := fonts.LoadDefaults(); err != nil {
		log.WithError(err).Fatal("Failed to load fonts")
	}

	var fsys fs.FS = assets.Levels()
	if *levelsDir != "" {
		fsys = os.DirFS(*levelsDir)
	}

	store := records.NewStore(nil)
	if backend, err := records.Open("keyrunner"); err != nil {
		log.WithError(err).Warn("Records will not be saved")
	} else {
		store = records.NewStore(backend)
	}

	session, err := scenes.NewSession(assets.NewLoader(fsys), "levels.yaml", store)
	if err != nil {
		log.WithError(err).Fatal("Failed to load levels")
	}
	defer session.Close()
	session.Player = *name
	session.Seed = *seed

	if *watch {
		if *levelsDir == "" {
			log.Warn("-watch needs -levels; built-in levels are not watched")
		} else if err := session.Watch(filepath.Join(*levelsDir, "levels.yaml")); err != nil {
			log.WithError(err).Warn("Could not watch levels")
		}
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.C.TPS)

	if err := ebiten.RunGame(NewGame(session, *skipMenu)); err != nil {
		log.WithError(err).Fatal("Game exited")
	}
}
