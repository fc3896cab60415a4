package scenes

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/automoto/keyrunner/assets/animations"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/fonts"
	"github.com/automoto/keyrunner/level"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/records"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// PlayScene runs the level sequence and draws it
type PlayScene struct {
	session      *Session
	sceneChanger SceneChanger
	once         sync.Once
	log          *logrus.Entry

	orch   *level.Orchestrator
	input  *Input
	camera *Camera
	banner Banner
	blink  *animations.Animation
	paused bool

	tiles     *tileImages
	tilesFor  *tilemap.TileMap
	colliders []tilemap.Rect
}

func NewPlayScene(sc SceneChanger, session *Session) *PlayScene {
	return &PlayScene{sceneChanger: sc, session: session}
}

func (ps *PlayScene) configure() {
	PreloadAllSFX()

	ps.log = logger.For("play")
	ps.input = NewInput()
	ps.camera = NewCamera(ps.session.Seed)
	ps.blink = animations.NewAnimation(0, 1, cfg.UI.BlinkSeconds)
	ps.start()
}

// start begins the level sequence from the first level
func (ps *PlayScene) start() {
	loader := ps.session.Loader
	ps.orch = level.New(
		ps.session.Levels,
		func(p string) level.Pending { return loader.Load(p) },
		rand.New(rand.NewSource(ps.session.Seed)),
	)
	ps.orch.OnEvent(ps.onEvent)
	ps.orch.SetDeathHandler(ps.onDeath)
	ps.orch.OnFinish(ps.onFinish)
	ps.tilesFor = nil
	ps.paused = false
}

func (ps *PlayScene) Update() {
	ps.once.Do(ps.configure)
	ps.input.Poll()

	if ps.session.LevelsChanged() {
		ps.start()
		ps.banner.Show("Levels reloaded")
	}

	if ps.input.JustPressed(cfg.ActionPause) {
		ps.paused = !ps.paused
	}
	if ps.paused {
		if ps.input.JustPressed(cfg.ActionConfirm) {
			ps.sceneChanger.ChangeScene(NewMenuScene(ps.sceneChanger, ps.session))
		}
		return
	}
	if ps.input.JustPressed(cfg.ActionSkip) {
		ps.orch.Advance()
	}

	dt := 1 / float64(ebiten.TPS())
	ps.orch.Tick(dt, ps.input.Actions())

	ps.banner.Update(dt)
	ps.blink.Update(dt)
	ps.camera.Update(dt)
	ps.follow()
}

func (ps *PlayScene) follow() {
	m := ps.orch.Map()
	if m == nil {
		return
	}
	if ps.tilesFor != m {
		ps.tiles = newTileImages(ps.session.Loader.FS(), ps.orch.Level().Map)
		ps.tilesFor = m
		ps.colliders = nil
		if ctx := ps.orch.Context(); cfg.UI.DebugHitbox && ctx != nil {
			ps.colliders = colliderOutlines(ctx.Collision, m)
		}
		ps.camera.Reset()
	}
	for _, h := range ps.orch.Hints() {
		if h.Kind != components.KindPlayer {
			continue
		}
		w, hgt := m.PixelSize()
		ps.camera.Follow(h.X+h.W/2, h.Y+h.H/2, w, hgt, float64(cfg.C.Width), float64(cfg.C.Height))
		return
	}
}

func (ps *PlayScene) onEvent(ev sim.Event) {
	PlaySFX(SoundFor(ev))

	switch ev.Kind {
	case sim.EnemyHit:
		ps.camera.Shake()
	case sim.KeyCollected:
		if ev.Unlocked {
			ps.banner.Show("Exit open!")
		}
	case sim.LevelComplete:
		ps.banner.Show(fmt.Sprintf("Level %d complete", ev.Level))
	}
}

func (ps *PlayScene) onDeath(o *level.Orchestrator) {
	ps.record(o.Score(), false)
	ps.banner.Show("You died")
	o.Restart()
}

func (ps *PlayScene) onFinish(score int) {
	rank := ps.record(score, true)
	ps.sceneChanger.ChangeScene(NewRecordsScene(ps.sceneChanger, ps.session, rank))
}

func (ps *PlayScene) record(score int, won bool) int {
	if ps.session.Records == nil {
		return 0
	}
	rank, err := ps.session.Records.Add(records.Record{
		Name:  ps.session.Player,
		Score: score,
		Level: ps.orch.LevelNumber(),
		Won:   won,
	})
	if err != nil {
		ps.log.WithError(err).Warn("Could not save record")
	}
	return rank
}

func (ps *PlayScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.UI.BackgroundColor)

	if ps.orch == nil {
		return
	}
	m := ps.orch.Map()
	if m == nil || ps.tilesFor != m {
		ps.drawLoading(screen)
		return
	}

	ox, oy := ps.camera.Offset(float64(cfg.C.Width), float64(cfg.C.Height))
	DrawTileLayers(screen, m, ps.tiles, ox, oy, false)
	DrawColliders(screen, ps.colliders, ox, oy)
	DrawEntities(screen, ps.orch.Hints(), ps.blink, ps.orch.ExitUnlocked(), ox, oy)
	DrawTileLayers(screen, m, ps.tiles, ox, oy, true)

	DrawHUD(screen, ps.orch)
	ps.banner.Draw(screen)

	if ps.paused {
		h := screen.Bounds().Dy()
		drawCentered(screen, "Paused", fonts.Banner.Get(), h/2, cfg.UI.TitleColor)
		drawCentered(screen, "Esc to resume, Enter for menu", fonts.Small.Get(), h/2+30, cfg.UI.TextColorNormal)
	}
}

func (ps *PlayScene) drawLoading(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	msg := fmt.Sprintf("Loading %s...", ps.orch.Level().Name)
	drawCentered(screen, msg, fonts.Title.Get(), h/2, cfg.UI.TextColorNormal)
	if err := ps.orch.LoadErr(); err != nil {
		drawCentered(screen, err.Error(), fonts.Small.Get(), h/2+30, cfg.UI.LifeColor)
	}
}
