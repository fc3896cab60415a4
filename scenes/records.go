package scenes

import (
	"fmt"
	"sync"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/fonts"
	"github.com/automoto/keyrunner/records"
	"github.com/hajimehoshi/ebiten/v2"
)

// RecordsScene shows the leaderboard. A non-zero highlight marks the rank
// of the run that just ended.
type RecordsScene struct {
	session      *Session
	sceneChanger SceneChanger
	input        *Input
	highlight    int
	once         sync.Once
}

func NewRecordsScene(sc SceneChanger, session *Session, highlight int) *RecordsScene {
	return &RecordsScene{sceneChanger: sc, session: session, highlight: highlight}
}

func (rs *RecordsScene) configure() {
	rs.input = NewInput()
}

func (rs *RecordsScene) Update() {
	rs.once.Do(rs.configure)
	rs.input.Poll()

	switch {
	case rs.input.JustPressed(cfg.ActionConfirm):
		PlaySFX(cfg.SoundMenuSelect)
		rs.sceneChanger.ChangeScene(NewPlayScene(rs.sceneChanger, rs.session))
	case rs.input.JustPressed(cfg.ActionBack):
		PlaySFX(cfg.SoundMenuSelect)
		rs.sceneChanger.ChangeScene(NewMenuScene(rs.sceneChanger, rs.session))
	}
}

// recordLines formats the leaderboard, one line per rank
func recordLines(top []records.Record) []string {
	if len(top) == 0 {
		return []string{"No records yet"}
	}
	lines := make([]string, len(top))
	for i, r := range top {
		result := fmt.Sprintf("level %d", r.Level)
		if r.Won {
			result = "cleared"
		}
		lines[i] = fmt.Sprintf("%2d. %-10s %7d  %s", i+1, r.Name, r.Score, result)
	}
	return lines
}

func (rs *RecordsScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.UI.BackgroundColor)

	drawCentered(screen, "Records", fonts.Banner.Get(), 80, cfg.UI.TitleColor)

	var top []records.Record
	if rs.session.Records != nil {
		top = rs.session.Records.Top()
	}
	face := fonts.HUD.Get()
	for i, line := range recordLines(top) {
		clr := cfg.UI.TextColorNormal
		if i+1 == rs.highlight {
			clr = cfg.UI.TextColorSelected
		}
		drawCentered(screen, line, face, 140+i*24, clr)
	}

	if rs.session.Records != nil {
		if last, ok := rs.session.Records.Last(); ok {
			msg := fmt.Sprintf("Last run: %d points on level %d", last.Score, last.Level)
			drawCentered(screen, msg, face, 140+(records.MaxRecords+1)*24, cfg.UI.HUDTextColor)
		}
	}

	hint := "Enter to play again, Backspace for menu"
	drawCentered(screen, hint, fonts.Small.Get(), screen.Bounds().Dy()-12, cfg.UI.TextColorNormal)
}
