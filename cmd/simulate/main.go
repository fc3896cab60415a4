// Command simulate plays the level sequence headless with a scripted input
// and logs every gameplay event. It is handy for checking new levels.
package main

import (
	"flag"
	"io/fs"
	"math/rand"
	"os"
	"strings"

	"github.com/automoto/keyrunner/assets"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/level"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/records"
	"github.com/automoto/keyrunner/sim"
	"github.com/sirupsen/logrus"
)

var scriptActions = map[rune]cfg.Action{
	'u': cfg.ActionUp,
	'd': cfg.ActionDown,
	'l': cfg.ActionLeft,
	'r': cfg.ActionRight,
	'b': cfg.ActionBreak,
}

// script returns the held actions for a tick. Each step of moves is held
// for hold ticks and the script loops. A step may combine letters ("rb").
func script(moves []string, hold, tick int) sim.Actions {
	actions := sim.Actions{}
	if len(moves) == 0 || hold <= 0 {
		return actions
	}
	for _, r := range moves[(tick/hold)%len(moves)] {
		if a, ok := scriptActions[r]; ok {
			actions[a] = true
		}
	}
	return actions
}

func main() {
	levelsDir := flag.String("levels", "", "directory holding levels.yaml and its maps (default: built-in levels)")
	ticks := flag.Int("ticks", 3600, "number of ticks to run")
	seed := flag.Int64("seed", 1, "random seed")
	moves := flag.String("script", "r", "comma separated steps of u/d/l/r/b, e.g. \"r,rb,u\"")
	hold := flag.Int("hold", 30, "ticks each script step is held")
	name := flag.String("record", "", "save the run to the records under this name")
	flag.Parse()

	logger.Init()
	log := logger.For("simulate")

	var fsys fs.FS = assets.Levels()
	if *levelsDir != "" {
		fsys = os.DirFS(*levelsDir)
	}
	loader := assets.NewLoader(fsys)
	first, err := cfg.LoadLevels(fsys, "levels.yaml")
	if err != nil {
		log.WithError(err).Fatal("Failed to load levels")
	}

	// Loads settle before the orchestrator sees them so runs are repeatable
	load := func(p string) level.Pending {
		pending := loader.Load(p)
		select {
		case <-pending.Done():
		case <-pending.Failed():
		}
		return pending
	}

	finished := false
	o := level.New(first, load, rand.New(rand.NewSource(*seed)))
	o.OnEvent(func(ev sim.Event) {
		log.WithFields(logrus.Fields{
			"event": ev.Kind.String(),
			"level": ev.Level,
			"score": ev.Score,
			"keys":  ev.Keys,
		}).Info("event")
	})
	o.OnFinish(func(int) { finished = true })

	steps := strings.Split(*moves, ",")
	tick := 0
	for ; tick < *ticks && !finished; tick++ {
		o.Tick(cfg.Levels.FrameDelta, script(steps, *hold, tick))
		if err := o.LoadErr(); err != nil {
			log.WithError(err).Fatal("Level failed to load")
		}
	}

	log.WithFields(logrus.Fields{
		"ticks":    tick,
		"level":    o.LevelNumber(),
		"score":    o.Score(),
		"finished": finished,
	}).Info("simulation done")

	if *name == "" {
		return
	}
	backend, err := records.Open("keyrunner")
	if err != nil {
		log.WithError(err).Fatal("Failed to open records")
	}
	rank, err := records.NewStore(backend).Add(records.Record{
		Name:  *name,
		Score: o.Score(),
		Level: o.LevelNumber(),
		Won:   finished,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to save record")
	}
	log.WithField("rank", rank).Info("run recorded")
}
