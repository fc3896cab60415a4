package assets

import (
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:embed all:levels
var levelFS embed.FS

// Levels returns the embedded level pack rooted at its directory, so level
// files refer to maps as plain file names.
func Levels() fs.FS {
	sub, err := fs.Sub(levelFS, "levels")
	if err != nil {
		panic(fmt.Sprintf("Failed to open embedded levels: %v", err))
	}
	return sub
}

// Pending is a map load in flight. The structure gate opens once the map
// document is parsed; the image gate once every tileset image has been
// checked. A failed load keeps its gates closed and reports the error.
type Pending struct {
	Path string

	readiness *tilemap.Readiness
	failed    *tilemap.Gate

	mu  sync.Mutex
	m   *tilemap.TileMap
	err error
}

func newPending(p string) *Pending {
	return &Pending{
		Path:      p,
		readiness: tilemap.NewReadiness(),
		failed:    tilemap.NewGate(),
	}
}

// Ready reports whether both gates are open. It never blocks.
func (p *Pending) Ready() bool {
	return p.readiness.Ready()
}

// Done is closed when the map is ready
func (p *Pending) Done() <-chan struct{} {
	return p.readiness.Done()
}

// Failed is closed when the load has given up
func (p *Pending) Failed() <-chan struct{} {
	return p.failed.Done()
}

func (p *Pending) Readiness() *tilemap.Readiness {
	return p.readiness
}

// Map returns the parsed map, or nil until the structure gate is open
func (p *Pending) Map() *tilemap.TileMap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m
}

func (p *Pending) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Pending) fail(err error) {
	p.mu.Lock()
	p.err = fmt.Errorf("%w: %s: %w", sim.ErrLoadFailure, p.Path, err)
	p.mu.Unlock()
	p.failed.Open()
}

// Loader reads maps and their tileset images from a file system in the
// background. Both JSON (.json, .tmj) and TMX maps are accepted.
type Loader struct {
	fsys fs.FS
	log  *logrus.Entry
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys: fsys,
		log:  logger.For("assets"),
	}
}

func (l *Loader) FS() fs.FS {
	return l.fsys
}

// Load starts loading the map at p and returns immediately
func (l *Loader) Load(p string) *Pending {
	pending := newPending(p)
	go l.run(pending)
	return pending
}

func (l *Loader) run(p *Pending) {
	log := l.log.WithField("map", p.Path)

	m, err := l.loadMap(p.Path)
	if err != nil {
		p.fail(err)
		log.WithError(err).Warn("map load failed")
		return
	}
	p.mu.Lock()
	p.m = m
	p.mu.Unlock()
	p.readiness.MarkJSON()
	log.WithField("layers", len(m.Layers)).Debug("map structure ready")

	if err := l.checkImages(p.Path, m); err != nil {
		p.fail(err)
		log.WithError(err).Warn("tileset images failed")
		return
	}
	p.readiness.MarkImages()
	log.Debug("tileset images ready")
}

func (l *Loader) loadMap(p string) (*tilemap.TileMap, error) {
	var (
		doc *tilemap.Document
		err error
	)
	switch strings.ToLower(path.Ext(p)) {
	case ".tmx":
		doc, err = tilemap.LoadTMX(l.fsys, p)
	default:
		var data []byte
		data, err = fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, err
		}
		doc, err = tilemap.ParseDocument(data)
	}
	if err != nil {
		return nil, err
	}
	return tilemap.New(doc)
}

// ImagePath resolves a tileset image reference against the map's directory
func ImagePath(mapPath, image string) string {
	return path.Join(path.Dir(mapPath), image)
}

// checkImages decodes the header of every tileset image in parallel and
// compares it with the size the map declares.
func (l *Loader) checkImages(mapPath string, m *tilemap.TileMap) error {
	var g errgroup.Group
	for _, ts := range m.Tilesets {
		if ts.Image == "" {
			continue
		}
		ts := ts
		g.Go(func() error {
			f, err := l.fsys.Open(ImagePath(mapPath, ts.Image))
			if err != nil {
				return err
			}
			defer f.Close()

			conf, _, err := image.DecodeConfig(f)
			if err != nil {
				return fmt.Errorf("tileset %q image %s: %w", ts.Name, ts.Image, err)
			}
			if ts.ImageWidth > 0 && ts.ImageHeight > 0 && (conf.Width != ts.ImageWidth || conf.Height != ts.ImageHeight) {
				return fmt.Errorf("tileset %q image %s is %dx%d, map says %dx%d",
					ts.Name, ts.Image, conf.Width, conf.Height, ts.ImageWidth, ts.ImageHeight)
			}
			return nil
		})
	}
	return g.Wait()
}
