package template

import (
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const templatesPathFlag = "templates-path"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   templatesPathFlag,
			Usage:  "path to html templates",
			Value:  "templates",
			EnvVar: "TEMPLATES_PATH",
		},
	)
}

// Manager loads the page templates into a multitemplate renderer.
// Views render inside the main layout, standalone templates (player,
// admin pages) render on their own.
type Manager struct {
	re   multitemplate.Renderer
	path string
}

func NewManager(c *cli.Context, re multitemplate.Renderer) *Manager {
	return &Manager{
		re:   re,
		path: c.String(templatesPathFlag),
	}
}

func (s *Manager) Init() error {
	layout := filepath.Join(s.path, "layouts", "main.html")
	views, err := filepath.Glob(filepath.Join(s.path, "views", "*.html"))
	if err != nil {
		return errors.Wrap(err, "failed to glob views")
	}
	if len(views) == 0 {
		return errors.Errorf("no views found under %v", s.path)
	}
	for _, v := range views {
		s.re.AddFromFiles(templateName(v), layout, v)
	}
	standalone, err := filepath.Glob(filepath.Join(s.path, "standalone", "*.html"))
	if err != nil {
		return errors.Wrap(err, "failed to glob standalone templates")
	}
	for _, v := range standalone {
		s.re.AddFromFiles(templateName(v), v)
	}
	log.Infof("loaded %v templates from %v", len(views)+len(standalone), s.path)
	return nil
}

func templateName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".html")
}
