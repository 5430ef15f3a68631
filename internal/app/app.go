// Package app hosts an editing session in an ebiten window: a toolbar row,
// the styled text drawn one line per paragraph, and file commands.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"richtext/internal/config"
	"richtext/internal/editor"
	applog "richtext/internal/log"
	"richtext/internal/render"
	"richtext/internal/ui"
	"richtext/pkg/rtdoc"
)

type Options struct {
	Config config.Config
	// Text seeds the session; nil starts empty with the placeholder.
	Text     *rtdoc.Text
	FilePath string
	Password string
	Logger   *slog.Logger
}

type App struct {
	cfg     config.Config
	theme   ui.Theme
	log     *slog.Logger
	queue   *editor.QueueDispatcher
	session *editor.Session
	unsub   func()
	palette []rtdoc.Color

	snapshot editor.ToolbarSnapshot
	layout   ui.Layout
	menu     []ui.MenuButton
	toolbar  ui.Toolbar
	lines    []ui.Line

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image
	fonts       *fontBank
	images      map[*rtdoc.Attachment]*ebiten.Image

	uiScales   []float32
	uiScaleIdx int
	filePath   string
	password   string
	status     string
	frameTick  uint64
	scrollY    int
	maxScrollY int

	anchor        int
	dragSelecting bool
	picking       bool

	screenW int
	screenH int
}

func New(opts Options) *App {
	a := &App{
		cfg:      opts.Config,
		theme:    ui.DefaultTheme(),
		log:      applog.WithComponent(opts.Logger, "app"),
		queue:    &editor.QueueDispatcher{},
		palette:  opts.Config.Editor.Colors(),
		fonts:    newFontBank(),
		images:   map[*rtdoc.Attachment]*ebiten.Image{},
		uiScales: []float32{1.0, 1.25, 1.5, 2.0},
		filePath: opts.FilePath,
		password: opts.Password,
		status:   "Untitled document",
	}
	sessOpts := a.cfg.Editor.SessionOptions()
	sessOpts.Dispatcher = a.queue
	sessOpts.Logger = applog.WithComponent(opts.Logger, "editor")
	a.session = editor.NewSession(opts.Text, sessOpts)
	if opts.Text == nil {
		a.session.SetTypingAttributes(a.cfg.Editor.TypingAttributes())
	}
	a.snapshot = a.session.Snapshot()
	a.unsub = a.session.Subscribe(editor.Listener{
		OnToolbar:         func(s editor.ToolbarSnapshot) { a.snapshot = s },
		OnImageRequested:  a.pickImage,
		OnCommit:          a.committed,
		OnDismissKeyboard: func() { a.status = "Editing finished" },
	})
	if a.filePath != "" {
		a.status = "Opened " + filepath.Base(a.filePath)
	}
	return a
}

func (a *App) Run() error {
	defer a.unsub()
	ebiten.SetWindowTitle("Rich Text Editor")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(900, 560, -1, -1)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.screenW = max(outsideWidth, 900)
	a.screenH = max(outsideHeight, 560)
	return a.screenW, a.screenH
}

func (a *App) scale() float32 { return a.uiScales[a.uiScaleIdx] }

func (a *App) bumpUIScale(delta int) {
	a.uiScaleIdx = min(max(a.uiScaleIdx+delta, 0), len(a.uiScales)-1)
	a.status = fmt.Sprintf("UI scale %.0f%%", a.scale()*100)
}

// committed runs when editing ends with text in the buffer.
func (a *App) committed(t *rtdoc.Text) {
	a.log.Debug("text committed", slog.Int("runes", t.Len()), slog.Int("runs", len(t.Runs())))
}

// newDocument replaces the session text. Attachment bitmaps of the previous
// document are dropped.
func (a *App) newDocument(t *rtdoc.Text, path string) {
	clear(a.images)
	a.session.SetText(t)
	if t == nil {
		a.session.SetTypingAttributes(a.cfg.Editor.TypingAttributes())
	}
	a.filePath = path
	a.scrollY = 0
}
