package app

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"richtext/internal/markdown"
	"richtext/internal/ui"
	"richtext/pkg/rtdoc"
)

var errNoFile = errors.New("no file selected")

func (a *App) runCommand(id string) {
	var err error
	switch id {
	case ui.CmdNew:
		a.newDocument(nil, "")
		a.status = "New document"
	case ui.CmdOpen:
		err = a.openDocumentDialog()
	case ui.CmdSave:
		err = a.saveDocument(false)
	case ui.CmdSaveAs:
		err = a.saveDocument(true)
	case ui.CmdMarkdown:
		err = a.importMarkdownDialog()
	case ui.CmdScaleUp:
		a.bumpUIScale(1)
	case ui.CmdScaleDn:
		a.bumpUIScale(-1)
	}
	if err != nil && !errors.Is(err, dialog.ErrCancelled) {
		a.status = "Failed: " + err.Error()
		a.log.Warn("command failed", slog.String("command", id), slog.Any("err", err))
	}
}

func (a *App) openDocumentDialog() error {
	path, err := dialog.File().Filter("Rich text documents", "rtdoc").Load()
	if err != nil {
		return err
	}
	if path == "" {
		return errNoFile
	}
	return a.openDocument(filepath.Clean(path))
}

func (a *App) openDocument(path string) error {
	env, err := rtdoc.InspectEnvelope(path)
	if err != nil {
		return err
	}
	if env.Encrypted && strings.TrimSpace(a.password) == "" {
		a.status = "Password required: restart with --password"
		return nil
	}
	t, err := rtdoc.LoadWithOptions(path, rtdoc.LoadOptions{Password: a.password})
	if err != nil {
		if errors.Is(err, rtdoc.ErrInvalidPassword) {
			a.status = "Incorrect password for " + filepath.Base(path)
			return nil
		}
		return err
	}
	a.newDocument(t, path)
	a.status = "Opened " + filepath.Base(path)
	return nil
}

func (a *App) saveDocument(saveAs bool) error {
	path := a.filePath
	if saveAs || path == "" {
		p, err := dialog.File().Filter("Rich text documents", "rtdoc").Save()
		if err != nil {
			return err
		}
		path = p
	}
	if path == "" {
		return errNoFile
	}
	if filepath.Ext(path) == "" {
		path += ".rtdoc"
	}
	if a.session.ShowingPlaceholder() {
		return errors.New("nothing to save")
	}
	opts := rtdoc.SaveOptions{
		Compression: true,
		Encryption:  rtdoc.EncryptionOptions{Enabled: a.password != "", Password: a.password},
	}
	if err := rtdoc.SaveWithOptions(path, a.session.Text(), opts); err != nil {
		return err
	}
	a.filePath = path
	a.status = "Saved " + filepath.Base(path)
	return nil
}

func (a *App) importMarkdownDialog() error {
	path, err := dialog.File().Filter("Markdown", "md", "markdown").Load()
	if err != nil {
		return err
	}
	if path == "" {
		return errNoFile
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	t := markdown.FromMarkdownWith(string(src), a.cfg.Editor.MarkdownOptions())
	a.newDocument(t, "")
	a.status = "Imported " + filepath.Base(path)
	return nil
}

// pickImage answers the session's image request. The picker blocks, so it
// runs off the UI loop and hands the bitmap back through the dispatcher.
func (a *App) pickImage() {
	if a.picking {
		return
	}
	a.picking = true
	go func() {
		img, err := loadImageDialog()
		a.queue.Dispatch(func() {
			a.picking = false
			switch {
			case errors.Is(err, dialog.ErrCancelled):
			case err != nil:
				a.status = "Image failed: " + err.Error()
				a.log.Warn("image load failed", slog.Any("err", err))
			case a.session.InsertImage(img):
				a.status = "Image inserted"
			}
		})
	}()
}

func loadImageDialog() (image.Image, error) {
	path, err := dialog.File().Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "webp").Load()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
