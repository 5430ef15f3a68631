package main

import (
	"richtext/internal/app"
	"richtext/internal/cmd"
)

func main() {
	cmd.Execute(func(p cmd.EditorParams) error {
		return app.New(app.Options{
			Config:   p.Config,
			Text:     p.Text,
			FilePath: p.FilePath,
			Password: p.Password,
			Logger:   p.Logger,
		}).Run()
	})
}
