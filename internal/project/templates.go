package project

import (
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed templates/main.asm
var mainSourceTemplate string

// TemplateData contains data for rendering templates.
type TemplateData struct {
	ProjectName string
	Created     string
}

// WriteSource creates the starter source file for a workspace. It does not
// overwrite an existing file.
func WriteSource(path string, data TemplateData) error {
	tmpl, err := template.New("main").Parse(mainSourceTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	return nil
}
