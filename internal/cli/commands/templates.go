package commands

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

//go:embed all:templates
var templateFS embed.FS

// projectTemplate is a scaffold shipped by greeter init.
type projectTemplate struct {
	Name        string
	Description string
	NextSteps   []string
}

var projectTemplates = []projectTemplate{
	{
		Name:        "minimal",
		Description: "greeter.yaml and an empty web/ directory",
		NextSteps: []string{
			"Run 'greeter greet' to say hi from the terminal",
			"Build the wasm version into web/ (see web/README.md)",
			"Run 'greeter serve' and greet from the browser",
		},
	},
	{
		Name:        "wasm",
		Description: "a Go module that builds a browser greeter, with its page",
		NextSteps: []string{
			"Build the page (see README.md)",
			"Run 'greeter serve' and open /wasm/",
		},
	},
}

// templateNames lists the shipped template names.
func templateNames() []string {
	names := make([]string, 0, len(projectTemplates))
	for _, t := range projectTemplates {
		names = append(names, t.Name)
	}
	return names
}

func lookupTemplate(name string) (projectTemplate, error) {
	for _, t := range projectTemplates {
		if t.Name == name {
			return t, nil
		}
	}
	return projectTemplate{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(templateNames(), ", "))
}

// templateData is substituted into *.tmpl files.
type templateData struct {
	Project string
	Module  string
}

func newTemplateData(dir string) (templateData, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return templateData{}, err
	}
	project := filepath.Base(abs)
	return templateData{Project: project, Module: moduleName(project)}, nil
}

var invalidModuleChars = regexp.MustCompile(`[^a-z0-9._~-]+`)

// moduleName turns a directory name into a usable module path.
func moduleName(project string) string {
	name := strings.ToLower(strings.TrimSpace(project))
	name = strings.Join(strings.Fields(name), "-")
	name = invalidModuleChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ".-")
	if name == "" {
		return "greeter-app"
	}
	return name
}

// copyTemplate copies an embedded template directory to the target path.
// It handles special file renames (e.g., "gitignore" -> ".gitignore") and
// renders *.tmpl files with data. Existing files are kept unless force is
// set.
func copyTemplate(templateName, targetDir string, force bool, data templateData) ([]string, error) {
	root := path.Join("templates", templateName)
	var written []string

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		relPath = renameSpecialFiles(relPath)
		targetPath := filepath.Join(targetDir, relPath)

		if d.IsDir() {
			return os.MkdirAll(targetPath, 0750)
		}

		if !force {
			if _, err := os.Stat(targetPath); err == nil {
				return nil
			}
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if strings.HasSuffix(p, ".tmpl") {
			if content, err = renderTemplate(p, content, data); err != nil {
				return err
			}
		}
		if err := os.WriteFile(targetPath, content, 0600); err != nil {
			return err
		}
		written = append(written, relPath)
		return nil
	})

	return written, err
}

func renderTemplate(name string, content []byte, data templateData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// renameSpecialFiles handles files that need renaming (e.g., dotfiles and
// rendered templates).
func renameSpecialFiles(p string) string {
	p = strings.TrimSuffix(p, ".tmpl")
	base := filepath.Base(p)
	dir := filepath.Dir(p)

	switch base {
	case "gitignore":
		return filepath.Join(dir, ".gitignore")
	default:
		return p
	}
}
