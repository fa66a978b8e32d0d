// Package templates embeds the default text templates used to generate
// Duxt source code, prompt guides, project layouts and CLI help.
//
// Templates are addressed by name, which is the file name without the
// .tmpl extension (for example "code_model" or "structure_static").
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"
)

// Extension is the file extension of every template file.
const Extension = ".tmpl"

// FS contains all template files embedded at compile time.
//
//go:embed *.tmpl
var FS embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// Default returns the embedded template source for name.
func Default(name string) (string, bool) {
	data, err := FS.ReadFile(name + Extension)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Names lists every embedded template name in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names
}

// Render parses src as a template called name and executes it with data.
func Render(name, src string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.String(), nil
}
