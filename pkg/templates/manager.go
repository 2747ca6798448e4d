package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// Renderer interface for page rendering (for dependency injection)
type Renderer interface {
	ExecuteTemplate(name string, data any) (string, error)
	TemplateExists(name string) bool
}

// Manager loads and renders the static page templates from a directory.
type Manager struct {
	templates *template.Template
	directory string
}

// FuncMap returns the helpers the briefing templates rely on.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"pct": func(pct *float64) string {
			if pct == nil {
				return "—"
			}
			return fmt.Sprintf("%+.2f%%", *pct)
		},
		"price": func(t models.Ticker) string {
			if t.Price == nil {
				return ""
			}
			return "$" + t.Price.StringFixed(2)
		},
		"arrow": func(tone models.Tone) string {
			switch tone {
			case models.ToneUp, models.ToneElevated:
				return "▲"
			case models.ToneDown, models.ToneSubdued:
				return "▼"
			default:
				return "–"
			}
		},
	}
}

// NewManager creates and loads all *.tmpl templates from the directory,
// validating that the required ones exist.
func NewManager(templatesDir string, required []string) (*Manager, error) {
	tmpl, err := template.New("root").Funcs(FuncMap()).ParseGlob(filepath.Join(templatesDir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", templatesDir, err)
	}

	for _, name := range required {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("required template not found: %s", name)
		}
	}

	logger.Info("templates loaded",
		zap.Int("count", len(tmpl.Templates())),
		zap.String("directory", templatesDir),
	)

	return &Manager{
		templates: tmpl,
		directory: templatesDir,
	}, nil
}

// ExecuteTemplate renders template with data
func (m *Manager) ExecuteTemplate(name string, data any) (string, error) {
	tmpl := m.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// TemplateExists checks if template exists
func (m *Manager) TemplateExists(name string) bool {
	return m.templates.Lookup(name) != nil
}

// GetDirectory returns templates directory path
func (m *Manager) GetDirectory() string {
	return m.directory
}
