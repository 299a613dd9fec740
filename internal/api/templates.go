package api

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/vytor/flashdeck/internal/models"
)

// LoadTemplates parses layouts, pages and partials under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// percent scales value against total for the bar widths of the chart.
		"percent": func(value, total int) int {
			if total <= 0 {
				return 0
			}
			return value * 100 / total
		},
		"passes": func(history []models.Outcome) int {
			return countOutcome(history, models.OutcomePass)
		},
		"fails": func(history []models.Outcome) int {
			return countOutcome(history, models.OutcomeFail)
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		filepath.Join(dir, "layouts", "*.html"),
		filepath.Join(dir, "pages", "*.html"),
		filepath.Join(dir, "partials", "*.html"),
	}
	parsed := 0
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFiles(matches...); err != nil {
			return nil, err
		}
		parsed += len(matches)
	}
	if parsed == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}

	return t, nil
}

func countOutcome(history []models.Outcome, want models.Outcome) int {
	n := 0
	for _, o := range history {
		if o == want {
			n++
		}
	}
	return n
}
