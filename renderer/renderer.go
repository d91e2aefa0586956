// Package renderer renders reports to markdown strings, assembled from
// embedded templates.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/folioperf/folioperf"
)

//go:embed *.md
var templates embed.FS

// RenderHoldings renders the HoldingsReport struct to a markdown string.
func RenderHoldings(r *folioperf.HoldingsReport) string {
	partials := map[string]string{
		"holdings_title":      "holdings_title.md",
		"holdings_securities": "holdings_securities.md",
		"holdings_totals":     "holdings_totals.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, r)
}

// RenderComparison renders the ComparisonReport struct to a markdown string.
func RenderComparison(r *folioperf.ComparisonReport) string {
	partials := map[string]string{
		"comparison_title":   "comparison_title.md",
		"comparison_summary": "comparison_summary.md",
		"comparison_series":  "comparison_series.md",
	}
	return renderTemplate("comparison", "comparison.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
