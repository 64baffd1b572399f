package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"masterbatch/composition"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type recipeView struct {
	Name        string                   `json:"name"`
	Base        string                   `json:"base"`
	Ingredients []composition.Ingredient `json:"ingredients"`
}

type validationView struct {
	Outcome   string  `json:"outcome"`
	Sum       float64 `json:"sum"`
	BaseShare float64 `json:"base_share"`
	Message   string  `json:"message"`
}

func (v validationView) render() string {
	switch v.Outcome {
	case composition.Valid.String():
		return okStyle.Render(fmt.Sprintf("valid: ingredients %s%%, base %s%%", pct(v.Sum), pct(v.BaseShare)))
	case composition.Incomplete.String():
		return warnStyle.Render("incomplete: " + v.Message)
	default:
		return errorStyle.Render(v.Outcome + ": " + v.Message)
	}
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	return t.String()
}

// decode converts a tool output map into a typed view.
func decode(out map[string]any, v any) error {
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func pct(f float64) string   { return fmt.Sprintf("%.2f", f) }
func grams(f float64) string { return fmt.Sprintf("%.2f", f) }
