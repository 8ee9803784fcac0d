package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"memchat/internal/config"
	"memchat/internal/orchestrator"
)

const panelWidth = 80

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(panelWidth)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true)
)

func printRunHeader(cfg *config.Config) {
	fmt.Println(headerStyle.Render("Running MemChat..."))
	fmt.Println(dimStyle.Render("Model: " + cfg.Model))
	fmt.Println(dimStyle.Render("Memory directory: " + cfg.MemoryDir))
	fmt.Println()
}

func printFormatted(res orchestrator.Result, showDiff bool) {
	fmt.Println(panel("Prompt", res.Prompt))
	fmt.Println(panel("Baseline Response", renderMarkdown(res.Baseline)))
	fmt.Println(panel("Memory-Augmented Response", renderMarkdown(res.Augmented)))

	if len(res.Events) > 0 {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Tool Calls (%d)", len(res.Events))))
		for i, ev := range res.Events {
			fmt.Printf("%d. %s  %s\n", i+1, titleStyle.Render(ev.ToolName), dimStyle.Render(ev.Timestamp))
			fmt.Println(indent(highlightJSON(ev.Arguments), "   "))
			fmt.Println(indent(dimStyle.Render(truncate(ev.Result, 200)), "   "))
		}
	} else {
		fmt.Println(dimStyle.Render("No tool calls were made."))
	}

	if showDiff {
		fmt.Println()
		fmt.Println(titleStyle.Render("Baseline vs Augmented"))
		fmt.Println(renderDiff(res.Baseline, res.Augmented))
	}
}

func printJSONError(err error, prompt, model string) {
	envelope := map[string]any{
		"error":       err.Error(),
		"prompt":      prompt,
		"model":       model,
		"baseline":    "",
		"augmented":   "",
		"tool_events": []any{},
	}
	raw, merr := json.MarshalIndent(envelope, "", "  ")
	if merr != nil {
		return
	}
	fmt.Println(string(raw))
}

func panel(title, body string) string {
	return titleStyle.Render(title) + "\n" + panelStyle.Render(strings.TrimRight(body, "\n"))
}

// renderMarkdown pretty-prints an answer; on any renderer failure the raw
// text is shown instead.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(panelWidth-4))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// highlightJSON renders a tool call's argument mapping as syntax-highlighted
// JSON, falling back to plain text when highlighting fails.
func highlightJSON(args map[string]any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(raw), "json", "terminal256", "monokai"); err != nil {
		return string(raw)
	}
	return buf.String()
}

// renderDiff colorizes the semantic diff between the two answers.
func renderDiff(baseline, augmented string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(baseline, augmented, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(insertStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(deleteStyle.Render(d.Text))
		default:
			b.WriteString(dimStyle.Render(d.Text))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
