package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"memchat/internal/orchestrator"
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("240")).
			Width(sidebarWidth).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func (m Model) View() string {
	if !m.ready {
		return "starting…"
	}

	title := titleBarStyle.Width(m.width).Render("MemChat — " + m.app.Config.Model)

	sidebarHeight := m.viewport.Height
	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarStyle.Height(sidebarHeight).Render(m.renderSidebar()),
		m.viewport.View(),
	)

	status := m.status
	if m.running {
		status = m.spin.View() + " " + status
	}

	return strings.Join([]string{
		title,
		main,
		m.input.View(),
		statusStyle.Render(status),
	}, "\n")
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Memory files"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.app.Store.Root()))
	b.WriteString("\n\n")
	if len(m.files) == 0 {
		b.WriteString(faintStyle.Render("(no files)"))
		return b.String()
	}
	max := sidebarHeightBudget
	for i, f := range m.files {
		if i == max {
			b.WriteString(faintStyle.Render(fmt.Sprintf("… and %d more", len(m.files)-max)))
			break
		}
		b.WriteString("• " + f + "\n")
	}
	return b.String()
}

const sidebarHeightBudget = 30

func welcomeText(model, root string) string {
	return strings.Join([]string{
		sectionStyle.Render("Welcome to MemChat"),
		"",
		"Type a prompt and press Enter. The same prompt is answered twice:",
		"once without tools, once with access to your memory files.",
		"",
		faintStyle.Render("Model: " + model),
		faintStyle.Render("Memory directory: " + root),
		faintStyle.Render("Esc or Ctrl+C to quit."),
	}, "\n")
}

func renderResult(res orchestrator.Result, width int) string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("❯ " + res.Prompt))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Baseline"))
	b.WriteString("\n")
	b.WriteString(renderAnswer(res.Baseline, width))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Memory-Augmented"))
	b.WriteString("\n")
	b.WriteString(renderAnswer(res.Augmented, width))
	b.WriteString("\n")

	if len(res.Events) == 0 {
		b.WriteString(faintStyle.Render("No tool calls were made."))
		return b.String()
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Tool calls (%d)", len(res.Events))))
	for i, ev := range res.Events {
		b.WriteString(fmt.Sprintf("\n%d. %s %s", i+1, ev.ToolName, faintStyle.Render(summarizeArgs(ev.Arguments))))
	}
	return b.String()
}

func renderAnswer(text string, width int) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width-2))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func summarizeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	if p, ok := args["path"].(string); ok {
		return "path=" + p
	}
	return fmt.Sprintf("%v", args)
}
