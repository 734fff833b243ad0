package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/visuallab/internal/formatter"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/workflow"
)

const (
	noDatasetText = "Please upload a dataset first to begin modeling."
	noModelText   = "No trained model available. Please train a model first!"
)

// View renders the tab bar, notice, active tab content and contextual help.
func (m *Model) View() string {
	sections := []string{
		styles.title.Render("Visual Lab · AutoML Workflow"),
		m.renderTabs(),
	}
	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, notice)
	}

	var body string
	switch m.state.ActiveTab {
	case workflow.TabUpload:
		body = m.renderUpload()
	case workflow.TabProfiling:
		body = m.renderProfiling()
	case workflow.TabModeling:
		body = m.renderModeling()
	case workflow.TabDownload:
		body = m.renderDownload()
	}
	sections = append(sections, body, m.renderHelp())

	return strings.Join(sections, "\n\n")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(workflow.Tabs))
	for i, tab := range workflow.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		switch {
		case tab == m.state.ActiveTab:
			tabs[i] = styles.active.Render(label)
		case m.state.Enabled(tab):
			tabs[i] = styles.tab.Render(label)
		default:
			tabs[i] = styles.disabled.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderNotice() string {
	n := m.state.Notice
	if n == nil {
		return ""
	}

	var text string
	switch n.Kind {
	case workflow.NoticeSuccess:
		text = styles.ok.Render("✓ " + n.Message)
	case workflow.NoticeError:
		text = styles.err.Render("✗ " + n.Message)
	default:
		text = styles.warn.Render("• " + n.Message)
	}
	return styles.notice.Render(text + "  " + styles.help.Render("(x to dismiss)"))
}

func (m *Model) renderUpload() string {
	var b strings.Builder
	b.WriteString(styles.heading.Render("Upload Dataset"))
	b.WriteString("\n\nEnter the path of a CSV file and press enter.\n\n")
	b.WriteString(m.input.View())

	if m.uploading {
		b.WriteString("\n\n" + styles.help.Render("Uploading..."))
	}
	if f := m.state.File; f != nil {
		b.WriteString(fmt.Sprintf("\n\nCurrent dataset: %s %s", styles.value.Render(f.Name), styles.label.Render("("+shared.FormatBytes(f.Size)+")")))
	}

	sections := []string{b.String(), m.renderSummaryCards()}
	if m.state.Preview != nil {
		sections = append(sections, styles.heading.Render("Dataset Preview"), m.preview.View())
	}
	return strings.Join(sections, "\n\n")
}

// renderSummaryCards shows row, column and missing-value counts, or "-" before an upload.
func (m *Model) renderSummaryCards() string {
	rows, columns, missing := "-", "-", "-"
	if stats := m.state.Stats; stats != nil {
		rows = strconv.Itoa(stats.Rows)
		columns = strconv.Itoa(stats.Columns)
		missing = strconv.Itoa(stats.MissingValues)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Rows", rows),
		renderCard("Columns", columns),
		renderCard("Missing Values", missing),
	)
}

func (m *Model) renderProfiling() string {
	stats := m.state.Stats
	if stats == nil {
		return styles.help.Render(noDatasetText)
	}

	return strings.Join([]string{
		styles.heading.Render("Data Types"),
		m.renderBar("Numeric", stats.NumericShare(), fmt.Sprintf("%d (%s)", stats.DataTypes.Numeric, shared.FormatPercent(stats.NumericShare()))) + "\n" +
			m.renderBar("Categorical", stats.CategoricalShare(), fmt.Sprintf("%d (%s)", stats.DataTypes.Categorical, shared.FormatPercent(stats.CategoricalShare()))),
		styles.heading.Render("Data Quality"),
		m.renderBar("Completeness", stats.Completeness(), shared.FormatPercent(stats.Completeness())),
	}, "\n\n")
}

func (m *Model) renderModeling() string {
	if !m.state.HasFile() {
		return styles.help.Render(noDatasetText)
	}

	sections := []string{styles.heading.Render("Model Training")}
	switch m.state.Phase {
	case workflow.PhaseTraining:
		status := m.spinner.View() + " Training models..."
		if m.lastUpdate.Message != "" && m.lastUpdate.Percent > 0 {
			status += "  " + styles.label.Render(m.lastUpdate.Message)
		}
		sections = append(sections,
			status,
			m.bar.ViewAs(float64(m.state.Progress)/100)+"\n"+fmt.Sprintf("%d%% Complete", m.state.Progress),
		)
	case workflow.PhaseFailed:
		sections = append(sections,
			m.bar.ViewAs(float64(m.state.Progress)/100)+"\n"+styles.err.Render(fmt.Sprintf("Stopped at %d%%", m.state.Progress)),
			"Press t to try again.",
		)
	default:
		sections = append(sections, fmt.Sprintf("Dataset: %s. Press t to start training.", m.state.File.Name))
	}

	if m.state.HasModel() {
		sections = append(sections, styles.heading.Render("Model Performance"), renderMetricCards(m.state.Metrics))
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderDownload() string {
	if !m.state.HasModel() {
		return styles.help.Render(noModelText)
	}

	sections := []string{
		styles.heading.Render("Download Results"),
		formatter.RenderMetricsTable(m.state.Metrics),
		fmt.Sprintf("%s  %s", styles.ok.Render("[m] Download Model"), styles.ok.Render("[r] Download Training Report")),
	}
	if len(m.saved) > 0 {
		var b strings.Builder
		b.WriteString(styles.label.Render("Saved files:"))
		for _, path := range m.saved {
			b.WriteString("\n  • " + path)
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderBar(label string, fraction float64, value string) string {
	return fmt.Sprintf("%-13s %s %s", label, m.bar.ViewAs(fraction), value)
}

func (m *Model) renderHelp() string {
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}
	return m.help.ShortHelpView(m.helpKeys())
}

// helpKeys lists the bindings that apply to the active tab.
func (m *Model) helpKeys() []key.Binding {
	if m.input.Focused() {
		return []key.Binding{m.keys.submit, m.keys.blur, m.keys.next, m.keys.abort}
	}

	var keys []key.Binding
	switch m.state.ActiveTab {
	case workflow.TabUpload:
		keys = append(keys, m.keys.focus)
	case workflow.TabModeling:
		if m.state.Training {
			keys = append(keys, m.keys.cancel)
		} else {
			keys = append(keys, m.keys.train)
		}
	case workflow.TabDownload:
		if m.state.HasModel() {
			keys = append(keys, m.keys.model, m.keys.report)
		}
	}
	if m.state.Notice != nil {
		keys = append(keys, m.keys.dismiss)
	}
	return append(keys, m.keys.next, m.keys.help, m.keys.quit)
}

func renderCard(label, value string) string {
	return styles.card.Render(styles.label.Render(label) + "\n" + styles.value.Render(value))
}

func renderMetricCards(metrics *models.ModelMetrics) string {
	list := metrics.List()
	cards := make([]string, len(list))
	for i, metric := range list {
		cards[i] = renderCard(metric.Label, shared.FormatPercent(metric.Value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
