package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ctf/internal/domain"
	"ctf/internal/report"
)

// browserItem is one test listed in the browser
type browserItem struct {
	report  *domain.ReportSummary
	section domain.SectionSummary
	entry   string
}

// SectionBrowser displays the non-passing entries of a run in an interactive TUI
type SectionBrowser struct{}

// NewSectionBrowser creates a new SectionBrowser
func NewSectionBrowser() *SectionBrowser {
	return &SectionBrowser{}
}

// browserItems flattens the run in report and section order, skipping
// passing tests
func browserItems(summary *domain.RunSummary) []browserItem {
	var items []browserItem
	for i := range summary.Reports {
		r := &summary.Reports[i]
		for _, s := range r.Sections {
			if s.Name == report.SectionPass {
				continue
			}
			for _, entry := range s.Entries {
				items = append(items, browserItem{report: r, section: s, entry: entry})
			}
		}
	}
	return items
}

// View displays the run in an interactive TUI
func (sb *SectionBrowser) View(summary *domain.RunSummary) error {
	items := browserItems(summary)
	if len(items) == 0 {
		color.Green("✓ Nothing to review!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, item := range items {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, item.entry), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(" Classified tests (%d entries, %d report(s)) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ",
		len(items), len(summary.Reports)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(items) {
			return
		}
		statsView.SetText(formatItemStats(items[index]))
		detailsView.SetText(formatItemDetails(items[index]))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func formatItemStats(item browserItem) string {
	return fmt.Sprintf("[cyan]report:[white] [yellow]%s[white]\n[cyan]section:[white] %s [gray](%s %s)[white]\n",
		item.report.ReportPath, item.section.Title, item.report.Machine, item.report.Compiler)
}

// formatItemDetails formats an entry for display using tview color tags
func formatItemDetails(item browserItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[red]%s[white]\n\n", tview.Escape(item.entry))

	if details, ok := item.section.Details[item.entry]; ok && strings.TrimSpace(details) != "" {
		fmt.Fprintf(&b, "[yellow]Diagnostics:[white]\n%s\n", tview.Escape(details))
		return b.String()
	}
	if item.section.Name == report.SectionXFail {
		b.WriteString("[gray]expected failure, matched and removed from its status list[white]\n")
		return b.String()
	}
	b.WriteString("[gray]no diagnostics recorded; rerun classify with --detailed[white]\n")
	return b.String()
}
