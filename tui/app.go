// Package tui shows benchmark progress in a terminal UI.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/orlp/sortx/bench"
)

// App is a single-screen benchmark viewer: a results table that fills
// in as runs complete, with a status bar underneath.
type App struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView

	rows int
}

func NewApp() *App {
	a := &App{
		app:   tview.NewApplication(),
		table: tview.NewTable(),
	}

	a.table.SetBorders(false).SetSelectable(false, false)
	a.table.SetBorder(true).SetTitle(" sortx Benchmarks ").SetTitleAlign(tview.AlignCenter)

	headers := []string{"Pattern", "Keys", "spreadsort (ms)", "stdlib (ms)", "Speedup"}
	for col, h := range headers {
		a.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignRight).
			SetSelectable(false))
	}
	a.rows = 1

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetText(" running... press q or Esc to quit")

	return a
}

// addResult appends one table row. Must run on the UI goroutine.
func (a *App) addResult(r bench.Result) {
	cells := []string{
		r.Pattern,
		fmt.Sprintf("%d", r.Size),
		fmt.Sprintf("%.2f", float64(r.SpreadNS)/1e6),
		fmt.Sprintf("%.2f", float64(r.StdNS)/1e6),
		fmt.Sprintf("%.2fx", r.Speedup),
	}
	for col, text := range cells {
		cell := tview.NewTableCell(text).SetAlign(tview.AlignRight)
		if col == 4 && r.Speedup >= 1 {
			cell.SetTextColor(tcell.ColorGreen)
		}
		a.table.SetCell(a.rows, col, cell)
	}
	a.rows++
}

// Run starts the UI and executes the benchmark in the background,
// streaming results into the table. It blocks until the user quits.
func (a *App) Run(run func(progress func(bench.Result)) error) error {
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Key() == tcell.KeyCtrlC:
			a.app.Stop()
			return nil
		case event.Rune() == 'q':
			a.app.Stop()
			return nil
		}
		return event
	})

	go func() {
		err := run(func(r bench.Result) {
			a.app.QueueUpdateDraw(func() {
				a.addResult(r)
			})
		})
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.status.SetText(fmt.Sprintf(" [red]error:[-] %v (press q to quit)", err))
				return
			}
			a.status.SetText(" done. press q or Esc to quit")
		})
	}()

	return a.app.SetRoot(layout, true).Run()
}
