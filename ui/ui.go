// Package ui is the desktop editor: a parameter form, the plot surface, point editing controls and a
// text box for importing and exporting array literals
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/config"
	"github.com/calvinmclean/stepcurve/controller"
	"github.com/calvinmclean/stepcurve/editor"
	"github.com/calvinmclean/stepcurve/metrics"
	"github.com/calvinmclean/stepcurve/session"
)

const appID = "com.github.calvinmclean.stepcurve"

// EditorUI wires one session to its window
type EditorUI struct {
	cfg     config.Config
	logger  *slog.Logger
	session *session.Session
}

func NewEditorUI(cfg config.Config, logger *slog.Logger) *EditorUI {
	return &EditorUI{
		cfg:     cfg,
		logger:  logger,
		session: session.New(logger),
	}
}

// Run shows the editor and blocks until the window is closed or ctx is done
func (ui *EditorUI) Run(ctx context.Context) {
	application := app.NewWithID(appID)
	window := application.NewWindow("Step Curve")

	window.SetContent(ui.content(application, window))

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	window.Resize(fyne.NewSize(1100, 650))
	window.ShowAndRun()
}

func (ui *EditorUI) content(application fyne.App, window fyne.Window) fyne.CanvasObject {
	s := ui.session

	form := newParamForm(ui.cfg.Curve)
	plot := NewPlot(s)

	hoverLabel := widget.NewLabel("")
	pointLabel := widget.NewLabel("no point selected")
	summaryLabel := widget.NewLabel("")
	statusLabel := widget.NewLabel("")

	indexEntry := widget.NewEntry()
	indexEntry.SetPlaceHolder("index")
	valueEntry := widget.NewEntry()
	valueEntry.SetPlaceHolder("value")

	textBox := widget.NewMultiLineEntry()
	textBox.SetPlaceHolder("int Curve[N] = { ... };")
	textBox.Wrapping = fyne.TextWrapWord

	updatePoint := func() {
		info, ok := s.PointInfo()
		if !ok {
			pointLabel.SetText("no point selected")
			return
		}
		pointLabel.SetText(info.String())
		indexEntry.SetText(strconv.Itoa(info.Index))
	}

	s.OnChange(func() {
		summaryLabel.SetText(s.Summary().String())
		updatePoint()
		plot.Refresh()
	})

	plot.OnEdit = func(out editor.Outcome) {
		statusLabel.SetText("")
		if out.Release != nil {
			statusLabel.SetText(out.Release.String())
		}
		updatePoint()
	}
	plot.OnError = func(err error) {
		statusLabel.SetText(err.Error())
	}
	plot.OnHover = func(info metrics.PointInfo, ok bool) {
		if !ok {
			hoverLabel.SetText("")
			return
		}
		hoverLabel.SetText(info.String())
	}

	// handle sends a button event through the plot so labels and errors are reported the same way
	handle := func(ev editor.Event) func() {
		return func() { plot.handle(ev) }
	}

	generate := func() {
		spec, err := form.fields().spec()
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		err = s.Generate(spec)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		statusLabel.SetText(fmt.Sprintf("generated %s curve", spec.Kind))
	}

	selectButton := widget.NewButton("Select", func() {
		idx, err := strconv.Atoi(strings.TrimSpace(indexEntry.Text))
		if err != nil {
			statusLabel.SetText("index must be a whole number")
			return
		}
		err = s.Select(idx)
		if err != nil {
			statusLabel.SetText(err.Error())
			return
		}
		updatePoint()
		plot.Refresh()
	})

	setButton := widget.NewButton("Set", func() {
		v, err := strconv.ParseFloat(strings.TrimSpace(valueEntry.Text), 64)
		if err != nil {
			statusLabel.SetText("value must be a number")
			return
		}
		plot.handle(editor.SetValue{Value: v})
	})

	importButton := widget.NewButton("Import", func() {
		err := s.Import(textBox.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		statusLabel.SetText(fmt.Sprintf("imported %d points", s.Len()))
	})

	exportButton := widget.NewButton("Export", func() {
		out, err := s.Export(ui.cfg.Export.ArrayName)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		textBox.SetText(out)
		application.Clipboard().SetContent(out)
		statusLabel.SetText("exported to text box and clipboard")
	})

	deviceButton := widget.NewButton("Device...", func() {
		NewDeviceWindow(application, controller.ConfigFrom(ui.cfg.Device), s.Sequence, ui.logger).Show()
	})

	editRow := container.NewHBox(
		widget.NewButton("<", handle(editor.KeyShift{Direction: stepcurve.DirectionPrev})),
		widget.NewButton(">", handle(editor.KeyShift{Direction: stepcurve.DirectionNext})),
		widget.NewButton("-1", handle(editor.KeyNudge{Delta: -1})),
		widget.NewButton("-0.1", handle(editor.KeyNudge{Delta: -0.1})),
		widget.NewButton("+0.1", handle(editor.KeyNudge{Delta: 0.1})),
		widget.NewButton("+1", handle(editor.KeyNudge{Delta: 1})),
		container.NewGridWrap(fyne.NewSize(80, indexEntry.MinSize().Height), indexEntry),
		selectButton,
		container.NewGridWrap(fyne.NewSize(80, valueEntry.MinSize().Height), valueEntry),
		setButton,
		widget.NewButton("Deselect", func() {
			s.Deselect()
			updatePoint()
			plot.Refresh()
		}),
	)

	left := container.NewVBox(
		widget.NewCard("Parameters", "", form.object()),
		widget.NewButton("Generate", generate),
		container.NewGridWithColumns(3, importButton, exportButton, deviceButton),
	)

	center := container.NewBorder(
		nil,
		container.NewVBox(editRow, pointLabel, hoverLabel, summaryLabel, statusLabel),
		nil, nil,
		plot,
	)

	split := container.NewHSplit(
		container.NewBorder(left, nil, nil, nil, textBox),
		center,
	)
	split.SetOffset(0.3)

	generate()
	return split
}
