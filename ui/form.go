package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/curve"
)

// paramFields is the text of the parameter form
type paramFields struct {
	Kind       string
	Points     string
	Start      string
	End        string
	RangeStart string
	RangeEnd   string
	LeadIn     string
	LeadOut    string
	Exponent   string
}

func fieldsFromSpec(s curve.Spec) paramFields {
	return paramFields{
		Kind:       s.Kind.String(),
		Points:     strconv.Itoa(s.PointCount),
		Start:      strconv.Itoa(s.StartValue),
		End:        strconv.Itoa(s.EndValue),
		RangeStart: strconv.Itoa(s.RangeStartPct),
		RangeEnd:   strconv.Itoa(s.RangeEndPct),
		LeadIn:     strconv.Itoa(s.LeadInSize),
		LeadOut:    strconv.Itoa(s.LeadOutSize),
		Exponent:   strconv.FormatFloat(s.PowerExponent, 'f', 1, 64),
	}
}

// spec parses the fields into a validated curve.Spec. The form only offers leads of at least one point
func (f paramFields) spec() (curve.Spec, error) {
	kind, err := stepcurve.ParseCurveKind(f.Kind)
	if err != nil {
		return curve.Spec{}, err
	}

	s := curve.Spec{Kind: kind, KindName: kind.String()}

	ints := []struct {
		name  string
		text  string
		value *int
	}{
		{"points", f.Points, &s.PointCount},
		{"start value", f.Start, &s.StartValue},
		{"end value", f.End, &s.EndValue},
		{"range start", f.RangeStart, &s.RangeStartPct},
		{"range end", f.RangeEnd, &s.RangeEndPct},
		{"lead-in", f.LeadIn, &s.LeadInSize},
		{"lead-out", f.LeadOut, &s.LeadOutSize},
	}
	for _, field := range ints {
		*field.value, err = strconv.Atoi(strings.TrimSpace(field.text))
		if err != nil {
			return curve.Spec{}, fmt.Errorf("%w: %s must be a whole number", stepcurve.ErrInvalidSpec, field.name)
		}
	}

	s.PowerExponent = curve.DefaultSpec().PowerExponent
	if kind == stepcurve.CurvePower {
		s.PowerExponent, err = strconv.ParseFloat(strings.TrimSpace(f.Exponent), 64)
		if err != nil {
			return curve.Spec{}, fmt.Errorf("%w: exponent must be a number", stepcurve.ErrInvalidSpec)
		}
	}

	if s.LeadInSize < 1 || s.LeadOutSize < 1 {
		return curve.Spec{}, fmt.Errorf("%w: lead sizes must be 1-100", stepcurve.ErrInvalidSpec)
	}

	err = s.Validate()
	if err != nil {
		return curve.Spec{}, err
	}
	return s, nil
}

// paramForm holds the widgets of the parameter form
type paramForm struct {
	kind       *widget.Select
	points     *widget.Entry
	start      *widget.Entry
	end        *widget.Entry
	rangeStart *widget.Entry
	rangeEnd   *widget.Entry
	leadIn     *widget.Entry
	leadOut    *widget.Entry
	exponent   *widget.Entry
}

func newParamForm(initial curve.Spec) *paramForm {
	f := &paramForm{
		points:     widget.NewEntry(),
		start:      widget.NewEntry(),
		end:        widget.NewEntry(),
		rangeStart: widget.NewEntry(),
		rangeEnd:   widget.NewEntry(),
		leadIn:     widget.NewEntry(),
		leadOut:    widget.NewEntry(),
		exponent:   widget.NewEntry(),
	}
	f.kind = widget.NewSelect(stepcurve.CurveKindNames(), f.kindChanged)
	f.set(fieldsFromSpec(initial))
	return f
}

func (f *paramForm) kindChanged(name string) {
	if name == stepcurve.CurvePower.String() {
		f.exponent.Enable()
	} else {
		f.exponent.Disable()
	}
}

func (f *paramForm) set(p paramFields) {
	f.points.SetText(p.Points)
	f.start.SetText(p.Start)
	f.end.SetText(p.End)
	f.rangeStart.SetText(p.RangeStart)
	f.rangeEnd.SetText(p.RangeEnd)
	f.leadIn.SetText(p.LeadIn)
	f.leadOut.SetText(p.LeadOut)
	f.exponent.SetText(p.Exponent)
	f.kind.SetSelected(p.Kind)
	f.kindChanged(p.Kind)
}

func (f *paramForm) fields() paramFields {
	return paramFields{
		Kind:       f.kind.Selected,
		Points:     f.points.Text,
		Start:      f.start.Text,
		End:        f.end.Text,
		RangeStart: f.rangeStart.Text,
		RangeEnd:   f.rangeEnd.Text,
		LeadIn:     f.leadIn.Text,
		LeadOut:    f.leadOut.Text,
		Exponent:   f.exponent.Text,
	}
}

func (f *paramForm) object() fyne.CanvasObject {
	return widget.NewForm(
		widget.NewFormItem("Curve", f.kind),
		widget.NewFormItem("Points (10-500)", f.points),
		widget.NewFormItem("Start value", f.start),
		widget.NewFormItem("End value", f.end),
		widget.NewFormItem("Range start %", f.rangeStart),
		widget.NewFormItem("Range end %", f.rangeEnd),
		widget.NewFormItem("Lead-in", f.leadIn),
		widget.NewFormItem("Lead-out", f.leadOut),
		widget.NewFormItem("Exponent", f.exponent),
	)
}
