package settings

import (
	"image"
	"image/color"
	"time"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/recorder"
)

// Color palette - modern dark theme
var (
	colorBG         = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel      = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorPanelLight = color.NRGBA{R: 55, G: 55, B: 62, A: 255}
	colorText       = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent     = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorWarning    = color.NRGBA{R: 255, G: 180, B: 0, A: 255}
	colorRecording  = color.NRGBA{R: 80, G: 60, B: 20, A: 255}
	colorReject     = color.NRGBA{R: 120, G: 40, B: 40, A: 255}
)

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	// Clicks that reach no field land here.
	area := rect.Push(gtx.Ops)
	event.Op(gtx.Ops, &w.background)
	area.Pop()

	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(w.drawTitle),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			// Scrollable content area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				return material.List(th, &w.contentList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(w.drawUILanguageSection),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(w.drawShortcutsSection),
					)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Buttons (fixed at bottom)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Min.X}}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawButton(gtx, &w.closeBtn, i18n.T("settings_close"), colorAccent, colorText)
					}),
				)
			}),
		)
	})
}

func (w *Window) drawTitle(gtx layout.Context) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = colorText

	label := material.Label(th, unit.Sp(22), i18n.T("settings_title"))
	label.Font.Weight = font.Bold
	return label.Layout(gtx)
}

func (w *Window) drawSectionHeader(gtx layout.Context, text string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = colorTextDim

	label := material.Label(th, unit.Sp(12), text)
	label.Font.Weight = font.Medium
	return label.Layout(gtx)
}

func (w *Window) drawUILanguageSection(gtx layout.Context) layout.Dimensions {
	selectedLang := w.getSelectedUILang()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("settings_language"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				langs := i18n.AvailableLanguages()
				children := make([]layout.FlexChild, 0, 2*len(langs))
				for i, lang := range langs {
					if i > 0 {
						children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout))
					}
					children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawLangButton(gtx, lang, i18n.LanguageName(lang), selectedLang == lang)
					}))
				}
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
			}),
		)
	})
}

func (w *Window) drawLangButton(gtx layout.Context, lang i18n.Language, label string, selected bool) layout.Dimensions {
	btn := w.getLangButton(lang)

	bgColor := colorPanel
	textColor := colorTextDim
	if selected {
		bgColor = colorAccent
		textColor = colorText
	}
	return drawPill(gtx, btn, label, 6, layout.Inset{
		Top: unit.Dp(8), Bottom: unit.Dp(8),
		Left: unit.Dp(16), Right: unit.Dp(16),
	}, bgColor, textColor)
}

func (w *Window) drawShortcutsSection(gtx layout.Context) layout.Dimensions {
	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("settings_shortcuts"))
			}),
		}
		if len(w.rows) == 0 {
			children = append(children,
				layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorTextDim
					return material.Body2(th, i18n.T("settings_empty")).Layout(gtx)
				}),
			)
		}
		for _, r := range w.rows {
			children = append(children,
				layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return w.drawRow(gtx, r)
				}),
			)
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (w *Window) drawRow(gtx layout.Context, r *row) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorText
			return material.Body1(th, string(r.name)).Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawField(gtx, r)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawSmallButton(gtx, &r.clearBtn, i18n.T("settings_clear"))
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawSmallButton(gtx, &r.resetBtn, i18n.T("settings_reset"))
		}),
	)
}

// drawField draws the recording field and registers its event target.
func (w *Window) drawField(gtx layout.Context, r *row) layout.Dimensions {
	recording := r.rec.Status() != recorder.Idle
	textColor := colorAccent
	bgColor := colorPanelLight
	switch {
	case r.flashing(time.Now()):
		textColor = colorText
		bgColor = colorReject
	case recording:
		textColor = colorWarning
		bgColor = colorRecording
	}

	gtx.Constraints.Min.X = min(gtx.Dp(unit.Dp(180)), gtx.Constraints.Max.X)

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = textColor
		label := material.Label(th, unit.Sp(14), "⌨  "+fieldText(r, w.deps.Store))
		label.Font.Weight = font.Medium
		return label.Layout(gtx)
	})
	call := macro.Stop()

	// Draw background with measured size
	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	// Replay content
	call.Add(gtx.Ops)

	area := clip.Rect{Max: dims.Size}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.tag)
	area.Pop()
	r.size = dims.Size

	return dims
}

func (w *Window) drawPanel(gtx layout.Context, content layout.Widget) layout.Dimensions {
	// First layout content to get its size
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(16)).Layout(gtx, content)
	call := macro.Stop()

	// Draw background with content size
	rr := gtx.Dp(unit.Dp(12))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, colorPanel, rect.Op(gtx.Ops))

	// Replay content drawing
	call.Add(gtx.Ops)

	return dims
}

func (w *Window) drawButton(gtx layout.Context, btn *widget.Clickable, label string, bgColor, textColor color.NRGBA) layout.Dimensions {
	return drawPill(gtx, btn, label, 8, layout.Inset{
		Top: unit.Dp(10), Bottom: unit.Dp(10),
		Left: unit.Dp(20), Right: unit.Dp(20),
	}, bgColor, textColor)
}

func (w *Window) drawSmallButton(gtx layout.Context, btn *widget.Clickable, label string) layout.Dimensions {
	return drawPill(gtx, btn, label, 6, layout.UniformInset(unit.Dp(8)), colorPanelLight, colorTextDim)
}

// drawPill draws a clickable label on a rounded background.
func drawPill(gtx layout.Context, btn *widget.Clickable, label string, radius unit.Dp, inset layout.Inset, bgColor, textColor color.NRGBA) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(14), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(radius)
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}
