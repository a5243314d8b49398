package termview

import (
	"fmt"
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// This file implements ansicode.Handler: the boundary where the external
// protocol engine mutates screen state. The decoder owns escape-sequence
// parsing; every callback below translates one decoded action into grid,
// cursor, or mode mutations and row-level dirty marks.

// Backspace moves the cursor left one column, stopping at column 0.
func (s *Screen) Backspace() {
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
}

// Bell notifies the bell handler, if any.
func (s *Screen) Bell() {
	if s.bell != nil {
		s.bell.Ring()
	}
}

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() {
	s.cursor.Col = 0
}

// ClearLine erases part or all of the cursor's row.
func (s *Screen) ClearLine(mode ansicode.LineClearMode) {
	g := s.activeGrid()
	switch mode {
	case ansicode.LineClearModeRight:
		g.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols)
	case ansicode.LineClearModeLeft:
		g.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case ansicode.LineClearModeAll:
		g.ClearRow(s.cursor.Row)
	}
}

// ClearScreen erases screen regions relative to the cursor.
func (s *Screen) ClearScreen(mode ansicode.ClearMode) {
	g := s.activeGrid()
	switch mode {
	case ansicode.ClearModeBelow:
		g.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols)
		for row := s.cursor.Row + 1; row < s.rows; row++ {
			g.ClearRow(row)
		}
	case ansicode.ClearModeAbove:
		for row := 0; row < s.cursor.Row; row++ {
			g.ClearRow(row)
		}
		g.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case ansicode.ClearModeAll:
		g.ClearAll()
	case ansicode.ClearModeSaved:
		g.ClearAll()
		s.history.Clear()
	}
}

// ClearTabs removes tab stops at the current column or everywhere.
func (s *Screen) ClearTabs(mode ansicode.TabulationClearMode) {
	switch mode {
	case ansicode.TabulationClearModeCurrent:
		s.activeGrid().ClearTabStop(s.cursor.Col)
	case ansicode.TabulationClearModeAll:
		s.activeGrid().ClearAllTabStops()
	}
}

// ClipboardLoad ignores OSC 52 clipboard reads; clipboard access belongs
// to the host editor.
func (s *Screen) ClipboardLoad(clipboard byte, terminator string) {}

// ClipboardStore ignores OSC 52 clipboard writes.
func (s *Screen) ClipboardStore(clipboard byte, data []byte) {}

// ConfigureCharset assigns a charset to one of the G0-G3 slots.
func (s *Screen) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	idx := int(index)
	if idx >= 0 && idx < len(s.charsets) {
		s.charsets[idx] = Charset(charset)
	}
}

// Decaln fills the screen with 'E' (DEC screen alignment test).
func (s *Screen) Decaln() {
	s.activeGrid().FillWithE()
}

// DeleteChars removes n characters at the cursor, shifting the rest of
// the row left.
func (s *Screen) DeleteChars(n int) {
	s.activeGrid().DeleteChars(s.cursor.Row, s.cursor.Col, n)
}

// DeleteLines removes n lines at the cursor within the scroll region.
func (s *Screen) DeleteLines(n int) {
	if s.cursor.Row >= s.scrollTop && s.cursor.Row < s.scrollBottom {
		s.activeGrid().DeleteLines(s.cursor.Row, n, s.scrollBottom)
	}
}

// DeviceStatus responds to DSR queries (readiness, cursor position).
func (s *Screen) DeviceStatus(n int) {
	switch n {
	case 5:
		s.writeResponse("\x1b[0n")
	case 6:
		s.writeResponse(fmt.Sprintf("\x1b[%d;%dR", s.cursor.Row+1, s.cursor.Col+1))
	}
}

// EraseChars resets n characters at the cursor without shifting.
func (s *Screen) EraseChars(n int) {
	s.activeGrid().EraseChars(s.cursor.Row, s.cursor.Col, n)
}

// Goto moves the cursor to (row, col), origin-mode adjusted.
func (s *Screen) Goto(row, col int) {
	s.cursor.Row = clamp(s.effectiveRow(row), 0, s.rows-1)
	s.cursor.Col = clamp(col, 0, s.cols-1)
}

// GotoCol moves the cursor to the given column on the current row.
func (s *Screen) GotoCol(col int) {
	s.cursor.Col = clamp(col, 0, s.cols-1)
}

// GotoLine moves the cursor to the given row, origin-mode adjusted.
func (s *Screen) GotoLine(row int) {
	s.cursor.Row = clamp(s.effectiveRow(row), 0, s.rows-1)
}

// HorizontalTabSet enables a tab stop at the current column.
func (s *Screen) HorizontalTabSet() {
	s.activeGrid().SetTabStop(s.cursor.Col)
}

// IdentifyTerminal responds with a VT220 identification.
func (s *Screen) IdentifyTerminal(b byte) {
	s.writeResponse("\x1b[?62;c")
}

// Input writes a character at the cursor, handling charset translation,
// wide characters, wrapping, and insert mode.
func (s *Screen) Input(r rune) {
	if s.activeCharset >= 0 && s.activeCharset < len(s.charsets) &&
		s.charsets[s.activeCharset] == CharsetLineDrawing {
		r = translateLineDrawing(r)
	}

	width := runeWidth(r)
	if width == 0 {
		// Combining marks are dropped rather than merged.
		return
	}

	g := s.activeGrid()

	if s.cursor.Col+width > s.cols {
		if s.modes&ModeLineWrap != 0 {
			s.cursor.Col = 0
			s.cursor.Row++
			s.scrollIfNeeded()
		} else {
			if width == 2 {
				return
			}
			s.cursor.Col = s.cols - 1
		}
	}

	if s.modes&ModeInsert != 0 {
		g.InsertBlanks(s.cursor.Row, s.cursor.Col, width)
	}

	if s.cursor.Row < 0 || s.cursor.Row >= s.rows || s.cursor.Col < 0 {
		return
	}

	if cell := g.Cell(s.cursor.Row, s.cursor.Col); cell != nil {
		cell.Char = r
		cell.Fg = s.template.Fg
		cell.Bg = s.template.Bg
		cell.Flags = s.template.Flags
		if width == 2 {
			cell.SetFlag(CellFlagWideChar)
		} else {
			cell.ClearFlag(CellFlagWideChar | CellFlagWideCharSpacer)
		}
		g.MarkRow(s.cursor.Row)
	}
	s.cursor.Col++

	if width == 2 && s.cursor.Col < s.cols {
		if spacer := g.Cell(s.cursor.Row, s.cursor.Col); spacer != nil {
			spacer.Reset()
			spacer.Fg = s.template.Fg
			spacer.Bg = s.template.Bg
			spacer.SetFlag(CellFlagWideCharSpacer)
		}
		s.cursor.Col++
	}

	if s.cursor.Col >= s.cols && s.modes&ModeLineWrap == 0 {
		s.cursor.Col = s.cols - 1
	}
}

// InsertBlank inserts n blank cells at the cursor, shifting the row right.
func (s *Screen) InsertBlank(n int) {
	s.activeGrid().InsertBlanks(s.cursor.Row, s.cursor.Col, n)
}

// InsertBlankLines inserts n blank lines at the cursor within the scroll
// region.
func (s *Screen) InsertBlankLines(n int) {
	if s.cursor.Row >= s.scrollTop && s.cursor.Row < s.scrollBottom {
		s.activeGrid().InsertLines(s.cursor.Row, n, s.scrollBottom)
	}
}

// LineFeed moves the cursor down one row, scrolling at the region bottom.
func (s *Screen) LineFeed() {
	if s.modes&ModeLineFeedNewLine != 0 {
		s.cursor.Col = 0
	}
	s.cursor.Row++
	s.scrollIfNeeded()
	// The next pass must revisit the cursor's new row even when its text
	// is unchanged.
	s.activeGrid().MarkRow(s.cursor.Row)
}

// MoveBackward moves the cursor left n columns.
func (s *Screen) MoveBackward(n int) {
	s.cursor.Col = clamp(s.cursor.Col-n, 0, s.cols-1)
}

// MoveBackwardTabs moves the cursor back n tab stops.
func (s *Screen) MoveBackwardTabs(n int) {
	for i := 0; i < n; i++ {
		s.cursor.Col = s.activeGrid().PrevTabStop(s.cursor.Col)
	}
}

// MoveDown moves the cursor down n rows without scrolling.
func (s *Screen) MoveDown(n int) {
	s.cursor.Row = clamp(s.cursor.Row+n, 0, s.rows-1)
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (s *Screen) MoveDownCr(n int) {
	s.cursor.Row = clamp(s.cursor.Row+n, 0, s.rows-1)
	s.cursor.Col = 0
}

// MoveForward moves the cursor right n columns.
func (s *Screen) MoveForward(n int) {
	s.cursor.Col = clamp(s.cursor.Col+n, 0, s.cols-1)
}

// MoveForwardTabs moves the cursor forward n tab stops.
func (s *Screen) MoveForwardTabs(n int) {
	for i := 0; i < n; i++ {
		s.cursor.Col = s.activeGrid().NextTabStop(s.cursor.Col)
	}
}

// MoveUp moves the cursor up n rows without scrolling.
func (s *Screen) MoveUp(n int) {
	s.cursor.Row = clamp(s.cursor.Row-n, 0, s.rows-1)
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (s *Screen) MoveUpCr(n int) {
	s.cursor.Row = clamp(s.cursor.Row-n, 0, s.rows-1)
	s.cursor.Col = 0
}

// PopKeyboardMode removes n entries from the keyboard mode stack.
func (s *Screen) PopKeyboardMode(n int) {
	for i := 0; i < n && len(s.keyboardModes) > 0; i++ {
		s.keyboardModes = s.keyboardModes[:len(s.keyboardModes)-1]
	}
}

// PopTitle restores the previous title from the stack.
func (s *Screen) PopTitle() {
	if len(s.titleStack) > 0 {
		s.title = s.titleStack[len(s.titleStack)-1]
		s.titleStack = s.titleStack[:len(s.titleStack)-1]
		if s.titleFn != nil {
			s.titleFn.SetTitle(s.title)
		}
	}
}

// PrivacyMessageReceived ignores PM sequences.
func (s *Screen) PrivacyMessageReceived(data []byte) {}

// PushKeyboardMode adds a keyboard mode to the stack.
func (s *Screen) PushKeyboardMode(mode ansicode.KeyboardMode) {
	s.keyboardModes = append(s.keyboardModes, mode)
}

// PushTitle saves the current title on the stack.
func (s *Screen) PushTitle() {
	s.titleStack = append(s.titleStack, s.title)
}

// ReportKeyboardMode responds with the top of the keyboard mode stack.
func (s *Screen) ReportKeyboardMode() {
	var mode ansicode.KeyboardMode
	if len(s.keyboardModes) > 0 {
		mode = s.keyboardModes[len(s.keyboardModes)-1]
	}
	s.writeResponse(fmt.Sprintf("\x1b[?%du", mode))
}

// ReportModifyOtherKeys responds with the current modify-other-keys mode.
func (s *Screen) ReportModifyOtherKeys() {
	s.writeResponse(fmt.Sprintf("\x1b[>4;%dm", s.modifyOtherKeys))
}

// ResetColor ignores palette redefinition; highlighting works on the
// named 16-color range, which is not redefinable by the guest.
func (s *Screen) ResetColor(i int) {}

// ResetState clears the screen and restores default cursor, modes, and
// attributes.
func (s *Screen) ResetState() {
	s.activeGrid().ClearAll()
	s.cursor.Row = 0
	s.cursor.Col = 0
	s.cursor.Visible = true
	s.cursor.Style = CursorStyleBlinkingBlock

	s.template = NewCell()
	s.scrollTop = 0
	s.scrollBottom = s.rows
	s.modes = ModeLineWrap | ModeShowCursor

	s.charsets = [4]Charset{}
	s.activeCharset = 0
	s.keyboardModes = s.keyboardModes[:0]
}

// RestoreCursorPosition restores the state saved by SaveCursorPosition.
func (s *Screen) RestoreCursorPosition() {
	s.restoreCursor()
}

func (s *Screen) restoreCursor() {
	if s.savedCursor == nil {
		return
	}
	s.cursor.Row = s.savedCursor.Row
	s.cursor.Col = s.savedCursor.Col
	s.template = s.savedCursor.Template

	if s.savedCursor.OriginMode {
		s.modes |= ModeOrigin
	} else {
		s.modes &^= ModeOrigin
	}
	s.activeCharset = s.savedCursor.CharsetIndex
	s.charsets = s.savedCursor.Charsets
}

// ReverseIndex moves the cursor up one row, scrolling down at the top of
// the scroll region.
func (s *Screen) ReverseIndex() {
	if s.cursor.Row == s.scrollTop {
		s.activeGrid().ScrollDown(s.scrollTop, s.scrollBottom, 1)
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}

// SaveCursorPosition saves cursor position, attributes, and charset state.
func (s *Screen) SaveCursorPosition() {
	s.saveCursor()
}

func (s *Screen) saveCursor() {
	s.savedCursor = &SavedCursor{
		Row:          s.cursor.Row,
		Col:          s.cursor.Col,
		Template:     s.template,
		OriginMode:   s.modes&ModeOrigin != 0,
		CharsetIndex: s.activeCharset,
		Charsets:     s.charsets,
	}
}

// ScrollDown shifts the scroll region down n lines.
func (s *Screen) ScrollDown(n int) {
	s.activeGrid().ScrollDown(s.scrollTop, s.scrollBottom, n)
}

// ScrollUp shifts the scroll region up n lines, retaining top lines in
// history when scrolling the full screen.
func (s *Screen) ScrollUp(n int) {
	s.activeGrid().ScrollUp(s.scrollTop, s.scrollBottom, n)
}

// SetActiveCharset selects which of the G0-G3 slots is active.
func (s *Screen) SetActiveCharset(n int) {
	if n >= 0 && n < len(s.charsets) {
		s.activeCharset = n
	}
}

// SetColor ignores palette redefinition (see ResetColor).
func (s *Screen) SetColor(index int, c color.Color) {}

// SetCursorStyle updates the cursor rendering style.
func (s *Screen) SetCursorStyle(style ansicode.CursorStyle) {
	s.cursor.Style = CursorStyle(style)
}

// SetDynamicColor responds to OSC 10/11 dynamic color queries with the
// baseline foreground/background.
func (s *Screen) SetDynamicColor(prefix string, index int, terminator string) {
	var rgba color.RGBA
	switch index {
	case 10:
		rgba = Palette[ColorWhite]
	case 11:
		rgba = Palette[ColorBlack]
	default:
		return
	}
	s.writeResponse(fmt.Sprintf("\x1b]%s;rgb:%02x/%02x/%02x%s", prefix, rgba.R, rgba.G, rgba.B, terminator))
}

// SetHyperlink ignores OSC 8 hyperlinks; link handling is host glue.
func (s *Screen) SetHyperlink(hyperlink *ansicode.Hyperlink) {}

// SetKeyboardMode replaces or merges the top keyboard mode entry.
func (s *Screen) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
	if len(s.keyboardModes) == 0 {
		s.keyboardModes = append(s.keyboardModes, mode)
		return
	}
	switch behavior {
	case ansicode.KeyboardModeBehaviorUnion:
		s.keyboardModes[len(s.keyboardModes)-1] |= mode
	case ansicode.KeyboardModeBehaviorDifference:
		s.keyboardModes[len(s.keyboardModes)-1] &^= mode
	default:
		s.keyboardModes[len(s.keyboardModes)-1] = mode
	}
}

// SetKeypadApplicationMode enables application keypad mode.
func (s *Screen) SetKeypadApplicationMode() {
	s.modes |= ModeKeypadApplication
}

// SetMode enables a terminal mode.
func (s *Screen) SetMode(mode ansicode.TerminalMode) {
	s.applyMode(mode, true)
}

// SetModifyOtherKeys sets how modifier keys are reported.
func (s *Screen) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {
	s.modifyOtherKeys = modify
}

// SetScrollingRegion sets the scroll boundaries (1-based input) and homes
// the cursor.
func (s *Screen) SetScrollingRegion(top, bottom int) {
	top--
	bottom--

	if top < 0 {
		top = 0
	}
	if bottom <= 0 || bottom > s.rows {
		bottom = s.rows
	}
	if top >= bottom {
		return
	}

	s.scrollTop = top
	s.scrollBottom = bottom

	if s.modes&ModeOrigin != 0 {
		s.cursor.Row = s.scrollTop
	} else {
		s.cursor.Row = 0
	}
	s.cursor.Col = 0
}

// SetTerminalCharAttribute updates the SGR template applied to new input.
func (s *Screen) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		s.template = NewCell()
	case ansicode.CharAttributeBold:
		s.template.SetFlag(CellFlagBold)
	case ansicode.CharAttributeDim:
		s.template.SetFlag(CellFlagDim)
	case ansicode.CharAttributeItalic:
		s.template.SetFlag(CellFlagItalic)
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		s.template.SetFlag(CellFlagUnderline)
	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		s.template.SetFlag(CellFlagBlink)
	case ansicode.CharAttributeReverse:
		s.template.SetFlag(CellFlagReverse)
	case ansicode.CharAttributeHidden:
		s.template.SetFlag(CellFlagHidden)
	case ansicode.CharAttributeStrike:
		s.template.SetFlag(CellFlagStrike)
	case ansicode.CharAttributeCancelBold:
		s.template.ClearFlag(CellFlagBold)
	case ansicode.CharAttributeCancelBoldDim:
		s.template.ClearFlag(CellFlagBold | CellFlagDim)
	case ansicode.CharAttributeCancelItalic:
		s.template.ClearFlag(CellFlagItalic)
	case ansicode.CharAttributeCancelUnderline:
		s.template.ClearFlag(CellFlagUnderline)
	case ansicode.CharAttributeCancelBlink:
		s.template.ClearFlag(CellFlagBlink)
	case ansicode.CharAttributeCancelReverse:
		s.template.ClearFlag(CellFlagReverse)
	case ansicode.CharAttributeCancelHidden:
		s.template.ClearFlag(CellFlagHidden)
	case ansicode.CharAttributeCancelStrike:
		s.template.ClearFlag(CellFlagStrike)
	case ansicode.CharAttributeForeground:
		s.template.Fg = resolveAttrColor(attr)
	case ansicode.CharAttributeBackground:
		s.template.Bg = resolveAttrColor(attr)
	case ansicode.CharAttributeUnderlineColor:
		// Underline color has no named-palette rendering; ignored.
	}
}

// resolveAttrColor quantizes an attribute color to the named range. A
// malformed or absent color falls back to Default, which normalizes to the
// baseline so the row still renders.
func resolveAttrColor(attr ansicode.TerminalCharAttribute) Color {
	if attr.RGBColor != nil {
		return QuantizeRGB(color.RGBA{
			R: attr.RGBColor.R,
			G: attr.RGBColor.G,
			B: attr.RGBColor.B,
			A: 255,
		})
	}
	if attr.IndexedColor != nil {
		return QuantizeIndex(int(attr.IndexedColor.Index))
	}
	if attr.NamedColor != nil {
		if n := int(*attr.NamedColor); n >= 0 && n < 16 {
			return Color(n)
		}
		return ColorDefault
	}
	return ColorDefault
}

// SetTitle updates the window title and notifies the title handler.
func (s *Screen) SetTitle(title string) {
	s.title = title
	if s.titleFn != nil {
		s.titleFn.SetTitle(title)
	}
}

// SetWorkingDirectory ignores OSC 7; working-directory tracking is host
// glue.
func (s *Screen) SetWorkingDirectory(uri string) {}

// StartOfStringReceived ignores SOS sequences.
func (s *Screen) StartOfStringReceived(data []byte) {}

// ApplicationCommandReceived ignores APC sequences (covers Kitty graphics,
// which this engine does not render).
func (s *Screen) ApplicationCommandReceived(data []byte) {}

// SixelReceived ignores Sixel image data; cell-based hosts have nowhere
// to place pixels.
func (s *Screen) SixelReceived(params [][]uint16, data []byte) {}

// CellSizePixels responds to the cell-size query with a nominal 10x20
// cell.
func (s *Screen) CellSizePixels() {
	s.writeResponse("\x1b[6;20;10t")
}

// Substitute replaces the character at the cursor with '?'.
func (s *Screen) Substitute() {
	if cell := s.activeGrid().Cell(s.cursor.Row, s.cursor.Col); cell != nil {
		cell.Char = '?'
		s.activeGrid().MarkRow(s.cursor.Row)
	}
}

// Tab advances the cursor n tab stops.
func (s *Screen) Tab(n int) {
	for i := 0; i < n; i++ {
		s.cursor.Col = s.activeGrid().NextTabStop(s.cursor.Col)
	}
}

// TextAreaSizeChars responds with the viewport size in characters.
func (s *Screen) TextAreaSizeChars() {
	s.writeResponse(fmt.Sprintf("\x1b[8;%d;%dt", s.rows, s.cols))
}

// TextAreaSizePixels responds with the viewport size assuming 10x20 cells.
func (s *Screen) TextAreaSizePixels() {
	s.writeResponse(fmt.Sprintf("\x1b[4;%d;%dt", s.rows*20, s.cols*10))
}

// UnsetKeypadApplicationMode disables application keypad mode.
func (s *Screen) UnsetKeypadApplicationMode() {
	s.modes &^= ModeKeypadApplication
}

// UnsetMode disables a terminal mode.
func (s *Screen) UnsetMode(mode ansicode.TerminalMode) {
	s.applyMode(mode, false)
}

// applyMode sets or clears one mode flag, handling side effects (cursor
// visibility, origin homing, alternate screen swap).
func (s *Screen) applyMode(mode ansicode.TerminalMode, set bool) {
	var m TerminalMode

	switch mode {
	case ansicode.TerminalModeCursorKeys:
		m = ModeCursorKeys
	case ansicode.TerminalModeColumnMode:
		m = ModeColumnMode
	case ansicode.TerminalModeInsert:
		m = ModeInsert
	case ansicode.TerminalModeOrigin:
		m = ModeOrigin
		if set {
			s.cursor.Row = s.scrollTop
			s.cursor.Col = 0
		}
	case ansicode.TerminalModeLineWrap:
		m = ModeLineWrap
	case ansicode.TerminalModeBlinkingCursor:
		m = ModeBlinkingCursor
	case ansicode.TerminalModeLineFeedNewLine:
		m = ModeLineFeedNewLine
	case ansicode.TerminalModeShowCursor:
		m = ModeShowCursor
		s.cursor.Visible = set
	case ansicode.TerminalModeReportMouseClicks:
		m = ModeReportMouseClicks
	case ansicode.TerminalModeReportCellMouseMotion:
		m = ModeReportCellMouseMotion
	case ansicode.TerminalModeReportAllMouseMotion:
		m = ModeReportAllMouseMotion
	case ansicode.TerminalModeReportFocusInOut:
		m = ModeReportFocusInOut
	case ansicode.TerminalModeUTF8Mouse:
		m = ModeUTF8Mouse
	case ansicode.TerminalModeSGRMouse:
		m = ModeSGRMouse
	case ansicode.TerminalModeAlternateScroll:
		m = ModeAlternateScroll
	case ansicode.TerminalModeUrgencyHints:
		m = ModeUrgencyHints
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		m = ModeSwapScreenAndSetRestoreCursor
		if set {
			s.saveCursor()
			s.activeAlt = true
			s.altGrid.ClearAll()
		} else {
			s.activeAlt = false
			s.restoreCursor()
		}
		// The entire viewport changes content on a swap.
		s.dirty.MarkRange(0, s.rows)
	case ansicode.TerminalModeBracketedPaste:
		m = ModeBracketedPaste
	default:
		s.logf("unhandled terminal mode %v (set=%v)", mode, set)
		return
	}

	if set {
		s.modes |= m
	} else {
		s.modes &^= m
	}
}

// translateLineDrawing maps the DEC special graphics charset onto Unicode
// box-drawing characters.
func translateLineDrawing(r rune) rune {
	switch r {
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	default:
		return r
	}
}
