package editor

import (
	"log/slog"

	"richtext/pkg/rtdoc"
)

type Action uint8

const (
	ActionToggle Action = iota
	ActionAdjustFontSize
	ActionSetColor
	ActionCycleAlignment
	ActionInsertImage
	ActionDismissKeyboard
	ActionSetFontFamily
	ActionInsertLine
)

type StyleKind uint8

const (
	StyleBold StyleKind = iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleSuperscript
	StyleSubscript
)

var styleKindNames = [...]string{"bold", "italic", "underline", "strikethrough", "superscript", "subscript"}

func (k StyleKind) String() string {
	if int(k) < len(styleKindNames) {
		return styleKindNames[k]
	}
	return "unknown"
}

type ColorRole uint8

const (
	RoleForeground ColorRole = iota
	RoleBackground
)

// ToolbarEvent is one user action coming from the toolbar widget.
type ToolbarEvent struct {
	Action Action
	Style  StyleKind
	Delta  float64
	Role   ColorRole
	Color  rtdoc.Color
	Family string
}

func Toggle(k StyleKind) ToolbarEvent { return ToolbarEvent{Action: ActionToggle, Style: k} }

func AdjustFontSize(delta float64) ToolbarEvent {
	return ToolbarEvent{Action: ActionAdjustFontSize, Delta: delta}
}

func SetColor(role ColorRole, c rtdoc.Color) ToolbarEvent {
	return ToolbarEvent{Action: ActionSetColor, Role: role, Color: c}
}

func CycleAlignment() ToolbarEvent  { return ToolbarEvent{Action: ActionCycleAlignment} }
func InsertImage() ToolbarEvent     { return ToolbarEvent{Action: ActionInsertImage} }
func InsertLine() ToolbarEvent      { return ToolbarEvent{Action: ActionInsertLine} }
func DismissKeyboard() ToolbarEvent { return ToolbarEvent{Action: ActionDismissKeyboard} }

func SetFontFamily(family string) ToolbarEvent {
	return ToolbarEvent{Action: ActionSetFontFamily, Family: family}
}

// HandleToolbar applies ev to the current selection.
func (s *Session) HandleToolbar(ev ToolbarEvent) {
	switch ev.Action {
	case ActionToggle:
		switch ev.Style {
		case StyleBold:
			s.ToggleBold()
		case StyleItalic:
			s.ToggleItalic()
		case StyleUnderline:
			s.ToggleUnderline()
		case StyleStrikethrough:
			s.ToggleStrikethrough()
		case StyleSuperscript:
			s.ToggleSuperscript()
		case StyleSubscript:
			s.ToggleSubscript()
		default:
			s.log.Warn("unknown style toggle", slog.Int("style", int(ev.Style)))
		}
	case ActionAdjustFontSize:
		s.AdjustFontSize(ev.Delta)
	case ActionSetColor:
		if ev.Role == RoleBackground {
			s.SetBackground(ev.Color)
		} else {
			s.SetForeground(ev.Color)
		}
	case ActionCycleAlignment:
		s.CycleAlignment()
	case ActionInsertImage:
		s.RequestImage()
	case ActionInsertLine:
		s.InsertLine()
	case ActionDismissKeyboard:
		s.DismissKeyboard()
	case ActionSetFontFamily:
		s.SetFontFamily(ev.Family)
	default:
		s.log.Warn("unknown toolbar action", slog.Int("action", int(ev.Action)))
	}
}
