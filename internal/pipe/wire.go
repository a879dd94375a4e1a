package pipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"zj-status/internal/tui/state"
)

// ErrUnknownEvent is returned for lines whose type is not recognised.
var ErrUnknownEvent = errors.New("unknown event")

// Event types accepted on the wire.
const (
	TypeMode   = "mode"
	TypeTabs   = "tabs"
	TypeTimer  = "timer"
	TypeKey    = "key"
	TypeResize = "resize"
)

// wireEvent is one JSON line. Only the fields of its type are read.
type wireEvent struct {
	Type    string            `json:"type"`
	Mode    string            `json:"mode,omitempty"`
	Session string            `json:"session,omitempty"`
	Palette map[string]string `json:"palette,omitempty"`
	Tabs    []wireTab         `json:"tabs,omitempty"`
	Key     string            `json:"key,omitempty"`
	Cols    int               `json:"cols,omitempty"`
	Rows    int               `json:"rows,omitempty"`
}

type wireTab struct {
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// Resize changes the size the host renders at. It never reaches the plugin.
type Resize struct {
	Cols int
	Rows int
}

func (Resize) Kind() state.EventKind { return state.KindUnknown }

// Decode parses one line into an event. A mode event without a palette
// yields a nil Palette; the controller keeps its fallback for that case.
func Decode(line []byte) (state.Event, error) {
	var w wireEvent
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(w.Type)) {
	case TypeMode:
		mode, ok := state.ParseInputMode(w.Mode)
		if !ok {
			return nil, fmt.Errorf("mode event: unknown mode %q", w.Mode)
		}
		ev := state.ModeChanged{Mode: mode, Session: w.Session}
		if len(w.Palette) > 0 {
			pal, err := state.ParsePalette(w.Palette)
			if err != nil {
				return nil, fmt.Errorf("mode event: %w", err)
			}
			ev.Palette = pal
		}
		return ev, nil
	case TypeTabs:
		tabs := make([]state.Tab, 0, len(w.Tabs))
		for _, t := range w.Tabs {
			tabs = append(tabs, state.Tab{Position: t.Position, Name: t.Name, Active: t.Active})
		}
		return state.TabsChanged{Tabs: tabs}, nil
	case TypeTimer:
		return state.TimerFired{}, nil
	case TypeKey:
		if w.Key == "" {
			return nil, errors.New("key event: empty key")
		}
		return state.KeyPressed{Key: w.Key}, nil
	case TypeResize:
		if w.Cols < 0 || w.Rows < 0 {
			return nil, fmt.Errorf("resize event: negative size %dx%d", w.Cols, w.Rows)
		}
		return Resize{Cols: w.Cols, Rows: w.Rows}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, w.Type)
	}
}
