package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is a semantic color slot of the palette.
type Role string

const (
	RoleFg      Role = "fg"
	RoleBg      Role = "bg"
	RoleBlack   Role = "black"
	RoleRed     Role = "red"
	RoleGreen   Role = "green"
	RoleYellow  Role = "yellow"
	RoleBlue    Role = "blue"
	RoleMagenta Role = "magenta"
	RoleCyan    Role = "cyan"
	RoleWhite   Role = "white"
	RoleOrange  Role = "orange"
	RoleGray    Role = "gray"
)

// Roles lists the known palette roles.
func Roles() []Role {
	return []Role{
		RoleFg, RoleBg, RoleBlack, RoleRed, RoleGreen, RoleYellow,
		RoleBlue, RoleMagenta, RoleCyan, RoleWhite, RoleOrange, RoleGray,
	}
}

// ColorKind tells which representation a Color carries.
type ColorKind int

const (
	EightBit ColorKind = iota
	RGB
)

// Color is either a 24-bit RGB triple or an 8-bit terminal color index.
type Color struct {
	Kind    ColorKind
	R, G, B uint8
	Index   uint8
}

// RGBColor builds a 24-bit color.
func RGBColor(r, g, b uint8) Color { return Color{Kind: RGB, R: r, G: g, B: b} }

// Fixed builds an 8-bit color.
func Fixed(index uint8) Color { return Color{Kind: EightBit, Index: index} }

// String renders the color as "#rrggbb" or the decimal index. The output is
// accepted by both ParseColor and lipgloss.Color.
func (c Color) String() string {
	if c.Kind == RGB {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return strconv.Itoa(int(c.Index))
}

// ParseColor accepts "#rrggbb" or a decimal index in 0..255.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("color %q: expected #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return RGBColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: expected #rrggbb or 0-255", s)
	}
	return Fixed(uint8(n)), nil
}

// Palette maps roles to concrete colors.
type Palette map[Role]Color

// DefaultPalette returns the palette used until the host supplies one.
func DefaultPalette() Palette {
	return Palette{
		RoleFg:      Fixed(15),
		RoleBg:      Fixed(0),
		RoleBlack:   Fixed(0),
		RoleRed:     Fixed(1),
		RoleGreen:   Fixed(2),
		RoleYellow:  Fixed(3),
		RoleBlue:    Fixed(4),
		RoleMagenta: Fixed(5),
		RoleCyan:    Fixed(6),
		RoleWhite:   Fixed(7),
		RoleOrange:  Fixed(208),
		RoleGray:    Fixed(8),
	}
}

// Clone copies the palette.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ParsePalette converts role -> color strings, as found in config files and
// pipe events, into a Palette. Unknown roles are kept; the resolver simply
// never asks for them.
func ParsePalette(in map[string]string) (Palette, error) {
	out := make(Palette, len(in))
	for role, raw := range in {
		c, err := ParseColor(raw)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", role, err)
		}
		out[Role(strings.ToLower(strings.TrimSpace(role)))] = c
	}
	return out, nil
}

// Merge returns a copy of p with every entry of over applied on top.
func (p Palette) Merge(over Palette) Palette {
	out := p.Clone()
	if out == nil {
		out = Palette{}
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
