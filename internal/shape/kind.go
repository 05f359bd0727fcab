package shape

import (
	"fmt"
	"strings"
)

// Kind selects the sampling distribution used to place particles.
type Kind int

const (
	Sphere Kind = iota
	Heart
	Flower
	Saturn
	MeditativeFigure
	FireworkBurst
)

var kindNames = map[Kind]string{
	Sphere:           "SPHERE",
	Heart:            "HEART",
	Flower:           "FLOWER",
	Saturn:           "SATURN",
	MeditativeFigure: "MEDITATIVE_FIGURE",
	FireworkBurst:    "FIREWORK_BURST",
}

var kindAliases = map[string]Kind{
	"BUDDHA":    MeditativeFigure,
	"ZEN":       MeditativeFigure,
	"FIREWORKS": FireworkBurst,
	"BOOM":      FireworkBurst,
	"LOVE":      Heart,
}

// panel order of the shape picker; also the 1..6 key bindings
var panelOrder = []Kind{Heart, Flower, Saturn, MeditativeFigure, FireworkBurst, Sphere}

var labels = map[Kind]string{
	Heart:            "Love",
	Flower:           "Flower",
	Saturn:           "Saturn",
	MeditativeFigure: "Zen",
	FireworkBurst:    "Boom",
	Sphere:           "Sphere",
}

var themes = map[Kind]string{
	Heart:            "#ff0066",
	Flower:           "#ff66b2",
	Saturn:           "#ffcc00",
	MeditativeFigure: "#00ffcc",
	FireworkBurst:    "#ff3333",
	Sphere:           "#ffffff",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Label is the short name shown in the control panel.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return labels[Sphere]
}

// Kinds returns every shape in control panel order.
func Kinds() []Kind {
	out := make([]Kind, len(panelOrder))
	copy(out, panelOrder)
	return out
}

// Theme returns the hex color paired with k in the control panel.
// Unknown kinds get the sphere theme.
func Theme(k Kind) string {
	if c, ok := themes[k]; ok {
		return c
	}
	return themes[Sphere]
}

// ParseKind accepts canonical kind names and the short aliases, in any case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return Sphere, fmt.Errorf("unknown shape %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so kinds can be read from TOML.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
