package keyboard

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// The keyboard-layout-editor raw format is a JSON array: an optional leading
// metadata object followed by one array per key row. Each row interleaves
// property objects and label strings; a property object adjusts a cursor
// state that the following label strings consume. Property semantics:
//
//	x, y            relative cursor adjustment, consumed per key (x) / row (y)
//	w, h, x2, y2,
//	w2, h2, n, l, d apply to the next key only
//	r, rx, ry, c,
//	t, g, a, f, p   sticky until changed; rx/ry also re-home the cursor
//
// At the end of every row the cursor drops one unit and returns to the
// rotation cluster's x origin.
type kleProps struct {
	R  *float64 `json:"r,omitempty"`
	RX *float64 `json:"rx,omitempty"`
	RY *float64 `json:"ry,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	X  *float64 `json:"x,omitempty"`
	C  *string  `json:"c,omitempty"`
	T  *string  `json:"t,omitempty"`
	G  *bool    `json:"g,omitempty"`
	A  *float64 `json:"a,omitempty"`
	F  *float64 `json:"f,omitempty"`
	P  *string  `json:"p,omitempty"`
	W  *float64 `json:"w,omitempty"`
	H  *float64 `json:"h,omitempty"`
	W2 *float64 `json:"w2,omitempty"`
	H2 *float64 `json:"h2,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`
	N  *bool    `json:"n,omitempty"`
	L  *bool    `json:"l,omitempty"`
	D  *bool    `json:"d,omitempty"`
}

func (p *kleProps) empty() bool {
	return *p == kleProps{}
}

type kleMeta struct {
	Name      string `json:"name,omitempty"`
	Author    string `json:"author,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Backcolor string `json:"backcolor,omitempty"`
}

// cursor is the mutable deserialization state threaded through a layout.
type cursor struct {
	x, y    float64
	w, h    float64
	x2, y2  float64
	w2, h2  float64
	r       float64
	rx, ry  float64
	rotated bool // an r/rx/ry property has appeared
	color   string
	text    string
	ghost   bool
	align   int
	font    float64
	profile string
	nub     bool
	stepped bool
	decal   bool
}

func newCursor() cursor {
	return cursor{w: 1, h: 1, align: 4, font: 3}
}

// emit produces a key from the cursor state and advances past it.
func (c *cursor) emit(labels string) *Key {
	k := &Key{
		X: c.x, Y: c.y,
		Width: c.w, Height: c.h,
		X2: c.x2, Y2: c.y2, Width2: c.w2, Height2: c.h2,
		RotationAngle: c.r,
		Color:         c.color,
		Align:         c.align,
		FontSize:      c.font,
		Ghost:         c.ghost,
		Nub:           c.nub,
		Stepped:       c.stepped,
		Decal:         c.decal,
		Profile:       c.profile,
	}
	if labels != "" {
		k.Labels = trimTrailing(strings.Split(labels, "\n"))
	}
	if c.text != "" {
		k.TextColor = trimTrailing(strings.Split(c.text, "\n"))
	}
	// The cluster origin only matters for keys that actually rotate.
	if c.rotated && c.r != 0 {
		k.SetRotationOrigin(c.rx, c.ry)
	}

	c.x += c.w
	c.w, c.h = 1, 1
	c.x2, c.y2, c.w2, c.h2 = 0, 0, 0, 0
	c.nub, c.stepped, c.decal = false, false, false
	return k
}

// apply folds a property object into the cursor state.
func (c *cursor) apply(p *kleProps) {
	if p.R != nil {
		c.r = *p.R
		c.rotated = true
	}
	if p.RX != nil {
		c.rx = *p.RX
		c.rotated = true
		c.x, c.y = c.rx, c.ry
	}
	if p.RY != nil {
		c.ry = *p.RY
		c.rotated = true
		c.x, c.y = c.rx, c.ry
	}
	if p.X != nil {
		c.x += *p.X
	}
	if p.Y != nil {
		c.y += *p.Y
	}
	if p.W != nil {
		c.w = *p.W
	}
	if p.H != nil {
		c.h = *p.H
	}
	if p.X2 != nil {
		c.x2 = *p.X2
	}
	if p.Y2 != nil {
		c.y2 = *p.Y2
	}
	if p.W2 != nil {
		c.w2 = *p.W2
	}
	if p.H2 != nil {
		c.h2 = *p.H2
	}
	if p.C != nil {
		c.color = *p.C
	}
	if p.T != nil {
		c.text = *p.T
	}
	if p.G != nil {
		c.ghost = *p.G
	}
	if p.A != nil {
		c.align = int(*p.A)
	}
	if p.F != nil {
		c.font = *p.F
	}
	if p.P != nil {
		c.profile = *p.P
	}
	if p.N != nil {
		c.nub = *p.N
	}
	if p.L != nil {
		c.stepped = *p.L
	}
	if p.D != nil {
		c.decal = *p.D
	}
}

// ParseKLE reads a layout in the keyboard-layout-editor raw format.
func ParseKLE(data []byte) (*Layout, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	layout := NewLayout()
	cur := newCursor()

	for i, raw := range rows {
		raw = json.RawMessage(strings.TrimSpace(string(raw)))
		if len(raw) == 0 {
			continue
		}
		if raw[0] == '{' {
			if i != 0 {
				return nil, fmt.Errorf("row %d: metadata object allowed only as the first element", i)
			}
			var meta kleMeta
			if err := json.Unmarshal(raw, &meta); err != nil {
				return nil, fmt.Errorf("parsing metadata: %w", err)
			}
			layout.Meta = Metadata(meta)
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("row %d: expected an array: %w", i, err)
		}
		for j, item := range items {
			item = json.RawMessage(strings.TrimSpace(string(item)))
			if len(item) > 0 && item[0] == '{' {
				var props kleProps
				if err := json.Unmarshal(item, &props); err != nil {
					return nil, fmt.Errorf("row %d item %d: %w", i, j, err)
				}
				cur.apply(&props)
				continue
			}
			var labels string
			if err := json.Unmarshal(item, &labels); err != nil {
				return nil, fmt.Errorf("row %d item %d: expected a string or object: %w", i, j, err)
			}
			layout.Add(cur.emit(labels))
		}
		cur.y++
		cur.x = cur.rx
	}
	return layout, nil
}

// MarshalKLE writes a layout in the keyboard-layout-editor raw format. Keys
// are expected in row order (the order ParseKLE produces); rotation changes
// start a new row as the format requires.
func MarshalKLE(l *Layout) ([]byte, error) {
	var doc []interface{}
	if l.Meta != (Metadata{}) {
		doc = append(doc, kleMeta(l.Meta))
	}

	cur := newCursor()
	var row []interface{}
	endRow := func() {
		if len(row) > 0 {
			doc = append(doc, row)
			row = nil
			cur.y++
			cur.x = cur.rx
		}
	}

	for _, k := range l.Keys {
		origin := k.RotationOrigin()
		rotated := k.RotationAngle != 0
		needAngle := k.RotationAngle != cur.r
		needOrigin := rotated && (origin.X != cur.rx || origin.Y != cur.ry)

		if needAngle || needOrigin || (len(row) > 0 && k.Y != cur.y) {
			endRow()
		}

		var p kleProps
		if needAngle {
			p.R = f64p(k.RotationAngle)
			cur.r = k.RotationAngle
		}
		if needOrigin {
			p.RX = f64p(origin.X)
			p.RY = f64p(origin.Y)
			cur.rx, cur.ry = origin.X, origin.Y
			cur.x, cur.y = origin.X, origin.Y
		}
		if k.Y != cur.y {
			p.Y = f64p(k.Y - cur.y)
			cur.y = k.Y
		}
		if k.X != cur.x {
			p.X = f64p(k.X - cur.x)
			cur.x = k.X
		}
		if k.Color != cur.color {
			p.C = strp(k.Color)
			cur.color = k.Color
		}
		if tc := strings.Join(k.TextColor, "\n"); tc != cur.text {
			p.T = strp(tc)
			cur.text = tc
		}
		if k.Ghost != cur.ghost {
			p.G = boolp(k.Ghost)
			cur.ghost = k.Ghost
		}
		if k.Align != cur.align {
			p.A = f64p(float64(k.Align))
			cur.align = k.Align
		}
		if k.FontSize != 0 && k.FontSize != cur.font {
			p.F = f64p(k.FontSize)
			cur.font = k.FontSize
		}
		if k.Profile != cur.profile {
			p.P = strp(k.Profile)
			cur.profile = k.Profile
		}
		if k.Width != 1 {
			p.W = f64p(k.Width)
		}
		if k.Height != 1 {
			p.H = f64p(k.Height)
		}
		if k.X2 != 0 {
			p.X2 = f64p(k.X2)
		}
		if k.Y2 != 0 {
			p.Y2 = f64p(k.Y2)
		}
		if k.Width2 != 0 {
			p.W2 = f64p(k.Width2)
		}
		if k.Height2 != 0 {
			p.H2 = f64p(k.Height2)
		}
		if k.Nub {
			p.N = boolp(true)
		}
		if k.Stepped {
			p.L = boolp(true)
		}
		if k.Decal {
			p.D = boolp(true)
		}

		if !p.empty() {
			row = append(row, p)
		}
		row = append(row, strings.Join(k.Labels, "\n"))
		cur.x = k.X + k.Width
	}
	endRow()

	return json.MarshalIndent(doc, "", "  ")
}

// LoadFile reads a KLE layout file.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	l, err := ParseKLE(data)
	if err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return l, nil
}

// SaveFile writes a layout as a KLE file.
func SaveFile(path string, l *Layout) error {
	data, err := MarshalKLE(l)
	if err != nil {
		return fmt.Errorf("serializing layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing layout file: %w", err)
	}
	return nil
}

func trimTrailing(s []string) []string {
	for len(s) > 0 && s[len(s)-1] == "" {
		s = s[:len(s)-1]
	}
	return s
}

func f64p(v float64) *float64 { return &v }
func strp(v string) *string   { return &v }
func boolp(v bool) *bool      { return &v }
