package export

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ivlev/nosgen/internal/fit"
)

// ErrUnusable is returned when a points file holds nothing that can be
// imported.
var ErrUnusable = errors.New("points file has no usable frames")

// maxGridValue bounds integer meta fields; larger values are treated as
// absent.
const maxGridValue = 1 << 20

// Imported is a parsed points file. Coordinates are still in pivot space.
type Imported struct {
	Legacy    bool
	Pivot     Pivot
	Direction fit.Direction // empty when absent
	Mode      Mode          // empty when absent
	Rows      int           // 0 when absent
	Padding   int           // -1 when absent
	Groups    map[string][][]string
	Animation *Animation
	Frames    []ImportedFrame
}

// ImportedFrame is one usable frame entry. Legacy files have no names and
// are matched by Index.
type ImportedFrame struct {
	Name   string
	Index  int
	W, H   int
	Points []Point
}

type object = map[string]any

// Parse reads either the atlas points file or the legacy map of point names
// to per-frame [x, y] arrays. Malformed fields and points are skipped.
func Parse(data []byte) (*Imported, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode points file")
	}
	root, ok := raw.(object)
	if !ok {
		return nil, errors.Wrap(ErrUnusable, "top level is not an object")
	}

	imp := &Imported{Pivot: PivotTopLeft, Padding: -1}
	if meta, ok := root["meta"].(object); ok {
		parseMeta(meta, imp)
	}

	if framesRaw, ok := root["frames"]; ok {
		list, ok := framesRaw.([]any)
		if !ok {
			return nil, errors.Wrap(ErrUnusable, "frames is not an array")
		}
		parseFrames(list, imp)
		imp.Groups = parseGroups(root["groups"])
		imp.Animation = parseAnimation(root["animation"])
	} else {
		imp.Legacy = true
		parseLegacy(root, imp)
	}

	if len(imp.Frames) == 0 {
		return nil, ErrUnusable
	}
	return imp, nil
}

func parseMeta(meta object, imp *Imported) {
	if s, ok := str(meta, "pivot"); ok {
		imp.Pivot = ParsePivot(s)
	}
	if s, ok := str(meta, "spriteDirection"); ok {
		imp.Direction = fit.ParseDirection(s)
	}
	if s, ok := str(meta, "mode"); ok {
		imp.Mode = ParseMode(s)
	}
	if n, ok := gridInt(meta, "rows"); ok && n >= 1 {
		imp.Rows = n
	}
	if n, ok := gridInt(meta, "padding"); ok && n >= 0 {
		imp.Padding = n
	}
}

func parseFrames(list []any, imp *Imported) {
	for i, item := range list {
		fr, ok := item.(object)
		if !ok {
			continue
		}
		name, ok := str(fr, "name")
		if !ok {
			continue
		}
		out := ImportedFrame{Name: name, Index: i}
		if w, ok := gridInt(fr, "w"); ok {
			out.W = w
		}
		if h, ok := gridInt(fr, "h"); ok {
			out.H = h
		}
		if points, ok := fr["points"].([]any); ok {
			for _, p := range points {
				po, ok := p.(object)
				if !ok {
					continue
				}
				pname, okName := str(po, "name")
				x, okX := num(po, "x")
				y, okY := num(po, "y")
				if okName && okX && okY {
					out.Points = append(out.Points, Point{Name: pname, X: x, Y: y})
				}
			}
		}
		imp.Frames = append(imp.Frames, out)
	}
}

func parseLegacy(root object, imp *Imported) {
	names := make([]string, 0, len(root))
	for k := range root {
		if k != "meta" {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	byIndex := make(map[int]*ImportedFrame)
	var order []int
	for _, name := range names {
		entries, ok := root[name].([]any)
		if !ok {
			continue
		}
		for i, e := range entries {
			pair, ok := e.([]any)
			if !ok || len(pair) < 2 {
				continue
			}
			x, okX := finite(pair[0])
			y, okY := finite(pair[1])
			if !okX || !okY {
				continue
			}
			fr := byIndex[i]
			if fr == nil {
				fr = &ImportedFrame{Index: i}
				byIndex[i] = fr
				order = append(order, i)
			}
			fr.Points = append(fr.Points, Point{Name: name, X: x, Y: y})
		}
	}

	sort.Ints(order)
	for _, i := range order {
		imp.Frames = append(imp.Frames, *byIndex[i])
	}
}

func parseGroups(v any) map[string][][]string {
	groups, ok := v.(object)
	if !ok {
		return nil
	}
	out := make(map[string][][]string)
	for name, g := range groups {
		entries, ok := g.([]any)
		if !ok {
			continue
		}
		var parsed [][]string
		for _, e := range entries {
			list, ok := e.([]any)
			if !ok {
				continue
			}
			var names []string
			for _, n := range list {
				if s, ok := n.(string); ok {
					names = append(names, s)
				}
			}
			parsed = append(parsed, names)
		}
		out[name] = parsed
	}
	return out
}

func parseAnimation(v any) *Animation {
	a, ok := v.(object)
	if !ok {
		return nil
	}
	anim := &Animation{FPS: 12, Speed: 1, Loop: true}
	if s, ok := str(a, "name"); ok {
		anim.Name = s
	}
	if n, ok := num(a, "fps"); ok && n > 0 {
		anim.FPS = n
	}
	if n, ok := num(a, "speed"); ok && n > 0 {
		anim.Speed = n
	}
	if b, ok := a["loop"].(bool); ok {
		anim.Loop = b
	}
	if list, ok := a["frames"].([]any); ok {
		for _, f := range list {
			if s, ok := f.(string); ok {
				anim.Frames = append(anim.Frames, s)
			}
		}
	}
	return anim
}

func str(o object, key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

func num(o object, key string) (float64, bool) {
	return finite(o[key])
}

// gridInt reads a rounded integer no larger than maxGridValue in magnitude
func gridInt(o object, key string) (int, bool) {
	n, ok := num(o, key)
	if !ok || math.Abs(n) > maxGridValue {
		return 0, false
	}
	return int(math.Round(n)), true
}

// finite accepts JSON numbers that fit a finite float64.
func finite(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
