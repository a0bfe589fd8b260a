package preset

import "strings"

// Stage is a single named filter in an effect chain. Params uses the engine's
// key=value syntax ("f=3000", "roomsize=0.8:wet=0.45").
type Stage struct {
	Name   string
	Params string
}

// Expr renders the stage as an engine filter expression.
func (s Stage) Expr() string {
	if s.Params == "" {
		return s.Name
	}
	return s.Name + "=" + s.Params
}

// Preset is a named, fixed sequence of audio-filter transformations. Presets
// are defined once at process start and never mutated.
type Preset struct {
	ID          string
	Name        string
	Description string
	Chain       []Stage
}

// FilterGraph renders the ordered chain as a single engine filter graph.
// An empty chain renders to the empty string (pass-through re-encode).
func (p Preset) FilterGraph() string {
	if len(p.Chain) == 0 {
		return ""
	}
	exprs := make([]string, 0, len(p.Chain))
	for _, stage := range p.Chain {
		exprs = append(exprs, stage.Expr())
	}
	return strings.Join(exprs, ",")
}

var catalog = []Preset{
	{
		ID:          "lofi",
		Name:        "Ultimate Lo-fi",
		Description: "TikTok viral breathing + deep bass",
		Chain: []Stage{
			{Name: "lowpass", Params: "f=3000"},
			{Name: "highpass", Params: "f=200"},
			{Name: "equalizer", Params: "f=60:width_type=h:width=100:g=10"},
			{Name: "vibrato", Params: "f=0.25:d=0.3"},
			{Name: "asetrate", Params: "44100*0.97"},
			{Name: "aresample", Params: "44100"},
		},
	},
	{
		ID:          "reverb",
		Name:        "Slowed + Reverb",
		Description: "Actually slows down with reverb",
		Chain: []Stage{
			{Name: "atempo", Params: "0.85"},
			{Name: "asetrate", Params: "44100*0.95"},
			{Name: "aresample", Params: "44100"},
			{Name: "reverb", Params: "roomsize=0.8:wet=0.45:dry=0.55"},
			{Name: "equalizer", Params: "f=60:width_type=h:width=100:g=12"},
		},
	},
	{
		ID:          "nightcore",
		Name:        "Nightcore",
		Description: "Fast + energetic + high pitch",
		Chain: []Stage{
			{Name: "atempo", Params: "1.25"},
			{Name: "asetrate", Params: "44100*1.1"},
			{Name: "aresample", Params: "44100"},
			{Name: "highpass", Params: "f=100"},
			{Name: "equalizer", Params: "f=8000:width_type=h:width=2000:g=8"},
		},
	},
	{
		ID:          "8d_audio",
		Name:        "8D Audio",
		Description: "360° immersive surround sound",
		Chain: []Stage{
			{Name: "apulsator", Params: "hz=0.35:width=0.5"},
			{Name: "stereotools", Params: "mlev=0.5:phase=0.25"},
			{Name: "extrastereo", Params: "m=2.0"},
			{Name: "reverb", Params: "roomsize=0.5:wet=0.3"},
		},
	},
	{
		ID:          "vaporwave",
		Name:        "Vaporwave",
		Description: "A E S T H E T I C vibes",
		Chain: []Stage{
			{Name: "atempo", Params: "0.90"},
			{Name: "asetrate", Params: "44100*0.93"},
			{Name: "aresample", Params: "44100"},
			{Name: "reverb", Params: "roomsize=0.6:wet=0.35"},
			{Name: "equalizer", Params: "f=60:width_type=h:width=100:g=10"},
		},
	},
}

// aliases map alternate identifiers onto a canonical catalog entry. Matching
// is exact and case-sensitive.
var aliases = map[string]string{
	"tiktok_lofi": "lofi",
	"chill_lofi":  "lofi",
}

// List returns the documented presets in fixed catalog order. Aliases are not
// listed. The returned slice is a copy and safe to mutate.
func List() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves an identifier (or alias) to its preset. A miss is not an
// error: callers map it to the pass-through default encode.
func Lookup(id string) (Preset, bool) {
	if canonical, ok := aliases[id]; ok {
		id = canonical
	}
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
