package advanced

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/osuushi/clearance/internal"
)

type Electrification string

const (
	NotElectrified     Electrification = "none"
	DirectCurrent      Electrification = "dc"
	AlternatingCurrent Electrification = "ac"
)

func (e Electrification) IsElectrified() bool {
	return e == DirectCurrent || e == AlternatingCurrent
}

func (e *Electrification) UnmarshalText(text []byte) error {
	switch value := Electrification(strings.ToLower(strings.TrimSpace(string(text)))); value {
	case NotElectrified, DirectCurrent, AlternatingCurrent:
		*e = value
		return nil
	}
	return internal.InvalidParameter("unknown electrification %q, want dc, ac or none", text)
}

// Profile collects the per-line settings of the engine. The zero value is not
// usable; start from DefaultProfile, which LoadProfile also does, so a profile
// file only needs to name what it changes.
//
//	name = "Main line, DC"
//	gauge_mm = 1067
//	electrification = "dc"
type Profile struct {
	Name            string          `toml:"name"`
	GaugeMM         float64         `toml:"gauge_mm"`
	Electrification Electrification `toml:"electrification"`

	// Height of the flat roof the envelope outline is capped at. It must lie
	// within the upper arc.
	EnvelopeTopMM float64 `toml:"envelope_top_mm"`
	// Samples per arc in the envelope outline. A few hundred keeps the outline
	// within a fraction of a millimetre of the true arc.
	ArcSamples int `toml:"arc_samples"`
	// Samples in the reference set that margins are measured against.
	ReferenceSamples int `toml:"reference_samples"`
	// Number of distinct curve radii whose reference sets are kept in memory.
	CacheSize int `toml:"cache_size"`
}

const (
	DefaultEnvelopeTopMM    = 5700
	DefaultArcSamples       = 400
	DefaultReferenceSamples = 1775
	DefaultCacheSize        = 16
)

func DefaultProfile() Profile {
	return Profile{
		Name:             "default",
		GaugeMM:          NarrowGaugeMM,
		Electrification:  NotElectrified,
		EnvelopeTopMM:    DefaultEnvelopeTopMM,
		ArcSamples:       DefaultArcSamples,
		ReferenceSamples: DefaultReferenceSamples,
		CacheSize:        DefaultCacheSize,
	}
}

// Read a TOML profile. Keys that are not set keep their default values, and
// unknown keys are an error so that typos don't silently fall back to defaults.
func LoadProfile(r io.Reader) (Profile, error) {
	profile := DefaultProfile()
	meta, err := toml.NewDecoder(r).Decode(&profile)
	if err != nil {
		return Profile{}, internal.InvalidParameter("decoding profile: %v", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Profile{}, internal.InvalidParameter("unknown profile keys: %s", strings.Join(keys, ", "))
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func LoadProfileFile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()
	profile, err := LoadProfile(f)
	if err != nil {
		return Profile{}, internal.InvalidParameter("%s: %v", path, err)
	}
	return profile, nil
}

func (p Profile) Validate() error {
	if !(p.GaugeMM > 0) || math.IsInf(p.GaugeMM, 0) {
		return internal.InvalidParameter("gauge must be positive, got %v", p.GaugeMM)
	}
	switch p.Electrification {
	case NotElectrified, DirectCurrent, AlternatingCurrent:
	default:
		return internal.InvalidParameter("unknown electrification %q", string(p.Electrification))
	}
	if !(p.EnvelopeTopMM > UpperArcStartMM && p.EnvelopeTopMM <= upperArcTopMM) {
		return internal.InvalidParameter(
			"envelope top must be above %v and at most %v, got %v", UpperArcStartMM, upperArcTopMM, p.EnvelopeTopMM,
		)
	}
	if p.ArcSamples < 2 {
		return internal.InvalidParameter("need at least 2 arc samples, got %d", p.ArcSamples)
	}
	if p.ReferenceSamples < 2 {
		return internal.InvalidParameter("need at least 2 reference samples, got %d", p.ReferenceSamples)
	}
	if p.CacheSize < 1 {
		return internal.InvalidParameter("cache size must be at least 1, got %d", p.CacheSize)
	}
	return nil
}

// Cant angle in radians for this profile's gauge.
func (p Profile) CantAngle(cantMM float64) float64 {
	return CantAngle(cantMM, p.GaugeMM)
}
