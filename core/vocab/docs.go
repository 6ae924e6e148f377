package vocab

import "sort"

// Doc is the reference entry shown for one vocabulary name.
type Doc struct {
	Name    string
	Kind    string // "primitive", "function", "base"
	Syntax  string
	Summary string
}

var docs = map[string]Doc{
	"visible_sunrise":   {Kind: "primitive", Summary: "Upper limb of the sun appears above the horizon, with atmospheric refraction (zenith 90.833°)."},
	"visible_sunset":    {Kind: "primitive", Summary: "Upper limb of the sun disappears below the horizon, with atmospheric refraction."},
	"geometric_sunrise": {Kind: "primitive", Summary: "Centre of the sun crosses the geometric horizon (zenith 90°), no refraction."},
	"geometric_sunset":  {Kind: "primitive", Summary: "Centre of the sun crosses the geometric horizon in the evening."},
	"solar_noon":        {Kind: "primitive", Summary: "Sun crosses the local meridian at its highest point."},
	"solar_midnight":    {Kind: "primitive", Summary: "Sun at its lowest point, opposite solar noon."},
	"civil_dawn":        {Kind: "primitive", Summary: "Sun 6° below the horizon in the morning."},
	"civil_dusk":        {Kind: "primitive", Summary: "Sun 6° below the horizon in the evening."},
	"nautical_dawn":     {Kind: "primitive", Summary: "Sun 12° below the horizon in the morning."},
	"nautical_dusk":     {Kind: "primitive", Summary: "Sun 12° below the horizon in the evening."},
	"astronomical_dawn": {Kind: "primitive", Summary: "Sun 18° below the horizon in the morning."},
	"astronomical_dusk": {Kind: "primitive", Summary: "Sun 18° below the horizon in the evening."},

	FuncSolar: {
		Kind:    "function",
		Syntax:  "solar(angle, direction)",
		Summary: "Time the sun reaches angle degrees below the horizon on the given side of sunrise, sunset or noon.",
	},
	FuncSeasonalSolar: {
		Kind:    "function",
		Syntax:  "seasonal_solar(angle, direction)",
		Summary: "Equinox offset of solar(angle) scaled by the ratio of today's day length.",
	},
	FuncProportionalHours: {
		Kind:    "function",
		Syntax:  "proportional_hours(hours, base)",
		Summary: "Start of the halachic day plus hours twelfths of its length.",
	},
	FuncProportionalMinutes: {
		Kind:    "function",
		Syntax:  "proportional_minutes(minutes, direction, base)",
		Summary: "Proportional minutes before or after sunrise or sunset.",
	},
	FuncCustom: {
		Kind:    "function",
		Syntax:  "custom(@start, @end)",
		Summary: "User-defined day boundaries for proportional_hours.",
	},
	FuncMidpoint: {
		Kind:    "function",
		Syntax:  "midpoint(time1, time2)",
		Summary: "Time halfway between two zmanim.",
	},
	"first_valid": {
		Kind:    "function",
		Syntax:  "first_valid(time1, time2, ...)",
		Summary: "First expression that is calculable for the date and location.",
	},
	"earlier_of": {Kind: "function", Syntax: "earlier_of(time1, time2)", Summary: "Earlier of two zmanim."},
	"later_of":   {Kind: "function", Syntax: "later_of(time1, time2)", Summary: "Later of two zmanim."},

	"gra":           {Kind: "base", Summary: "Visible sunrise to visible sunset (Vilna Gaon)."},
	"mga":           {Kind: "base", Summary: "72 fixed minutes before sunrise to 72 after sunset (Magen Avraham)."},
	"mga_60":        {Kind: "base", Summary: "60 fixed minutes either side of the GRA day."},
	"mga_72":        {Kind: "base", Summary: "Explicit 72-minute spelling of mga."},
	"mga_90":        {Kind: "base", Summary: "90 fixed minutes either side of the GRA day."},
	"mga_96":        {Kind: "base", Summary: "96 fixed minutes either side of the GRA day."},
	"mga_120":       {Kind: "base", Summary: "120 fixed minutes either side of the GRA day."},
	"mga_72_zmanis": {Kind: "base", Summary: "One tenth of daylight either side of the GRA day."},
	"mga_90_zmanis": {Kind: "base", Summary: "One eighth of daylight either side of the GRA day."},
	"mga_96_zmanis": {Kind: "base", Summary: "One 7.5th of daylight either side of the GRA day."},
	"mga_16_1":      {Kind: "base", Summary: "Sun at 16.1° below the horizon at both ends."},
	"mga_18":        {Kind: "base", Summary: "Sun at 18° below the horizon at both ends."},
	"mga_19_8":      {Kind: "base", Summary: "Sun at 19.8° below the horizon at both ends."},
	"mga_26":        {Kind: "base", Summary: "Sun at 26° below the horizon at both ends."},
	"baal_hatanya":  {Kind: "base", Summary: "Sun at 1.583° below the horizon (Shulchan Aruch HaRav)."},
	"ateret_torah":  {Kind: "base", Summary: "Sunrise to 40 minutes after sunset (Yalkut Yosef)."},
}

// LookupDoc returns the reference entry for name. Aliases resolve to their
// primitive.
func LookupDoc(name string) (Doc, bool) {
	canonical := Canonical(name)
	d, ok := docs[canonical]
	if !ok {
		return Doc{}, false
	}
	d.Name = canonical
	return d, true
}

// Docs returns every reference entry of the given kind sorted by name, or
// all entries when kind is empty.
func Docs(kind string) []Doc {
	var out []Doc
	for name, d := range docs {
		if kind != "" && d.Kind != kind {
			continue
		}
		d.Name = name
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
