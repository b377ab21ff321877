package synth

// The four mapping tables translating extractor vocabulary into recipe
// vocabulary. These are hand-maintained: when the extractor grows a new
// categorical value, the corresponding table entry must land in the same
// change, or NewSynthesizer fails at startup.

// Extractor vocabulary. NewSynthesizer checks each table against its list.
var (
	KnownEffectFamilies = []string{"pulse", "sweep", "strobe", "wash", "chase", "shimmer"}
	KnownMotionClasses  = []string{"static", "rising", "falling", "oscillating", "scattered"}
	KnownEnergyClasses  = []string{"low", "medium", "high", "extreme"}
	KnownColorClasses   = []string{"warm", "cool", "high_contrast", "monochrome", "rainbow"}
)

// effectFamilyToType maps a mined effect family onto a concrete layer
// effect type.
var effectFamilyToType = map[string]string{
	"pulse":   "pulse_wave",
	"sweep":   "linear_sweep",
	"strobe":  "strobe_burst",
	"wash":    "color_wash",
	"chase":   "pixel_chase",
	"shimmer": "sparkle_field",
}

// motionClassToVerb maps a mined motion class onto the motion verb
// parameter of the base layer.
var motionClassToVerb = map[string]string{
	"static":      "hold",
	"rising":      "ramp_up",
	"falling":     "ramp_down",
	"oscillating": "oscillate",
	"scattered":   "scatter",
}

// energyClassToTemplateType maps a mined energy class onto the recipe lane
// defaulting and the accent layer's intensity shape.
var energyClassToTemplateType = map[string]string{
	"low":     "ambient",
	"medium":  "groove",
	"high":    "impact",
	"extreme": "peak",
}

// colorClassToMode maps a mined color class onto the accent layer's color
// mode and its palette roles.
var colorClassToMode = map[string]string{
	"warm":          "warm_blend",
	"cool":          "cool_blend",
	"high_contrast": "complementary",
	"monochrome":    "single_hue",
	"rainbow":       "spectrum_cycle",
}
