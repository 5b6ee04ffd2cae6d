package mood

// AnimationTier groups moods by how hard the avatar should move.
type AnimationTier string

const (
	TierCalm    AnimationTier = "calm"
	TierLively  AnimationTier = "lively"
	TierFrantic AnimationTier = "frantic"
)

// Presentation carries the rendering parameters the frontend derives from a
// mood: background gradient, glow accent and the pose variant of the cat
// face. Purely static data, never mutated at runtime.
type Presentation struct {
	Mood     Mood          `json:"mood"`
	Gradient string        `json:"gradient"`
	Glow     string        `json:"glow"`
	Tier     AnimationTier `json:"tier"`
	Pose     string        `json:"pose"`
}

var catalog = map[Mood]Presentation{
	Neutral:    {Mood: Neutral, Gradient: "zinc-deep", Glow: "#27272a", Tier: TierCalm, Pose: "idle"},
	Roasting:   {Mood: Roasting, Gradient: "white-hot", Glow: "#ffffff", Tier: TierFrantic, Pose: "narrow-eyes"},
	Laughing:   {Mood: Laughing, Gradient: "silver-burst", Glow: "#a1a1aa", Tier: TierLively, Pose: "wide-grin"},
	Disgusted:  {Mood: Disgusted, Gradient: "sour-green", Glow: "#3f6212", Tier: TierLively, Pose: "squint"},
	Bored:      {Mood: Bored, Gradient: "flat-grey", Glow: "#18181b", Tier: TierCalm, Pose: "half-lid"},
	Angry:      {Mood: Angry, Gradient: "ember-red", Glow: "#7f1d1d", Tier: TierFrantic, Pose: "flat-ears"},
	Smug:       {Mood: Smug, Gradient: "violet-dusk", Glow: "#4c1d95", Tier: TierCalm, Pose: "side-smirk"},
	Surprised:  {Mood: Surprised, Gradient: "flash-blue", Glow: "#1d4ed8", Tier: TierLively, Pose: "round-eyes"},
	Sleepy:     {Mood: Sleepy, Gradient: "midnight", Glow: "#0f172a", Tier: TierCalm, Pose: "closed-eyes"},
	HappySmile: {Mood: HappySmile, Gradient: "warm-amber", Glow: "#b45309", Tier: TierLively, Pose: "soft-smile"},
	EvilSmile:  {Mood: EvilSmile, Gradient: "blood-violet", Glow: "#581c87", Tier: TierLively, Pose: "fang-grin"},
	Curious:    {Mood: Curious, Gradient: "teal-drift", Glow: "#0f766e", Tier: TierLively, Pose: "head-tilt"},
	Annoyed:    {Mood: Annoyed, Gradient: "rust-flat", Glow: "#7c2d12", Tier: TierLively, Pose: "twitch-ear"},
	Plotting:   {Mood: Plotting, Gradient: "shadow-green", Glow: "#14532d", Tier: TierCalm, Pose: "narrow-stare"},
	Sarcastic:  {Mood: Sarcastic, Gradient: "steel-blue", Glow: "#1e3a5f", Tier: TierCalm, Pose: "raised-brow"},
	Thinking:   {Mood: Thinking, Gradient: "fog-grey", Glow: "#374151", Tier: TierCalm, Pose: "look-up"},
	Silly:      {Mood: Silly, Gradient: "candy-pink", Glow: "#9d174d", Tier: TierFrantic, Pose: "tongue-out"},
	Playful:    {Mood: Playful, Gradient: "spring-lime", Glow: "#4d7c0f", Tier: TierFrantic, Pose: "paw-up"},
}

// Lookup resolves presentation parameters for a mood. Total over any input:
// values outside the closed set fall back to the Neutral entry, so render
// code never has to nil-check.
func Lookup(m Mood) Presentation {
	if p, ok := catalog[m]; ok {
		return p
	}
	return catalog[Neutral]
}

// Catalog returns the full table in catalog order for the /api/moods
// endpoint.
func Catalog() []Presentation {
	all := All()
	out := make([]Presentation, 0, len(all))
	for _, m := range all {
		out = append(out, catalog[m])
	}
	return out
}
