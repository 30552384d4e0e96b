package types

// SkillLevel is an ordinal proficiency level.
type SkillLevel string

// Known skill levels, weakest to strongest.
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
	LevelMaster       SkillLevel = "master"
)

// levelRanks orders levels for comparison; unknown levels rank lowest.
var levelRanks = map[SkillLevel]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
	LevelMaster:       5,
}

// levelWeights are the scoring contributions per level.
var levelWeights = map[SkillLevel]float64{
	LevelBeginner:     4,
	LevelIntermediate: 8,
	LevelAdvanced:     12,
	LevelExpert:       15,
	LevelMaster:       18,
}

// Rank returns the ordinal position of the level (0 for unknown).
func (l SkillLevel) Rank() int {
	return levelRanks[l]
}

// Weight returns the scoring weight of the level (0 for unknown).
func (l SkillLevel) Weight() float64 {
	return levelWeights[l]
}

// Skill represents a single named skill with proficiency metadata.
type Skill struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Level        SkillLevel `json:"level"`
	Years        float64    `json:"years,omitempty"`
	Trending     bool       `json:"trending,omitempty"`
	Highlighted  bool       `json:"highlighted,omitempty"`
	MarketDemand string     `json:"market_demand,omitempty"` // low, medium, high
}
