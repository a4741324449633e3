package match3

// Level is a campaign stage: reach Target points within Moves swaps.
type Level struct {
	ID     int
	Name   string
	Target int // Score needed to clear the level
	Moves  int // Nominal move budget, before difficulty adjustment
	Kinds  int // Tile kinds in play
}

// Levels defines the campaign. More kinds mean fewer accidental matches, so
// later levels add kinds rather than only raising targets.
var Levels = []Level{
	{ID: 1, Name: "First Spark", Target: 300, Moves: 20, Kinds: 4},
	{ID: 2, Name: "Warm Glow", Target: 600, Moves: 20, Kinds: 4},
	{ID: 3, Name: "Five Colors", Target: 800, Moves: 22, Kinds: 5},
	{ID: 4, Name: "Chain Reaction", Target: 1200, Moves: 22, Kinds: 5},
	{ID: 5, Name: "Tight Budget", Target: 1200, Moves: 16, Kinds: 5},
	{ID: 6, Name: "Full Spectrum", Target: 1000, Moves: 24, Kinds: 6},
	{ID: 7, Name: "Deep Cascade", Target: 1500, Moves: 24, Kinds: 6},
	{ID: 8, Name: "Grand Finale", Target: 2000, Moves: 25, Kinds: 6},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels, for menus.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}
