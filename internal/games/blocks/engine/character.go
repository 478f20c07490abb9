package engine

// Ability is a character's special ability tag.
type Ability string

const (
	AbilityBalanced     Ability = "balanced"
	AbilityFastMovement Ability = "fast_movement"
	AbilityBonusPoints  Ability = "bonus_points"
	AbilityClearBonus   Ability = "clear_bonus"
)

// DefaultCharacterID is used when no or an unknown character is selected.
const DefaultCharacterID = "steve"

// Character is the cosmetic modifier record chosen before a session.
// Speed scales gravity (interval / Speed); ScoreMultiplier scales line score.
type Character struct {
	ID              string
	Name            string
	Speed           float64
	ScoreMultiplier float64
	Ability         Ability
	Description     string
}

// DefaultCharacters returns the four built-in characters.
func DefaultCharacters() []Character {
	return []Character{
		{
			ID: "steve", Name: "Steve", Speed: 1.0, ScoreMultiplier: 1.0,
			Ability: AbilityBalanced, Description: "The Classic Builder - balanced stats",
		},
		{
			ID: "alex", Name: "Alex", Speed: 1.15, ScoreMultiplier: 0.95,
			Ability: AbilityFastMovement, Description: "The Adventurer - faster pieces, slightly lower score",
		},
		{
			ID: "miner", Name: "Miner", Speed: 0.9, ScoreMultiplier: 1.2,
			Ability: AbilityBonusPoints, Description: "The Resource Master - slower but earns 20% more",
		},
		{
			ID: "builder", Name: "Builder", Speed: 0.85, ScoreMultiplier: 1.0,
			Ability: AbilityClearBonus, Description: "The Architect - slowest, bonus for every cleared line",
		},
	}
}

// FindCharacter returns the character with id from chars. Unknown ids fall
// back to steve, then to the first entry, then to a neutral record.
func FindCharacter(chars []Character, id string) Character {
	for _, c := range chars {
		if c.ID == id {
			return c.normalized()
		}
	}
	for _, c := range chars {
		if c.ID == DefaultCharacterID {
			return c.normalized()
		}
	}
	if len(chars) > 0 {
		return chars[0].normalized()
	}
	return Character{ID: DefaultCharacterID, Name: "Steve", Speed: 1, ScoreMultiplier: 1, Ability: AbilityBalanced}
}

func (c Character) normalized() Character {
	if c.Speed <= 0 {
		c.Speed = 1
	}
	if c.ScoreMultiplier <= 0 {
		c.ScoreMultiplier = 1
	}
	if c.Ability == "" {
		c.Ability = AbilityBalanced
	}
	return c
}
