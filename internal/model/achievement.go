package model

// Achievement identifies a badge a player can unlock once per session
type Achievement string

const (
	AchievementFirstBlood     Achievement = "first_blood"
	AchievementHotStreak      Achievement = "hot_streak"
	AchievementShipSinker     Achievement = "ship_sinker"
	AchievementFleetDestroyer Achievement = "fleet_destroyer"
	AchievementSharpshooter   Achievement = "sharpshooter"
	AchievementVictoryRoyale  Achievement = "victory_royale"
)

// AchievementInfo is the display data for an achievement
type AchievementInfo struct {
	Emoji       string
	Name        string
	Description string
}

var achievementInfo = map[Achievement]AchievementInfo{
	AchievementFirstBlood:     {"⚡", "First Blood", "Get the first hit of the game"},
	AchievementHotStreak:      {"🔥", "Hot Streak", "5 hits in a row"},
	AchievementShipSinker:     {"🚢", "Ship Sinker", "Sink your first ship in a game"},
	AchievementFleetDestroyer: {"💀", "Fleet Destroyer", "Sink 3 or more ships in a game"},
	AchievementSharpshooter:   {"🎯", "Sharpshooter", "80%+ accuracy with 10+ moves"},
	AchievementVictoryRoyale:  {"🏆", "Victory Royale", "Land the final hit of a game"},
}

// Info returns display data; unknown achievements echo their identifier
func (a Achievement) Info() AchievementInfo {
	if info, ok := achievementInfo[a]; ok {
		return info
	}
	return AchievementInfo{Name: string(a)}
}

// Badge returns the emoji and name, e.g. "🎯 Sharpshooter"
func (a Achievement) Badge() string {
	info := a.Info()
	if info.Emoji == "" {
		return info.Name
	}
	return info.Emoji + " " + info.Name
}
