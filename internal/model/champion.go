package model

// ChampionID is a Data Dragon champion identifier, e.g. "Aatrox"
type ChampionID string

// ChampionEntry is one catalog entry from the champion dataset
type ChampionEntry struct {
	ID        ChampionID
	Name      string // localized display name
	ImageFull string // icon asset filename, e.g. "Aatrox.png"
}
