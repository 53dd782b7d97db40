package protocol

type Player struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Score  int     `json:"score"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Collectible struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  int     `json:"value"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Init is the unicast snapshot a connection receives once it is active.
// Players holds everyone except the receiver.
type Init struct {
	Player       Player        `json:"player"`
	Players      []Player      `json:"players"`
	Collectibles []Collectible `json:"collectibles"`
}

type CollectibleCollected struct {
	PlayerID         string      `json:"playerId"`
	CollectibleID    int         `json:"collectibleId"`
	NewCollectible   Collectible `json:"newCollectible"`
	CollectibleValue int         `json:"collectibleValue"`
}

type PlayerLeft struct {
	ID string `json:"id"`
}

// Standing is one row of the room leaderboard served over HTTP.
type Standing struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// State is a full view of a room, served over HTTP for spectators.
type State struct {
	Players      []Player      `json:"players"`
	Collectibles []Collectible `json:"collectibles"`
}
