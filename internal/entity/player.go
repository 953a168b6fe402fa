package entity

const (
	KindCharacter = "character"
	KindObject    = "object"
)

// Player is any named entity a character can target. Only characters can play;
// bots are characters without a session whose turns are played by the AI.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Bot  bool   `json:"bot,omitempty"`
}

func (that *Player) CanPlay() bool {
	return that.Kind == KindCharacter
}

func (that *Player) IsBot() bool {
	return that.Bot
}

// Stats is a player's Triple Triad record.
type Stats struct {
	Played    int64 `json:"played"`
	Wins      int64 `json:"wins"`
	Losses    int64 `json:"losses"`
	Ties      int64 `json:"ties"`
	Forfeits  int64 `json:"forfeits"`
	Abandoned int64 `json:"abandoned"`
}
