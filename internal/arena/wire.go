package arena

import "encoding/json"

type inboundEnvelope struct {
	Kind string `json:"kind"`
}

type updateFacingCommand struct {
	NewFacing float64 `json:"newFacing"`
}

type guessCommand struct {
	GuessIsLeft bool `json:"guessIsLeft"`
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

type starWire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type playerWire struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Color  string  `json:"color"`
	Shield int     `json:"shield"`
}

func encodePlayer(p *Player) playerWire {
	vx, vy := p.velocity()
	return playerWire{X: p.X, Y: p.Y, VX: vx, VY: vy, Color: p.Color, Shield: p.Shield}
}

type laserWire struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing float64 `json:"facing"`
	Expire float64 `json:"expire"`
}

func encodeLaser(l Laser) laserWire {
	return laserWire{X: l.X, Y: l.Y, Facing: l.Facing, Expire: l.ExpireMillis}
}

type questionWire struct {
	Definition string `json:"definition"`
	Left       string `json:"left"`
	Right      string `json:"right"`
}

func encodeQuestion(q Question) questionWire {
	return questionWire{Definition: q.Definition, Left: q.Left, Right: q.Right}
}

type gameStateWire struct {
	Time    float64      `json:"time"`
	Stars   []starWire   `json:"stars"`
	Players []playerWire `json:"players"`
	Us      playerWire   `json:"us"`
	Lasers  []laserWire  `json:"lasers"`
}

type updateGameStateWire struct {
	Kind      string        `json:"kind"`
	GameState gameStateWire `json:"gameState"`
	Question  questionWire  `json:"question"`
}

// encodeGameState renders the broadcast frame for receiver: the
// shared stars/players/lasers, receiver's own projected player record
// repeated as "us", and receiver's own (private) question.
func encodeGameState(w *World, receiver uint64) string {
	stars := make([]starWire, len(w.stars))
	for i, s := range w.stars {
		stars[i] = starWire{X: s.X, Y: s.Y}
	}

	players := make([]playerWire, 0, len(w.players))
	for _, p := range w.players {
		players = append(players, encodePlayer(p))
	}

	lasers := make([]laserWire, len(w.lasers))
	for i, l := range w.lasers {
		lasers[i] = encodeLaser(l)
	}

	us := w.players[receiver]
	return mustJSON(updateGameStateWire{
		Kind: "updateGameState",
		GameState: gameStateWire{
			Time:    w.lastTickMillis,
			Stars:   stars,
			Players: players,
			Us:      encodePlayer(us),
			Lasers:  lasers,
		},
		Question: encodeQuestion(us.Question),
	})
}

func encodeKill() string {
	return `{"kind":"kill"}`
}
