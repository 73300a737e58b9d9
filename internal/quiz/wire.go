package quiz

import "encoding/json"

type inboundEnvelope struct {
	Kind string `json:"kind"`
}

type submitAnswerCommand struct {
	Answer int `json:"answer"`
}

type createCommand struct {
	Username string `json:"username"`
	Settings struct {
		StartSection string `json:"startSection"`
		EndSection   string `json:"endSection"`
	} `json:"settings"`
}

type joinCommand struct {
	Username string `json:"username"`
	GameID   uint32 `json:"id"`
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func encodeInitialStuff(q JSONView) string {
	return mustJSON(struct {
		Kind     string   `json:"kind"`
		Question JSONView `json:"question"`
	}{"initialStuff", q})
}

type scoreEntry struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

func encodeUpdateStuffForPlayer(newQuestion JSONView, wasCorrect bool, score float64) string {
	return mustJSON(struct {
		Kind        string   `json:"kind"`
		NewQuestion JSONView `json:"newQuestion"`
		WasCorrect  bool     `json:"wasCorrect"`
		Score       float64  `json:"score"`
	}{"updateStuff", newQuestion, wasCorrect, score})
}

func encodeUpdateStuffForHost(newQuestion JSONView, scores []scoreEntry) string {
	if scores == nil {
		scores = []scoreEntry{}
	}
	return mustJSON(struct {
		Kind        string       `json:"kind"`
		NewQuestion JSONView     `json:"newQuestion"`
		Scores      []scoreEntry `json:"scores"`
	}{"updateStuff", newQuestion, scores})
}

func encodeCreateSuccess(hostName string, gameID GameID) string {
	return mustJSON(struct {
		Kind     string `json:"kind"`
		HostName string `json:"hostName"`
		GameID   uint32 `json:"gameId"`
	}{"createSuccess", hostName, uint32(gameID)})
}

func encodeCreateFailed(message string) string {
	return mustJSON(struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}{"createFailed", message})
}

func encodeJoinSuccess(hostName string) string {
	return mustJSON(struct {
		Kind     string `json:"kind"`
		HostName string `json:"hostName"`
	}{"joinSuccess", hostName})
}

func encodeInvalidGameID() string {
	return `{"kind":"invalidGameId"}`
}

func encodeRefreshLobby(usernames []string) string {
	if usernames == nil {
		usernames = []string{}
	}
	return mustJSON(struct {
		Kind  string   `json:"kind"`
		Users []string `json:"users"`
	}{"refreshLobby", usernames})
}

func encodeStartingGame(host string, usernames []string) string {
	if usernames == nil {
		usernames = []string{}
	}
	return mustJSON(struct {
		Kind  string   `json:"kind"`
		Host  string   `json:"host"`
		Users []string `json:"users"`
	}{"startingGame", host, usernames})
}

func encodeHostAbandoned() string {
	return `{"kind":"hostAbandoned"}`
}
