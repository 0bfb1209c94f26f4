package models

type MemberContention struct {
	MemberID       string `json:"memberId"`
	Name           string `json:"name"`
	CurrentWins    int    `json:"currentWins"`
	RemainingPicks int    `json:"remainingPicks"`
	MaxWins        int    `json:"maxWins"`
	Alive          bool   `json:"alive"`
}

type ContentionReport struct {
	SeasonID       string             `json:"seasonId"`
	Week           int                `json:"week"`
	WeekLabel      string             `json:"weekLabel"`
	AllowTies      bool               `json:"allowTies"`
	RemainingGames int                `json:"remainingGames"`
	Members        []MemberContention `json:"members"`
	WinnerMemberID string             `json:"winnerMemberId,omitempty"`
}

type MemberPick struct {
	GameKey  string
	Matchup  string
	Side     string
	TeamCode string
	Status   string
}

type MemberPicksReport struct {
	MemberName string
	Week       int
	Picks      []MemberPick
	Contention MemberContention
}

type GameSummary struct {
	GameKey   string
	Matchup   string
	Status    string
	Winner    string
	HomePicks int
	AwayPicks int
	NoPick    int
}
