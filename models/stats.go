package models

// TimeRange selects the reporting window for stats queries
type TimeRange string

const (
	TimeRangeAll       TimeRange = ""
	TimeRangeToday     TimeRange = "today"
	TimeRangeYesterday TimeRange = "yesterday"
	TimeRange7Days     TimeRange = "7days"
	TimeRangeLastMonth TimeRange = "lastmonth"
)

// StatsFilter narrows the bet population a summary is computed over
type StatsFilter struct {
	TimeRange   TimeRange
	Sport       string
	Bookmaker   string
	IncludeBets bool // attach the filtered bets for a detailed view
}

// StatsSummary is the aggregate performance report over the filtered bets
type StatsSummary struct {
	TotalBets       int // all bets matching the filters, pending included
	SettledBets     int
	Wins            int
	Losses          int
	Pushes          int
	PartialWins     int
	TotalStake      float64 // stakes of settled bets only
	TotalProfitLoss float64
	ROI             float64 // TotalProfitLoss / TotalStake, 0 when no settled bets
	Bankroll        float64
	Bets            []Bet // populated when IncludeBets was set
}
