package models

// DeckStat aggregates outcomes across every card of a deck.
type DeckStat struct {
	PassCount int `json:"pass_count"`
	FailCount int `json:"fail_count"`
}

// ChartPoint is one labelled value of the statistics chart.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Points returns the two aggregate values in display order.
func (s DeckStat) Points() []ChartPoint {
	return []ChartPoint{
		{Name: "Pass", Value: s.PassCount},
		{Name: "Fail", Value: s.FailCount},
	}
}

// Total returns the number of recorded attempts.
func (s DeckStat) Total() int {
	return s.PassCount + s.FailCount
}
