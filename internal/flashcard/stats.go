package flashcard

import "github.com/vytor/flashdeck/internal/models"

// Statistics counts pass and fail outcomes across all card histories.
func Statistics(cards []models.Flashcard) models.DeckStat {
	var stat models.DeckStat
	for _, c := range cards {
		for _, o := range c.History {
			switch o {
			case models.OutcomePass:
				stat.PassCount++
			case models.OutcomeFail:
				stat.FailCount++
			}
		}
	}
	return stat
}
