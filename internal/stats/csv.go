package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

const dateFormat = "2006/01/02 15:04:05"

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// WriteMoneyCSV exports money-history rows as CSV with a header line.
func WriteMoneyCSV(w io.Writer, rows []MoneyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"date", "hand_id", "invested", "won", "net", "pot", "rake",
		"cum_invested", "cum_won", "cum_net", "cum_pot", "cum_rake",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date.Format(dateFormat), r.HandID,
			formatFloat(r.Invested), formatFloat(r.Won), formatFloat(r.Net),
			formatFloat(r.Pot), formatFloat(r.Rake),
			formatFloat(r.CumInvested), formatFloat(r.CumWon), formatFloat(r.CumNet),
			formatFloat(r.CumPot), formatFloat(r.CumRake),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatsCSV exports per-player-per-hand rows as CSV with a header line.
func WriteStatsCSV(w io.Writer, rows []PlayerHandRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"hand_id", "date", "player", "position",
		"vpip", "pfr", "three_bet",
		"invested", "collected", "showdown_cards",
		"winner", "went_to_showdown", "won_at_showdown",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.HandID, r.Date.Format(dateFormat), r.Player, r.Position,
			formatBool(r.VPIP), formatBool(r.PFR), formatBool(r.ThreeBet),
			formatFloat(r.Invested), formatFloat(r.Collected), r.ShowdownCards,
			formatBool(r.Winner), formatBool(r.WentToShowdown), formatBool(r.WonAtShowdown),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
