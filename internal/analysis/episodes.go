package analysis

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// Episode is one contiguous run of negative drawdown deep enough to clear
// the configured threshold.
type Episode struct {
	Start        time.Time `json:"start_date"`
	Trough       time.Time `json:"trough_date"`
	End          time.Time `json:"end_date"`
	DepthPct     float64   `json:"depth_pct"`
	Duration     int       `json:"duration_days"`
	StartWealth  float64   `json:"start_value"`
	TroughWealth float64   `json:"trough_value"`
	// Censored marks an episode still open at the end of the series. Such
	// episodes are closed at the final timestamp but their depth and
	// duration are lower bounds, so consumers can tell them apart from
	// recovered episodes.
	Censored bool `json:"censored"`
}

// EpisodeList is an ordered list of episodes in chronological start order.
type EpisodeList []Episode

// segmentation states
const (
	stateOutOfDrawdown = iota
	stateInDrawdown
)

// Episodes walks the drawdown series and segments it into discrete episodes.
// An episode opens when drawdown turns negative, closes when it returns to
// zero or above (or at the end of the series), and is emitted only when its
// trough depth reaches drawdownThresholdPct.
func (a *Analyzer) Episodes(returns timeseries.Series) EpisodeList {
	drawdown := a.Drawdown(returns)
	wealth := a.CumulativeWealth(returns)

	episodes := make(EpisodeList, 0)
	state := stateOutOfDrawdown
	start := 0

	for i, v := range drawdown.Values {
		switch state {
		case stateOutOfDrawdown:
			if v < 0 {
				state = stateInDrawdown
				start = i
			}
		case stateInDrawdown:
			if !(v < 0) {
				if ep, ok := a.closeEpisode(drawdown, wealth, start, i-1, false); ok {
					episodes = append(episodes, ep)
				}
				state = stateOutOfDrawdown
			}
		}
	}

	// Drawdown still open at the end of the series: close at the final
	// timestamp and report as censored.
	if state == stateInDrawdown {
		if ep, ok := a.closeEpisode(drawdown, wealth, start, drawdown.Len()-1, true); ok {
			episodes = append(episodes, ep)
		}
	}

	a.logger.WithField("episodes", len(episodes)).Info("Identified drawdown episodes")
	return episodes
}

// closeEpisode builds the episode record for drawdown[start..end], applying
// the depth threshold. The trough is the first occurrence of the minimum.
func (a *Analyzer) closeEpisode(drawdown, wealth timeseries.Series, start, end int, censored bool) (Episode, bool) {
	trough := start
	for i := start + 1; i <= end; i++ {
		if drawdown.Values[i] < drawdown.Values[trough] {
			trough = i
		}
	}
	depth := drawdown.Values[trough]
	if !(depth <= -a.drawdownThresholdPct/100) {
		return Episode{}, false
	}
	return Episode{
		Start:        drawdown.Index[start],
		Trough:       drawdown.Index[trough],
		End:          drawdown.Index[end],
		DepthPct:     depth * 100,
		Duration:     end - start + 1,
		StartWealth:  wealth.Values[start],
		TroughWealth: wealth.Values[trough],
		Censored:     censored,
	}, true
}

// ToCSV exports the episode list to a CSV string.
func (e EpisodeList) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("start_date,trough_date,end_date,depth_pct,duration_days,start_value,trough_value,censored\n")
	for _, ep := range e {
		buf.WriteString(ep.Start.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(ep.Trough.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(ep.End.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(ep.DepthPct, 'f', 4, 64))
		buf.WriteString(",")
		buf.WriteString(strconv.Itoa(ep.Duration))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(ep.StartWealth, 'f', 6, 64))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(ep.TroughWealth, 'f', 6, 64))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatBool(ep.Censored))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the episode list to a JSON string.
func (e EpisodeList) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}
