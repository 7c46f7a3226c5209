package crowding

import (
	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// Component is one named proxy table fed into the composite aggregator.
type Component struct {
	Name  string
	Table *timeseries.Frame
}

// Composite concatenates the component tables column-wise (outer join on
// timestamps) and reduces them to one index by the per-timestamp mean over
// all present values. A timestamp where every column is missing stays
// missing. When winsorize is set the result is capped at the configured
// percentiles.
func (b *Builder) Composite(components []Component, winsorize bool) timeseries.Series {
	frames := make([]*timeseries.Frame, len(components))
	for i, c := range components {
		frames[i] = c.Table
	}
	combined := timeseries.Concat(frames...)

	composite := combined.Mean()
	if winsorize {
		composite = timeseries.Winsorize(composite, b.params.WinsorizeLower, b.params.WinsorizeUpper)
	}

	b.logger.WithField("components", combined.Width()).Info("Composite crowding index created")
	metrics.RecordComposite(combined.Width())
	return composite
}

// IndexSet bundles the three proxy tables and the four composite indices
// built from them.
type IndexSet struct {
	FlowAttention *timeseries.Frame
	CoMovement    *timeseries.Frame
	FactorSide    *timeseries.Frame

	IndexA   timeseries.Series // flow-attention only
	IndexB   timeseries.Series // co-movement only
	IndexC   timeseries.Series // factor-side only
	IndexAll timeseries.Series // all proxy sets combined
}

// BuildAll constructs the three proxy tables and the four winsorized
// composites. Proxy sets that came out empty still contribute a full-length
// all-missing index so every series shares the dataset calendar.
func (b *Builder) BuildAll(ds *dataset.Dataset) *IndexSet {
	b.logger.Info("Building all crowding indices")

	set := &IndexSet{
		FlowAttention: b.FlowAttention(ds),
		CoMovement:    b.CoMovement(ds),
		FactorSide:    b.FactorSide(ds),
	}

	set.IndexA = b.Composite([]Component{{Name: "flow_attention", Table: set.FlowAttention}}, true)
	set.IndexB = b.Composite([]Component{{Name: "comovement", Table: set.CoMovement}}, true)
	set.IndexC = b.Composite([]Component{{Name: "factor_side", Table: set.FactorSide}}, true)
	set.IndexAll = b.Composite([]Component{
		{Name: "flow_attention", Table: set.FlowAttention},
		{Name: "comovement", Table: set.CoMovement},
		{Name: "factor_side", Table: set.FactorSide},
	}, true)

	b.logger.Info("All crowding indices built")
	return set
}

// ToFrame renders the four composite indices as one table over the dataset
// calendar.
func (s *IndexSet) ToFrame() *timeseries.Frame {
	frame := timeseries.NewFrame(s.IndexAll.Index)
	frame.AddSeries("CrowdingIndex_A", s.IndexA)
	frame.AddSeries("CrowdingIndex_B", s.IndexB)
	frame.AddSeries("CrowdingIndex_C", s.IndexC)
	frame.AddSeries("CrowdingIndex_All", s.IndexAll)
	return frame
}
