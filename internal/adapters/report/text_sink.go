package report

import (
	"context"
	"fmt"
	"io"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// TextSink renders results as the line-oriented planning report:
//
//	Commodity: Bread
//	 Shortage of Material A: 0.5
//	 Cost to fix shortage: 7.5
//	 No shortage of Material C
//	 Total cost for Bread: 3223.5
//	 Price for Bread: 36.1
//	Total cost for all commodities: 4523.5
type TextSink struct {
	w            io.Writer
	cycleHeaders bool
	headerCycle  int
}

// NewTextSink writes to w. With cycleHeaders, each cycle starts with a "Cycle: N" line.
func NewTextSink(w io.Writer, cycleHeaders bool) *TextSink {
	return &TextSink{w: w, cycleHeaders: cycleHeaders}
}

// CommodityPlanned implements planning.ReportSink
func (s *TextSink) CommodityPlanned(_ context.Context, cycle int, r planning.CommodityResult) error {
	p := &printer{w: s.w}
	s.header(p, cycle)

	p.line("Commodity: %s", r.Commodity)
	for _, m := range r.Materials {
		if m.HasShortage() {
			p.line(" Shortage of %s: %s", m.Material, utils.FormatQuantity(m.Shortage))
			p.line(" Cost to fix shortage: %s", utils.FormatQuantity(m.RemediationCost))
		} else {
			p.line(" No shortage of %s", m.Material)
		}
	}
	if r.Labor.Shortage {
		p.line(" Labor shortage for %s. Required: %s, Available: %d",
			r.Commodity, utils.FormatQuantity(r.Labor.Required), r.Labor.Available)
	}
	p.line(" Total cost for %s: %s", r.Commodity, utils.FormatQuantity(r.CycleCost))
	p.line(" Price for %s: %s", r.Commodity, utils.FormatQuantity(r.UnitPrice))
	for _, w := range r.Wages {
		p.line(" Wage for %s: %s", w.Name, utils.FormatQuantity(w.Wage))
	}
	return p.err
}

// CycleCompleted implements planning.ReportSink
func (s *TextSink) CycleCompleted(_ context.Context, report *planning.CycleReport) error {
	p := &printer{w: s.w}
	s.header(p, report.Cycle)
	p.line("Total cost for all commodities: %s", utils.FormatQuantity(report.TotalCost))
	return p.err
}

// header prints "Cycle: N" once per cycle, before that cycle's first line
func (s *TextSink) header(p *printer, cycle int) {
	if !s.cycleHeaders || s.headerCycle == cycle {
		return
	}
	s.headerCycle = cycle
	p.line("Cycle: %d", cycle)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}
