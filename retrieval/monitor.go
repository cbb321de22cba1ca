package retrieval

import (
	"fmt"

	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/query"
)

// Step is one rung of the restaurant lookup ladder.
type Step int

const (
	StepExact Step = iota + 1
	StepLoose
	StepSubstring
	StepSemantic
)

func (s Step) String() string {
	switch s {
	case StepExact:
		return "exact"
	case StepLoose:
		return "loose"
	case StepSubstring:
		return "substring"
	case StepSemantic:
		return "semantic"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Monitor provides hooks to observe how a question is answered.
type Monitor interface {
	Classified(cls query.Classification)
	LadderStep(step Step, restaurant string, found int)
	Retrieved(items []core.MenuItem)
	StrategyTried(strategy string, answered bool)
	Finish(answer Answer)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Classified(_ query.Classification)  {}
func (n *noopMonitor) LadderStep(_ Step, _ string, _ int) {}
func (n *noopMonitor) Retrieved(_ []core.MenuItem)        {}
func (n *noopMonitor) StrategyTried(_ string, _ bool)     {}
func (n *noopMonitor) Finish(_ Answer)                    {}
