package events

import (
	"github.com/hyowon/smartsched/pkg/sim"
)

const (
	RunStartedEvent        = "run.started"
	DayCompletedEvent      = "run.day.completed"
	CampaignTriggeredEvent = "run.campaign.triggered"
	RunCompletedEvent      = "run.completed"

	// RunStream is the single stream one simulated run writes to.
	RunStream = "simulation"
)

type RunStarted struct {
	Params sim.Params `json:"params"`
}

type DayCompleted struct {
	Record sim.DayRecord `json:"record"`
}

type CampaignTriggered struct {
	Day         int     `json:"day"`
	NP3Produced float64 `json:"np3_produced"`
	LVConsumed  float64 `json:"lv_consumed"`
}

type RunCompleted struct {
	Summary sim.RunSummary `json:"summary"`
}

func NewRunStartedEvent(params sim.Params) Event {
	return NewEvent(RunStartedEvent, RunStream, RunStarted{Params: params})
}

func NewDayCompletedEvent(record sim.DayRecord) Event {
	return NewEvent(DayCompletedEvent, RunStream, DayCompleted{Record: record})
}

func NewCampaignTriggeredEvent(day int, np3Produced, lvConsumed float64) Event {
	return NewEvent(CampaignTriggeredEvent, RunStream, CampaignTriggered{
		Day:         day,
		NP3Produced: np3Produced,
		LVConsumed:  lvConsumed,
	})
}

func NewRunCompletedEvent(summary sim.RunSummary) Event {
	return NewEvent(RunCompletedEvent, RunStream, RunCompleted{Summary: summary})
}

// Recorder adapts an EventStore to the engine's observer interface, turning
// run lifecycle notifications into stream events.
type Recorder struct {
	store EventStore
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store EventStore) *Recorder {
	return &Recorder{store: store}
}

var _ sim.Observer = (*Recorder)(nil)

func (r *Recorder) RunStarted(params sim.Params) {
	_ = r.store.AppendEvent(RunStream, NewRunStartedEvent(params))
}

func (r *Recorder) DayCompleted(record sim.DayRecord) {
	_ = r.store.AppendEvent(RunStream, NewDayCompletedEvent(record))
}

func (r *Recorder) CampaignTriggered(day int, np3Produced, lvConsumed float64) {
	_ = r.store.AppendEvent(RunStream, NewCampaignTriggeredEvent(day, np3Produced, lvConsumed))
}

func (r *Recorder) RunCompleted(summary sim.RunSummary) {
	_ = r.store.AppendEvent(RunStream, NewRunCompletedEvent(summary))
}
