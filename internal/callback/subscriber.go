package callback

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Subscriber is the single reader end of the pipe, owning the Summary.
// Only the main thread ever calls its methods.
type Subscriber struct {
	p       *pipe
	summary *Summary
	closed  bool
}

// TryUpdate drains all currently-queued messages, applies them to the
// Summary, and returns a human-readable delta covering any state changes.
// Never blocks.
func (s *Subscriber) TryUpdate() (string, error) {
	var deltas []string
	for {
		select {
		case msg, ok := <-s.p.ch:
			if !ok {
				if !s.closed {
					s.summary.finalize()
					s.closed = true
				}
				return strings.Join(deltas, "\n"), nil
			}
			if d := s.apply(msg); d != "" {
				deltas = append(deltas, d)
			}
		default:
			return strings.Join(deltas, "\n"), nil
		}
	}
}

// Snapshot returns the full summary text.
func (s *Subscriber) Snapshot() string {
	return FormatText(s.summary)
}

// Insert registers a freshly appended task with the Summary. Called
// directly by the run driver right after AppendTask, before the task
// stream starts, so no synchronization with TryUpdate is needed.
func (s *Subscriber) Insert(id int32, name, taskType string) {
	s.summary.insert(id, name, taskType)
}

func (s *Subscriber) apply(msg Message) string {
	switch msg.Code {
	case MsgTaskChainStart:
		s.summary.startTask(msg.TaskID)
		return s.summary.taskSummaryDelta(msg.TaskID)
	case MsgTaskChainCompleted:
		s.summary.endCurrentTask(Completed)
		return s.summary.taskSummaryDelta(msg.TaskID)
	case MsgTaskChainStopped:
		s.summary.endCurrentTask(Stopped)
		return s.summary.taskSummaryDelta(msg.TaskID)
	case MsgTaskChainError:
		s.summary.endCurrentTask(Error)
		return s.summary.taskSummaryDelta(msg.TaskID)
	case MsgSubTaskExtraInfo, MsgTaskChainExtraInfo:
		s.applyExtraInfo(msg.Payload)
		return ""
	case MsgSubTaskStart:
		s.applySubTaskStart(msg.Payload)
		return ""
	default:
		return ""
	}
}

// applyExtraInfo defensively extracts the "what"/payload fields the Core's
// SubTaskExtraInfo messages carry and folds them into the current task's
// typed Detail. Unknown or malformed shapes are ignored, never fatal.
func (s *Subscriber) applyExtraInfo(payload []byte) {
	what := gjson.GetBytes(payload, "what").String()
	s.summary.editCurrentTaskDetail(func(t *TaskSummary) {
		switch what {
		case "StageDrops":
			applyStageDrops(t, payload)
		case "InfrastProcessStationOrder", "InfrastRoomInfo":
			applyInfrastRoom(t, payload)
		case "RecruitTagsDetected", "RecruitResult":
			applyRecruit(t, payload, what)
		case "StageInfo":
			if stage := gjson.GetBytes(payload, "details.stage.stageCode").String(); stage != "" && t.Fight != nil && t.Fight.Stage == "" {
				t.Fight.Stage = stage
			}
		}
	})
}

// applySubTaskStart handles the SubTaskStart "what" values that mark a
// one-off event rather than a running total: medicine/stone consumption
// during a fight, and the start/outcome of a roguelike exploration.
func (s *Subscriber) applySubTaskStart(payload []byte) {
	what := gjson.GetBytes(payload, "what").String()
	s.summary.editCurrentTaskDetail(func(t *TaskSummary) {
		switch what {
		case "MedicineConfirm":
			applyMedicineConfirm(t, payload)
		case "StoneConfirm":
			if t.Fight != nil {
				t.Fight.StonesUsed++
			}
		case "StartExplore":
			if t.Roguelike != nil {
				t.Roguelike.StartExploration()
			}
		case "StageTraderInvestConfirm":
			if t.Roguelike != nil {
				t.Roguelike.SetInvest(int(gjson.GetBytes(payload, "details.invest_amount").Int()))
			}
		case "MissionCompletedFlag":
			if t.Roguelike != nil {
				t.Roguelike.SetState(RoguelikePassed)
			}
		case "MissionFailedFlag":
			if t.Roguelike != nil {
				t.Roguelike.SetState(RoguelikeFailed)
			}
		case "GamePass":
			applyGamePass(t, payload)
		}
	})
}

func applyMedicineConfirm(t *TaskSummary, payload []byte) {
	if t.Fight == nil {
		return
	}
	t.Fight.MedicineUsed++
	if gjson.GetBytes(payload, "details.is_expiring").Bool() {
		t.Fight.ExpiringUsed++
	}
}

func applyGamePass(t *TaskSummary, payload []byte) {
	if t.Roguelike == nil {
		return
	}
	t.Roguelike.SetExp(int(gjson.GetBytes(payload, "details.exp").Int()))
	t.Roguelike.SetState(RoguelikePassed)
}

func applyStageDrops(t *TaskSummary, payload []byte) {
	if t.Fight == nil {
		return
	}
	t.Fight.Times++
	drops := map[string]int{}
	for _, d := range gjson.GetBytes(payload, "details.drops").Array() {
		name := d.Get("name").String()
		qty := int(d.Get("count").Int())
		if name == "" {
			continue
		}
		drops[name] = qty
	}
	t.Fight.addFightDrops(drops)
}

func applyInfrastRoom(t *TaskSummary, payload []byte) {
	if t.Infrast == nil {
		return
	}
	facility := gjson.GetBytes(payload, "details.facility").String()
	index := int(gjson.GetBytes(payload, "details.index").Int())
	room := t.Infrast.room(facility, index)
	if product := gjson.GetBytes(payload, "details.product").String(); product != "" {
		room.Product = product
	}
	for _, op := range gjson.GetBytes(payload, "details.operators").Array() {
		if name := op.Get("name").String(); name != "" {
			room.Operators = append(room.Operators, name)
		}
	}
}

func applyRecruit(t *TaskSummary, payload []byte, what string) {
	if t.Recruit == nil {
		return
	}
	switch what {
	case "RecruitTagsDetected":
		var tags []string
		for _, tag := range gjson.GetBytes(payload, "details.tags").Array() {
			tags = append(tags, tag.String())
		}
		star := int(gjson.GetBytes(payload, "details.star").Int())
		t.Recruit.Entries = append(t.Recruit.Entries, RecruitEntry{StarLevel: star, Tags: tags, State: RecruitNone})
	case "RecruitResult":
		if len(t.Recruit.Entries) == 0 {
			return
		}
		last := &t.Recruit.Entries[len(t.Recruit.Entries)-1]
		if gjson.GetBytes(payload, "details.refreshed").Bool() {
			last.State = RecruitRefreshed
			t.Recruit.Refreshes++
		} else if gjson.GetBytes(payload, "details.recruited").Bool() {
			last.State = RecruitRecruited
			t.Recruit.Recruits++
		}
	}
}
