package callback

import (
	"fmt"
	"time"
)

// TaskState is a TaskSummary's lifecycle state.
type TaskState int

const (
	Unstarted TaskState = iota
	Running
	Completed
	Stopped
	Error
	Unfinished
)

func (s TaskState) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Stopped:
		return "Stopped"
	case Error:
		return "Error"
	case Unfinished:
		return "Unfinished"
	default:
		return "Unknown"
	}
}

// DetailKind tags which typed accumulator a TaskSummary.Detail holds.
type DetailKind int

const (
	DetailNone DetailKind = iota
	DetailFight
	DetailInfrast
	DetailRecruit
	DetailRoguelike
)

// FightDetail accumulates a Fight task chain's observations: a per-fight
// drop map for each observed stage clear, plus an aggregated total across
// every fight in the chain.
type FightDetail struct {
	Stage        string
	Times        int
	MedicineUsed int
	ExpiringUsed int
	StonesUsed   int
	PerFight     []map[string]int
	Drops        map[string]int
}

func newFightDetail() *FightDetail { return &FightDetail{Drops: map[string]int{}} }

// addFightDrops records one fight's drop map, folding its counts into the
// running aggregate total.
func (f *FightDetail) addFightDrops(drops map[string]int) {
	f.PerFight = append(f.PerFight, drops)
	for name, qty := range drops {
		f.Drops[name] += qty
	}
}

// InfrastRoom is the per-(facility, room-index) accumulator for an Infrast
// task chain.
type InfrastRoom struct {
	Facility  string
	RoomIndex int
	Product   string
	Operators []string
	Candidates []string
}

// InfrastDetail accumulates an Infrast task chain's room assignments.
type InfrastDetail struct {
	Rooms []*InfrastRoom
}

func newInfrastDetail() *InfrastDetail { return &InfrastDetail{} }

func (d *InfrastDetail) room(facility string, index int) *InfrastRoom {
	for _, r := range d.Rooms {
		if r.Facility == facility && r.RoomIndex == index {
			return r
		}
	}
	r := &InfrastRoom{Facility: facility, RoomIndex: index}
	d.Rooms = append(d.Rooms, r)
	return r
}

// RecruitState is one recruitment attempt's outcome.
type RecruitState int

const (
	RecruitNone RecruitState = iota
	RecruitRefreshed
	RecruitRecruited
)

// RecruitEntry is one chronological recruit observation.
type RecruitEntry struct {
	StarLevel int
	Tags      []string
	State     RecruitState
}

// RecruitDetail accumulates a Recruit task chain's observations.
type RecruitDetail struct {
	Entries   []RecruitEntry
	Refreshes int
	Recruits  int
}

func newRecruitDetail() *RecruitDetail { return &RecruitDetail{} }

// RoguelikeOutcome is one exploration's terminal state.
type RoguelikeOutcome int

const (
	RoguelikeUnknown RoguelikeOutcome = iota
	RoguelikePassed
	RoguelikeFailed
	RoguelikeAbandoned
)

// RoguelikeExploration is one run through a roguelike theme.
type RoguelikeExploration struct {
	State   RoguelikeOutcome
	Invest  *int
	Exp     *int
}

// RoguelikeDetail accumulates a Roguelike task chain's explorations.
type RoguelikeDetail struct {
	Explorations []*RoguelikeExploration
}

func newRoguelikeDetail() *RoguelikeDetail { return &RoguelikeDetail{} }

func (d *RoguelikeDetail) StartExploration() {
	d.Explorations = append(d.Explorations, &RoguelikeExploration{})
}

func (d *RoguelikeDetail) last() *RoguelikeExploration {
	if len(d.Explorations) == 0 {
		d.StartExploration()
	}
	return d.Explorations[len(d.Explorations)-1]
}

func (d *RoguelikeDetail) SetState(s RoguelikeOutcome) { d.last().State = s }
func (d *RoguelikeDetail) SetInvest(v int)              { d.last().Invest = &v }
func (d *RoguelikeDetail) SetExp(v int)                 { d.last().Exp = &v }

// TaskSummary is the per-task entry of the live run summary.
type TaskSummary struct {
	TaskID    int32
	TaskType  string
	Name      string
	State     TaskState
	StartTime *time.Time
	EndTime   *time.Time

	DetailKind DetailKind
	Fight      *FightDetail
	Infrast    *InfrastDetail
	Recruit    *RecruitDetail
	Roguelike  *RoguelikeDetail
}

func newTaskSummary(id int32, name, taskType string) *TaskSummary {
	ts := &TaskSummary{TaskID: id, TaskType: taskType, Name: name, State: Unstarted}
	switch taskType {
	case "Fight":
		ts.DetailKind, ts.Fight = DetailFight, newFightDetail()
	case "Infrast":
		ts.DetailKind, ts.Infrast = DetailInfrast, newInfrastDetail()
	case "Recruit":
		ts.DetailKind, ts.Recruit = DetailRecruit, newRecruitDetail()
	case "Roguelike":
		ts.DetailKind, ts.Roguelike = DetailRoguelike, newRoguelikeDetail()
	default:
		ts.DetailKind = DetailNone
	}
	return ts
}

// Summary is the live, single-reader-owned state machine: each task moves
// `Unstarted -> Running -> {Completed|Stopped|Error}`, with a task still
// Running at process exit becoming Unfinished.
type Summary struct {
	order   []int32
	tasks   map[int32]*TaskSummary
	current int32
	hasCur  bool
}

func newSummary() *Summary {
	return &Summary{tasks: map[int32]*TaskSummary{}}
}

// insert registers a freshly appended task.
func (s *Summary) insert(id int32, name, taskType string) {
	if _, ok := s.tasks[id]; ok {
		return
	}
	s.tasks[id] = newTaskSummary(id, name, taskType)
	s.order = append(s.order, id)
}

// startTask marks id Running and current; a no-op if id is unknown.
func (s *Summary) startTask(id int32) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	now := time.Now()
	t.State = Running
	t.StartTime = &now
	s.current = id
	s.hasCur = true
}

// endCurrentTask transitions the current task to its terminal state.
func (s *Summary) endCurrentTask(state TaskState) {
	if !s.hasCur {
		return
	}
	t, ok := s.tasks[s.current]
	if !ok {
		s.hasCur = false
		return
	}
	now := time.Now()
	t.State = state
	t.EndTime = &now
	s.hasCur = false
}

// editCurrentTaskDetail applies f to the current task's detail accumulator;
// a no-op if no task is current.
func (s *Summary) editCurrentTaskDetail(f func(*TaskSummary)) {
	if !s.hasCur {
		return
	}
	t, ok := s.tasks[s.current]
	if !ok {
		return
	}
	f(t)
}

// finalize marks any still-Running task Unfinished, called once by the
// subscriber when the channel closes.
func (s *Summary) finalize() {
	for _, t := range s.tasks {
		if t.State == Running {
			t.State = Unfinished
		}
	}
}

func (s *Summary) taskSummaryDelta(id int32) string {
	t, ok := s.tasks[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("[%s #%d] %s", t.TaskType, t.TaskID, t.State)
}
