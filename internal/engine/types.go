package engine

import "time"

// Phase is the lifecycle stage of a session. It only ever moves forward:
// landing -> assessment -> roadmap. The only way "back" is deleting the
// session entirely.
type Phase string

const (
	PhaseLanding    Phase = "landing"
	PhaseAssessment Phase = "assessment"
	PhaseRoadmap    Phase = "roadmap"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseLanding, PhaseAssessment, PhaseRoadmap:
		return true
	default:
		return false
	}
}

// Rank orders phases so forward-only transitions can be enforced.
func (p Phase) Rank() int {
	switch p {
	case PhaseAssessment:
		return 1
	case PhaseRoadmap:
		return 2
	default:
		return 0
	}
}

type NodeStatus string

const (
	NodeLocked    NodeStatus = "locked"
	NodeActive    NodeStatus = "active"
	NodeCompleted NodeStatus = "completed"
)

func (s NodeStatus) IsValid() bool {
	switch s {
	case NodeLocked, NodeActive, NodeCompleted:
		return true
	default:
		return false
	}
}

// Question is one assessment item presented to the user.
type Question struct {
	ID       string `json:"id"`
	Skill    string `json:"skill"`
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// Evidence is an append-only proof-of-work record attached to a task.
type Evidence struct {
	Content   string    `json:"content"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Task struct {
	Title       string     `json:"title"`
	Detail      string     `json:"detail,omitempty"`
	Link        string     `json:"link,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Evidence    []Evidence `json:"evidence,omitempty"`
}

type SubNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Position is layout data for the map view. The engine stores it but never
// interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MilestoneNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   NodeStatus `json:"status"`
	Position Position   `json:"position"`
	SubNodes []SubNode  `json:"subNodes"`
}

// Roadmap is a linear chain of milestones owned by exactly one session.
type Roadmap struct {
	Nodes []MilestoneNode `json:"nodes"`
}

// Clone returns a deep, independent copy. Mutating the clone never touches
// the original, which is what makes blueprint forks safe.
func (r *Roadmap) Clone() *Roadmap {
	if r == nil {
		return nil
	}
	out := &Roadmap{Nodes: make([]MilestoneNode, len(r.Nodes))}
	for i, n := range r.Nodes {
		cn := n
		cn.SubNodes = make([]SubNode, len(n.SubNodes))
		for j, sn := range n.SubNodes {
			csn := sn
			csn.Tasks = make([]Task, len(sn.Tasks))
			for k, t := range sn.Tasks {
				ct := t
				if t.CompletedAt != nil {
					at := *t.CompletedAt
					ct.CompletedAt = &at
				}
				ct.Evidence = append([]Evidence(nil), t.Evidence...)
				csn.Tasks[k] = ct
			}
			cn.SubNodes[j] = csn
		}
		out.Nodes[i] = cn
	}
	return out
}

// Normalize seeds node statuses for a fresh roadmap: first node active,
// everything after it locked.
func (r *Roadmap) Normalize() {
	if r == nil {
		return
	}
	for i := range r.Nodes {
		if i == 0 {
			r.Nodes[i].Status = NodeActive
		} else {
			r.Nodes[i].Status = NodeLocked
		}
	}
}

// ResetProgress strips all personal progress: completion flags, timestamps,
// evidence, and re-seeds node statuses. Applied when a roadmap is published
// so forks always start clean.
func (r *Roadmap) ResetProgress() {
	if r == nil {
		return
	}
	for i := range r.Nodes {
		for j := range r.Nodes[i].SubNodes {
			tasks := r.Nodes[i].SubNodes[j].Tasks
			for k := range tasks {
				tasks[k].Completed = false
				tasks[k].CompletedAt = nil
				tasks[k].Evidence = nil
			}
		}
	}
	r.Normalize()
}

func (r *Roadmap) findNode(nodeID string) *MilestoneNode {
	if r == nil {
		return nil
	}
	for i := range r.Nodes {
		if r.Nodes[i].ID == nodeID {
			return &r.Nodes[i]
		}
	}
	return nil
}

// findTask resolves a (nodeID, subNodeID, taskIndex) address. Returns nil
// when any part of the triple does not resolve; callers treat that as a
// safe no-op.
func (r *Roadmap) findTask(nodeID, subNodeID string, taskIndex int) *Task {
	n := r.findNode(nodeID)
	if n == nil {
		return nil
	}
	for i := range n.SubNodes {
		if n.SubNodes[i].ID != subNodeID {
			continue
		}
		if taskIndex < 0 || taskIndex >= len(n.SubNodes[i].Tasks) {
			return nil
		}
		return &n.SubNodes[i].Tasks[taskIndex]
	}
	return nil
}

// DayLog aggregates one calendar day of activity for a session.
type DayLog struct {
	TasksCompleted int `json:"tasksCompleted"`
	TimeSpentMin   int `json:"timeSpent"`
}

// Provenance records that a session was forked from someone else's
// published blueprint.
type Provenance struct {
	Forked           bool   `json:"isForked"`
	OriginalAuthorID string `json:"originalAuthorId,omitempty"`
}

// Session is one career goal being pursued. It exclusively owns its roadmap.
type Session struct {
	ID             string            `json:"id"`
	Goal           string            `json:"goal"`
	Role           string            `json:"role"`
	Deadline       string            `json:"deadline,omitempty"`
	Phase          Phase             `json:"phase"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastActiveDate string            `json:"lastActiveDate,omitempty"`
	Streak         int               `json:"streak"`
	DailyLog       map[string]DayLog `json:"dailyLog"`
	KnownSkills    []string          `json:"knownSkills"`
	GapSkills      []string          `json:"gapSkills"`
	Questions      []Question        `json:"questions"`
	QuestionIndex  int               `json:"currentQuestionIndex"`
	Roadmap        *Roadmap          `json:"roadmap,omitempty"`
	Provenance     *Provenance       `json:"provenance,omitempty"`
}

// AssessmentDone reports whether the question cursor has reached the end of
// a non-empty question list.
func (s *Session) AssessmentDone() bool {
	return len(s.Questions) > 0 && s.QuestionIndex >= len(s.Questions)
}

// CurrentQuestion returns the question under the cursor, or false when
// there is nothing left to answer.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.QuestionIndex], true
}

// Progress counts completed vs total tasks across the whole roadmap.
func (s *Session) Progress() (done, total int) {
	if s.Roadmap == nil {
		return 0, 0
	}
	for i := range s.Roadmap.Nodes {
		for j := range s.Roadmap.Nodes[i].SubNodes {
			for k := range s.Roadmap.Nodes[i].SubNodes[j].Tasks {
				total++
				if s.Roadmap.Nodes[i].SubNodes[j].Tasks[k].Completed {
					done++
				}
			}
		}
	}
	return done, total
}

// Clone returns a deep copy of the session. Queries hand out clones so
// readers can never mutate engine-owned state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.DailyLog = make(map[string]DayLog, len(s.DailyLog))
	for k, v := range s.DailyLog {
		c.DailyLog[k] = v
	}
	c.KnownSkills = append([]string(nil), s.KnownSkills...)
	c.GapSkills = append([]string(nil), s.GapSkills...)
	c.Questions = append([]Question(nil), s.Questions...)
	c.Roadmap = s.Roadmap.Clone()
	if s.Provenance != nil {
		p := *s.Provenance
		c.Provenance = &p
	}
	return &c
}

// User is the opaque identity supplied by the host. Guests have none.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Engagement is process-wide engagement accounting: total completions
// across every session, ever. It drives the signup prompt for guests.
type Engagement struct {
	TasksCompleted int `json:"tasksCompleted"`
}
