package controller

import "github.com/raysh454/repopulse/internal/analysis"

// Phase names a State variant.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is one of Idle, Pending, Success or Failure. The set is closed: only
// this package can add variants.
type State interface {
	Phase() Phase
	// Generation is the analyze call that produced the state; 0 for Idle.
	Generation() uint64
	isState()
}

// Idle is the initial state: nothing requested yet.
type Idle struct{}

// Pending means an analyze call is in flight. Any earlier result or error has
// been dropped.
type Pending struct {
	Request analysis.AnalysisRequest
	Gen     uint64
}

// Success holds the result of the most recent analyze call. Result must be
// treated as read-only.
type Success struct {
	Request analysis.AnalysisRequest
	Result  *analysis.AnalysisResult
	Gen     uint64
}

// Failure holds a user-facing message for the most recent analyze call.
type Failure struct {
	Kind    analysis.ErrorKind
	Message string
	Gen     uint64
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Pending) Phase() Phase { return PhasePending }
func (Success) Phase() Phase { return PhaseSuccess }
func (Failure) Phase() Phase { return PhaseFailure }

func (Idle) Generation() uint64      { return 0 }
func (s Pending) Generation() uint64 { return s.Gen }
func (s Success) Generation() uint64 { return s.Gen }
func (s Failure) Generation() uint64 { return s.Gen }

func (Idle) isState()    {}
func (Pending) isState() {}
func (Success) isState() {}
func (Failure) isState() {}

// Snapshot flattens a State into the three outputs a renderer binds to:
// loading flag, error message and result.
type Snapshot struct {
	Phase      Phase                    `json:"phase"`
	Loading    bool                     `json:"loading"`
	Repo       string                   `json:"repo,omitempty"`
	Error      string                   `json:"error,omitempty"`
	ErrorKind  analysis.ErrorKind       `json:"error_kind,omitempty"`
	Result     *analysis.AnalysisResult `json:"result,omitempty"`
	Generation uint64                   `json:"generation"`
}

// SnapshotOf renders s. A nil State reads as Idle.
func SnapshotOf(s State) Snapshot {
	switch st := s.(type) {
	case Pending:
		return Snapshot{Phase: PhasePending, Loading: true, Repo: st.Request.Slug(), Generation: st.Gen}
	case Success:
		return Snapshot{Phase: PhaseSuccess, Repo: st.Request.Slug(), Result: st.Result, Generation: st.Gen}
	case Failure:
		return Snapshot{Phase: PhaseFailure, Error: st.Message, ErrorKind: st.Kind, Generation: st.Gen}
	default:
		return Snapshot{Phase: PhaseIdle}
	}
}
