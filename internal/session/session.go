// Package session holds the per-user state of the explorer: the selected
// eigenstructure, the system matrix it produces and the orbit built from it.
//
// Sessions never share state. A host serving many users keeps one Session
// per user in a Manager.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/eigenmap/internal/export"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/logging"
	"github.com/san-kum/eigenmap/internal/trajectory"
	"github.com/san-kum/eigenmap/internal/views"
)

// Notice texts shown to the user when a step is refused.
const (
	NoticeParallel = "the two axes are parallel; eigenvector configuration is invalid"
	NoticeInvalid  = "parameters must be finite numbers"
	NoticeDiverged = "the orbit left the representable range"
)

// Params is everything a session is configured from.
type Params struct {
	Variant linmap.Variant
	Real    linmap.RealBasis
	Complex linmap.ComplexBasis
	Initial linmap.Vec2
}

// Basis returns the basis of the selected variant.
func (p Params) Basis() linmap.Basis {
	if p.Variant == linmap.VariantComplex {
		return p.Complex
	}
	return p.Real
}

// Session is one user's explorer state. All methods are safe to call from
// multiple goroutines; mutations are serialized by the session's own lock.
type Session struct {
	mu     sync.Mutex
	id     string
	log    *slog.Logger
	params Params
	traj   *trajectory.Trajectory
	view   export.View
	matrix *linmap.Mat2
	cause  error
	notice string
	opts   export.Options
}

// New builds a session, computes A and seeds the trajectory with the
// initial point. A nil logger discards output.
func New(p Params, log *slog.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		log:    log,
		params: p,
		traj:   trajectory.New(p.Initial),
		opts:   export.DefaultOptions(),
	}
	s.recompute()
	return s
}

func (s *Session) ID() string { return s.id }

// recompute rebuilds A from the selected basis, resets the orbit and drops
// any notice raised against the old parameters. Callers hold s.mu.
func (s *Session) recompute() {
	s.notice = ""
	a, err := s.params.Basis().Matrix()
	if err != nil {
		s.matrix, s.cause = nil, err
		s.log.Debug("system matrix undefined", "variant", s.params.Variant, "err", err)
	} else {
		s.matrix, s.cause = &a, nil
		s.log.Debug("system matrix", "variant", s.params.Variant, "a", a.String())
	}
	s.traj.Reset(s.params.Initial)
}

func (s *Session) SetReal(b linmap.RealBasis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Real = b
	s.recompute()
}

func (s *Session) SetComplex(b linmap.ComplexBasis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Complex = b
	s.recompute()
}

func (s *Session) SetVariant(v linmap.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Variant = v
	s.recompute()
}

func (s *Session) SetInitial(p linmap.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Initial = p
	s.recompute()
}

// SetParams replaces the whole configuration at once.
func (s *Session) SetParams(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	s.recompute()
}

func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetExportOptions sizes the figures produced by Figure.
func (s *Session) SetExportOptions(o export.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = o
}

// Reset collapses the orbit to the initial point.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traj.Reset(s.params.Initial)
}

// Step appends A·p_last. When A is undefined the orbit is left as it was
// and a notice is raised; the same policy holds for both variants.
func (s *Session) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Session) stepLocked() error {
	_, err := s.traj.Step(s.matrix)
	if err != nil {
		s.raise(err)
	}
	return err
}

// Advance takes up to n steps and stops at the first refused one.
func (s *Session) Advance(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := s.stepLocked(); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (s *Session) raise(err error) {
	switch {
	case errors.Is(s.cause, linmap.ErrInvalidParameter), errors.Is(s.cause, linmap.ErrImaginaryResidue):
		s.notice = NoticeInvalid
	case errors.Is(err, linmap.ErrSingularBasis):
		s.notice = NoticeParallel
	case errors.Is(err, trajectory.ErrDiverged):
		s.notice = NoticeDiverged
	default:
		s.notice = err.Error()
	}
	s.log.Warn("step refused", "variant", s.params.Variant, "notice", s.notice, "err", err)
}

// Notice returns the pending notice, or "" when there is none.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

func (s *Session) SelectView(v export.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *Session) View() export.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Matrix returns a copy of A, or the reason it is undefined.
func (s *Session) Matrix() (linmap.Mat2, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matrix == nil {
		return linmap.Mat2{}, s.cause
	}
	return *s.matrix, nil
}

func (s *Session) Points() []linmap.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traj.Points()
}

// Snapshot is a consistent read of everything the views display.
type Snapshot struct {
	ID      string
	Variant linmap.Variant
	View    export.View
	Params  Params
	Matrix  views.MatrixDisplay
	Phase   views.PhaseGeometry
	Series  views.TimeSeries
	Steps   int
	Notice  string

	// Polar form of λ, complex variant only.
	Modulus         float64
	ArgumentDegrees float64

	// Kind is meaningful only when Matrix.Defined.
	Kind linmap.FixedPoint
}

func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() (Snapshot, error) {
	points := s.traj.Points()
	basis := s.params.Basis()

	phase, err := views.NewPhaseGeometry(basis, points)
	if err != nil {
		return Snapshot{}, err
	}
	series, err := views.NewTimeSeries(points)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ID:      s.id,
		Variant: s.params.Variant,
		View:    s.view,
		Params:  s.params,
		Matrix:  views.NewMatrixDisplay(s.matrix),
		Phase:   phase,
		Series:  series,
		Steps:   len(points) - 1,
		Notice:  s.notice,
		Kind:    linmap.Classify(basis),
	}
	if s.params.Variant == linmap.VariantComplex {
		snap.Modulus = s.params.Complex.Modulus()
		snap.ArgumentDegrees = s.params.Complex.ArgumentDegrees()
	}
	return snap, nil
}

// Figure renders the selected view synchronously and returns the bytes
// with the fixed download name for the format.
func (s *Session) Figure(format export.Format) ([]byte, string, error) {
	s.mu.Lock()
	snap, err := s.snapshotLocked()
	opts := s.opts
	s.mu.Unlock()
	if err != nil {
		return nil, "", err
	}

	fig := export.Figure{View: snap.View, Phase: snap.Phase, Series: snap.Series}
	data, err := fig.Bytes(format, opts)
	if err != nil {
		if snap.ID != "" {
			return nil, "", fmt.Errorf("session %s: %w", snap.ID, err)
		}
		return nil, "", fmt.Errorf("session: %w", err)
	}
	s.log.Info("figure rendered", "view", snap.View, "format", format, "bytes", len(data))
	return data, export.Filename(format), nil
}
