package update

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/sandeepkv93/animtodo/internal/model"
)

const (
	animFPS         = 60
	entryIndent     = 8.0
	exitIndent      = 12.0
	settleThreshold = 0.05
)

var (
	entrySpring = harmonica.NewSpring(harmonica.FPS(animFPS), 7.0, 0.8)
	exitSpring  = harmonica.NewSpring(harmonica.FPS(animFPS), 9.0, 1.0)
)

// rowAnim springs a row's indent towards target.
type rowAnim struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// newRowAnim slides an entering row in from entryIndent to zero.
func newRowAnim() *rowAnim {
	return &rowAnim{spring: entrySpring, pos: entryIndent}
}

// newExitAnim slides a departing row out from zero to exitIndent.
func newExitAnim() *rowAnim {
	return &rowAnim{spring: exitSpring, target: exitIndent}
}

func (a *rowAnim) step() bool {
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	return math.Abs(a.pos-a.target) < settleThreshold && math.Abs(a.vel) < settleThreshold
}

func (a *rowAnim) indent() int {
	v := int(math.Round(a.pos))
	if v < 0 {
		return 0
	}
	return v
}

// leavingRow is a task that has just left the projection. It stays on screen
// at its old position until its exit spring settles.
type leavingRow struct {
	task  model.Task
	index int
	anim  *rowAnim
}

func animFrameCmd() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(time.Time) tea.Msg { return AnimFrameMsg{} })
}

func (m Model) hasMotion() bool {
	return len(m.anims) > 0 || len(m.leaving) > 0
}

// ensureAnimating schedules the next frame if rows are moving and no frame
// is already pending.
func (m *Model) ensureAnimating() tea.Cmd {
	if !m.hasMotion() || m.animating {
		return nil
	}
	m.animating = true
	return animFrameCmd()
}

func (m Model) onAnimFrame() (Model, tea.Cmd) {
	for id, a := range m.anims {
		if a.step() {
			delete(m.anims, id)
		}
	}
	kept := make([]leavingRow, 0, len(m.leaving))
	for _, row := range m.leaving {
		if !row.anim.step() {
			kept = append(kept, row)
		}
	}
	m.leaving = kept
	if !m.hasMotion() {
		m.animating = false
		return m, nil
	}
	return m, animFrameCmd()
}

func (m Model) rowIndent(id int64) int {
	if a, ok := m.anims[id]; ok {
		return a.indent()
	}
	return 0
}
