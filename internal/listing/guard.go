package listing

import "github.com/joe/list-files/pkg/filesystem"

// DeviceInode identifies a directory for cycle detection.
type DeviceInode struct {
	Device uint64
	Inode  uint64
}

// IdentityOf returns the identity recorded in meta.
func IdentityOf(meta *filesystem.Metadata) DeviceInode {
	return DeviceInode{Device: meta.Device, Inode: meta.Inode}
}

// CycleGuard tracks the directories on the current descent chain.
// Only ancestors are tracked: once a directory is left its identity may be
// entered again.
type CycleGuard struct {
	active map[DeviceInode]int
	stack  []DeviceInode
}

// NewCycleGuard creates an empty guard.
func NewCycleGuard() *CycleGuard {
	return &CycleGuard{active: make(map[DeviceInode]int)}
}

// Contains reports whether id is an active ancestor.
func (g *CycleGuard) Contains(id DeviceInode) bool {
	return g.active[id] > 0
}

// Depth returns the number of active ancestors.
func (g *CycleGuard) Depth() int {
	return len(g.stack)
}

// Enter pushes id unless it is already an active ancestor, in which case
// it returns false and leaves the guard unchanged.
func (g *CycleGuard) Enter(id DeviceInode) bool {
	if g.Contains(id) {
		return false
	}

	g.Push(id)

	return true
}

// Pop leaves the most recently entered directory. Popping an empty guard
// is a no-op.
func (g *CycleGuard) Pop() {
	if len(g.stack) == 0 {
		return
	}

	top := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]

	if g.active[top] <= 1 {
		delete(g.active, top)
		return
	}

	g.active[top]--
}

// Push records id as the innermost active ancestor without checking it.
func (g *CycleGuard) Push(id DeviceInode) {
	g.active[id]++
	g.stack = append(g.stack, id)
}
