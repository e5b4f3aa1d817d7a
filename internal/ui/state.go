package ui

import (
	"sync"
	"time"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

// Tool is the active editing mode of the canvas.
type Tool int

const (
	ToolSelect Tool = iota
	ToolWire
	ToolChip
	ToolDelete
)

func (t Tool) String() string {
	switch t {
	case ToolWire:
		return "Wire"
	case ToolChip:
		return "Chip"
	case ToolDelete:
		return "Delete"
	default:
		return "Select"
	}
}

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Status   string
	FilePath string
	Dirty    bool

	Tool      Tool
	WireColor string
	ChipType  string
	BoardSize circuit.BoardSize

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the mutable editor state shared between the Gio
// event loop and background goroutines doing file IO.
type AppState struct {
	mu sync.RWMutex

	status   string
	filePath string
	dirty    bool

	tool      Tool
	wireColor string
	chipType  string
	boardSize circuit.BoardSize

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		status:      "Ready",
		tool:        ToolSelect,
		wireColor:   "blue",
		boardSize:   circuit.Board830,
		logLimit:    200,
		lastUpdated: time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		Status:      s.status,
		FilePath:    s.filePath,
		Dirty:       s.dirty,
		Tool:        s.tool,
		WireColor:   s.wireColor,
		ChipType:    s.chipType,
		BoardSize:   s.boardSize,
		Logs:        logCopy,
		LastUpdated: s.lastUpdated,
	}
}

// SetStatus updates the user-facing status message.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// Status returns the current status message.
func (s *AppState) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetTool switches the active editing tool.
func (s *AppState) SetTool(tool Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tool == tool {
		return
	}
	s.tool = tool
	s.lastUpdated = time.Now()
}

// Tool reports the active editing tool.
func (s *AppState) Tool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetWireColor records the color used for newly placed wires.
func (s *AppState) SetWireColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wireColor = color
	s.lastUpdated = time.Now()
}

// WireColor returns the color for newly placed wires.
func (s *AppState) WireColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wireColor
}

// SetChipType records the library chip chosen in the palette.
func (s *AppState) SetChipType(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chipType = name
	s.lastUpdated = time.Now()
}

// ChipType returns the chip chosen in the palette, if any.
func (s *AppState) ChipType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chipType
}

// SetBoardSize records the board topology of the open document.
func (s *AppState) SetBoardSize(size circuit.BoardSize) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardSize = size
	s.lastUpdated = time.Now()
}

// SetFilePath records where the open circuit is saved.
func (s *AppState) SetFilePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filePath = path
	s.lastUpdated = time.Now()
}

// FilePath returns the path of the open circuit file, if any.
func (s *AppState) FilePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filePath
}

// SetDirty marks whether the document has unsaved edits.
func (s *AppState) SetDirty(dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = dirty
	s.lastUpdated = time.Now()
}

// Dirty reports whether the document has unsaved edits.
func (s *AppState) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// AppendLog appends a log message, trimming the oldest entries past the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, msg)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		offset := len(s.logs) - s.logLimit
		s.logs = append([]string(nil), s.logs[offset:]...)
	}
	s.lastUpdated = time.Now()
}
