package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/texturetool/dispatch"
	"github.com/lepinkainen/texturetool/types"
)

// File log entry for the processed files list
type FileLogEntry struct {
	Path    string
	Status  types.Status
	Detail  string
	Elapsed string
}

func (f FileLogEntry) FilterValue() string { return f.Path }
func (f FileLogEntry) Title() string       { return f.Path }
func (f FileLogEntry) Description() string {
	switch f.Status {
	case types.StatusFailed:
		return fmt.Sprintf("❌ %s", f.Detail)
	case types.StatusWritten, types.StatusDeleted, types.StatusMatched:
		return fmt.Sprintf("✓ %s → %s (%s)", f.Status, f.Detail, f.Elapsed)
	default:
		return fmt.Sprintf("· %s: %s", f.Status, f.Detail)
	}
}

// Worker state tracking
type WorkerState struct {
	ID          int
	CurrentFile string
	Status      string // "idle", "processing"
	Done        int
}

// BatchModel is the bubbletea view of a parallel run.
type BatchModel struct {
	command        string
	totalFiles     int
	processedFiles int
	failedFiles    int
	workers        map[int]*WorkerState
	fileEntries    []FileLogEntry

	overallProgress progress.Model
	fileList        list.Model

	width  int
	height int

	summary  *dispatch.Summary
	quitting bool

	// Version for display
	Version string
}

// NewBatchModel creates a model for numFiles files spread over numWorkers.
func NewBatchModel(command string, numFiles, numWorkers int, version string) BatchModel {
	workers := make(map[int]*WorkerState, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Processed Files"

	return BatchModel{
		command:         command,
		totalFiles:      numFiles,
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		fileList:        fileList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m BatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width-4, msg.Height/3)

	case WorkerStartedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.CurrentFile = msg.Filename
			worker.Status = "processing"
		}

	case WorkerCompletedMsg:
		r := msg.Result
		if worker, ok := m.workers[r.Worker]; ok {
			worker.Status = "idle"
			worker.CurrentFile = ""
			worker.Done++
		}
		m.processedFiles++
		if r.Outcome.Status == types.StatusFailed {
			m.failedFiles++
		}

		detail := r.Outcome.Reason
		if len(r.Outcome.Written) > 0 {
			detail = strings.Join(r.Outcome.Written, ", ")
		}
		m.fileEntries = append(m.fileEntries, FileLogEntry{
			Path:    r.Path,
			Status:  r.Outcome.Status,
			Detail:  detail,
			Elapsed: r.Duration.Round(time.Millisecond).String(),
		})
		items := make([]list.Item, len(m.fileEntries))
		for i, entry := range m.fileEntries {
			items[i] = entry
		}
		m.fileList.SetItems(items)

	case RunFinishedMsg:
		m.summary = msg.Summary
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m BatchModel) View() string {
	if m.quitting {
		return "Waiting for running workers to finish...\n"
	}
	if m.summary != nil {
		return SuccessStyle.Render(fmt.Sprintf("✅ %d files processed", m.summary.Total)) + "\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("Texture Tool %s · %s", m.Version, m.command))

	overallPercent := 0.0
	if m.totalFiles > 0 {
		overallPercent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d, %d failed)",
		m.overallProgress.ViewAs(overallPercent),
		m.processedFiles,
		m.totalFiles,
		m.failedFiles)

	ids := make([]int, 0, len(m.workers))
	for id := range m.workers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	workerViews := []string{"Worker Status:"}
	for _, id := range ids {
		worker := m.workers[id]
		status := fmt.Sprintf("Worker %d: ", id+1)
		if worker.Status == "processing" {
			status += ProcessingStyle.Render(worker.CurrentFile)
		} else {
			status += MutedStyle.Render(fmt.Sprintf("%-10s %d done", worker.Status, worker.Done))
		}
		workerViews = append(workerViews, status)
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.fileList.View(),
		"Controls: [q] Quit view (the run completes in the background)",
	}

	return strings.Join(sections, "\n\n")
}

// TUIObserver forwards dispatcher events to a running bubbletea program.
type TUIObserver struct {
	Program *tea.Program
}

// Started implements dispatch.Observer.
func (o TUIObserver) Started(worker int, path string) {
	o.Program.Send(WorkerStartedMsg{WorkerID: worker, Filename: path})
}

// Finished implements dispatch.Observer.
func (o TUIObserver) Finished(r dispatch.Result) {
	o.Program.Send(WorkerCompletedMsg{Result: r})
}
