package ui

import "github.com/lepinkainen/texturetool/dispatch"

// TUI Message Types for worker communication
type WorkerStartedMsg struct {
	WorkerID int
	Filename string
}

type WorkerCompletedMsg struct {
	Result dispatch.Result
}

// RunFinishedMsg is sent once the dispatcher has returned.
type RunFinishedMsg struct {
	Summary *dispatch.Summary
}
