package tui

import (
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneLog
	SceneNotes
	SceneHelp
)

// tabs lists the scenes reachable with tab, in order
var tabs = []Scene{SceneSummary, SceneLog, SceneNotes}

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneLog:
		return "Calculation Log"
	case SceneNotes:
		return "Warnings & Advice"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg signals the profile file has been read
type ProfileLoadedMsg struct {
	Profile *domain.UserTaxProfile
}

// ComparisonCompleteMsg carries the outcome of running both regimes
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
