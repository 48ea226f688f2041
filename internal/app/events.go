package app

import (
	"organizer-console/internal/dispatch"
	"organizer-console/internal/pathresolve"
)

type EventKind string

const (
	KindStartup              EventKind = "startup"
	KindPickerChanged        EventKind = "picker_changed"
	KindPathEdited           EventKind = "path_edited"
	KindMethodSelected       EventKind = "method_selected"
	KindQueryEdited          EventKind = "query_edited"
	KindActionClicked        EventKind = "action_clicked"
	KindSearchClicked        EventKind = "search_clicked"
	KindBrowseClicked        EventKind = "browse_clicked"
	KindFolderStatsRequested EventKind = "folder_stats"
)

// Event is one user or lifecycle occurrence routed through the dispatch
// table.
type Event interface {
	Kind() EventKind
}

type Startup struct{}

type PickerChanged struct {
	Selection *pathresolve.Selection
}

type PathEdited struct {
	Text string
}

type MethodSelected struct {
	Value string
}

type QueryEdited struct {
	Text string
}

type ActionClicked struct {
	Action dispatch.Action
}

type SearchClicked struct{}

type BrowseClicked struct{}

type FolderStatsRequested struct{}

func (Startup) Kind() EventKind              { return KindStartup }
func (PickerChanged) Kind() EventKind        { return KindPickerChanged }
func (PathEdited) Kind() EventKind           { return KindPathEdited }
func (MethodSelected) Kind() EventKind       { return KindMethodSelected }
func (QueryEdited) Kind() EventKind          { return KindQueryEdited }
func (ActionClicked) Kind() EventKind        { return KindActionClicked }
func (SearchClicked) Kind() EventKind        { return KindSearchClicked }
func (BrowseClicked) Kind() EventKind        { return KindBrowseClicked }
func (FolderStatsRequested) Kind() EventKind { return KindFolderStatsRequested }
