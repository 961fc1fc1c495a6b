// Package ui implements an interactive catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for exploring the movie catalog:
//  1. [MovieListView] : Browse and filter the full catalog
//  2. [DetailView] : Inspect a movie's synopsis, genre, and director
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Favorite toggles go through the shared favorites index, so the browser and
// the CLI commands always agree on what is favorited.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
