// Package ui implements the interactive movie browser using bubbletea's Elm architecture.
//
// The TUI moves between a few screens:
//  1. [LoadingView] : Restore the persisted session
//  2. [LoginView] : Sign in or register with the mock authenticator
//  3. [BrowseView] : Popular, top rated and now playing lists, debounced search and favorites
//  4. [DetailsView] : Full details for one movie
//
// Session and favorites changes arrive through store subscriptions bridged onto channels,
// so the [Model] re-renders whenever either store publishes a snapshot.
package ui
