package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for command output.
var (
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // dim gray
	captionStyle = lipgloss.NewStyle().Bold(true)                                  // bold
	creatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true) // dim
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))             // blue
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))             // red
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))             // green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))             // yellow
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // gray
)
