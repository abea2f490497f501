package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Chrome turns window requests from the lifecycle controller into Bubble
// Tea commands. The commands are collected during Update and returned
// from it.
type Chrome struct {
	pending []tea.Cmd
	title   string
	width   int
	height  int
}

func NewChrome() *Chrome {
	return &Chrome{}
}

func (c *Chrome) SetTitle(title string) {
	if title == c.title {
		return
	}
	c.title = title
	c.pending = append(c.pending, tea.SetWindowTitle(title))
}

// Resize records the size. The host terminal owns the real window.
func (c *Chrome) Resize(width, height int) {
	c.width, c.height = width, height
}

// Relayout repaints the whole screen at the current size.
func (c *Chrome) Relayout() {
	c.pending = append(c.pending, tea.ClearScreen)
}

func (c *Chrome) Close() {
	c.pending = append(c.pending, tea.Quit)
}

// Title is the last title set.
func (c *Chrome) Title() string {
	return c.title
}

func (c *Chrome) drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}
