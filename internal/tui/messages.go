package tui

// savedMsg reports the outcome of saving the worksheet.
type savedMsg struct {
	err  error
	name string
}
