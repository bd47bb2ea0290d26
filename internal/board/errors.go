package board

import "fmt"

// SelectionNotice is shown when a merge is attempted without exactly two lists selected.
const SelectionNotice = "*You should select exactly 2 lists to create a new list"

// ValidationError reports a rejected merge request. It is surfaced inline and never
// blocks further interaction.
type ValidationError struct {
	Selected int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (selected %d)", SelectionNotice, e.Selected)
}

// Notice is the user-facing text for the inline message slot.
func (e *ValidationError) Notice() string { return SelectionNotice }
