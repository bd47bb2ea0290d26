package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidMoveError struct {
	raw string
}

func (e invalidMoveError) Error() string {
	return fmt.Sprintf("invalid --move %q (want ITEM:SRC:DST)", e.raw)
}

func errInvalidMove(raw string) error {
	return invalidMoveError{raw: raw}
}

type noJournalError struct{}

func (noJournalError) Error() string {
	return "no journal configured (pass --journal, set LISTMERGE_JOURNAL, or journal.path in config)"
}
