package cart

// Confirmer gates destructive operations (remove, clear, place order) behind
// a user prompt. The CLI implements it over stdin; tests use ConfirmFunc.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AutoConfirm approves every prompt. Used in non-interactive runs.
var AutoConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
