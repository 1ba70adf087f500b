package domain

type AccountID string

const (
	AccountAgent    AccountID = "agent"
	AccountPersonal AccountID = "personal"
)

// Account is a GitHub credential identity: a username plus an isolated
// gh config directory. Both accounts are configured externally and never
// mutated at runtime.
type Account struct {
	ID        AccountID
	User      string
	ConfigDir string
}

func (a Account) Configured() bool {
	return a.ConfigDir != ""
}
