package input

import "sync"

var (
	sessionMu      sync.Mutex
	currentSession *Session
)

// SetGlobalSession installs the process-wide Session that every Prompter's
// Prompt() call resolves against. It's set once by the root command's
// PersistentPreRunE after parsing --batch, rather than threading a Session
// through every Value in the tree.
func SetGlobalSession(s *Session) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	currentSession = s
}

func globalSession() *Session {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if currentSession == nil {
		currentSession = NewSession(false)
	}
	return currentSession
}
