package repair

import (
	gogit "github.com/go-git/go-git/v5"
)

// FetchResult records one remote's fetch attempt.
type FetchResult struct {
	Remote   string
	ExitCode int
}

// Ok reports whether the fetch exited cleanly.
func (f FetchResult) Ok() bool {
	return f.ExitCode == 0
}

// FetchAllRemotes repopulates missing objects by fetching every
// configured remote. The fetch runs with stdout discarded but stderr
// and stdin connected to the terminal: credential and SSH negotiation
// must be able to talk to the user, and capturing those streams breaks
// agent-based auth. Returns one result per remote; an empty slice means
// no remotes are configured.
func (s *Session) FetchAllRemotes() []FetchResult {
	var results []FetchResult
	for _, remote := range s.remoteNames() {
		code := s.Run.GitPassthrough(s.RepoPath, "fetch", remote, "--tags", "--prune")
		results = append(results, FetchResult{Remote: remote, ExitCode: code})
	}
	return results
}

// remoteNames lists the configured remotes via go-git, avoiding a
// subprocess for a pure config read.
func (s *Session) remoteNames() []string {
	repo, err := gogit.PlainOpen(s.RepoPath)
	if err != nil {
		return nil
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return nil
	}
	var names []string
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	return names
}
