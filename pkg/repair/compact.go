package repair

// AttemptCompaction runs an aggressive garbage collection. Repacking
// rebuilds pack indexes and can clear transient object-store damage
// without touching history. Returns whether gc ran cleanly and whether
// it flipped the structural check from failing to passing; a check
// that was already passing never counts as a recovery.
func (s *Session) AttemptCompaction() (gcOK, recovered bool) {
	res := s.Run.Git(s.RepoPath, "gc", "--aggressive", "--prune=now")
	statusOK := !s.Check.IsCorrupted(s.RepoPath)
	recovered = s.statusFailing && statusOK
	if statusOK {
		s.statusFailing = false
	}
	return res.Ok(), recovered
}
