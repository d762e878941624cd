package repair

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitmend/gitmend/pkg/diagnose"
	"github.com/gitmend/gitmend/pkg/history"
)

// PlannedAction represents a single action the pipeline would take
type PlannedAction struct {
	Type        string // "zero-object", "compact", "fetch", "blob"
	Object      string // path or remote name the action targets
	Action      string // "remove", "run", "fetch", "restage", "history", "placeholder"
	Description string
}

// Plan holds everything a repair run would do, without doing any of it
type Plan struct {
	Actions []PlannedAction
}

// Add appends an action to the plan
func (p *Plan) Add(action PlannedAction) {
	p.Actions = append(p.Actions, action)
}

// Analyze inspects the repository read-only and populates the plan with
// the actions a repair run would take.
func (p *Plan) Analyze(s *Session, store *history.Store) {
	// Zero-byte objects that the clean phase would remove.
	gitDir := s.gitDir()
	filepath.WalkDir(filepath.Join(gitDir, "objects"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Size() == 0 {
			rel, relErr := filepath.Rel(gitDir, path)
			if relErr != nil {
				rel = path
			}
			p.Add(PlannedAction{
				Type:        "zero-object",
				Object:      rel,
				Action:      "remove",
				Description: "zero-byte object from an interrupted write",
			})
		}
		return nil
	})

	p.Add(PlannedAction{
		Type:        "compact",
		Object:      s.RepoPath,
		Action:      "run",
		Description: "aggressive garbage collection to rebuild pack indexes",
	})

	for _, remote := range s.remoteNames() {
		p.Add(PlannedAction{
			Type:        "fetch",
			Object:      remote,
			Action:      "fetch",
			Description: "fetch tags and prune to repopulate missing objects",
		})
	}

	for _, entry := range s.ProbeIndexErrors() {
		p.Add(PlannedAction{
			Type:        "blob",
			Object:      entry.Path,
			Action:      string(plannedHeal(s, entry, store)),
			Description: entry.String(),
		})
	}
}

// plannedHeal predicts which heal method HealEntries would pick for an
// entry, using the same source-of-truth order.
func plannedHeal(s *Session, entry diagnose.BlobRepairEntry, store *history.Store) HealMethod {
	absPath := filepath.Join(s.RepoPath, entry.Path)
	if st, err := os.Stat(absPath); err == nil && st.Mode().IsRegular() {
		return HealRestaged
	}
	if entry.ObjectID == diagnose.EmptyBlobID {
		return HealRestaged
	}
	if store != nil && store.FindLatest(absPath) != "" {
		return HealFromHistory
	}
	return HealPlaceholder
}

// PrintSummary prints the plan grouped by action type
func (p *Plan) PrintSummary() {
	if len(p.Actions) == 0 {
		fmt.Println("\n[PLAN] Nothing to do; the pipeline would only re-verify health.")
		return
	}

	fmt.Println("\n╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║           REPAIR PLAN - Actions Preview                   ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	byType := make(map[string][]PlannedAction)
	for _, action := range p.Actions {
		byType[action.Type] = append(byType[action.Type], action)
	}

	num := 1
	num = p.printGroup(byType["zero-object"], "ZERO-BYTE OBJECTS", num)
	num = p.printGroup(byType["compact"], "COMPACTION", num)
	num = p.printGroup(byType["fetch"], "REMOTE FETCHES", num)
	p.printGroup(byType["blob"], "INDEX ENTRIES TO HEAL", num)

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("Total planned actions: %d\n", len(p.Actions))
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
}

func (p *Plan) printGroup(actions []PlannedAction, title string, num int) int {
	if len(actions) == 0 {
		return num
	}
	fmt.Printf("%s (%d):\n", title, len(actions))
	fmt.Println(strings.Repeat("-", 59))
	for _, action := range actions {
		fmt.Printf("\n%d. %s\n", num, action.Object)
		fmt.Printf("   Action:  %s\n", action.Action)
		if action.Description != "" {
			fmt.Printf("   Details: %s\n", action.Description)
		}
		num++
	}
	fmt.Println()
	return num
}
