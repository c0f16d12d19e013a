package schedule

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/settings"
)

func newProj(name, lang string, isTemplate bool) *entity.Project {
	return entity.NewProject(name, lang, isTemplate, settings.Default())
}

func TestBuildPairs_TemplatesNeverPairedTogether(t *testing.T) {
	t1 := newProj("t1", "go", true)
	t2 := newProj("t2", "go", true)
	s1 := newProj("s1", "go", false)

	pairs := BuildPairs([]*entity.Project{t1, t2, s1})

	for _, p := range pairs {
		assert.False(t, p.First.IsTemplate && p.Second.IsTemplate, "no pair should be template-vs-template")
	}
	// t1-s1, t2-s1: two template pairs, no submission-vs-submission pair
	// since there's only one submission.
	assert.Len(t, pairs, 2)
}

func TestBuildPairs_PartitionsByLanguage(t *testing.T) {
	goProj := newProj("a", "go", false)
	pyProj := newProj("b", "python", false)

	pairs := BuildPairs([]*entity.Project{goProj, pyProj})
	assert.Empty(t, pairs, "projects in different languages should never be paired")
}

func TestBuildPairs_SubmissionsPairedOnce(t *testing.T) {
	s1 := newProj("s1", "go", false)
	s2 := newProj("s2", "go", false)
	s3 := newProj("s3", "go", false)

	pairs := BuildPairs([]*entity.Project{s1, s2, s3})
	require.Len(t, pairs, 3) // s1-s2, s1-s3, s2-s3

	seen := make(map[string]bool)
	for _, p := range pairs {
		key := p.First.Name() + "/" + p.Second.Name()
		assert.False(t, seen[key], "pair %s should only appear once", key)
		seen[key] = true
	}
}

func TestScheduler_RunReportsProgressForEveryPair(t *testing.T) {
	s1 := newProj("s1", "go", false)
	s2 := newProj("s2", "go", false)
	s3 := newProj("s3", "go", false)
	pairs := BuildPairs([]*entity.Project{s1, s2, s3})

	sched := New(2, false)
	var mu sync.Mutex
	var progressCount int
	sched.OnProgress = func(p Progress) {
		mu.Lock()
		progressCount++
		mu.Unlock()
	}

	results := sched.Run(pairs)
	require.Len(t, results, len(pairs))
	assert.Equal(t, len(pairs), progressCount)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestScheduler_RunIsolatesPanicsPerPair(t *testing.T) {
	// bad.Cfg is nil; since match.Collection's fastScan skip-gate reads the
	// Pair.First-derived Cfg before ever invoking a per-element comparator,
	// putting the nil-Cfg project in First is enough to force the gate's
	// nil-pointer dereference deep inside Project.Compare.
	good := newProj("good", "go", false)
	bad := newProj("bad", "go", false)
	bad.Cfg = nil
	class := entity.NewClass("C", nil, nil, nil, good)
	good.Files = []*entity.File{entity.NewFile("a.go", "a.go", []*entity.Class{class}, nil, nil, nil, good)}
	bad.Files = []*entity.File{entity.NewFile("b.go", "b.go", []*entity.Class{class}, nil, nil, nil, bad)}

	sched := New(1, true)
	results := sched.Run([]Pair{{First: bad, Second: good}})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err, "a panicking comparison should surface as a Result error, not crash the batch")
}

func TestNew_DefaultsWorkersWhenNonPositive(t *testing.T) {
	sched := New(0, false)
	assert.GreaterOrEqual(t, sched.Workers, 1)

	sched2 := New(4, false)
	assert.Equal(t, 4, sched2.Workers)
}
