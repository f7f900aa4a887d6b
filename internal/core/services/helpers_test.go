package services

import (
	"fmt"
	"testing"

	"github.com/custodia-labs/hookenv/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hookenv/internal/core/domain"
)

const (
	testCharmDir     = "/var/lib/juju/agents/unit-wordpress-0/charm"
	testSnapshotPath = testCharmDir + "/.juju-persistent-config"
)

// fakeMetadata is a driven.MetadataReader returning canned metadata.
type fakeMetadata struct {
	md    *domain.CharmMetadata
	err   error
	reads int
	dirs  []string
}

func (f *fakeMetadata) Read(charmDir string) (*domain.CharmMetadata, error) {
	f.reads++
	f.dirs = append(f.dirs, charmDir)
	if f.err != nil {
		return nil, f.err
	}
	if f.md == nil {
		return &domain.CharmMetadata{}, nil
	}
	return f.md, nil
}

type testHookEnv struct {
	*HookEnv
	runner    *memory.ToolRunner
	env       *memory.Environment
	snapshots *memory.SnapshotStore
	metadata  *fakeMetadata
}

func newTestHookEnv(t *testing.T, vars map[string]string) *testHookEnv {
	t.Helper()

	base := map[string]string{
		EnvCharmDir: testCharmDir,
		EnvUnitName: "wordpress/0",
	}
	for k, v := range vars {
		base[k] = v
	}

	te := &testHookEnv{
		runner:    memory.NewToolRunner(),
		env:       memory.NewEnvironment(base),
		snapshots: memory.NewSnapshotStore(),
		metadata:  &fakeMetadata{},
	}
	te.HookEnv = NewHookEnv(te.runner, te.env, te.snapshots, te.metadata)
	return te
}

func toolNotFound(name string) error {
	return fmt.Errorf("%w: %s", domain.ErrToolNotFound, name)
}
