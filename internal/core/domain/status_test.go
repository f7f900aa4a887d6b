package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkloadState_IsValid(t *testing.T) {
	for _, s := range ValidWorkloadStates() {
		assert.True(t, s.IsValid(), s.String())
	}

	assert.False(t, WorkloadState("random").IsValid())
	assert.False(t, StateUnknown.IsValid())
	assert.False(t, WorkloadState("").IsValid())
}
