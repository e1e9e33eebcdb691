package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsIDsAndRepresentative(t *testing.T) {
	s := New()
	c1, err := s.Create(KindDigest, []string{"frag_1", "frag_2"}, 10)
	require.NoError(t, err)
	assert.Equal(t, "container-1", c1.ContainerID)
	assert.Equal(t, "frag_1", c1.Representative())

	c2, err := s.Create(KindMerge, []string{"seq_a"}, 10)
	require.NoError(t, err)
	assert.Equal(t, "container-2", c2.ContainerID)
}

func TestCreateRejectsOverMax(t *testing.T) {
	s := New()
	_, err := s.Create(KindDigest, []string{"a", "b", "c"}, 2)
	assert.Error(t, err)
}

func TestReconcileResumesCounterAfterLoad(t *testing.T) {
	s := &State{Containers: map[string]Container{
		"container-1": {ContainerID: "container-1", Kind: KindMerge, Members: []string{"x"}},
		"container-7": {ContainerID: "container-7", Kind: KindMerge, Members: []string{"y"}},
	}}
	s.Reconcile()
	c, err := s.Create(KindMerge, []string{"z"}, 10)
	require.NoError(t, err)
	assert.Equal(t, "container-8", c.ContainerID)
}

func TestGet(t *testing.T) {
	s := New()
	c, _ := s.Create(KindPcr, []string{"amplicon_1"}, 10)
	got, ok := s.Get(c.ContainerID)
	require.True(t, ok)
	assert.Equal(t, c, got)
}
