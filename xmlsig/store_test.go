package xmlsig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAssignsMonotonicSecurityId(t *testing.T) {
	s := NewStore()
	id1 := s.Add(SignatureInformation{SignatureId: "sig1"})
	id2 := s.Add(SignatureInformation{SignatureId: "sig2"})

	assert.Less(t, id1, id2)
	assert.Equal(t, 2, s.Len())
}

func TestStoreRemovePreservesSurvivorOrder(t *testing.T) {
	s := NewStore()
	s.Add(SignatureInformation{SignatureId: "a"})
	s.Add(SignatureInformation{SignatureId: "b"})
	s.Add(SignatureInformation{SignatureId: "c"})

	require.Nil(t, s.Remove(1))

	got := s.Read()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].SignatureId)
	assert.Equal(t, "c", got[1].SignatureId)
}

func TestStoreRemoveOutOfRange(t *testing.T) {
	s := NewStore()
	s.Add(SignatureInformation{SignatureId: "a"})

	err := s.Remove(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStoreReadIsDefensiveCopy(t *testing.T) {
	s := NewStore()
	s.Add(SignatureInformation{SignatureId: "a", References: []SignatureReference{{URI: "x"}}})

	got := s.Read()
	got[0].SignatureId = "mutated"
	got[0].References[0].URI = "mutated"

	again := s.Read()
	assert.Equal(t, "a", again[0].SignatureId)
	assert.Equal(t, "x", again[0].References[0].URI)
}

func TestStoreReplaceAdvancesNextIDPastMax(t *testing.T) {
	s := NewStore()
	s.Replace([]SignatureInformation{
		{SecurityId: 7, SignatureId: "a"},
		{SecurityId: 3, SignatureId: "b"},
	})

	id := s.Add(SignatureInformation{SignatureId: "c"})
	assert.Equal(t, 8, id)
}

func TestStoreUpdateStatusUnknownId(t *testing.T) {
	s := NewStore()
	err := s.UpdateStatus(99, StatusValid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSecurityId)
}

func TestSortByIDOrdersRecordsBySecurityId(t *testing.T) {
	recs := []SignatureInformation{
		{SecurityId: 3, SignatureId: "c"},
		{SecurityId: 1, SignatureId: "a"},
		{SecurityId: 2, SignatureId: "b"},
	}

	sortByID(recs)

	assert.Equal(t, []string{"a", "b", "c"}, []string{recs[0].SignatureId, recs[1].SignatureId, recs[2].SignatureId})
}

func TestStoreUpdateStatusCorrelatesById(t *testing.T) {
	s := NewStore()
	id := s.Add(SignatureInformation{SignatureId: "a"})

	require.Nil(t, s.UpdateStatus(id, StatusValid))

	got := s.Read()
	require.Len(t, got, 1)
	assert.Equal(t, StatusValid, got[0].Status)
}
