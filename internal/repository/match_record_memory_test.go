package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/match-reveal-service/internal/domain"
)

type MatchRecordMemorySuite struct {
	suite.Suite
	store *InMemoryMatchRecords
	ctx   context.Context
}

func TestMatchRecordMemorySuite(t *testing.T) {
	suite.Run(t, new(MatchRecordMemorySuite))
}

func (s *MatchRecordMemorySuite) SetupTest() {
	s.store = NewInMemoryMatchRecords()
	s.ctx = context.Background()
}

func (s *MatchRecordMemorySuite) create(source, target, name string) *domain.MatchRecord {
	rec := &domain.MatchRecord{SourceIdentifier: source, TargetIdentifier: target, TargetDisplayName: name}
	s.Require().NoError(s.store.Create(s.ctx, rec))
	return rec
}

func (s *MatchRecordMemorySuite) TestCreateAndLookup() {
	s.Run("creates and resolves by source", func() {
		created := s.create("0001", "0002", "Bob")
		s.NotEmpty(created.ID)

		found, err := s.store.GetBySource(s.ctx, "0001")
		s.Require().NoError(err)
		s.Equal("0002", found.TargetIdentifier)
		s.Equal("Bob", found.TargetDisplayName)
	})

	s.Run("one record per source", func() {
		s.create("0003", "0004", "Carol")
		err := s.store.Create(s.ctx, &domain.MatchRecord{
			SourceIdentifier: "0003", TargetIdentifier: "0005", TargetDisplayName: "Dave",
		})
		s.Require().ErrorIs(err, ErrDuplicate)
	})

	s.Run("unknown source", func() {
		_, err := s.store.GetBySource(s.ctx, "9999")
		s.Require().ErrorIs(err, ErrNotFound)
	})
}

func (s *MatchRecordMemorySuite) TestDelete() {
	rec := s.create("0010", "0011", "Erin")

	s.Require().NoError(s.store.Delete(s.ctx, rec.ID))
	_, err := s.store.GetBySource(s.ctx, "0010")
	s.Require().ErrorIs(err, ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, rec.ID), ErrNotFound)
}

func (s *MatchRecordMemorySuite) TestListSearch() {
	s.create("0101", "0202", "Alice")
	s.create("0303", "0404", "Bob")

	all, err := s.store.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)

	byTargetName, err := s.store.List(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().Len(byTargetName, 1)
	s.Equal("0303", byTargetName[0].SourceIdentifier)

	byTarget, err := s.store.List(s.ctx, "0202")
	s.Require().NoError(err)
	s.Require().Len(byTarget, 1)
	s.Equal("0101", byTarget[0].SourceIdentifier)
}
