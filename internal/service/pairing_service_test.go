package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/match-reveal-service/internal/repository"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

type PairingServiceSuite struct {
	suite.Suite
	repo    *repository.InMemoryParticipants
	service *PairingService
	ctx     context.Context
}

func TestPairingServiceSuite(t *testing.T) {
	suite.Run(t, new(PairingServiceSuite))
}

func (s *PairingServiceSuite) SetupTest() {
	s.repo = repository.NewInMemoryParticipants()
	s.service = NewPairingService(PairingDependencies{ParticipantRepo: s.repo})
	s.ctx = context.Background()
}

func (s *PairingServiceSuite) assertCode(err error, code string) {
	s.T().Helper()
	var domainErr *apperrors.DomainError
	s.Require().ErrorAs(err, &domainErr)
	s.Equal(code, domainErr.Code)
}

func (s *PairingServiceSuite) TestCreateParticipant() {
	s.Run("creates with trimmed fields", func() {
		p, err := s.service.CreateParticipant(s.ctx, " 0001 ", "  Alice  ")
		s.Require().NoError(err)
		s.Equal("0001", p.Identifier)
		s.Equal("Alice", p.DisplayName)
		s.NotEmpty(p.ID)
	})

	s.Run("rejects malformed identifier", func() {
		_, err := s.service.CreateParticipant(s.ctx, "12", "Bob")
		s.assertCode(err, "INVALID_INPUT")

		_, err = s.service.CreateParticipant(s.ctx, "12a4", "Bob")
		s.assertCode(err, "INVALID_INPUT")
	})

	s.Run("rejects empty display name", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0002", "   ")
		s.assertCode(err, "INVALID_INPUT")
	})

	s.Run("rejects duplicate identifier", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0003", "Carol")
		s.Require().NoError(err)

		_, err = s.service.CreateParticipant(s.ctx, "0003", "Other")
		s.assertCode(err, "CONFLICT")
	})
}

func (s *PairingServiceSuite) TestCreateMatch() {
	s.Run("is symmetric on success", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0001", "Alice")
		s.Require().NoError(err)
		_, err = s.service.CreateParticipant(s.ctx, "0002", "Bob")
		s.Require().NoError(err)

		s.Require().NoError(s.service.CreateMatch(s.ctx, "0001", "0002"))

		a, err := s.repo.GetByIdentifier(s.ctx, "0001")
		s.Require().NoError(err)
		b, err := s.repo.GetByIdentifier(s.ctx, "0002")
		s.Require().NoError(err)
		s.Require().NotNil(a.MatchedIdentifier)
		s.Require().NotNil(b.MatchedIdentifier)
		s.Equal(b.Identifier, *a.MatchedIdentifier)
		s.Equal(a.Identifier, *b.MatchedIdentifier)
	})

	s.Run("rejects self match for any valid identifier", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0042", "Dave")
		s.Require().NoError(err)

		err = s.service.CreateMatch(s.ctx, "0042", " 0042 ")
		s.assertCode(err, "CONFLICT")
	})

	s.Run("rejects malformed identifiers", func() {
		err := s.service.CreateMatch(s.ctx, "001", "0002")
		s.assertCode(err, "INVALID_INPUT")
	})

	s.Run("rejects unknown participants", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0010", "Erin")
		s.Require().NoError(err)

		err = s.service.CreateMatch(s.ctx, "0010", "8888")
		s.assertCode(err, "NOT_FOUND")
	})

	s.Run("rejects already matched participants", func() {
		for _, seed := range [][2]string{{"0020", "Frank"}, {"0021", "Grace"}, {"0022", "Heidi"}} {
			_, err := s.service.CreateParticipant(s.ctx, seed[0], seed[1])
			s.Require().NoError(err)
		}
		s.Require().NoError(s.service.CreateMatch(s.ctx, "0020", "0021"))

		err := s.service.CreateMatch(s.ctx, "0022", "0020")
		s.assertCode(err, "CONFLICT")
	})
}

func (s *PairingServiceSuite) TestRemoveMatch() {
	s.Run("clears both sides, second call is a terminal conflict", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0001", "Alice")
		s.Require().NoError(err)
		_, err = s.service.CreateParticipant(s.ctx, "0002", "Bob")
		s.Require().NoError(err)
		s.Require().NoError(s.service.CreateMatch(s.ctx, "0001", "0002"))

		s.Require().NoError(s.service.RemoveMatch(s.ctx, "0001"))

		a, _ := s.repo.GetByIdentifier(s.ctx, "0001")
		b, _ := s.repo.GetByIdentifier(s.ctx, "0002")
		s.Nil(a.MatchedIdentifier)
		s.Nil(b.MatchedIdentifier)

		err = s.service.RemoveMatch(s.ctx, "0001")
		s.assertCode(err, "CONFLICT")
	})

	s.Run("unknown participant", func() {
		err := s.service.RemoveMatch(s.ctx, "9999")
		s.assertCode(err, "NOT_FOUND")
	})

	s.Run("unmatched participant", func() {
		_, err := s.service.CreateParticipant(s.ctx, "0005", "Ivy")
		s.Require().NoError(err)

		err = s.service.RemoveMatch(s.ctx, "0005")
		s.assertCode(err, "CONFLICT")
	})
}

func (s *PairingServiceSuite) TestDeleteParticipant() {
	s.Run("cascades unmatch to partner", func() {
		a, err := s.service.CreateParticipant(s.ctx, "0001", "Alice")
		s.Require().NoError(err)
		_, err = s.service.CreateParticipant(s.ctx, "0002", "Bob")
		s.Require().NoError(err)
		s.Require().NoError(s.service.CreateMatch(s.ctx, "0001", "0002"))

		s.Require().NoError(s.service.DeleteParticipant(s.ctx, a.ID))

		b, err := s.repo.GetByIdentifier(s.ctx, "0002")
		s.Require().NoError(err)
		s.Nil(b.MatchedIdentifier)
	})

	s.Run("unknown record id", func() {
		err := s.service.DeleteParticipant(s.ctx, "no-such-id")
		s.assertCode(err, "NOT_FOUND")
	})

	s.Run("blank record id", func() {
		err := s.service.DeleteParticipant(s.ctx, "  ")
		s.assertCode(err, "INVALID_INPUT")
	})
}
