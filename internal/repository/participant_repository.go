package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/match-reveal-service/internal/domain"
)

// ParticipantRepository encapsulates participant persistence. Pair, Unpair and
// Delete touch two records and must not expose a half-applied state; both
// implementations perform the whole mutation under a single transaction or
// lock scope.
type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Participant, error)
	List(ctx context.Context, search string) ([]domain.Participant, error)
	UpdateDisplayName(ctx context.Context, identifier, displayName string) error

	// Pair atomically links two unmatched participants. Preconditions are
	// re-checked under lock: both must exist and be unmatched.
	Pair(ctx context.Context, idA, idB string) error

	// Unpair clears the requester's match and, when the partner record still
	// exists and points back, the partner's as well. A dangling partner
	// reference is not an error; the requester is still cleared.
	Unpair(ctx context.Context, identifier string) error

	// Delete removes the participant by record ID, nulling the partner's
	// match reference in the same atomic scope. Returns the deleted record.
	Delete(ctx context.Context, id string) (*domain.Participant, error)
}

type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository returns a Postgres-backed implementation.
func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &participantRepository{pool: pool}
}

const participantColumns = `id, identifier, display_name, matched_identifier, created_at, updated_at`

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	const query = `
        INSERT INTO participants (identifier, display_name, matched_identifier)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Identifier,
		p.DisplayName,
		p.MatchedIdentifier,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	const query = `SELECT ` + participantColumns + ` FROM participants WHERE id=$1`
	return scanParticipant(r.pool.QueryRow(ctx, query, id))
}

func (r *participantRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Participant, error) {
	const query = `SELECT ` + participantColumns + ` FROM participants WHERE identifier=$1`
	return scanParticipant(r.pool.QueryRow(ctx, query, identifier))
}

func (r *participantRepository) List(ctx context.Context, search string) ([]domain.Participant, error) {
	const query = `
        SELECT ` + participantColumns + `
        FROM participants
        WHERE $1 = '' OR identifier ILIKE '%' || $1 || '%' OR display_name ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Identifier, &p.DisplayName, &p.MatchedIdentifier, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) UpdateDisplayName(ctx context.Context, identifier, displayName string) error {
	const query = `UPDATE participants SET display_name=$1, updated_at=NOW() WHERE identifier=$2`
	cmd, err := r.pool.Exec(ctx, query, displayName, identifier)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *participantRepository) Pair(ctx context.Context, idA, idB string) error {
	if idA == idB {
		return ErrSelfMatch
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		a, b, err := lockPair(ctx, tx, idA, idB)
		if err != nil {
			return err
		}
		if a == nil || b == nil {
			return ErrNotFound
		}
		if a.Matched() || b.Matched() {
			return ErrAlreadyMatched
		}
		if err := setMatched(ctx, tx, idA, &idB); err != nil {
			return err
		}
		return setMatched(ctx, tx, idB, &idA)
	})
}

func (r *participantRepository) Unpair(ctx context.Context, identifier string) error {
	// The partner is unknown until the requester row is read, so peek first,
	// then take both row locks in the fixed order and re-verify.
	requester, err := r.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if !requester.Matched() {
		return ErrNotMatched
	}
	partnerID := *requester.MatchedIdentifier

	for {
		err := r.withTx(ctx, func(tx pgx.Tx) error {
			a, b, err := lockPair(ctx, tx, identifier, partnerID)
			if err != nil {
				return err
			}
			if a == nil {
				return ErrNotFound
			}
			if !a.Matched() {
				return ErrNotMatched
			}
			if *a.MatchedIdentifier != partnerID {
				// Re-paired between peek and lock. Restart against the fresh
				// partner so both row locks are still taken in order.
				partnerID = *a.MatchedIdentifier
				return errStalePartner
			}
			if err := setMatched(ctx, tx, identifier, nil); err != nil {
				return err
			}
			// A missing partner record means the removal is already effectively
			// done for that side.
			if b != nil && b.Matched() && *b.MatchedIdentifier == identifier {
				return setMatched(ctx, tx, partnerID, nil)
			}
			return nil
		})
		if errors.Is(err, errStalePartner) {
			continue
		}
		return err
	}
}

func (r *participantRepository) Delete(ctx context.Context, id string) (*domain.Participant, error) {
	const peekQuery = `SELECT ` + participantColumns + ` FROM participants WHERE id=$1`
	target, err := scanParticipant(r.pool.QueryRow(ctx, peekQuery, id))
	if err != nil {
		return nil, err
	}
	partnerID := partnerOf(target)

	for {
		var deleted *domain.Participant
		err := r.withTx(ctx, func(tx pgx.Tx) error {
			var locked, partner *domain.Participant
			var err error
			if partnerID != "" {
				locked, partner, err = lockPair(ctx, tx, target.Identifier, partnerID)
			} else {
				locked, err = lockOne(ctx, tx, target.Identifier)
			}
			if err != nil {
				return err
			}
			if locked == nil || locked.ID != id {
				return ErrNotFound
			}
			if current := partnerOf(locked); current != partnerID {
				// The matched state moved between peek and lock; the cascade
				// must clear whoever the row points at under lock, so restart
				// with the fresh partner.
				partnerID = current
				return errStalePartner
			}
			if partner != nil && partner.Matched() && *partner.MatchedIdentifier == locked.Identifier {
				if err := setMatched(ctx, tx, partnerID, nil); err != nil {
					return err
				}
			}

			cmd, err := tx.Exec(ctx, `DELETE FROM participants WHERE id=$1`, id)
			if err != nil {
				return err
			}
			if cmd.RowsAffected() == 0 {
				return ErrNotFound
			}
			deleted = locked
			return nil
		})
		if errors.Is(err, errStalePartner) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return deleted, nil
	}
}

// errStalePartner signals that a row's matched state changed between the
// unlocked peek and the row lock; the caller rolls back and retries against
// the partner read under lock.
var errStalePartner = errors.New("matched state changed between peek and lock")

func partnerOf(p *domain.Participant) string {
	if p.Matched() {
		return *p.MatchedIdentifier
	}
	return ""
}

func (r *participantRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockPair takes FOR UPDATE locks on both identifier rows in lexicographic
// order so concurrent pairing operations on overlapping pairs cannot
// deadlock. Missing rows come back nil rather than erroring.
func lockPair(ctx context.Context, tx pgx.Tx, idA, idB string) (*domain.Participant, *domain.Participant, error) {
	first, second := idA, idB
	if second < first {
		first, second = second, first
	}

	firstRow, err := lockOne(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	secondRow, err := lockOne(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}

	if first == idA {
		return firstRow, secondRow, nil
	}
	return secondRow, firstRow, nil
}

func lockOne(ctx context.Context, tx pgx.Tx, identifier string) (*domain.Participant, error) {
	const query = `SELECT ` + participantColumns + ` FROM participants WHERE identifier=$1 FOR UPDATE`
	p, err := scanParticipant(tx.QueryRow(ctx, query, identifier))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func setMatched(ctx context.Context, tx pgx.Tx, identifier string, matched *string) error {
	const query = `UPDATE participants SET matched_identifier=$1, updated_at=NOW() WHERE identifier=$2`
	_, err := tx.Exec(ctx, query, matched, identifier)
	return err
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	if err := row.Scan(&p.ID, &p.Identifier, &p.DisplayName, &p.MatchedIdentifier, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
