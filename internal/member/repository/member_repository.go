package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"campus_lost_found/internal/member/domain"
	errprocess "campus_lost_found/pkg/err"
)

// MemberRepository definition get Member info
type MemberRepository interface {
	Migrate(ctx context.Context) error
	CreateUser(ctx context.Context, user *domain.Member) error
	UpdateMemberStatus(ctx context.Context, user *domain.Member) error
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
	FindProfiles(ctx context.Context, memberIDs []string) ([]domain.Profile, error)
}

type memberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository create a MemberRepository
func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &memberRepository{db: db}
}

const createMemberTable = `
CREATE TABLE IF NOT EXISTS member (
	id         BIGSERIAL PRIMARY KEY,
	member_id  TEXT NOT NULL UNIQUE,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	full_name  TEXT NOT NULL DEFAULT '',
	status     INT  NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *memberRepository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createMemberTable)
	return err
}

func (r *memberRepository) CreateUser(ctx context.Context, member *domain.Member) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO member(member_id, email, password, full_name) VALUES ($1, $2, $3, $4)",
		member.MemberID, member.Email, member.Password, member.FullName)
	return err
}

func (r *memberRepository) UpdateMemberStatus(ctx context.Context, member *domain.Member) error {
	_, err := r.db.Exec(ctx, "UPDATE member SET status = $1 WHERE member_id = $2", member.Status, member.MemberID)
	return err
}

func (r *memberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	queryStr := "SELECT id, member_id, email, password, full_name, status, created_at FROM member WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if memberQuery.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *memberQuery.Email)
		paramCount++
	}
	if memberQuery.MemberID != nil {
		queryStr += fmt.Sprintf(" AND member_id = $%d", paramCount)
		params = append(params, *memberQuery.MemberID)
		paramCount++
	}
	if memberQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *memberQuery.ID)
	}
	if len(params) == 0 {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "member query needs at least one condition")
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var member domain.Member
	err := row.Scan(&member.ID, &member.MemberID, &member.Email, &member.Password,
		&member.FullName, &member.Status, &member.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errprocess.Wrap(errprocess.ErrNotFound, "no member found with given criteria")
		}
		return nil, err
	}

	return &member, nil
}

// FindProfiles one batch lookup, unknown ids are simply absent
func (r *memberRepository) FindProfiles(ctx context.Context, memberIDs []string) ([]domain.Profile, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		"SELECT member_id, email, full_name FROM member WHERE member_id = ANY($1)", memberIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0, len(memberIDs))
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.UserID, &p.Email, &p.FullName); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
