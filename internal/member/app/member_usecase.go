package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"campus_lost_found/internal/member/domain"
	"campus_lost_found/internal/member/repository"
	"campus_lost_found/pkg"
	"campus_lost_found/pkg/config"
	"campus_lost_found/pkg/database"
	"campus_lost_found/pkg/encrypt"
	errprocess "campus_lost_found/pkg/err"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, email, password, fullName string) error
	FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ForceLogout(ctx context.Context, memberID string) error
	CheckSessionTimeout(ctx context.Context, token string) (bool, error)
	ReconnectSession(ctx context.Context, token string) error
	Me(ctx context.Context, viewer domain.Viewer) (*domain.Profile, error)
	FindProfiles(ctx context.Context, memberIDs []string) ([]domain.Profile, error)
}

// HashFunc password hash
type HashFunc func(password string) (string, error)

type memberUseCase struct {
	memberRepo repository.MemberRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.MemberSession]
	hash       HashFunc
	now        func() time.Time
}

// NewMemberUseCase 建立一個新的 MemberUseCase
func NewMemberUseCase(memberRepo repository.MemberRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
	hash HashFunc,
) MemberUseCase {
	if hash == nil {
		hash = encrypt.HashPassword
	}
	return &memberUseCase{
		memberRepo: memberRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
		hash:       hash,
		now:        time.Now,
	}
}

// Register
func (m *memberUseCase) Register(ctx context.Context, email, password, fullName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return errprocess.Wrap(errprocess.ErrValidation, "invalid email address")
	}

	// 檢查 email 是否已存在
	_, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err == nil {
		return errprocess.Wrap(errprocess.ErrConflict, "email already exists")
	}
	if !errors.Is(err, errprocess.ErrNotFound) {
		return err
	}

	pw, err := m.hash(password)
	if err != nil {
		logger.Log.Error("password err", zap.Error(err))
		if errors.Is(err, encrypt.ErrWeakPassword) {
			return errprocess.Wrap(errprocess.ErrValidation, "%s", err.Error())
		}
		return err
	}

	user := domain.Member{
		MemberID: uuid.New().String(),
		Email:    email,
		Password: pw,
		FullName: strings.TrimSpace(fullName),
	}

	logger.Log.Info("usecase Register", zap.String("member_id", user.MemberID), zap.String("email", email))

	return m.memberRepo.CreateUser(ctx, &user)
}

// FindMember 用條件來尋找使用者
func (m *memberUseCase) FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error) {
	return m.memberRepo.FindByMember(ctx, param)
}

// Login
func (m *memberUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!", zap.String("email", email))
		if errors.Is(err, errprocess.ErrNotFound) {
			return "", errprocess.Wrap(errprocess.ErrUnauthorized, "invalid email or password")
		}
		return "", err
	}

	if err = member.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!", zap.String("email", email))
		return "", errprocess.Wrap(errprocess.ErrUnauthorized, "invalid email or password")
	}

	member.Status = domain.MemberStatusOnLine

	tk, err := token.GenerateJWTFunc(member.MemberID, member.Email, string(token.RoleMember), config.EnvConfig.LostFoundService)
	if err != nil {
		return "", err
	}

	now := m.now()
	session := domain.MemberSession{
		Token:        tk,
		MemberID:     member.MemberID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}

	if err := m.redisRepo.Set(ctx, member.MemberID, session, m.sessionTTL); err != nil {
		return "", err
	}

	if err := m.memberRepo.UpdateMemberStatus(ctx, member); err != nil {
		return "", err
	}

	return tk, nil
}

// Logout
func (m *memberUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("logout", zap.String("member_id", tokenInfo.MemberID))

	return m.ForceLogout(ctx, tokenInfo.MemberID)
}

// ForceLogout 清除該 member 的 session
func (m *memberUseCase) ForceLogout(ctx context.Context, memberID string) error {
	if err := m.redisRepo.Del(ctx, memberID); err != nil {
		return err
	}

	return m.memberRepo.UpdateMemberStatus(ctx, &domain.Member{
		MemberID: memberID,
		Status:   domain.MemberStatusOffLine,
	})
}

// CheckSessionTimeout true = session 已過期或已登出
func (m *memberUseCase) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("CheckSessionTimeout err :", zap.String("err", err.Error()))
		return true, err
	}

	// session 以 member id 為 key, 重新登入後舊 token 不再有效
	session, err := m.redisRepo.Get(ctx, tokenInfo.MemberID)
	if errors.Is(err, database.ErrCacheMiss) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	if session.Token != strings.TrimPrefix(t, "Bearer ") {
		logger.Log.Debug("session token replaced", zap.String("member_id", tokenInfo.MemberID))
		return true, nil
	}

	ttl, err := m.redisRepo.GetTTL(ctx, tokenInfo.MemberID)
	if err != nil {
		return true, err
	}

	return ttl <= 0, nil
}

// ReconnectSession 延長 session ttl
func (m *memberUseCase) ReconnectSession(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("ReconnectSession err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("ReconnectSession", zap.String("member_id", tokenInfo.MemberID))

	return m.redisRepo.ExtendTTL(ctx, tokenInfo.MemberID, m.sessionTTL)
}

// Me profile of the viewer
func (m *memberUseCase) Me(ctx context.Context, viewer domain.Viewer) (*domain.Profile, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{MemberID: &viewer.MemberID})
	if err != nil {
		return nil, err
	}
	p := member.Profile()
	return &p, nil
}

// FindProfiles batch profile lookup
func (m *memberUseCase) FindProfiles(ctx context.Context, memberIDs []string) ([]domain.Profile, error) {
	ids := pkg.Unique(memberIDs)
	if len(ids) == 0 {
		return nil, nil
	}
	profiles, err := m.memberRepo.FindProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	return profiles, nil
}
