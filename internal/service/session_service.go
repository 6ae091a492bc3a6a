package service

import (
	"errors"
	"strings"
	"time"

	"github.com/complaint-desk/internal/constants"
	"github.com/complaint-desk/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL 管理员会话有效期
const SessionTTL = time.Duration(constants.AdminSessionTTLSecs) * time.Second

// Decision 会话校验结果
type Decision int

// 会话校验结果取值
const (
	DecisionUnauthenticated Decision = iota
	DecisionAllow
	DecisionForbidden
	DecisionExpired
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionForbidden:
		return "forbidden"
	case DecisionExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Authorization 会话校验结论
type Authorization struct {
	Decision  Decision
	AdminID   uint
	Role      string
	ExpiresAt time.Time
}

// Allowed 是否放行
func (a Authorization) Allowed() bool {
	return a.Decision == DecisionAllow
}

// AdminClaims 管理员会话声明
type AdminClaims struct {
	AdminID uint   `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService 会话签发与校验
type SessionService struct {
	secret []byte
	now    func() time.Time
}

// NewSessionService 创建会话服务，签名密钥为空时返回错误
func NewSessionService(secret string, now func() time.Time) (*SessionService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSessionSecretMissing
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{secret: []byte(secret), now: now}, nil
}

// Issue 签发会话令牌，有效期固定 1 小时
func (s *SessionService) Issue(adminID uint, role string) (string, time.Time, error) {
	// JWT NumericDate 精确到秒：iat 与 exp 同步取整后恰好相差 1 小时，
	// 相对真实签发时刻 exp 最多提前不足 1 秒
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(SessionTTL)

	claims := AdminClaims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Authorize 校验令牌；过期令牌对外一律视为未认证
func (s *SessionService) Authorize(tokenString string) Authorization {
	result := s.classify(tokenString)
	if result.Decision == DecisionExpired {
		logger.Debugw("admin_session_expired", "admin_id", result.AdminID, "expired_at", result.ExpiresAt)
		result.Decision = DecisionUnauthenticated
	}
	return result
}

func (s *SessionService) classify(tokenString string) Authorization {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Authorization{Decision: DecisionUnauthenticated}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := &AdminClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		// 签名先于声明校验，过期错误意味着签名已通过
		if errors.Is(err, jwt.ErrTokenExpired) {
			result := Authorization{Decision: DecisionExpired, AdminID: claims.AdminID, Role: claims.Role}
			if claims.ExpiresAt != nil {
				result.ExpiresAt = claims.ExpiresAt.Time
			}
			return result
		}
		logger.Debugw("admin_session_invalid", "error", err)
		return Authorization{Decision: DecisionUnauthenticated}
	}
	if !token.Valid {
		return Authorization{Decision: DecisionUnauthenticated}
	}

	result := Authorization{AdminID: claims.AdminID, Role: claims.Role}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.Role != constants.RoleAdmin || claims.AdminID == 0 {
		result.Decision = DecisionForbidden
		return result
	}
	result.Decision = DecisionAllow
	return result
}
