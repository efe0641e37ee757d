package middleware

import (
	"crypto/subtle"
	"fusion_backend/internal/config"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/logger"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TriggerSecrets 生成接口的共享密钥，配置热更新时替换
type TriggerSecrets struct {
	mu    sync.RWMutex
	cron  string
	admin string
}

func NewTriggerSecrets(cfg config.TriggerConfig) *TriggerSecrets {
	s := &TriggerSecrets{}
	s.Update(cfg)
	return s
}

func (s *TriggerSecrets) Update(cfg config.TriggerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron = cfg.CronSecret
	s.admin = cfg.AdminSecret
}

func secretEqual(given, expected string) bool {
	if expected == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}

// Authorized 接受 Bearer 头（cron 密钥）或 secret 查询参数（cron / admin 密钥）
func (s *TriggerSecrets) Authorized(authHeader, querySecret string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.HasPrefix(authHeader, "Bearer ") && secretEqual(strings.TrimPrefix(authHeader, "Bearer "), s.cron) {
		return true
	}
	return secretEqual(querySecret, s.cron) || secretEqual(querySecret, s.admin)
}

func TriggerAuthMiddleware(secrets *TriggerSecrets) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !secrets.Authorized(c.GetHeader("Authorization"), c.Query("secret")) {
			logger.Log.Warn("Rejected generation trigger", zap.String("client_ip", c.ClientIP()))
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
