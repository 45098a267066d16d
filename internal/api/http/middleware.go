package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/security"
	"medishare-backend/internal/service"
)

type contextKey string

const claimsKey contextKey = "userClaims"

// claimsFromContext returns the authenticated user's claims, if any.
func claimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// authenticate parses a Bearer token when present and stores the claims in
// the request context. Requests without a token pass through anonymously;
// endpoints that need identity use requireAuth.
func authenticate(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := tokens.ValidateToken(tokenStr)
			if err != nil {
				respondError(w, r, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, r, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claimsFromContext(r.Context()); !ok {
			respondJSON(w, http.StatusUnauthorized, response{Success: false, Message: "authentication required"})
			return
		}
		next(w, r)
	}
}

func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := claimsFromContext(r.Context())
		if claims.Role != domain.UserRoleAdmin {
			respondError(w, r, domain.ErrUnauthorized)
			return
		}
		next(w, r)
	})
}

// responseRecorder captures the status code written by a handler.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.statusCode,
			"duration", time.Since(start).String(),
			"remote", r.RemoteAddr,
		)
	})
}

// visitor holds one client's limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter throttles per client. The per-minute budget comes from platform
// settings, so admins can tune it without a restart; the settings lookup is
// cached briefly to keep it off the hot path.
type rateLimiter struct {
	settings service.SettingsService

	mu       sync.Mutex
	visitors map[string]*visitor

	cachedLimit   rate.Limit
	cachedBurst   int
	cacheExpires  time.Time
	cacheInterval time.Duration
}

func newRateLimiter(settings service.SettingsService) *rateLimiter {
	rl := &rateLimiter{
		settings:      settings,
		visitors:      make(map[string]*visitor),
		cacheInterval: 30 * time.Second,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst := rl.currentLimit(r.Context())
		if !rl.allow(clientKey(r), limit, burst) {
			respondJSON(w, http.StatusTooManyRequests, response{Success: false, Message: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *rateLimiter) currentLimit(ctx context.Context) (rate.Limit, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Now().Before(rl.cacheExpires) {
		return rl.cachedLimit, rl.cachedBurst
	}

	perMinute := int32(60)
	if settings, err := rl.settings.Get(ctx); err == nil && settings.APIRateLimit > 0 {
		perMinute = settings.APIRateLimit
	}
	rl.cachedLimit = rate.Limit(float64(perMinute) / 60.0)
	rl.cachedBurst = int(perMinute)
	rl.cacheExpires = time.Now().Add(rl.cacheInterval)
	return rl.cachedLimit, rl.cachedBurst
}

func (rl *rateLimiter) allow(key string, limit rate.Limit, burst int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	v.limiter.SetLimit(limit)
	v.limiter.SetBurst(burst)
	return v.limiter.Allow()
}

func (rl *rateLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// clientKey prefers the authenticated user id over the remote IP so a shared
// NAT does not starve everyone behind it.
func clientKey(r *http.Request) string {
	if claims, ok := claimsFromContext(r.Context()); ok {
		return fmt.Sprintf("user:%d", claims.UserID)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
