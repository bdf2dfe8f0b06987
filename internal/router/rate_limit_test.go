package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pianao-store/internal/i18n"

	"github.com/gin-gonic/gin"
)

func TestLoginRateLimitKeyUsesEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":" Hanako@Example.jp ","password":"secret1"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.8:40000"

	rule := RateLimitRule{Prefix: "rl:login"}
	key := rule.key(c, KeyByIPAndJSONField("email"))
	if key != "rl:login:hanako@example.jp|10.0.0.8" {
		t.Fatalf("unexpected key %s", key)
	}

	// 登录处理器仍需读取原始请求体
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !strings.Contains(string(body), "Hanako@Example.jp") {
		t.Fatalf("body not restored: %s", body)
	}
}

func TestRateLimitKeyFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/functions/send-order-email", strings.NewReader(`not json`))
	c.Request.RemoteAddr = "10.0.0.9:40000"

	rule := RateLimitRule{Prefix: "rl:order_email"}
	if key := rule.key(c, KeyByIPAndJSONField("email")); key != "rl:order_email:10.0.0.9" {
		t.Fatalf("unexpected key %s", key)
	}
	if key := rule.key(c, nil); key != "rl:order_email:10.0.0.9" {
		t.Fatalf("unexpected key without key func %s", key)
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	rule := RateLimitRule{Prefix: "rl:login", WindowSeconds: 60, MaxRequests: 1, BlockSeconds: 900}
	r.POST("/login", RateLimitMiddleware(nil, rule, KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// 未配置 Redis 时不计数
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("attempt %d blocked: %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestRateLimitWaitSecondsAndMessage(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 300, BlockSeconds: 900, MessageKey: "error.login_too_many"}
	if got := rule.waitSeconds(840); got != 840 {
		t.Fatalf("wait want 840 got %d", got)
	}
	if got := rule.waitSeconds(-1); got != 300 {
		t.Fatalf("wait want window 300 got %d", got)
	}
	if got := (RateLimitRule{}).waitSeconds(0); got != 1 {
		t.Fatalf("wait want 1 got %d", got)
	}

	msg := rule.message(i18n.LocaleEN, 840)
	if msg != "Too many login attempts, please retry in 840 seconds" {
		t.Fatalf("unexpected message %q", msg)
	}
	plain := RateLimitRule{WindowSeconds: 60}
	if msg := plain.message(i18n.LocaleEN, 30); msg != "Too many requests, please try again later" {
		t.Fatalf("unexpected default message %q", msg)
	}
}

func TestParseRateLimitResult(t *testing.T) {
	count, ttl, ok := parseRateLimitResult([]interface{}{int64(6), int64(900)})
	if !ok || count != 6 || ttl != 900 {
		t.Fatalf("unexpected parse result %d %d %v", count, ttl, ok)
	}
	if _, _, ok := parseRateLimitResult([]interface{}{int64(1)}); ok {
		t.Fatalf("short result should fail")
	}
	if _, _, ok := parseRateLimitResult([]interface{}{"x", int64(1)}); ok {
		t.Fatalf("non numeric count should fail")
	}
	if _, _, ok := parseRateLimitResult("OK"); ok {
		t.Fatalf("scalar result should fail")
	}
}
