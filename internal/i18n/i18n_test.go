package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallsBackToDefaultLocale(t *testing.T) {
	// zh-CN 未翻译的 key 回退到日语
	if got := T(LocaleZH, "error.email_send_failed"); got != messages[LocaleJA]["error.email_send_failed"] {
		t.Fatalf("unexpected fallback: %s", got)
	}
	if got := T(LocaleEN, "no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEN, "error.password_min_length", 6); got != "Password must be at least 6 characters" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		target string
		header string
		want   string
	}{
		{"/", "", LocaleJA},
		{"/", "en-GB,en;q=0.9", LocaleEN},
		{"/", "zh-CN;q=0.8", LocaleZH},
		{"/?lang=en", "ja", LocaleEN},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", tc.target, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("target=%s header=%s want %s got %s", tc.target, tc.header, tc.want, got)
		}
	}
}
