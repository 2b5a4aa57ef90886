package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"parley/internal/pkg/ctxutil"
	"parley/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		userID, _ := ctxutil.GetUserID(c.Request.Context())
		requestID, _ := ctxutil.GetRequestID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "request_id": requestID})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecovery(t *testing.T) {
	Convey("Recovery 将 panic 转为 500", t, func() {
		w := do(newEngine(Recovery()), http.MethodGet, "/panic", nil)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, "Internal Server Error")
	})
}

func TestRequestID(t *testing.T) {
	Convey("RequestID", t, func() {
		r := newEngine(RequestID())

		Convey("生成新的请求 ID", func() {
			w := do(r, http.MethodGet, "/ping", nil)
			So(w.Header().Get(RequestIDHeader), ShouldNotBeEmpty)
			So(w.Body.String(), ShouldContainSubstring, w.Header().Get(RequestIDHeader))
		})

		Convey("沿用客户端的请求 ID", func() {
			w := do(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc"})
			So(w.Header().Get(RequestIDHeader), ShouldEqual, "abc")
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("CORS", t, func() {
		r := newEngine(CORS([]string{"http://localhost:3000"}))

		Convey("允许的来源预检返回 204", func() {
			w := do(r, http.MethodOptions, "/ping", map[string]string{
				"Origin":                        "http://localhost:3000",
				"Access-Control-Request-Method": http.MethodPost,
			})
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
		})

		Convey("允许的来源普通请求带响应头", func() {
			w := do(r, http.MethodGet, "/ping", map[string]string{"Origin": "http://localhost:3000"})
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
			So(w.Header().Get("Access-Control-Expose-Headers"), ShouldEqual, http.CanonicalHeaderKey(RequestIDHeader))
		})

		Convey("未列出的来源不回显", func() {
			w := do(r, http.MethodGet, "/ping", map[string]string{"Origin": "https://evil.example"})
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})

		Convey("无 Origin 时不加头", func() {
			w := do(r, http.MethodGet, "/ping", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func TestAuth(t *testing.T) {
	Convey("Auth", t, func() {
		j := jwt.NewJWT("secret", time.Hour)
		r := newEngine(Auth(j))

		Convey("缺少 Authorization", func() {
			w := do(r, http.MethodGet, "/ping", nil)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("非 Bearer 格式", func() {
			w := do(r, http.MethodGet, "/ping", map[string]string{"Authorization": "Basic abc"})
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("无效 Token", func() {
			w := do(r, http.MethodGet, "/ping", map[string]string{"Authorization": "Bearer bad"})
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(w.Body.String(), ShouldContainSubstring, "40102")
		})

		Convey("有效 Token 注入 user_id", func() {
			token, err := j.GenerateToken("u1")
			So(err, ShouldBeNil)
			w := do(r, http.MethodGet, "/ping", map[string]string{"Authorization": "Bearer " + token})
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"user_id":"u1"`)
		})
	})
}
