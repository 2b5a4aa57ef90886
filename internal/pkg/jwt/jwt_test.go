package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("JWT 生成与校验", t, func() {
		j := NewJWT("secret", time.Hour)

		token, err := j.GenerateToken("u1")
		So(err, ShouldBeNil)
		So(token, ShouldNotBeEmpty)

		claims, err := j.ValidateToken(token)
		So(err, ShouldBeNil)
		So(claims.UserID, ShouldEqual, "u1")

		Convey("密钥不匹配", func() {
			_, err := NewJWT("other", time.Hour).ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期 Token", func() {
			expired, err := NewJWT("secret", -time.Minute).GenerateToken("u1")
			So(err, ShouldBeNil)
			_, err = j.ValidateToken(expired)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("格式错误", func() {
			_, err := j.ValidateToken("not.a.jwt")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}
