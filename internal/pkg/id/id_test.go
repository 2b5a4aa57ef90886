package id

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestShort(t *testing.T) {
	Convey("Short 生成定长短 ID", t, func() {
		hex := regexp.MustCompile(`^[0-9a-f]+$`)

		id := Short(9)
		So(len(id), ShouldEqual, 9)
		So(hex.MatchString(id), ShouldBeTrue)

		Convey("多次生成互不相同", func() {
			seen := make(map[string]bool)
			for i := 0; i < 1000; i++ {
				seen[Short(9)] = true
			}
			So(len(seen), ShouldEqual, 1000)
		})

		Convey("边界值", func() {
			So(Short(0), ShouldEqual, "")
			So(len(Short(64)), ShouldEqual, 32)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("New 生成合法 UUID", t, func() {
		_, err := uuid.Parse(New())
		So(err, ShouldBeNil)
		So(New(), ShouldNotEqual, New())
	})
}
