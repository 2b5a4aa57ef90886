package repository

import (
	"context"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parley/internal/model"
)

// 需要 MongoDB:
//
//	MONGO_URI=mongodb://localhost:27017 go test ./internal/repository -run Mongo -v
func TestConversationRepo_Mongo(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database("parley_test")
	defer db.Drop(context.Background())

	if err := (&model.Conversation{}).EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	Convey("ConversationRepo 在 MongoDB 上的读写", t, func() {
		repo := NewConversationRepo(db)
		_, _ = db.Collection("conversations").DeleteMany(ctx, map[string]any{})

		conv := &model.Conversation{ConversationID: "mongo0001", ModelName: "Mistral"}
		So(repo.Create(ctx, conv), ShouldBeNil)
		So(conv.ID.IsZero(), ShouldBeFalse)
		So(repo.Create(ctx, &model.Conversation{ConversationID: "mongo0001"}), ShouldEqual, ErrDuplicate)

		updated, err := repo.AppendMessages(ctx, "mongo0001",
			model.Message{Role: model.RoleUser, Content: "q"},
			model.Message{Role: model.RoleAI, Content: "a"},
		)
		So(err, ShouldBeNil)
		So(updated.Contents(), ShouldResemble, []string{"q", "a"})

		convs, err := repo.List(ctx, ListFilter{})
		So(err, ShouldBeNil)
		So(len(convs), ShouldEqual, 1)

		So(repo.Delete(ctx, "mongo0001"), ShouldBeNil)
		_, err = repo.FindByConversationID(ctx, "mongo0001")
		So(err, ShouldEqual, ErrNotFound)
	})
}
