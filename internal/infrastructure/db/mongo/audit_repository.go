package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

const auditCollection = "auth_events"

// MongoAuditRepository persists authentication audit events.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Username  string `bson:"username"`
	Outcome   string `bson:"outcome"`
	Reason    string `bson:"reason,omitempty"`
	RemoteIP  string `bson:"remote_ip,omitempty"`
	Bypass    bool   `bson:"bypass,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Username:  event.Username,
		Outcome:   event.Outcome,
		Reason:    event.Reason,
		RemoteIP:  event.RemoteIP,
		Bypass:    event.Bypass,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeErr("insert auth event", err)
	}
	return nil
}
