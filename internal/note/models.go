package note

import "time"

// Note is the persistent note model. CreatedAt is the millisecond timestamp
// assigned by the insert operation; ReceivedAt is assigned by the backing
// store when the record lands.
type Note struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  int64     `json:"createdAt" bson:"createdAt"`
	ReceivedAt time.Time `json:"receivedAt" bson:"receivedAt"`
}
