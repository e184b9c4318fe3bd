package models

// InsertResult is returned by create operations.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult is returned by upsert operations.
//
// For an update of an existing record MatchedCount is 1 and UpsertedCount is 0.
// For an upsert that created the record UpsertedCount is 1 and UpsertedID
// holds the id of the new record.
type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult is returned by delete operations.
// A DeletedCount of zero means nothing matched; it is not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// MessageResponse is the JSON body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is the JSON body of the token and logout endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}
