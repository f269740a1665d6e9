package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/singleflight"

	"encore.dev/beta/errs"

	"encore.app/proxy/codec"
	"encore.app/proxy/model"
	"encore.app/proxy/store/records"
)

// Store is the append-only idempotency record store. There is no update or
// delete: a key is written once and its record never changes.
type Store interface {
	// Get returns the record for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) (*model.CacheRecord, bool, error)
	// Put inserts a new record. It fails with an errs.AlreadyExists error when
	// key is already taken.
	Put(ctx context.Context, key string, payload model.Payload, requestHash string) (*model.CacheRecord, error)
}

// IsDuplicateKey reports whether err is a write-once violation from Put.
func IsDuplicateKey(err error) bool {
	return errs.Code(err) == errs.AlreadyExists
}

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool {
	return errs.Code(err) == errs.Unavailable
}

type store struct {
	records records.Querier
	reads   singleflight.Group
}

// NewStore creates a Store over the idempotency_records table.
func NewStore(recordRepo records.Querier) Store {
	return &store{
		records: recordRepo,
	}
}

func (s *store) Get(ctx context.Context, key string) (*model.CacheRecord, bool, error) {
	// Concurrent retries of one key share a single table read.
	v, err, _ := s.reads.Do(key, func() (interface{}, error) {
		dbRecord, err := s.records.GetRecord(ctx, key)
		if err != nil {
			return nil, err
		}
		return convertDBRecordToModel(dbRecord)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		if errs.Code(err) == errs.Internal {
			return nil, false, err
		}
		return nil, false, errs.WrapCode(err, errs.Unavailable, "failed to read idempotency record")
	}

	return v.(*model.CacheRecord), true, nil
}

func (s *store) Put(ctx context.Context, key string, payload model.Payload, requestHash string) (*model.CacheRecord, error) {
	doc, err := codec.Marshal(payload)
	if err != nil {
		return nil, errs.WrapCode(err, errs.Internal, "failed to encode idempotency record")
	}

	dbRecord, err := s.records.InsertRecord(ctx, records.InsertRecordParams{
		ID:          key,
		Response:    doc,
		RequestHash: requestHash,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return nil, &errs.Error{Code: errs.AlreadyExists, Message: "idempotency record already exists"}
		}

		return nil, errs.WrapCode(err, errs.Unavailable, "failed to write idempotency record")
	}

	return convertDBRecordToModel(dbRecord)
}

// convertDBRecordToModel converts a database row to a domain CacheRecord
func convertDBRecordToModel(dbRecord records.IdempotencyRecord) (*model.CacheRecord, error) {
	payload, err := codec.Unmarshal(dbRecord.Response)
	if err != nil {
		return nil, errs.WrapCode(err, errs.Internal, "stored idempotency record is corrupt")
	}

	return &model.CacheRecord{
		ID:          dbRecord.ID,
		Response:    payload,
		RequestHash: dbRecord.RequestHash,
		CreatedAt:   dbRecord.CreatedAt.Time,
		UpdatedAt:   dbRecord.UpdatedAt.Time,
	}, nil
}
