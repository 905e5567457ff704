package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// Health probes path and returns nil on 2xx.
func (s *Session) Health(ctx context.Context, path string) error {
	resp, err := s.Get(ctx, path, "")
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// ListRecords returns all records in the order the service sent them.
// An empty store is reported as domain.ErrStoreEmpty.
func (s *Session) ListRecords(ctx context.Context) ([]domain.Record, error) {
	resp, err := s.Get(ctx, RecordsPath, "")
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusConflict {
		return nil, domain.ErrStoreEmpty
	}

	var records []domain.Record
	if err := ParseResponse(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches one record. A 404 is reported as domain.ErrRecordNotFound.
func (s *Session) GetRecord(ctx context.Context, key string) (domain.Record, error) {
	resp, err := s.Get(ctx, RecordPath(key), RecordRoute)
	if err != nil {
		return domain.Record{}, err
	}
	if resp.Status == http.StatusNotFound {
		return domain.Record{}, domain.ErrRecordNotFound.WithDetails(key)
	}

	var rec domain.Record
	if err := ParseResponse(resp, &rec); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// CreateRecord stores rec. A 409 is reported as domain.ErrKeyInUse.
func (s *Session) CreateRecord(ctx context.Context, rec domain.Record) error {
	resp, err := s.Post(ctx, RecordsPath, rec)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusConflict {
		return domain.ErrKeyInUse.WithDetails(rec.Key)
	}
	return ParseResponse(resp, nil)
}

// DeleteRecord removes the record stored under key.
func (s *Session) DeleteRecord(ctx context.Context, key string) error {
	resp, err := s.Delete(ctx, RecordPath(key), RecordRoute)
	if err != nil {
		return err
	}
	return ParseResponse(resp, nil)
}

// Login exchanges the admin password for a bearer token. It does not
// attach the token. Any non-2xx is reported as domain.ErrInvalidPassword.
func (s *Session) Login(ctx context.Context, password string) (string, error) {
	resp, err := s.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   LoginPath,
		Body:   map[string]string{"password": password},
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := ParseResponse(resp, &result); err != nil {
		if StatusOf(err) != 0 {
			return "", domain.ErrInvalidPassword.WithCause(err)
		}
		return "", err
	}
	if result.Token == "" {
		return "", domain.ErrMissingToken
	}
	return result.Token, nil
}

// CheckAdmin probes the privileged endpoint with the attached credential.
// Any non-2xx is reported as domain.ErrNotAuthorized.
func (s *Session) CheckAdmin(ctx context.Context) error {
	resp, err := s.Get(ctx, CheckAdminPath, "")
	if err != nil {
		return err
	}
	if err := ParseResponse(resp, nil); err != nil {
		return domain.ErrNotAuthorized.WithCause(err)
	}
	return nil
}

// Meta fetches the service metadata mapping. Non-string values are
// rendered as compact JSON.
func (s *Session) Meta(ctx context.Context) (map[string]string, error) {
	resp, err := s.Get(ctx, MetaPath, "")
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := ParseResponse(resp, &raw); err != nil {
		return nil, err
	}

	meta := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			meta[k] = val
		default:
			data, err := json.Marshal(val)
			if err != nil {
				meta[k] = fmt.Sprint(val)
				continue
			}
			meta[k] = string(data)
		}
	}
	return meta, nil
}
