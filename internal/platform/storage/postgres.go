package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps object bytes in the stored_files table so the service needs
// a single backing store. Objects are served from /files/{key} by the
// transport layer.
type Postgres struct {
	DB      *pgxpool.Pool
	BaseURL string
	Secret  string
}

func NewPostgres(db *pgxpool.Pool, baseURL, secret string) *Postgres {
	return &Postgres{DB: db, BaseURL: strings.TrimRight(baseURL, "/"), Secret: secret}
}

func (p *Postgres) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := p.DB.Exec(ctx, `
    INSERT INTO stored_files (key, content, content_type)
    VALUES ($1,$2,$3)
    ON CONFLICT (key) DO UPDATE
      SET content = EXCLUDED.content,
          content_type = EXCLUDED.content_type,
          updated_at = now()
  `, key, content, contentType)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, string, error) {
	var content []byte
	var contentType string
	err := p.DB.QueryRow(ctx, "SELECT content, content_type FROM stored_files WHERE key = $1", key).Scan(&content, &contentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return content, contentType, nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	_, err := p.DB.Exec(ctx, "DELETE FROM stored_files WHERE key = $1", key)
	return err
}

func (p *Postgres) PublicURL(key string) string {
	return p.BaseURL + "/files/" + key
}

func (p *Postgres) SignedURL(key string, ttl time.Duration) (string, error) {
	expires := time.Now().Add(ttl).Unix()
	sig := p.sign(key, expires)
	return fmt.Sprintf("%s/files/%s?exp=%d&sig=%s", p.BaseURL, key, expires, sig), nil
}

// VerifySignature checks the exp/sig pair produced by SignedURL.
func (p *Postgres) VerifySignature(key, expRaw, sig string) bool {
	expires, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > expires {
		return false
	}
	expected := p.sign(key, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (p *Postgres) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, []byte(p.Secret))
	fmt.Fprintf(mac, "%s:%d", key, expires)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
