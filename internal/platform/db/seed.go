package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"intranet/internal/domain/notifications"
	"intranet/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureTemplates(ctx, pool); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.SeedAdminEmail) != "" {
		if err := ensureAdminEmployee(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}

	return nil
}

func ensureTemplates(ctx context.Context, pool *pgxpool.Pool) error {
	for code, tpl := range notifications.DefaultTemplates {
		_, err := pool.Exec(ctx, `
      INSERT INTO plantillas_correo (codigo, nombre, asunto, cuerpo)
      VALUES ($1,$2,$3,$4)
      ON CONFLICT (codigo) DO NOTHING
    `, code, tpl.Name, tpl.Subject, tpl.Body)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminEmployee(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM empleados WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO empleados (email, nombre, apellidos, password_hash, rol, es_admin, activo)
    VALUES ($1, 'Admin', 'Sistema', $2, 'admin', TRUE, TRUE)
  `, email, string(hash))
	return err
}
