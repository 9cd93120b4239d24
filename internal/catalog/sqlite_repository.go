package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, description, category, age_group, image_url, created_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Description,
			&p.Category,
			&p.AgeGroup,
			&p.ImageURL,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, price, description, category, age_group, image_url, created_at
		FROM products
		WHERE id = $1
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.Category,
		&p.AgeGroup,
		&p.ImageURL,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (id, name, price, description, category, age_group, image_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Price,
		p.Description,
		p.Category,
		p.AgeGroup,
		p.ImageURL,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products
	          SET name = $1, price = $2, description = $3, category = $4, age_group = $5, image_url = $6
	          WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Price,
		p.Description,
		p.Category,
		p.AgeGroup,
		p.ImageURL,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
