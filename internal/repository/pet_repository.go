package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/femcoders/pettrack/internal/domain"
)

// PetFilter narrows pet listings. Blank fields are omitted from the query;
// non-blank fields match as case-insensitive substrings.
type PetFilter struct {
	Name    string
	Species string
	Breed   string
}

// PetRepository defines persistence access for pets.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	List(ctx context.Context, filter PetFilter) ([]domain.Pet, error)
}

type petRepository struct {
	pool *pgxpool.Pool
}

// NewPetRepository returns a Postgres-backed implementation.
func NewPetRepository(pool *pgxpool.Pool) PetRepository {
	return &petRepository{pool: pool}
}

const petSelect = `
        SELECT p.id, p.name, p.species, p.breed, p.birth_date, p.image,
               p.owner_id, u.username, p.created_at, p.updated_at
        FROM pets p
        JOIN users u ON u.id = p.owner_id`

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var pet domain.Pet
	if err := row.Scan(
		&pet.ID,
		&pet.Name,
		&pet.Species,
		&pet.Breed,
		&pet.BirthDate,
		&pet.Image,
		&pet.OwnerID,
		&pet.OwnerUsername,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	const query = `
        INSERT INTO pets (name, species, breed, birth_date, image, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.BirthDate,
		pet.Image,
		pet.OwnerID,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	const query = `
        UPDATE pets SET name=$1, species=$2, breed=$3, birth_date=$4, image=$5, owner_id=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.BirthDate,
		pet.Image,
		pet.OwnerID,
		pet.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	return scanPet(r.pool.QueryRow(ctx, petSelect+` WHERE p.id=$1`, id))
}

func (r *petRepository) List(ctx context.Context, filter PetFilter) ([]domain.Pet, error) {
	conditions := []string{}
	args := []any{}

	addSubstring := func(column, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("p.%s ILIKE $%d", column, len(args)))
	}
	addSubstring("name", filter.Name)
	addSubstring("species", filter.Species)
	addSubstring("breed", filter.Breed)

	query := petSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := []domain.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *pet)
	}
	return pets, rows.Err()
}
