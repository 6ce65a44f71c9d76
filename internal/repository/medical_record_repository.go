package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/femcoders/pettrack/internal/domain"
)

// MedicalRecordRepository defines persistence access for clinical entries.
// Every read joins through the pet so callers get the owning account id.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	Update(ctx context.Context, record *domain.MedicalRecord) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	ListAll(ctx context.Context) ([]domain.MedicalRecord, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.MedicalRecord, error)
	ListByPetName(ctx context.Context, petName string) ([]domain.MedicalRecord, error)
}

type medicalRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalRecordRepository returns a Postgres-backed implementation.
func NewMedicalRecordRepository(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepository{pool: pool}
}

const recordSelect = `
        SELECT m.id, m.description, m.weight, m.date, m.type,
               m.pet_id, p.name, p.owner_id, m.created_by, u.username,
               m.created_at, m.updated_at
        FROM medical_records m
        JOIN pets p ON p.id = m.pet_id
        JOIN users u ON u.id = m.created_by`

func scanMedicalRecord(row pgx.Row) (*domain.MedicalRecord, error) {
	var record domain.MedicalRecord
	if err := row.Scan(
		&record.ID,
		&record.Description,
		&record.Weight,
		&record.Date,
		&record.Type,
		&record.PetID,
		&record.PetName,
		&record.OwnerID,
		&record.CreatedByID,
		&record.CreatedByUsername,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        INSERT INTO medical_records (description, weight, date, type, pet_id, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		record.Description,
		record.Weight,
		record.Date,
		record.Type,
		record.PetID,
		record.CreatedByID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        UPDATE medical_records SET description=$1, weight=$2, date=$3, type=$4, pet_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		record.Description,
		record.Weight,
		record.Date,
		record.Type,
		record.PetID,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicalRecordRepository) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	return scanMedicalRecord(r.pool.QueryRow(ctx, recordSelect+` WHERE m.id=$1`, id))
}

func (r *medicalRecordRepository) ListAll(ctx context.Context) ([]domain.MedicalRecord, error) {
	return r.list(ctx, recordSelect+` ORDER BY m.id`)
}

func (r *medicalRecordRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.MedicalRecord, error) {
	return r.list(ctx, recordSelect+` WHERE p.owner_id=$1 ORDER BY m.id`, ownerID)
}

func (r *medicalRecordRepository) ListByPetName(ctx context.Context, petName string) ([]domain.MedicalRecord, error) {
	return r.list(ctx, recordSelect+` WHERE LOWER(p.name)=LOWER($1) ORDER BY m.id`, petName)
}

func (r *medicalRecordRepository) list(ctx context.Context, query string, args ...any) ([]domain.MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.MedicalRecord{}
	for rows.Next() {
		record, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}
