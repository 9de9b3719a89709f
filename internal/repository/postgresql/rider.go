package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/rider"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/database"
)

type riderRepositoryImpl struct {
	db *database.DB
}

func NewRiderRepository(db *database.DB) rider.RiderRepository {
	return &riderRepositoryImpl{db: db}
}

const riderColumns = `id, branch_id, name, license_id, phone_number, phone_suffix, status,
	daily_rental_fee, lease_active, weekly_loan_payment, bank_name, bank_account_number,
	created_at, updated_at`

func scanRider(row interface{ Scan(dest ...any) error }) (rider.Rider, error) {
	var r rider.Rider
	err := row.Scan(
		&r.ID,
		&r.BranchID,
		&r.Name,
		&r.LicenseID,
		&r.PhoneNumber,
		&r.PhoneSuffix,
		&r.Status,
		&r.DailyRentalFee,
		&r.LeaseActive,
		&r.WeeklyLoanPayment,
		&r.BankName,
		&r.BankAccountNumber,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return rider.Rider{}, err
	}
	return r, nil
}

// Create implements rider.RiderRepository.
func (r *riderRepositoryImpl) Create(ctx context.Context, newRider rider.Rider) (rider.Rider, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO riders (
			id, branch_id, name, license_id, phone_number, phone_suffix, status,
			daily_rental_fee, lease_active, weekly_loan_payment, bank_name, bank_account_number,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + riderColumns

	created, err := scanRider(q.QueryRow(ctx, query,
		newRider.BranchID,
		newRider.Name,
		newRider.LicenseID,
		newRider.PhoneNumber,
		newRider.PhoneSuffix,
		newRider.Status,
		newRider.DailyRentalFee,
		newRider.LeaseActive,
		newRider.WeeklyLoanPayment,
		newRider.BankName,
		newRider.BankAccountNumber,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_rider_license_id") {
			return rider.Rider{}, rider.ErrLicenseIDExists
		}
		return rider.Rider{}, err
	}
	return created, nil
}

// GetByID implements rider.RiderRepository.
func (r *riderRepositoryImpl) GetByID(ctx context.Context, id string) (rider.Rider, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + riderColumns + ` FROM riders WHERE id = $1 AND deleted_at IS NULL`

	return scanRider(q.QueryRow(ctx, query, id))
}

// GetByIDs implements rider.RiderRepository.
func (r *riderRepositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]rider.Rider, error) {
	if len(ids) == 0 {
		return map[string]rider.Rider{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + riderColumns + ` FROM riders WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]rider.Rider, len(ids))
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		found[rd.ID] = rd
	}
	return found, rows.Err()
}

// List implements rider.RiderRepository.
func (r *riderRepositoryImpl) List(ctx context.Context, filter rider.RiderFilter) ([]rider.Rider, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argIdx))
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR license_id ILIKE $%d OR phone_number LIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := fmt.Sprintf(`SELECT `+riderColumns+` FROM riders WHERE %s ORDER BY name`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []rider.Rider
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, rows.Err()
}

// Update implements rider.RiderRepository.
func (r *riderRepositoryImpl) Update(ctx context.Context, req rider.UpdateRiderRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	set := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.BranchID != nil {
		set("branch_id", *req.BranchID)
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.LicenseID != nil {
		set("license_id", *req.LicenseID)
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
		digits := strings.Map(func(c rune) rune {
			if c >= '0' && c <= '9' {
				return c
			}
			return -1
		}, *req.PhoneNumber)
		if len(digits) >= 4 {
			set("phone_suffix", digits[len(digits)-4:])
		}
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.DailyRentalFee != nil {
		set("daily_rental_fee", *req.DailyRentalFee)
	}
	if req.LeaseActive != nil {
		set("lease_active", *req.LeaseActive)
	}
	if req.WeeklyLoanPayment != nil {
		set("weekly_loan_payment", *req.WeeklyLoanPayment)
	}
	if req.BankName != nil {
		set("bank_name", *req.BankName)
	}
	if req.BankAccountNumber != nil {
		set("bank_account_number", *req.BankAccountNumber)
	}

	query := fmt.Sprintf(`
		UPDATE riders
		SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_rider_license_id") {
			return rider.ErrLicenseIDExists
		}
		return err
	}
	return nil
}

// Delete implements rider.RiderRepository.
func (r *riderRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE riders
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	return q.QueryRow(ctx, query, id).Scan(&deletedID)
}
