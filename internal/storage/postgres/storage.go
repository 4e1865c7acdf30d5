package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Tests
// substitute a pgxmock pool through it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type profileRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type rewardRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

type menuRepository struct {
	storage *Storage
}

type otpRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Rewards() repository.RewardRepository {
	return &rewardRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) Menu() repository.MenuRepository {
	return &menuRepository{storage: s}
}

func (s *Storage) OTPCodes() repository.OTPRepository {
	return &otpRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            reward_points INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS restaurants (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            id UUID PRIMARY KEY,
            restaurant_id UUID NOT NULL REFERENCES restaurants(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            image_url TEXT NOT NULL DEFAULT '',
            is_available BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            restaurant_id UUID NOT NULL REFERENCES restaurants(id),
            total_amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            scheduled_for TIMESTAMPTZ,
            reward_used BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            menu_item_id UUID NOT NULL REFERENCES menu_items(id),
            quantity INTEGER NOT NULL,
            price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS reward_transactions (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            order_id UUID NOT NULL REFERENCES orders(id),
            points_earned INTEGER NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            restaurant_id UUID NOT NULL REFERENCES restaurants(id),
            rating INTEGER NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, restaurant_id)
        )`,
		`CREATE TABLE IF NOT EXISTS otp_codes (
            id UUID PRIMARY KEY,
            email TEXT NOT NULL,
            code_hash TEXT NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_scheduled ON orders(status, scheduled_for)`,
		`CREATE INDEX IF NOT EXISTS idx_otp_codes_email ON otp_codes(email, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProfileRepository implementation ---

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	const query = `SELECT id, email, full_name, reward_points, created_at FROM profiles WHERE id=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.FullName, &p.RewardPoints, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, email string) (*model.Profile, error) {
	const query = `INSERT INTO profiles (id, email) VALUES ($1, $2)
                   ON CONFLICT (email) DO NOTHING
                   RETURNING id, full_name, reward_points, created_at`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, uuid.NewString(), email).Scan(&p.ID, &p.FullName, &p.RewardPoints, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.getByEmail(ctx, email)
		}
		return nil, err
	}
	p.Email = email
	return &p, nil
}

func (r *profileRepository) getByEmail(ctx context.Context, email string) (*model.Profile, error) {
	const query = `SELECT id, email, full_name, reward_points, created_at FROM profiles WHERE email=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&p.ID, &p.Email, &p.FullName, &p.RewardPoints, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) AddRewardPoints(ctx context.Context, id string, points int) error {
	const query = `UPDATE profiles SET reward_points = reward_points + $2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, points)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, user_id, restaurant_id, total_amount, status, scheduled_for, reward_used)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING created_at`
	id := uuid.NewString()
	err := r.storage.pool.QueryRow(ctx, query,
		id, order.UserID, order.RestaurantID, order.Total, order.Status, order.ScheduledFor, order.RewardUsed,
	).Scan(&order.CreatedAt)
	if err != nil {
		return err
	}
	order.ID = id
	return nil
}

func (r *orderRepository) AddItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO order_items (id, order_id, menu_item_id, quantity, price)
                       VALUES ($1, $2, $3, $4, $5)`
		for i := range items {
			items[i].ID = uuid.NewString()
			items[i].OrderID = orderID
			if _, err := tx.Exec(ctx, query,
				items[i].ID, orderID, items[i].MenuItemID, items[i].Quantity, items[i].UnitPrice,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetDetail(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	const orderQuery = `SELECT o.id, o.user_id, o.restaurant_id, o.total_amount, o.status, o.scheduled_for,
                               o.reward_used, o.created_at,
                               r.id, r.name, r.description, r.image_url, r.is_active, r.created_at
                        FROM orders o
                        JOIN restaurants r ON r.id = o.restaurant_id
                        WHERE o.id=$1`
	var detail model.OrderDetail
	err := r.storage.pool.QueryRow(ctx, orderQuery, orderID).Scan(
		&detail.ID, &detail.UserID, &detail.RestaurantID, &detail.Total, &detail.Status, &detail.ScheduledFor,
		&detail.RewardUsed, &detail.CreatedAt,
		&detail.Restaurant.ID, &detail.Restaurant.Name, &detail.Restaurant.Description,
		&detail.Restaurant.ImageURL, &detail.Restaurant.IsActive, &detail.Restaurant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price, mi.name, mi.image_url
                        FROM order_items oi
                        JOIN menu_items mi ON mi.id = oi.menu_item_id
                        WHERE oi.order_id=$1`
	rows, err := r.storage.pool.Query(ctx, linesQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.Quantity, &line.UnitPrice, &line.Name, &line.ImageURL); err != nil {
			return nil, err
		}
		detail.Lines = append(detail.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT id, user_id, restaurant_id, total_amount, status, scheduled_for, reward_used, created_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.Total, &o.Status, &o.ScheduledFor, &o.RewardUsed, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SelectDueScheduled(ctx context.Context, limit int) ([]model.Order, error) {
	// Lock, promote, and read in a single statement. pgx holds the
	// connection busy while a result set streams, so the promotion
	// cannot be issued per row inside the scan loop.
	const query = `UPDATE orders SET status='pending'
                   WHERE id IN (SELECT id
                                FROM orders
                                WHERE status='scheduled' AND scheduled_for <= NOW()
                                ORDER BY scheduled_for
                                LIMIT $1
                                FOR UPDATE SKIP LOCKED)
                   RETURNING id, user_id, restaurant_id, total_amount, status, scheduled_for, reward_used, created_at`

	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.Total, &o.Status, &o.ScheduledFor, &o.RewardUsed, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// --- RewardRepository implementation ---

func (r *rewardRepository) Append(ctx context.Context, tx *model.RewardTransaction) error {
	const query = `INSERT INTO reward_transactions (id, user_id, order_id, points_earned)
                   VALUES ($1, $2, $3, $4)
                   RETURNING created_at`
	id := uuid.NewString()
	if err := r.storage.pool.QueryRow(ctx, query, id, tx.UserID, tx.OrderID, tx.PointsEarned).Scan(&tx.CreatedAt); err != nil {
		return err
	}
	tx.ID = id
	return nil
}

func (r *rewardRepository) ListByUser(ctx context.Context, userID string) ([]model.RewardTransaction, error) {
	const query = `SELECT id, user_id, order_id, points_earned, created_at
                   FROM reward_transactions WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RewardTransaction
	for rows.Next() {
		var t model.RewardTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.OrderID, &t.PointsEarned, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReviewRepository implementation ---

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	const query = `INSERT INTO reviews (id, user_id, restaurant_id, rating, comment)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at`
	id := uuid.NewString()
	err := r.storage.pool.QueryRow(ctx, query, id, review.UserID, review.RestaurantID, review.Rating, review.Comment).Scan(&review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	review.ID = id
	return nil
}

func (r *reviewRepository) ExistsForRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id=$1 AND restaurant_id=$2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, restaurantID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// --- MenuRepository implementation ---

func (r *menuRepository) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	const query = `SELECT id, name, description, image_url, is_active, created_at
                   FROM restaurants WHERE is_active ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Restaurant
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Description, &rest.ImageURL, &rest.IsActive, &rest.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	const query = `SELECT id, name, description, image_url, is_active, created_at FROM restaurants WHERE id=$1`
	var rest model.Restaurant
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&rest.ID, &rest.Name, &rest.Description, &rest.ImageURL, &rest.IsActive, &rest.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *menuRepository) ListMenuItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	const query = `SELECT id, restaurant_id, name, description, price, image_url, is_available
                   FROM menu_items WHERE restaurant_id=$1 AND is_available ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.ImageURL, &item.IsAvailable); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	const query = `SELECT id, restaurant_id, name, description, price, image_url, is_available
                   FROM menu_items WHERE id=$1`
	var item model.MenuItem
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.ImageURL, &item.IsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// --- OTPRepository implementation ---

func (r *otpRepository) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	const query = `INSERT INTO otp_codes (id, email, code_hash, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, uuid.NewString(), email, codeHash, expiresAt)
	return err
}

func (r *otpRepository) Latest(ctx context.Context, email string) (*model.OTPCode, error) {
	const query = `SELECT id, email, code_hash, expires_at, created_at
                   FROM otp_codes WHERE email=$1 AND expires_at > NOW()
                   ORDER BY created_at DESC LIMIT 1`
	var code model.OTPCode
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&code.ID, &code.Email, &code.CodeHash, &code.ExpiresAt, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *otpRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM otp_codes WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
