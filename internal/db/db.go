package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskio-app/taskio/internal/config"
)

var Conn *pgxpool.Pool

// Init connects the shared pool to Postgres and bootstraps the schema.
func Init() {
	pool, err := Connect(context.Background(), config.App.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	Conn = pool
	log.Println("Connected to Postgres successfully")

	if err := EnsureSchema(context.Background(), Conn); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}
}

// Connect opens and pings a pgx pool for the given connection string.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables and indexes the handlers depend on.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUsersTable(ctx, pool); err != nil {
		return err
	}
	if err := ensureServicesTable(ctx, pool); err != nil {
		return err
	}
	return ensureBookingsTable(ctx, pool)
}

func ensureUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL CHECK (role IN ('seeker', 'taskio')),
            profile_picture TEXT,
            header_image TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
    `)
	return err
}

func ensureServicesTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS services (
            id UUID PRIMARY KEY,
            taskio_id UUID NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            category TEXT NOT NULL,
            tags TEXT[] NOT NULL DEFAULT '{}',
            description TEXT NOT NULL,
            pricing_model TEXT NOT NULL CHECK (pricing_model IN ('hourly', 'fixed', 'package')),
            price_min NUMERIC NOT NULL CHECK (price_min >= 0),
            price_max NUMERIC NOT NULL CHECK (price_max >= price_min),
            currency TEXT NOT NULL DEFAULT 'USD',
            is_negotiable BOOLEAN NOT NULL DEFAULT FALSE,
            service_image TEXT,
            availability JSONB NOT NULL DEFAULT '{}'::jsonb,
            location JSONB NOT NULL DEFAULT '{}'::jsonb,
            experience JSONB NOT NULL DEFAULT '{}'::jsonb,
            portfolio JSONB NOT NULL DEFAULT '{}'::jsonb,
            booking_policy JSONB NOT NULL DEFAULT '{}'::jsonb,
            additional_info JSONB NOT NULL DEFAULT '{}'::jsonb,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_services_taskio_created ON services(taskio_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_services_active_category ON services(category) WHERE is_active;
    `)
	return err
}

func ensureBookingsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bookings (
            id UUID PRIMARY KEY,
            service_id UUID NOT NULL REFERENCES services(id),
            taskio_id UUID NOT NULL REFERENCES users(id),
            customer_id UUID NOT NULL REFERENCES users(id),
            price NUMERIC NOT NULL CHECK (price >= 0),
            quantity INTEGER NOT NULL CHECK (quantity >= 1),
            total_price NUMERIC NOT NULL CHECK (total_price >= 0),
            booking_date DATE NOT NULL,
            booking_time TEXT NOT NULL,
            address TEXT NOT NULL,
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            zip_code TEXT NOT NULL,
            special_instructions TEXT,
            contact_phone TEXT NOT NULL,
            contact_email TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending'
                CHECK (status IN ('pending', 'confirmed', 'in-progress', 'completed', 'cancelled')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_bookings_taskio_created ON bookings(taskio_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_bookings_customer_created ON bookings(customer_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_bookings_taskio_status ON bookings(taskio_id, status);
    `)
	return err
}
