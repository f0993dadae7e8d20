// Command seedcal fills personal calendars with synthetic events for
// development and demo environments. It seeds every existing user, or
// creates demo users first when -demo-users is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"lxp-core/internal/config"
	"lxp-core/internal/database"
	"lxp-core/internal/domain"
	"lxp-core/internal/logger"
	"lxp-core/internal/repository"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type eventTemplate struct {
	titles    []string
	eventType domain.EventType
	// duration bounds; zero max means an instantaneous event
	minDuration time.Duration
	maxDuration time.Duration
	allDay      bool
	color       string
}

var eventTemplates = []eventTemplate{
	{
		titles:      []string{"Deep work: Go concurrency", "Review SQL basics", "Practice algorithms", "Read chapter notes"},
		eventType:   domain.EventStudySession,
		minDuration: 45 * time.Minute,
		maxDuration: 3 * time.Hour,
		color:       "#4F86C6",
	},
	{
		titles:      []string{"Submit essay draft", "Finish lab report", "Project milestone 2"},
		eventType:   domain.EventAssignment,
		minDuration: time.Hour,
		maxDuration: 2 * time.Hour,
		color:       "#E0A800",
	},
	{
		titles:      []string{"Mock exam run", "Flashcard sprint", "Past papers review"},
		eventType:   domain.EventExamPrep,
		minDuration: 90 * time.Minute,
		maxDuration: 4 * time.Hour,
		color:       "#C0392B",
	},
	{
		titles:      []string{"Study group sync", "Mentor 1:1", "Office hours"},
		eventType:   domain.EventMeeting,
		minDuration: 30 * time.Minute,
		maxDuration: time.Hour,
		color:       "#27AE60",
	},
	{
		titles:    []string{"Gym", "Errands", "Family time"},
		eventType: domain.EventPersonal,
		allDay:    true,
		color:     "#8E44AD",
	},
	{
		titles:    []string{"Pay course fee", "Register for exam", "Renew library books"},
		eventType: domain.EventReminder,
		// Instantaneous: starts_at == ends_at is valid.
		color: "#7F8C8D",
	},
	{
		titles:      []string{"Coffee break", "Walk outside", "Screen break"},
		eventType:   domain.EventBreak,
		minDuration: 10 * time.Minute,
		maxDuration: 30 * time.Minute,
		color:       "#16A085",
	},
}

func main() {
	var (
		demoUsers     int
		eventsPerUser int
		weeks         int
		seed          int64
	)
	flag.IntVar(&demoUsers, "demo-users", 0, "number of demo users to create before seeding (0 seeds existing users)")
	flag.IntVar(&eventsPerUser, "events-per-user", 25, "number of events to create per user")
	flag.IntVar(&weeks, "weeks", 4, "number of weeks from today to spread events over")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info("Starting calendar seeding", zap.Int64("seed", seed), zap.Int("events_per_user", eventsPerUser))

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewSQLXUserRepository(db)
	eventRepo := repository.NewSQLXCalendarEventRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	userIDs, err := resolveUserIDs(ctx, db, userRepo, demoUsers, rng, log)
	if err != nil {
		log.Fatal("Failed to resolve users to seed", zap.Error(err))
	}
	if len(userIDs) == 0 {
		log.Warn("No users found to seed; create users first or pass -demo-users")
		return
	}

	// Each user gets an independent RNG so per-user seeding can run
	// concurrently without sharing rand state.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, userID := range userIDs {
		userID := userID
		userRng := rand.New(rand.NewSource(seed + int64(i) + 1))
		g.Go(func() error {
			return seedUserCalendar(gctx, txManager, eventRepo, log, userID, eventsPerUser, weeks, userRng)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Calendar seeding failed", zap.Error(err))
	}

	log.Info("Calendar seeding completed", zap.Int("users_seeded", len(userIDs)))
}

// resolveUserIDs either creates demo users or lists existing user IDs.
func resolveUserIDs(ctx context.Context, db *sqlx.DB, userRepo domain.UserRepository, demoUsers int, rng *rand.Rand, log *zap.Logger) ([]string, error) {
	if demoUsers > 0 {
		ids := make([]string, 0, demoUsers)
		for i := 0; i < demoUsers; i++ {
			suffix := rng.Intn(1_000_000)
			user := domain.NewUser(
				fmt.Sprintf("demo-google-%06d", suffix),
				fmt.Sprintf("demo-user-%06d@example.com", suffix),
			)
			user.Name = fmt.Sprintf("Demo User %d", i+1)
			if err := userRepo.CreateUser(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to create demo user: %w", err)
			}
			log.Info("Created demo user", zap.String("userID", user.ID), zap.String("email", user.Email))
			ids = append(ids, user.ID)
		}
		return ids, nil
	}

	var ids []string
	if err := db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE deleted_at IS NULL ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

// seedUserCalendar inserts synthetic events for one user inside a single
// transaction, so a user's calendar is either fully seeded or untouched.
func seedUserCalendar(ctx context.Context, txManager domain.TransactionManager, eventRepo domain.CalendarEventRepository, log *zap.Logger, userID string, count, weeks int, rng *rand.Rand) error {
	err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := 0; i < count; i++ {
			event := randomEvent(userID, weeks, rng)
			if err := event.Validate(); err != nil {
				return fmt.Errorf("generated event failed validation for user %s: %w", userID, err)
			}
			if err := eventRepo.CreateEvent(txCtx, event); err != nil {
				return fmt.Errorf("failed to insert event for user %s: %w", userID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Seeded calendar for user", zap.String("userID", userID), zap.Int("events", count))
	return nil
}

// randomEvent builds one synthetic event within the coming weeks. Durations
// are non-negative by construction, so ends_at never precedes starts_at.
func randomEvent(userID string, weeks int, rng *rand.Rand) *domain.CalendarEvent {
	tmpl := eventTemplates[rng.Intn(len(eventTemplates))]
	title := tmpl.titles[rng.Intn(len(tmpl.titles))]

	day := rng.Intn(weeks * 7)
	now := time.Now()
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, day)

	var startsAt, endsAt time.Time
	if tmpl.allDay {
		startsAt = base
		endsAt = base.Add(24 * time.Hour)
	} else {
		// Between 07:00 and 21:00 on a half-hour grid.
		startMinute := 7*60 + 30*rng.Intn(28)
		startsAt = base.Add(time.Duration(startMinute) * time.Minute)
		duration := tmpl.minDuration
		if tmpl.maxDuration > tmpl.minDuration {
			duration += time.Duration(rng.Int63n(int64(tmpl.maxDuration - tmpl.minDuration)))
		}
		endsAt = startsAt.Add(duration)
	}

	event := domain.NewCalendarEvent(userID, title, tmpl.eventType, startsAt, endsAt)
	event.IsAllDay = tmpl.allDay
	event.Color = tmpl.color
	if rng.Intn(3) == 0 {
		event.Description = "Seeded for development"
	}
	return event
}
