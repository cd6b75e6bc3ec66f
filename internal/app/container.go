package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/api"
	"github.com/nekogravitycat/barber-booking-backend/internal/appointment"
	"github.com/nekogravitycat/barber-booking-backend/internal/auth"
	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	Storage      storage.Storage

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	Location     *time.Location
	SlotStep     time.Duration
	AdminNumbers []string

	VerificationCodeTTL   time.Duration
	VerificationRateLimit int
	VerificationWindow    time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Directory  barber.Directory
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	// Init Components
	codeHasher := auth.NewBcryptCodeHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	calc, err := availability.NewCalculator(cfg.SlotStep)
	if err != nil {
		return nil, fmt.Errorf("slot calculator: %w", err)
	}

	// Rate limiting shares one Redis counter across instances.
	counter := ratelimit.NewRedisCounter(cfg.Redis)
	ipLimiter := ratelimit.New(counter, cfg.VerificationRateLimit*2, cfg.VerificationWindow, "rl:code:ip")
	numberLimiter := ratelimit.New(counter, cfg.VerificationRateLimit, cfg.VerificationWindow, "rl:code:number")

	// Auth Module
	codeStore := auth.NewRedisCodeStore(cfg.Redis)
	verifier := auth.NewVerifier(codeStore, codeHasher, jwtManager, numberLimiter, cfg.VerificationCodeTTL, cfg.AdminNumbers, cfg.Logger)

	// Barber Module
	barberRepo := barber.NewPgxRepository(cfg.DBPool)
	directory := barber.NewDirectory(barberRepo, cfg.Storage, cfg.Logger)

	// Appointment Module
	apptRepo := appointment.NewPgxRepository(cfg.DBPool)
	apptService := appointment.NewService(apptRepo, directory, calc, cfg.Location, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       cfg.Logger,
		JWTManager:   jwtManager,
		Verifier:     verifier,
		CodeTTL:      cfg.VerificationCodeTTL,
		CodeLimiter:  ipLimiter,
		Directory:    directory,
		Appointments: apptService,
		Location:     cfg.Location,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Directory:  directory,
	}, nil
}
