package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/marcelopachecouba/sgme/internal/application"
	"github.com/marcelopachecouba/sgme/internal/config"
	httptransport "github.com/marcelopachecouba/sgme/internal/http"
	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/persistence/sqlite"
	"github.com/marcelopachecouba/sgme/internal/recurrence"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := sqlite.Migrate(context.Background(), pool); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	parishRepo := newParishAdapter(sqlite.NewParishRepository(pool))
	ministerRepo := newMinisterAdapter(sqlite.NewMinisterRepository(pool))
	massRepo := newMassAdapter(sqlite.NewMassRepository(pool))
	slotRepo := newFixedSlotAdapter(sqlite.NewFixedSlotRepository(pool))
	absenceRepo := newUnavailabilityAdapter(sqlite.NewUnavailabilityRepository(pool))
	assignmentRepo := newAssignmentAdapter(sqlite.NewAssignmentRepository(pool))

	engine := recurrence.NewEngine(cfg.DefaultCommunity)

	parishService := application.NewParishService(parishRepo, idGenerator, now)
	ministerService := application.NewMinisterService(ministerRepo, idGenerator, now)
	massService := application.NewMassService(massRepo, assignmentRepo, ministerRepo, idGenerator, now)
	slotService := application.NewFixedSlotService(slotRepo, ministerRepo, idGenerator, now)
	absenceService := application.NewUnavailabilityService(absenceRepo, ministerRepo, idGenerator, now)
	rosterService := application.NewRosterService(
		massRepo, slotRepo, ministerRepo, absenceRepo, assignmentRepo,
		engine, idGenerator, tokenGenerator, now, logger,
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Parishes:       httptransport.NewParishHandler(parishService, logger),
		Ministers:      httptransport.NewMinisterHandler(ministerService, logger),
		Masses:         httptransport.NewMassHandler(massService, logger),
		FixedSlots:     httptransport.NewFixedSlotHandler(slotService, logger),
		Unavailability: httptransport.NewUnavailabilityHandler(absenceService, logger),
		Rosters:        httptransport.NewRosterHandler(rosterService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.ParishScope(cfg.ParishHeader, logger, "/paroquias", "/escalas/publica/"),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("roster API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// ----------------------------- model mapping -----------------------------

func toPersistenceParish(p application.Parish) persistence.Parish {
	return persistence.Parish{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func toApplicationParish(p persistence.Parish) application.Parish {
	return application.Parish{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func toPersistenceMinister(m application.Minister) persistence.Minister {
	return persistence.Minister{
		ID:          m.ID,
		ParishID:    m.ParishID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		BirthDate:   m.BirthDate,
		YearsServed: m.YearsServed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toApplicationMinister(m persistence.Minister) application.Minister {
	return application.Minister{
		ID:          m.ID,
		ParishID:    m.ParishID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		BirthDate:   m.BirthDate,
		YearsServed: m.YearsServed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPersistenceMass(m application.Mass) persistence.Mass {
	return persistence.Mass{
		ID:            m.ID,
		ParishID:      m.ParishID,
		Date:          m.Date,
		TimeLabel:     m.TimeLabel,
		Community:     m.Community,
		RequiredCount: m.RequiredCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toApplicationMass(m persistence.Mass) application.Mass {
	return application.Mass{
		ID:            m.ID,
		ParishID:      m.ParishID,
		Date:          m.Date,
		TimeLabel:     m.TimeLabel,
		Community:     m.Community,
		RequiredCount: m.RequiredCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toPersistenceFixedSlot(s application.FixedSlot) persistence.FixedSlot {
	return persistence.FixedSlot{
		ID:         s.ID,
		ParishID:   s.ParishID,
		Week:       s.Week,
		Weekday:    s.Weekday,
		TimeLabel:  s.TimeLabel,
		Community:  s.Community,
		MinisterID: s.MinisterID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toApplicationFixedSlot(s persistence.FixedSlot) application.FixedSlot {
	return application.FixedSlot{
		ID:         s.ID,
		ParishID:   s.ParishID,
		Week:       s.Week,
		Weekday:    s.Weekday,
		TimeLabel:  s.TimeLabel,
		Community:  s.Community,
		MinisterID: s.MinisterID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toPersistenceUnavailability(u application.Unavailability) persistence.Unavailability {
	return persistence.Unavailability{
		ID:         u.ID,
		ParishID:   u.ParishID,
		MinisterID: u.MinisterID,
		Date:       u.Date,
		TimeLabel:  u.TimeLabel,
		CreatedAt:  u.CreatedAt,
	}
}

func toApplicationUnavailability(u persistence.Unavailability) application.Unavailability {
	return application.Unavailability{
		ID:         u.ID,
		ParishID:   u.ParishID,
		MinisterID: u.MinisterID,
		Date:       u.Date,
		TimeLabel:  u.TimeLabel,
		CreatedAt:  u.CreatedAt,
	}
}

func toPersistenceAssignment(a application.Assignment) persistence.Assignment {
	return persistence.Assignment{
		ID:           a.ID,
		ParishID:     a.ParishID,
		MassID:       a.MassID,
		MinisterID:   a.MinisterID,
		Confirmation: a.Confirmation,
		Attended:     a.Attended,
		Token:        a.Token,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toApplicationAssignment(a persistence.Assignment) application.Assignment {
	return application.Assignment{
		ID:           a.ID,
		ParishID:     a.ParishID,
		MassID:       a.MassID,
		MinisterID:   a.MinisterID,
		Confirmation: a.Confirmation,
		Attended:     a.Attended,
		Token:        a.Token,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ------------------------------- adapters --------------------------------

type parishAdapter struct {
	repo persistence.ParishRepository
}

func newParishAdapter(repo persistence.ParishRepository) *parishAdapter {
	return &parishAdapter{repo: repo}
}

func (a *parishAdapter) CreateParish(ctx context.Context, parish application.Parish) error {
	return a.repo.CreateParish(ctx, toPersistenceParish(parish))
}

func (a *parishAdapter) UpdateParish(ctx context.Context, parish application.Parish) error {
	return a.repo.UpdateParish(ctx, toPersistenceParish(parish))
}

func (a *parishAdapter) GetParish(ctx context.Context, id string) (application.Parish, error) {
	stored, err := a.repo.GetParish(ctx, id)
	if err != nil {
		return application.Parish{}, err
	}
	return toApplicationParish(stored), nil
}

func (a *parishAdapter) ListParishes(ctx context.Context) ([]application.Parish, error) {
	models, err := a.repo.ListParishes(ctx)
	if err != nil {
		return nil, err
	}
	parishes := make([]application.Parish, 0, len(models))
	for _, model := range models {
		parishes = append(parishes, toApplicationParish(model))
	}
	return parishes, nil
}

func (a *parishAdapter) DeleteParish(ctx context.Context, id string) error {
	return a.repo.DeleteParish(ctx, id)
}

type ministerAdapter struct {
	repo persistence.MinisterRepository
}

func newMinisterAdapter(repo persistence.MinisterRepository) *ministerAdapter {
	return &ministerAdapter{repo: repo}
}

func (a *ministerAdapter) CreateMinister(ctx context.Context, minister application.Minister) error {
	return a.repo.CreateMinister(ctx, toPersistenceMinister(minister))
}

func (a *ministerAdapter) UpdateMinister(ctx context.Context, minister application.Minister) error {
	return a.repo.UpdateMinister(ctx, toPersistenceMinister(minister))
}

func (a *ministerAdapter) GetMinister(ctx context.Context, parishID, id string) (application.Minister, error) {
	stored, err := a.repo.GetMinister(ctx, parishID, id)
	if err != nil {
		return application.Minister{}, err
	}
	return toApplicationMinister(stored), nil
}

func (a *ministerAdapter) ListMinisters(ctx context.Context, parishID string) ([]application.Minister, error) {
	models, err := a.repo.ListMinisters(ctx, parishID)
	if err != nil {
		return nil, err
	}
	ministers := make([]application.Minister, 0, len(models))
	for _, model := range models {
		ministers = append(ministers, toApplicationMinister(model))
	}
	return ministers, nil
}

func (a *ministerAdapter) DeleteMinister(ctx context.Context, parishID, id string) error {
	return a.repo.DeleteMinister(ctx, parishID, id)
}

type massAdapter struct {
	repo persistence.MassRepository
}

func newMassAdapter(repo persistence.MassRepository) *massAdapter {
	return &massAdapter{repo: repo}
}

func (a *massAdapter) CreateMass(ctx context.Context, mass application.Mass) error {
	return a.repo.CreateMass(ctx, toPersistenceMass(mass))
}

func (a *massAdapter) UpdateMass(ctx context.Context, mass application.Mass) error {
	return a.repo.UpdateMass(ctx, toPersistenceMass(mass))
}

func (a *massAdapter) GetMass(ctx context.Context, parishID, id string) (application.Mass, error) {
	stored, err := a.repo.GetMass(ctx, parishID, id)
	if err != nil {
		return application.Mass{}, err
	}
	return toApplicationMass(stored), nil
}

func (a *massAdapter) FindMass(ctx context.Context, parishID string, date time.Time, timeLabel string) (application.Mass, error) {
	stored, err := a.repo.FindMass(ctx, parishID, date, timeLabel)
	if err != nil {
		return application.Mass{}, err
	}
	return toApplicationMass(stored), nil
}

func (a *massAdapter) ListMasses(ctx context.Context, parishID string, window application.MassWindow) ([]application.Mass, error) {
	models, err := a.repo.ListMasses(ctx, parishID, persistence.MassFilter{From: window.From, To: window.To})
	if err != nil {
		return nil, err
	}
	masses := make([]application.Mass, 0, len(models))
	for _, model := range models {
		masses = append(masses, toApplicationMass(model))
	}
	return masses, nil
}

func (a *massAdapter) DeleteMass(ctx context.Context, parishID, id string) error {
	return a.repo.DeleteMass(ctx, parishID, id)
}

type fixedSlotAdapter struct {
	repo persistence.FixedSlotRepository
}

func newFixedSlotAdapter(repo persistence.FixedSlotRepository) *fixedSlotAdapter {
	return &fixedSlotAdapter{repo: repo}
}

func (a *fixedSlotAdapter) CreateFixedSlot(ctx context.Context, slot application.FixedSlot) error {
	return a.repo.CreateFixedSlot(ctx, toPersistenceFixedSlot(slot))
}

func (a *fixedSlotAdapter) UpdateFixedSlot(ctx context.Context, slot application.FixedSlot) error {
	return a.repo.UpdateFixedSlot(ctx, toPersistenceFixedSlot(slot))
}

func (a *fixedSlotAdapter) GetFixedSlot(ctx context.Context, parishID, id string) (application.FixedSlot, error) {
	stored, err := a.repo.GetFixedSlot(ctx, parishID, id)
	if err != nil {
		return application.FixedSlot{}, err
	}
	return toApplicationFixedSlot(stored), nil
}

func (a *fixedSlotAdapter) ListFixedSlots(ctx context.Context, parishID string) ([]application.FixedSlot, error) {
	models, err := a.repo.ListFixedSlots(ctx, parishID)
	if err != nil {
		return nil, err
	}
	slots := make([]application.FixedSlot, 0, len(models))
	for _, model := range models {
		slots = append(slots, toApplicationFixedSlot(model))
	}
	return slots, nil
}

func (a *fixedSlotAdapter) DeleteFixedSlot(ctx context.Context, parishID, id string) error {
	return a.repo.DeleteFixedSlot(ctx, parishID, id)
}

type unavailabilityAdapter struct {
	repo persistence.UnavailabilityRepository
}

func newUnavailabilityAdapter(repo persistence.UnavailabilityRepository) *unavailabilityAdapter {
	return &unavailabilityAdapter{repo: repo}
}

func (a *unavailabilityAdapter) CreateUnavailability(ctx context.Context, record application.Unavailability) error {
	return a.repo.CreateUnavailability(ctx, toPersistenceUnavailability(record))
}

func (a *unavailabilityAdapter) GetUnavailability(ctx context.Context, parishID, id string) (application.Unavailability, error) {
	stored, err := a.repo.GetUnavailability(ctx, parishID, id)
	if err != nil {
		return application.Unavailability{}, err
	}
	return toApplicationUnavailability(stored), nil
}

func (a *unavailabilityAdapter) ListUnavailability(ctx context.Context, parishID string, window application.UnavailabilityWindow) ([]application.Unavailability, error) {
	filter := persistence.UnavailabilityFilter{MinisterID: window.MinisterID, Date: window.Date}
	models, err := a.repo.ListUnavailability(ctx, parishID, filter)
	if err != nil {
		return nil, err
	}
	records := make([]application.Unavailability, 0, len(models))
	for _, model := range models {
		records = append(records, toApplicationUnavailability(model))
	}
	return records, nil
}

func (a *unavailabilityAdapter) DeleteUnavailability(ctx context.Context, parishID, id string) error {
	return a.repo.DeleteUnavailability(ctx, parishID, id)
}

type assignmentAdapter struct {
	repo persistence.AssignmentRepository
}

func newAssignmentAdapter(repo persistence.AssignmentRepository) *assignmentAdapter {
	return &assignmentAdapter{repo: repo}
}

func (a *assignmentAdapter) CreateAssignment(ctx context.Context, assignment application.Assignment) error {
	return a.repo.CreateAssignment(ctx, toPersistenceAssignment(assignment))
}

func (a *assignmentAdapter) UpdateAssignment(ctx context.Context, assignment application.Assignment) error {
	return a.repo.UpdateAssignment(ctx, toPersistenceAssignment(assignment))
}

func (a *assignmentAdapter) GetAssignment(ctx context.Context, parishID, id string) (application.Assignment, error) {
	stored, err := a.repo.GetAssignment(ctx, parishID, id)
	if err != nil {
		return application.Assignment{}, err
	}
	return toApplicationAssignment(stored), nil
}

func (a *assignmentAdapter) GetAssignmentByToken(ctx context.Context, token string) (application.Assignment, error) {
	stored, err := a.repo.GetAssignmentByToken(ctx, token)
	if err != nil {
		return application.Assignment{}, err
	}
	return toApplicationAssignment(stored), nil
}

func (a *assignmentAdapter) ListAssignmentsForMass(ctx context.Context, parishID, massID string) ([]application.Assignment, error) {
	models, err := a.repo.ListAssignmentsForMass(ctx, parishID, massID)
	if err != nil {
		return nil, err
	}
	assignments := make([]application.Assignment, 0, len(models))
	for _, model := range models {
		assignments = append(assignments, toApplicationAssignment(model))
	}
	return assignments, nil
}

func (a *assignmentAdapter) ListBusyMinisterIDs(ctx context.Context, parishID string, date time.Time, timeLabel, excludeMassID string) ([]string, error) {
	return a.repo.ListBusyMinisterIDs(ctx, parishID, date, timeLabel, excludeMassID)
}

func (a *assignmentAdapter) ReplaceRoster(ctx context.Context, parishID, massID string, assignments []application.Assignment) error {
	models := make([]persistence.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		models = append(models, toPersistenceAssignment(assignment))
	}
	return a.repo.ReplaceRoster(ctx, parishID, massID, models)
}

func (a *assignmentAdapter) CountByMinister(ctx context.Context, parishID string, window application.MassWindow) (map[string]int, error) {
	filter := persistence.AssignmentFilter{From: window.From, To: window.To}
	return a.repo.CountByMinister(ctx, parishID, filter)
}

func (a *assignmentAdapter) DeleteAssignment(ctx context.Context, parishID, id string) error {
	return a.repo.DeleteAssignment(ctx, parishID, id)
}
