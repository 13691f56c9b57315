package usecases

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"team-seed.backend/internal/domain/entities"
	domainerrors "team-seed.backend/internal/domain/errors"
	"team-seed.backend/internal/domain/repositories"
	"team-seed.backend/pkg/logger"
)

// SeedRecorder receives the outcome of every Seed call
type SeedRecorder interface {
	ObserveRun(err error, records int, elapsed time.Duration)
}

type SeedResult struct {
	Applied int
	Elapsed time.Duration
}

// SeedUsecase loads a roster into team_members as one all-or-nothing batch:
// every record is validated first, the schema is ensured, then all upserts
// share a single transaction.
type SeedUsecase struct {
	repo     repositories.TeamMemberRepository
	uow      repositories.UnitOfWork
	recorder SeedRecorder
	validate *validator.Validate
	now      func() time.Time
}

func NewSeedUsecase(repo repositories.TeamMemberRepository, uow repositories.UnitOfWork, recorder SeedRecorder) *SeedUsecase {
	return &SeedUsecase{
		repo:     repo,
		uow:      uow,
		recorder: recorder,
		validate: newValidator(),
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json keys so messages match the data file
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Seed applies members in order. Records sharing an id are applied in turn,
// so the last one wins. On error nothing from this call is committed.
func (u *SeedUsecase) Seed(ctx context.Context, members []*entities.TeamMember) (result *SeedResult, err error) {
	start := u.now()
	defer func() {
		elapsed := u.now().Sub(start)
		if u.recorder != nil {
			u.recorder.ObserveRun(err, len(members), elapsed)
		}
		if result != nil {
			result.Elapsed = elapsed
		}
	}()

	if err := u.ValidateAll(members); err != nil {
		logger.Error(ctx, "Roster rejected", zap.Error(err))
		return nil, err
	}

	if err := u.repo.EnsureSchema(ctx); err != nil {
		logger.Error(ctx, "Failed to ensure team_members schema", zap.Error(err))
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, m := range members {
			if err := u.repo.Upsert(txCtx, m); err != nil {
				return err
			}
			logger.Debug(txCtx, "Team member upserted", zap.String("id", m.ID), zap.Int("order", m.Order))
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "Seed batch rolled back", zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "Seed batch committed", zap.Int("records", len(members)))
	return &SeedResult{Applied: len(members)}, nil
}

// ValidateAll checks every record before anything is written and reports the
// first invalid one.
func (u *SeedUsecase) ValidateAll(members []*entities.TeamMember) error {
	for i, m := range members {
		ref := fmt.Sprintf("#%d", i+1)
		if m == nil {
			return domainerrors.InvalidRecord(ref, "record is empty")
		}
		if m.ID != "" {
			ref = m.ID
		}
		if err := u.validate.Struct(m); err != nil {
			return domainerrors.InvalidRecord(ref, validationMessage(err))
		}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fe.Field()+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
